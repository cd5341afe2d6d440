// This file is part of vg93.
//
// vg93 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// vg93 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with vg93.  If not, see <https://www.gnu.org/licenses/>.

// Package betadisk connects the floppy disk controller to the I/O ports of
// the host. It emulates the Beta Disk interface: four drive slots, the
// system register at port 0xFF and the decoding of the controller registers
// to ports 0x1F, 0x3F, 0x5F and 0x7F.
//
// The ports are only decoded while the host reports that the TR-DOS ROM is
// paged in. See SetActiveROM().
//
// The host drives the interface with PreStep() and PostStep() around each
// CPU instruction. Disks can be inserted and ejected from any goroutine.
//
// The subpackages provide the disk model (floppy), the DSK container
// (dsk), the controller (fdc) and the raw track format (rawtrack).
package betadisk
