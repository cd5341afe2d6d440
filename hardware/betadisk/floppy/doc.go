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

// Package floppy is the surface of a floppy disk as seen by the controller.
// A Disk owns a contiguous byte buffer and a table of sectors, each of which
// is a view into the buffer identified by side, track and sector ID.
//
// TR-DOS disks have a fixed geometry of two sides with up to 86 tracks each,
// and 16 sectors of 256 bytes per track. Tracks are interleaved so that the
// byte offset of a sector is:
//
//	track * 8192 + side * 4096 + (id - 1) * 256
//
// Disks created from a DSK container (see the dsk package) have a variable
// number of sectors per track and a variable sector length.
//
// Every sector carries a CRC-16 (polynomial 0x1021, seed 0xCDB4). The CRC is
// recalculated whenever a byte of the sector changes and is always
// consistent with the sector's bytes once a write has returned. A write
// protected disk never changes.
//
// Lookups that fail are not errors. A missing sector is reported with a
// false return value and it is up to the controller to translate that into
// the appropriate status flags.
package floppy
