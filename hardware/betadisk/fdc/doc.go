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

// Package fdc emulates the K1818VG93 floppy disk controller, a member of the
// WD1793 family.
//
// The controller is driven by the host CPU. Registers are accessed with
// Read() and Write() and the controller is advanced with Step(), which takes
// the current T-state count of the host. Commands run for as many calls to
// Step() as they need, with timing taken entirely from the T-state count.
//
// The meaning of some status bits depends on the family of the most recent
// command. For example, bit 2 is TRACK 00 for Type I commands but LOST DATA
// for Type II and III commands. The status register can only be changed
// through a view of the correct family, see Status.ForType1() and
// Status.ForType2And3().
//
// The disk in the selected drive is changed with ActivateDisk(), which is
// safe to call from a goroutine other than the one calling Step().
package fdc
