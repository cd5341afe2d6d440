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

// Package clocks defines the virtual time base of the disk interface. All
// timing is measured in T-states of the host Z80, the counter for which is
// supplied by the host CPU emulation.
package clocks

// CPU frequency of the host in T-states per second.
const ZX = 3500000

// Timing windows of the controller in T-states, independent of the CPU
// frequency.
const (
	// a byte remains valid in the data register for this long before the
	// lost data condition is raised
	BufferValid = 128

	// delay before the first byte of a sector is presented
	SectorPositioning = BufferValid
)

// Timing windows of the controller in milliseconds. Convert to T-states with
// Millis().
const (
	// head movement from one track to the next
	HeadStepMs = 12

	// the motor remains on for this long after the last busy command
	MotorOnMs = 2000
)

// Millis converts milliseconds to T-states for the CPU frequency. The
// frequency will be ZX if it is zero or less.
func Millis(ms int64, freq int) int64 {
	if freq <= 0 {
		freq = ZX
	}
	return ms * int64(freq) / 1000
}
