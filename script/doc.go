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

// Package script hosts Lua scripts that drive the disk interface. A script
// plays the part of the host CPU: it writes to and reads from the I/O ports
// and advances virtual time.
//
// The following functions are available to scripts:
//
//	port_in(port)                   returns the value read from the port or nil
//	port_out(port, value)           returns true if the port was decoded
//	step([count], [tstates])        advances the interface
//	wait([limit])                   advances the interface until INTRQ. returns true on completion
//	read()                          reads data bytes until INTRQ. returns a table of values
//	write(value, ...)               writes data bytes until INTRQ. the last value is repeated
//	rom(active)                     pages the TR-DOS ROM in or out
//	insert(drive, filename, [format])
//	blank(drive, [tracks], [sides])
//	eject(drive)
//	save(drive, filename)
//	regs()                          returns a table of controller registers
//	log(message)
//
// Drives are numbered 0 to 3. The standard print() function writes to the
// output given to NewHost().
package script
