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

// Package random provides random numbers derived from the virtual time of the
// emulation (the T-state counter supplied by the host CPU) rather than from
// wall-clock time.
//
// The controller uses random numbers to emulate the rotational position of
// the disk after a head movement. Setting ZeroSeed makes the sequence depend
// only on virtual time, which means a replay of the same port activity
// produces the same controller behaviour.
package random
