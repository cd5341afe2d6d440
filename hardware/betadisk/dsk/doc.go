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

// Package dsk parses CPC DSK and Extended DSK disk images. A parsed
// Container can be converted to a floppy.Disk for use by the controller.
//
// Both kinds of container begin with a 256 byte disk information block
// followed by one track information block per track. The track blocks of a
// standard container are all the same size. The track blocks of an extended
// container have their size listed in the disk information block and a size
// of zero indicates an unformatted track with no track block at all.
//
// Parse() either returns a complete Container or an error. A container is
// never partially populated.
package dsk
