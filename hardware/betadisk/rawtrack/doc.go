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

// Package rawtrack produces and consumes the raw byte stream of a whole
// track, as transferred by the READ TRACK and WRITE TRACK commands of the
// controller.
//
// For reading, PrepareForRead() lays out every sector of the track between
// the gaps and address marks of the modulation. For writing, WriteNext()
// scans the incoming stream for ID fields and data marks and writes the data
// that follows each data mark to the sector named by the preceding ID field.
package rawtrack
