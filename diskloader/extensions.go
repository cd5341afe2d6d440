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

package diskloader

// FileExtensions is the list of file extensions that are recognised by the
// diskloader package.
var FileExtensions = [...]string{".TRD", ".SCL", ".DSK"}
