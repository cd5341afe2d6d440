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

// Package paths prepares paths to vg93 resources, such as the preferences
// file.
//
// If a directory called ".vg93" is present in the current directory then
// that is used as the base path. Otherwise the "vg93" directory in the user's
// config directory is used (see os.UserConfigDir()). For example, on a Linux
// system:
//
//	p, _ := paths.ResourcePath("preferences")
//
// returns "/home/user/.config/vg93/preferences".
package paths
