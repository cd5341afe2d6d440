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

// Package modalflag layers modes on top of the flag package. A command line
// is parsed in stages: each stage declares its flags and the sub-modes that
// may follow, and Parse() consumes the flags and at most one sub-mode.
//
// For example, the following command line selects the MONITOR mode after the
// top level flags have been consumed:
//
//	vg93 -log MONITOR -wp disk.trd
//
// Sub-mode names are case insensitive. The first sub-mode added is the
// default and is selected when the next argument does not name a sub-mode.
package modalflag
