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

// Package prefs facilitates the storage of preference values. Values are
// stored in types that can be read and written from more than one goroutine
// (Bool, Int, String) and are collected in a Disk, which reads and writes
// them to a text file:
//
//	dsk, _ := prefs.NewDisk(paths.ResourcePath(prefs.DefaultPrefsFile))
//
//	var randomSeek prefs.Bool
//	dsk.Add("fdc.randomseek", &randomSeek)
//	dsk.Load()
//
// More than one Disk can share the same file. Save() preserves entries in the
// file that belong to other Disks.
//
// Preferences can be overridden for a single run with the command line stack.
// PushCommandLineStack() takes a string of key::value pairs and those values
// are applied by the next call to Load().
package prefs
