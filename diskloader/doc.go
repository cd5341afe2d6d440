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

// Package diskloader is used to specify the disk image that is to be inserted
// into a drive of the disk interface.
//
// When the image is ready to be loaded, the Load() function should be used.
// The Load() function handles loading of data from different sources.
// Currently local files and data over HTTP are supported.
//
// As well as the filename, the Loader type allows the format of the image to
// be specified, if required.
//
// The simplest instance of the Loader type:
//
//	dl := diskloader.Loader{
//		Filename: "disks/demo.trd",
//	}
//
// It is preferred however that the NewLoader() function is used. The
// NewLoader() function will set the format field automatically according to
// the filename extension.
//
// Once loaded, the Disk() function creates a floppy.Disk from the data.
package diskloader
