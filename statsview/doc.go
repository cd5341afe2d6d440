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

// Package statsview serves runtime statistics of the running process over
// HTTP, using github.com/go-echarts/statsview. The server is only compiled
// into the binary when the statsview build tag is present:
//
//	go build -tags statsview .
//
// The statistics are then viewable at:
//
//	localhost:12693/debug/statsview
//
// Without the build tag Launch() does nothing and Available() returns false.
package statsview
