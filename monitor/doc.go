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

// Package monitor is an interactive command line for the disk interface. It
// allows disks to be inserted and ejected, the I/O ports to be driven by hand
// and the state of the controller to be inspected.
//
// Input and output go through the Terminal interface. PlainTerminal works
// with any io.Reader and io.Writer. ColorTerminal requires a real terminal
// and adds line editing, a command history and coloured output.
//
// The commands are listed by the HELP command.
package monitor
