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

package monitor

// Style is used to specify the type of text being printed.
type Style int

// List of valid Style values.
const (
	StyleFeedback Style = iota
	StyleHelp
	StyleError
	StyleInstrument
	StyleLog
)

// Terminal defines the operations required by the monitor.
type Terminal interface {
	// Initialise the terminal. Not all terminal implementations will need to
	// do anything.
	Initialise() error

	// Restore the terminal to its original state, if possible.
	CleanUp()

	// TermRead places the next line of input into the buffer and returns the
	// number of bytes used. Returns io.EOF when there is no more input.
	TermRead(buffer []byte, prompt string) (int, error)

	// TermPrintLine prints the string and a newline.
	TermPrintLine(style Style, s string)

	// IsInteractive returns true if the terminal expects a person at the
	// keyboard.
	IsInteractive() bool
}
