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

//go:build windows

package monitor

import (
	"fmt"
)

// ColorTerminal is not available on windows.
type ColorTerminal struct {
}

// Initialise implements the Terminal interface.
func (ct *ColorTerminal) Initialise() error {
	return fmt.Errorf("monitor: color terminal not available on windows")
}

// CleanUp implements the Terminal interface.
func (ct *ColorTerminal) CleanUp() {
}

// IsInteractive implements the Terminal interface.
func (ct *ColorTerminal) IsInteractive() bool {
	return false
}

// TermRead implements the Terminal interface.
func (ct *ColorTerminal) TermRead(input []byte, prompt string) (int, error) {
	return 0, nil
}

// TermPrintLine implements the Terminal interface.
func (ct *ColorTerminal) TermPrintLine(style Style, s string) {
}
