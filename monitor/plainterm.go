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

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// PlainTerminal is the most basic Terminal implementation. It offers no
// editing facilities. Used for scripted input and tests.
type PlainTerminal struct {
	input  *bufio.Reader
	output io.Writer

	// echo input lines to the output
	echo bool
}

// NewPlainTerminal is the preferred method of initialisation for the
// PlainTerminal type.
func NewPlainTerminal(input io.Reader, output io.Writer) *PlainTerminal {
	return &PlainTerminal{
		input:  bufio.NewReader(input),
		output: output,
	}
}

// Initialise implements the Terminal interface.
func (pt *PlainTerminal) Initialise() error {
	return nil
}

// CleanUp implements the Terminal interface.
func (pt *PlainTerminal) CleanUp() {
}

// SetEcho sets whether input is echoed to the output.
func (pt *PlainTerminal) SetEcho(echo bool) {
	pt.echo = echo
}

// IsInteractive implements the Terminal interface.
func (pt *PlainTerminal) IsInteractive() bool {
	return false
}

// TermRead implements the Terminal interface.
func (pt *PlainTerminal) TermRead(buffer []byte, prompt string) (int, error) {
	s, err := pt.input.ReadString('\n')
	if err != nil && (err != io.EOF || s == "") {
		return 0, err
	}

	s = strings.TrimRight(s, "\r\n")
	if pt.echo {
		fmt.Fprintf(pt.output, "%s%s\n", prompt, s)
	}

	return copy(buffer, s), nil
}

// TermPrintLine implements the Terminal interface.
func (pt *PlainTerminal) TermPrintLine(style Style, s string) {
	switch style {
	case StyleError:
		s = fmt.Sprintf("* %s", s)
	case StyleHelp:
		s = fmt.Sprintf("  %s", s)
	}
	fmt.Fprintln(pt.output, s)
}
