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

//go:build !windows

package monitor

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"unicode"

	"github.com/raydac/zxpoly-sub001/monitor/easyterm"
	"github.com/raydac/zxpoly-sub001/monitor/easyterm/ansi"
)

// ColorTerminal implements the Terminal interface with a basic ANSI
// terminal. It requires stdin and stdout to be a real terminal.
type ColorTerminal struct {
	easyterm.Terminal

	reader  *bufio.Reader
	history [][]byte
}

// Initialise implements the Terminal interface.
func (ct *ColorTerminal) Initialise() error {
	err := ct.Terminal.Initialise(os.Stdin, os.Stdout)
	if err != nil {
		return err
	}
	ct.reader = bufio.NewReader(os.Stdin)
	return nil
}

// CleanUp implements the Terminal interface.
func (ct *ColorTerminal) CleanUp() {
	ct.TermPrint("\r")
	_ = ct.Flush()
	ct.Terminal.CleanUp()
}

// IsInteractive implements the Terminal interface.
func (ct *ColorTerminal) IsInteractive() bool {
	return true
}

// TermPrintLine implements the Terminal interface.
func (ct *ColorTerminal) TermPrintLine(style Style, s string) {
	ct.TermPrint("\r")

	switch style {
	case StyleError:
		ct.TermPrint(ansi.Pens["red"])
		ct.TermPrint("* ")
	case StyleHelp:
		ct.TermPrint(ansi.DimPens["white"])
		ct.TermPrint("  ")
	case StyleInstrument:
		ct.TermPrint(ansi.Pens["cyan"])
	case StyleLog:
		ct.TermPrint(ansi.DimPens["yellow"])
	case StyleFeedback:
		ct.TermPrint(ansi.DimPens["white"])
	}

	ct.TermPrint(s)
	ct.TermPrint(ansi.NormalPen)
	ct.TermPrint("\n")
}

// addHistory appends the input to the command history unless it is the same
// as the most recent entry.
func (ct *ColorTerminal) addHistory(input []byte) {
	if len(input) == 0 {
		return
	}
	if len(ct.history) > 0 && string(ct.history[len(ct.history)-1]) == string(input) {
		return
	}
	ct.history = append(ct.history, append([]byte{}, input...))
}

// TermRead implements the Terminal interface.
func (ct *ColorTerminal) TermRead(input []byte, prompt string) (int, error) {
	ct.CBreakMode()
	defer ct.CanonicalMode()

	n := 0
	cursor := 0
	history := len(ct.history)

	// the most recent input is kept while scrolling through the history
	saved := make([]byte, 0, cap(input))

	recall := func(b []byte) {
		n = copy(input, b)
		ct.TermPrint(ansi.CursorMove(n - cursor))
		cursor = n
	}

	ct.TermPrint("\r%s", ansi.CursorMove(len(prompt)))

	for {
		// redraw the line and put the cursor back where it was
		ct.TermPrint(ansi.CursorStore)
		ct.TermPrint("%s%s%s%s", ansi.ClearLine, ansi.PenStyles["bold"], prompt, ansi.NormalPen)
		ct.TermPrint(string(input[:n]))
		ct.TermPrint(ansi.CursorRestore)

		r, _, err := ct.reader.ReadRune()
		if err != nil {
			return n, err
		}

		switch r {
		case easyterm.KeyEOF:
			if n == 0 {
				ct.TermPrint("\n")
				return 0, io.EOF
			}

		case easyterm.KeySuspend:
			ct.CanonicalMode()
			easyterm.SuspendProcess()
			ct.CBreakMode()

		case easyterm.KeyCarriageReturn, easyterm.KeyLineFeed:
			ct.addHistory(input[:n])
			ct.TermPrint("\n")
			return n, nil

		case easyterm.KeyEsc:
			r, _, err := ct.reader.ReadRune()
			if err != nil {
				return n, err
			}
			if r != easyterm.EscCursor {
				break // switch
			}

			r, _, err = ct.reader.ReadRune()
			if err != nil {
				return n, err
			}

			switch r {
			case easyterm.CursorUp:
				if history > 0 {
					if history == len(ct.history) {
						saved = append(saved[:0], input[:n]...)
					}
					history--
					recall(ct.history[history])
				}
			case easyterm.CursorDown:
				if history < len(ct.history)-1 {
					history++
					recall(ct.history[history])
				} else if history == len(ct.history)-1 {
					history++
					recall(saved)
				}
			case easyterm.CursorForward:
				if cursor < n {
					ct.TermPrint(ansi.CursorForwardOne)
					cursor++
				}
			case easyterm.CursorBackward:
				if cursor > 0 {
					ct.TermPrint(ansi.CursorBackwardOne)
					cursor--
				}
			case easyterm.EscHome:
				ct.TermPrint(ansi.CursorMove(-cursor))
				cursor = 0
			case easyterm.EscEnd:
				ct.TermPrint(ansi.CursorMove(n - cursor))
				cursor = n
			case easyterm.EscDelete:
				// delete key is followed by a tilde
				_, _, _ = ct.reader.ReadRune()
				if cursor < n {
					copy(input[cursor:], input[cursor+1:n])
					n--
					history = len(ct.history)
				}
			}

		case easyterm.KeyBackspace, easyterm.KeyDelete:
			if cursor > 0 {
				copy(input[cursor-1:], input[cursor:n])
				ct.TermPrint(ansi.CursorBackwardOne)
				cursor--
				n--
				history = len(ct.history)
			}

		default:
			// the line is edited as ASCII so that the cursor position in the
			// buffer matches the column on the screen
			if r > unicode.MaxASCII || !unicode.IsPrint(r) || n >= len(input) {
				break // switch
			}
			copy(input[cursor+1:], input[cursor:n])
			input[cursor] = byte(r)
			ct.TermPrint(ansi.CursorForwardOne)
			cursor++
			n++
			history = len(ct.history)
		}
	}
}

// String implements the fmt.Stringer interface.
func (ct *ColorTerminal) String() string {
	g := ct.Geometry()
	return fmt.Sprintf("color terminal (%dx%d)", g.Cols, g.Rows)
}
