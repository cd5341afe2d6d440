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
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bradleyjkemp/memviz"
	"github.com/raydac/zxpoly-sub001/curated"
	"github.com/raydac/zxpoly-sub001/diskloader"
	"github.com/raydac/zxpoly-sub001/environment"
	"github.com/raydac/zxpoly-sub001/hardware/betadisk"
	"github.com/raydac/zxpoly-sub001/hardware/betadisk/fdc"
	"github.com/raydac/zxpoly-sub001/hardware/betadisk/floppy"
	"github.com/raydac/zxpoly-sub001/logger"
)

// Sentinel errors.
const (
	UnknownCommand = "monitor: unknown command (%s)"
	BadArguments   = "monitor: %s: %v"
)

// default length of a step in T-states.
const stepLength = 16

// WAIT gives up after this many steps.
const waitLimit = 1000000

// Monitor is the interactive command line for a disk interface.
type Monitor struct {
	env  *environment.Environment
	bd   *betadisk.Interface
	term Terminal

	// name of the image in each drive
	names [betadisk.NumSlots]string

	quit bool
}

// NewMonitor is the preferred method of initialisation for the Monitor type.
func NewMonitor(env *environment.Environment, bd *betadisk.Interface) *Monitor {
	return &Monitor{
		env: env,
		bd:  bd,
	}
}

// Insert loads the disk image and inserts it into the drive.
func (mon *Monitor) Insert(drive int, dl diskloader.Loader) error {
	d, err := dl.Disk()
	if err != nil {
		return err
	}
	mon.bd.InsertDisk(drive, d)
	mon.names[drive] = dl.ShortName()
	return nil
}

// Run the monitor with the terminal. Returns when the QUIT command is
// received or when the terminal has no more input.
func (mon *Monitor) Run(term Terminal) error {
	if err := term.Initialise(); err != nil {
		return err
	}
	defer term.CleanUp()

	mon.term = term
	mon.quit = false

	buffer := make([]byte, 256)

	for !mon.quit {
		n, err := term.TermRead(buffer, mon.prompt())
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		err = mon.ParseCommand(string(buffer[:n]))
		if err != nil {
			term.TermPrintLine(StyleError, err.Error())
		}
	}

	return nil
}

func (mon *Monitor) prompt() string {
	r := mon.bd.Controller().Registers()
	return fmt.Sprintf("[ %c: %s t%d ] > ", 'A'+mon.bd.Selected(), r.Status, r.Cylinder)
}

func (mon *Monitor) printLine(style Style, s string, a ...interface{}) {
	if len(a) > 0 {
		s = fmt.Sprintf(s, a...)
	}
	for _, l := range strings.Split(strings.TrimRight(s, "\n"), "\n") {
		mon.term.TermPrintLine(style, l)
	}
}

// ParseCommand parses and runs one line of input. Empty lines are ignored.
func (mon *Monitor) ParseCommand(input string) error {
	toks := strings.Fields(input)
	if len(toks) == 0 {
		return nil
	}

	cmd := strings.ToUpper(toks[0])
	args := toks[1:]

	if _, ok := usage[cmd]; !ok {
		return curated.Errorf(UnknownCommand, toks[0])
	}

	if err := mon.run(cmd, args); err != nil {
		if curated.IsAny(err) {
			return err
		}
		return curated.Errorf(BadArguments, cmd, err)
	}

	return nil
}

func parseNumber(s string, bits int) (uint64, error) {
	// hexadecimal numbers are accepted with a 0x or $ prefix
	s = strings.Replace(s, "$", "0x", 1)
	return strconv.ParseUint(s, 0, bits)
}

func requireArgs(args []string, min int, max int) error {
	if len(args) < min {
		return fmt.Errorf("too few arguments")
	}
	if len(args) > max {
		return fmt.Errorf("too many arguments")
	}
	return nil
}

func (mon *Monitor) run(cmd string, args []string) error {
	switch cmd {
	case cmdHelp:
		if err := requireArgs(args, 0, 1); err != nil {
			return err
		}
		if len(args) == 0 {
			mon.printLine(StyleHelp, helpOverview())
			return nil
		}
		k := strings.ToUpper(args[0])
		h, ok := help[k]
		if !ok {
			return fmt.Errorf("no help for %s", args[0])
		}
		mon.printLine(StyleHelp, h)
		mon.printLine(StyleHelp, "Usage: %s", usage[k])

	case cmdQuit:
		mon.quit = true

	case cmdReset:
		mon.bd.PreStep(true)
		mon.printLine(StyleFeedback, "interface reset")

	case cmdInsert:
		if err := requireArgs(args, 2, 3); err != nil {
			return err
		}
		drive, err := parseDrive(args[0])
		if err != nil {
			return err
		}
		var format string
		if len(args) == 3 {
			format = args[2]
		}
		if err := mon.Insert(drive, diskloader.NewLoader(args[1], format)); err != nil {
			return err
		}
		mon.printLine(StyleFeedback, "%c: %s", 'A'+drive, mon.bd.Disk(drive))

	case cmdBlank:
		if err := requireArgs(args, 1, 3); err != nil {
			return err
		}
		drive, err := parseDrive(args[0])
		if err != nil {
			return err
		}
		tracks, sides := uint64(80), uint64(2)
		if len(args) > 1 {
			if tracks, err = parseNumber(args[1], 8); err != nil {
				return err
			}
		}
		if len(args) > 2 {
			if sides, err = parseNumber(args[2], 8); err != nil {
				return err
			}
		}
		d, err := floppy.NewBlank(int(sides), int(tracks))
		if err != nil {
			return err
		}
		mon.bd.InsertDisk(drive, d)
		mon.names[drive] = "blank"
		mon.printLine(StyleFeedback, "%c: %s", 'A'+drive, d)

	case cmdEject:
		if err := requireArgs(args, 1, 1); err != nil {
			return err
		}
		drive, err := parseDrive(args[0])
		if err != nil {
			return err
		}
		if d := mon.bd.Disk(drive); d != nil && d.IsDirty() {
			mon.printLine(StyleFeedback, "%c: disk has unsaved changes", 'A'+drive)
		}
		mon.bd.EjectDisk(drive)
		mon.names[drive] = ""

	case cmdDisks:
		if err := requireArgs(args, 0, 0); err != nil {
			return err
		}
		for i := range betadisk.NumSlots {
			d := mon.bd.Disk(i)
			sel := ' '
			if i == mon.bd.Selected() {
				sel = '*'
			}
			if d == nil {
				mon.printLine(StyleInstrument, "%c%c: empty", sel, 'A'+i)
				continue
			}
			var flags string
			if d.IsWriteProtected() {
				flags += " (protected)"
			}
			if d.IsDirty() {
				flags += " (changed)"
			}
			mon.printLine(StyleInstrument, "%c%c: %s %s%s", sel, 'A'+i, mon.names[i], d, flags)
		}

	case cmdCat:
		if err := requireArgs(args, 1, 1); err != nil {
			return err
		}
		d, err := mon.disk(args[0])
		if err != nil {
			return err
		}
		cat, err := d.Catalogue()
		if err != nil {
			return err
		}
		mon.printLine(StyleInstrument, cat.String())

	case cmdSave:
		if err := requireArgs(args, 2, 2); err != nil {
			return err
		}
		d, err := mon.disk(args[0])
		if err != nil {
			return err
		}
		if err := diskloader.SaveTRD(args[1], d); err != nil {
			return err
		}
		mon.printLine(StyleFeedback, "saved to %s", args[1])

	case cmdROM:
		if err := requireArgs(args, 0, 1); err != nil {
			return err
		}
		if len(args) == 1 {
			switch strings.ToUpper(args[0]) {
			case "ON":
				mon.bd.SetActiveROM(true)
			case "OFF":
				mon.bd.SetActiveROM(false)
			default:
				return fmt.Errorf("expected ON or OFF")
			}
		}
		mon.printLine(StyleInstrument, mon.bd.String())

	case cmdOut:
		if err := requireArgs(args, 2, 2); err != nil {
			return err
		}
		port, err := parseNumber(args[0], 16)
		if err != nil {
			return err
		}
		v, err := parseNumber(args[1], 8)
		if err != nil {
			return err
		}
		if !mon.bd.WriteIO(uint16(port), uint8(v)) {
			return fmt.Errorf("port %#04x not decoded", port)
		}

	case cmdIn:
		if err := requireArgs(args, 1, 1); err != nil {
			return err
		}
		port, err := parseNumber(args[0], 16)
		if err != nil {
			return err
		}
		v, ok := mon.bd.ReadIO(uint16(port))
		if !ok {
			return fmt.Errorf("port %#04x not decoded", port)
		}
		mon.printLine(StyleInstrument, "%#02x %08b", v, v)

	case cmdStep:
		if err := requireArgs(args, 0, 2); err != nil {
			return err
		}
		count, spent := uint64(1), uint64(stepLength)
		var err error
		if len(args) > 0 {
			if count, err = parseNumber(args[0], 32); err != nil {
				return err
			}
		}
		if len(args) > 1 {
			if spent, err = parseNumber(args[1], 32); err != nil {
				return err
			}
		}
		for range count {
			mon.bd.PostStep(int64(spent))
		}

	case cmdWait:
		if err := requireArgs(args, 0, 1); err != nil {
			return err
		}
		limit := uint64(waitLimit)
		var err error
		if len(args) > 0 {
			if limit, err = parseNumber(args[0], 32); err != nil {
				return err
			}
		}
		n, done := mon.bd.Wait(int(limit), stepLength, nil)
		if !done {
			return fmt.Errorf("command not complete after %d steps", n)
		}
		mon.printLine(StyleFeedback, "completed after %d steps", n)

	case cmdRead:
		if err := requireArgs(args, 0, 0); err != nil {
			return err
		}
		var data []uint8
		_, done := mon.bd.Wait(waitLimit, stepLength, func() {
			data = append(data, mon.bd.Controller().Read(fdc.AddrData))
		})
		mon.printLine(StyleInstrument, hexDump(data))
		if !done {
			return fmt.Errorf("command not complete after %d bytes", len(data))
		}

	case cmdWrite:
		if err := requireArgs(args, 1, 256); err != nil {
			return err
		}
		data := make([]uint8, 0, len(args))
		for _, a := range args {
			v, err := parseNumber(a, 8)
			if err != nil {
				return err
			}
			data = append(data, uint8(v))
		}

		// the values are written in turn. the last value is repeated until
		// the command completes
		var n int
		_, done := mon.bd.Wait(waitLimit, stepLength, func() {
			mon.bd.Controller().Write(fdc.AddrData, data[min(n, len(data)-1)])
			n++
		})
		mon.printLine(StyleFeedback, "%d bytes written", n)
		if !done {
			return fmt.Errorf("command not complete after %d bytes", n)
		}

	case cmdRegs:
		if err := requireArgs(args, 0, 0); err != nil {
			return err
		}
		mon.printLine(StyleInstrument, mon.bd.Controller().Registers().String())
		mon.printLine(StyleInstrument, mon.bd.String())

	case cmdLog:
		if err := requireArgs(args, 0, 1); err != nil {
			return err
		}
		n := uint64(10)
		var err error
		if len(args) > 0 {
			if n, err = parseNumber(args[0], 16); err != nil {
				return err
			}
		}
		s := strings.Builder{}
		logger.Tail(&s, int(n))
		if s.Len() > 0 {
			mon.printLine(StyleLog, s.String())
		}

	case cmdPrefs:
		if err := requireArgs(args, 0, 1); err != nil {
			return err
		}
		if len(args) == 1 {
			switch strings.ToUpper(args[0]) {
			case "SAVE":
				if err := mon.env.Prefs.Save(); err != nil {
					return err
				}
			case "DEFAULTS":
				mon.env.Prefs.SetDefaults()
			default:
				return fmt.Errorf("expected SAVE or DEFAULTS")
			}
		}
		mon.printLine(StyleInstrument, mon.env.Prefs.String())

	case cmdMemviz:
		if err := requireArgs(args, 1, 1); err != nil {
			return err
		}
		f, err := os.Create(args[0])
		if err != nil {
			return err
		}
		memviz.Map(f, mon.bd)
		if err := f.Close(); err != nil {
			return err
		}
		mon.printLine(StyleFeedback, "memviz written to %s", args[0])
	}

	return nil
}

func (mon *Monitor) disk(drive string) (*floppy.Disk, error) {
	n, err := parseDrive(drive)
	if err != nil {
		return nil, err
	}
	d := mon.bd.Disk(n)
	if d == nil {
		return nil, fmt.Errorf("no disk in drive %c", 'A'+n)
	}
	return d, nil
}

func hexDump(data []uint8) string {
	s := strings.Builder{}
	for i := 0; i < len(data); i += 16 {
		s.WriteString(fmt.Sprintf("%04x ", i))
		end := min(i+16, len(data))
		for _, v := range data[i:end] {
			s.WriteString(fmt.Sprintf(" %02x", v))
		}
		s.WriteString("\n")
	}
	return s.String()
}
