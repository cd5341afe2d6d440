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

package monitor_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/raydac/zxpoly-sub001/curated"
	"github.com/raydac/zxpoly-sub001/environment"
	"github.com/raydac/zxpoly-sub001/hardware/betadisk"
	"github.com/raydac/zxpoly-sub001/monitor"
	"github.com/raydac/zxpoly-sub001/test"
)

func newMonitor(t *testing.T) (*monitor.Monitor, *betadisk.Interface) {
	t.Helper()
	env, err := environment.NewEnvironment(nil, nil)
	test.DemandSuccess(t, err)
	env.Normalise()
	env.Quiet = true
	bd := betadisk.NewInterface(env)
	return monitor.NewMonitor(env, bd), bd
}

func run(t *testing.T, mon *monitor.Monitor, script string) string {
	t.Helper()
	out := &test.CompareWriter{}
	err := mon.Run(monitor.NewPlainTerminal(strings.NewReader(script), out))
	test.DemandSuccess(t, err)
	return out.String()
}

func TestReadSector(t *testing.T) {
	mon, bd := newMonitor(t)

	out := run(t, mon, `ROM ON
BLANK A
OUT $FF $3C
OUT 0x5f 9
OUT 0x1f 0x80
READ
REGS
`)

	test.ExpectSuccess(t, bd.Disk(0) != nil)
	test.ExpectSuccess(t, strings.Contains(out, "0000  00 00 00 00"))
	test.ExpectSuccess(t, strings.Contains(out, "00f0 "))
	test.ExpectSuccess(t, strings.Contains(out, "sec=10"))
}

func TestQuit(t *testing.T) {
	mon, bd := newMonitor(t)
	run(t, mon, "BLANK A\nQUIT\nBLANK B\n")
	test.ExpectSuccess(t, bd.Disk(0) != nil)
	test.ExpectSuccess(t, bd.Disk(1) == nil)
}

func TestErrors(t *testing.T) {
	mon, _ := newMonitor(t)

	err := mon.ParseCommand("FOO")
	test.ExpectSuccess(t, curated.Is(err, monitor.UnknownCommand))

	err = mon.ParseCommand("EJECT")
	test.ExpectSuccess(t, curated.Is(err, monitor.BadArguments))

	err = mon.ParseCommand("EJECT E")
	test.ExpectSuccess(t, curated.Is(err, monitor.BadArguments))

	// ports are not decoded when the ROM is inactive
	err = mon.ParseCommand("IN 0x1f")
	test.ExpectSuccess(t, curated.Is(err, monitor.BadArguments))

	test.ExpectSuccess(t, mon.ParseCommand(""))
	test.ExpectSuccess(t, mon.ParseCommand("   "))

	out := run(t, mon, "FOO\n")
	test.ExpectSuccess(t, strings.Contains(out, "* monitor: unknown command (FOO)"))
}

func TestHelp(t *testing.T) {
	mon, _ := newMonitor(t)
	out := run(t, mon, "HELP\nhelp insert\n")
	test.ExpectSuccess(t, strings.Contains(out, "MEMVIZ"))
	test.ExpectSuccess(t, strings.Contains(out, "Usage: INSERT <drive> <file> [format]"))
}

func TestInsertSave(t *testing.T) {
	mon, bd := newMonitor(t)
	dir := t.TempDir()
	fn := filepath.Join(dir, "disk.trd")

	out := run(t, mon, strings.Join([]string{
		"BLANK B 40 1",
		"SAVE B " + fn,
		"EJECT B",
		"INSERT C " + fn,
		"DISKS",
		"CAT C",
	}, "\n"))

	_, err := os.Stat(fn)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, bd.Disk(1) == nil)
	test.DemandSuccess(t, bd.Disk(2) != nil)
	test.ExpectSuccess(t, bd.Disk(2).IsTRDOS())
	test.ExpectSuccess(t, strings.Contains(out, " C: disk "))
	test.ExpectSuccess(t, strings.Contains(out, "free: 624"))
}

func TestStep(t *testing.T) {
	mon, bd := newMonitor(t)
	test.ExpectSuccess(t, mon.ParseCommand("BLANK A"))
	test.ExpectSuccess(t, mon.ParseCommand("ROM ON"))
	test.ExpectSuccess(t, mon.ParseCommand("OUT 0xff 0x3c"))
	test.ExpectSuccess(t, mon.ParseCommand("OUT 0x7f 3"))
	test.ExpectSuccess(t, mon.ParseCommand("OUT 0x1f 0x10"))
	test.ExpectSuccess(t, mon.ParseCommand("STEP 100000 16"))
	test.ExpectEquality(t, bd.Controller().Cylinder(), 3)
}

func TestWriteSector(t *testing.T) {
	mon, bd := newMonitor(t)
	out := run(t, mon, `BLANK A
ROM ON
OUT 0xff 0x3c
OUT 0x5f 1
OUT 0x1f 0xa0
WRITE 1 2 3
`)
	test.ExpectSuccess(t, strings.Contains(out, "256 bytes written"))

	s, ok := bd.Disk(0).FindSector(0, 0, 1)
	test.DemandSuccess(t, ok)
	for i, e := range map[int]uint8{0: 1, 1: 2, 2: 3, 255: 3} {
		v, _ := s.Peek(i)
		test.ExpectEquality(t, v, e, i)
	}
}
