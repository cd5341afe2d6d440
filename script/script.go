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

package script

import (
	"fmt"
	"io"
	"strings"

	"github.com/raydac/zxpoly-sub001/curated"
	"github.com/raydac/zxpoly-sub001/diskloader"
	"github.com/raydac/zxpoly-sub001/environment"
	"github.com/raydac/zxpoly-sub001/hardware/betadisk"
	"github.com/raydac/zxpoly-sub001/hardware/betadisk/fdc"
	"github.com/raydac/zxpoly-sub001/hardware/betadisk/floppy"
	"github.com/raydac/zxpoly-sub001/logger"
	lua "github.com/yuin/gopher-lua"
)

// Sentinel errors.
const (
	ScriptError = "script: %v"
)

// default length of a step in T-states.
const stepLength = 16

// wait() and read() give up after this many steps.
const waitLimit = 1000000

// Host runs Lua scripts against a disk interface.
type Host struct {
	env *environment.Environment
	bd  *betadisk.Interface
	out io.Writer

	L *lua.LState
}

// NewHost is the preferred method of initialisation for the Host type. The
// Close() function should be called when the host is no longer required.
func NewHost(env *environment.Environment, bd *betadisk.Interface, out io.Writer) *Host {
	h := &Host{
		env: env,
		bd:  bd,
		out: out,
		L:   lua.NewState(),
	}

	for name, fn := range map[string]lua.LGFunction{
		"port_in":  h.portIn,
		"port_out": h.portOut,
		"step":     h.step,
		"wait":     h.wait,
		"read":     h.read,
		"write":    h.write,
		"rom":      h.rom,
		"insert":   h.insert,
		"blank":    h.blank,
		"eject":    h.eject,
		"save":     h.save,
		"regs":     h.regs,
		"log":      h.log,
		"print":    h.print,
	} {
		h.L.SetGlobal(name, h.L.NewFunction(fn))
	}

	return h
}

// Close the Lua state.
func (h *Host) Close() {
	h.L.Close()
}

// RunFile runs the Lua script in the named file.
func (h *Host) RunFile(filename string) error {
	if err := h.L.DoFile(filename); err != nil {
		return curated.Errorf(ScriptError, err)
	}
	return nil
}

// RunString runs the Lua source.
func (h *Host) RunString(src string) error {
	if err := h.L.DoString(src); err != nil {
		return curated.Errorf(ScriptError, err)
	}
	return nil
}

func checkDrive(L *lua.LState, n int) int {
	d := L.CheckInt(n)
	if d < 0 || d >= betadisk.NumSlots {
		L.ArgError(n, fmt.Sprintf("drive must be between 0 and %d", betadisk.NumSlots-1))
	}
	return d
}

func checkByte(L *lua.LState, n int) uint8 {
	v := L.CheckInt(n)
	if v < 0 || v > 0xff {
		L.ArgError(n, "value must be between 0 and 255")
	}
	return uint8(v)
}

func (h *Host) portIn(L *lua.LState) int {
	port := L.CheckInt(1)
	v, ok := h.bd.ReadIO(uint16(port))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(v))
	return 1
}

func (h *Host) portOut(L *lua.LState) int {
	port := L.CheckInt(1)
	v := checkByte(L, 2)
	L.Push(lua.LBool(h.bd.WriteIO(uint16(port), v)))
	return 1
}

func (h *Host) step(L *lua.LState) int {
	count := L.OptInt(1, 1)
	spent := L.OptInt64(2, stepLength)
	for range count {
		h.bd.PostStep(spent)
	}
	return 0
}

func (h *Host) wait(L *lua.LState) int {
	limit := L.OptInt(1, waitLimit)
	n, done := h.bd.Wait(limit, stepLength, nil)
	L.Push(lua.LBool(done))
	L.Push(lua.LNumber(n))
	return 2
}

func (h *Host) read(L *lua.LState) int {
	t := L.NewTable()
	_, done := h.bd.Wait(waitLimit, stepLength, func() {
		t.Append(lua.LNumber(h.bd.Controller().Read(fdc.AddrData)))
	})
	L.Push(t)
	L.Push(lua.LBool(done))
	return 2
}

func (h *Host) write(L *lua.LState) int {
	data := make([]uint8, 0, L.GetTop())
	for i := 1; i <= L.GetTop(); i++ {
		data = append(data, checkByte(L, i))
	}
	if len(data) == 0 {
		L.ArgError(1, "at least one value is required")
	}

	var n int
	_, done := h.bd.Wait(waitLimit, stepLength, func() {
		h.bd.Controller().Write(fdc.AddrData, data[min(n, len(data)-1)])
		n++
	})
	L.Push(lua.LNumber(n))
	L.Push(lua.LBool(done))
	return 2
}

func (h *Host) rom(L *lua.LState) int {
	h.bd.SetActiveROM(L.CheckBool(1))
	return 0
}

func (h *Host) insert(L *lua.LState) int {
	drive := checkDrive(L, 1)
	dl := diskloader.NewLoader(L.CheckString(2), L.OptString(3, ""))
	d, err := dl.Disk()
	if err != nil {
		L.RaiseError("%v", err)
		return 0
	}
	h.bd.InsertDisk(drive, d)
	return 0
}

func (h *Host) blank(L *lua.LState) int {
	drive := checkDrive(L, 1)
	d, err := floppy.NewBlank(L.OptInt(3, 2), L.OptInt(2, 80))
	if err != nil {
		L.RaiseError("%v", err)
		return 0
	}
	h.bd.InsertDisk(drive, d)
	return 0
}

func (h *Host) eject(L *lua.LState) int {
	h.bd.EjectDisk(checkDrive(L, 1))
	return 0
}

func (h *Host) save(L *lua.LState) int {
	drive := checkDrive(L, 1)
	d := h.bd.Disk(drive)
	if d == nil {
		L.RaiseError("no disk in drive %d", drive)
		return 0
	}
	if err := diskloader.SaveTRD(L.CheckString(2), d); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (h *Host) regs(L *lua.LState) int {
	r := h.bd.Controller().Registers()
	t := L.NewTable()
	t.RawSetString("command", lua.LNumber(r.Command))
	t.RawSetString("status", lua.LNumber(r.Status))
	t.RawSetString("track", lua.LNumber(r.Track))
	t.RawSetString("sector", lua.LNumber(r.Sector))
	t.RawSetString("data", lua.LNumber(r.DataRead))
	t.RawSetString("cylinder", lua.LNumber(r.Cylinder))
	t.RawSetString("side", lua.LNumber(r.Side))
	t.RawSetString("mfm", lua.LBool(r.MFM))
	L.Push(t)
	return 1
}

func (h *Host) log(L *lua.LState) int {
	logger.Log(h.env, "script", L.CheckString(1))
	return 0
}

func (h *Host) print(L *lua.LState) int {
	s := make([]string, 0, L.GetTop())
	for i := 1; i <= L.GetTop(); i++ {
		s = append(s, L.ToStringMeta(L.Get(i)).String())
	}
	fmt.Fprintln(h.out, strings.Join(s, "\t"))
	return 0
}
