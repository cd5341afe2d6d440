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

package fdc_test

import (
	"testing"

	"github.com/raydac/zxpoly-sub001/environment"
	"github.com/raydac/zxpoly-sub001/hardware/betadisk/fdc"
	"github.com/raydac/zxpoly-sub001/hardware/betadisk/floppy"
	"github.com/raydac/zxpoly-sub001/hardware/betadisk/rawtrack"
	"github.com/raydac/zxpoly-sub001/test"
)

// T-states between calls to Step()
const tick = 16

type harness struct {
	t    *testing.T
	env  *environment.Environment
	ctrl *fdc.Controller
	now  int64
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	env, err := environment.NewEnvironment(nil, nil)
	test.DemandSuccess(t, err)
	env.Normalise()
	env.Quiet = true
	return &harness{
		t:    t,
		env:  env,
		ctrl: fdc.NewController(env),
	}
}

func (h *harness) blank() *floppy.Disk {
	h.t.Helper()
	dsk, err := floppy.NewBlank(2, 80)
	test.DemandSuccess(h.t, err)
	h.ctrl.ActivateDisk(dsk)
	return dsk
}

func (h *harness) step() fdc.Status {
	h.now += tick
	h.ctrl.Step(h.now)
	return h.ctrl.Registers().Status
}

func (h *harness) busy() bool {
	return h.ctrl.Registers().Status&fdc.Busy != 0
}

func (h *harness) command(cmd uint8) {
	h.ctrl.Write(fdc.AddrCommand, cmd)
}

// wait steps the controller until the command completes. the number of calls
// to Step() is returned.
func (h *harness) wait(limit int) int {
	h.t.Helper()
	var n int
	for h.busy() {
		if n >= limit {
			h.t.Fatalf("command did not complete after %d steps", limit)
		}
		h.step()
		n++
	}
	return n
}

// transfer steps the controller until the command completes, reading a byte
// from the data register each time DRQ is raised.
func (h *harness) transfer() []uint8 {
	h.t.Helper()
	var b []uint8
	for n := 0; h.busy(); n++ {
		if n > 1000000 {
			h.t.Fatalf("command did not complete")
		}
		if h.step()&fdc.DRQ != 0 {
			b = append(b, h.ctrl.Read(fdc.AddrData))
		}
	}
	return b
}

// supply steps the controller until the command completes, writing a byte to
// the data register each time DRQ is raised.
func (h *harness) supply(next func() uint8) int {
	h.t.Helper()
	var written int
	for n := 0; h.busy(); n++ {
		if n > 1000000 {
			h.t.Fatalf("command did not complete")
		}
		if h.step()&fdc.DRQ != 0 {
			h.ctrl.Write(fdc.AddrData, next())
			written++
		}
	}
	return written
}

func (h *harness) seek(track uint8) {
	h.t.Helper()
	h.ctrl.Write(fdc.AddrData, track)
	h.command(0x10)
	h.wait(10000000)
}

func TestRestore(t *testing.T) {
	h := newHarness(t)
	h.blank()

	h.ctrl.SetCylinder(200)
	h.ctrl.Write(fdc.AddrTrack, 17)
	h.command(0x08)
	steps := h.wait(256)
	test.ExpectSuccess(t, steps <= 256)

	test.ExpectEquality(t, h.ctrl.Cylinder(), 0)
	test.ExpectEquality(t, h.ctrl.Read(fdc.AddrTrack), uint8(0))
	st := fdc.Status(h.ctrl.Read(fdc.AddrCommand))
	test.ExpectSuccess(t, st&fdc.Track00 != 0)
	test.ExpectSuccess(t, st&fdc.HeadLoaded != 0)
	test.ExpectSuccess(t, st&fdc.SeekError == 0)
	test.ExpectEquality(t, h.ctrl.Read(fdc.AddrSector), uint8(1))
}

func TestRestoreNoDisk(t *testing.T) {
	h := newHarness(t)
	h.command(0x00)
	h.wait(1)
	st := fdc.Status(h.ctrl.Read(fdc.AddrCommand))
	test.ExpectSuccess(t, st&fdc.NotReady != 0)

	// the index bit is always set when there is no disk
	test.ExpectSuccess(t, st&fdc.Index != 0)
	st = fdc.Status(h.ctrl.Read(fdc.AddrCommand))
	test.ExpectSuccess(t, st&fdc.Index != 0)
}

func TestSeek(t *testing.T) {
	h := newHarness(t)
	h.blank()

	h.seek(5)
	test.ExpectEquality(t, h.ctrl.Cylinder(), 5)
	test.ExpectEquality(t, h.ctrl.Read(fdc.AddrTrack), uint8(5))
	st := fdc.Status(h.ctrl.Read(fdc.AddrCommand))
	test.ExpectSuccess(t, st&fdc.Track00 == 0)
	test.ExpectSuccess(t, st&fdc.SeekError == 0)

	h.seek(2)
	test.ExpectEquality(t, h.ctrl.Cylinder(), 2)
	test.ExpectEquality(t, h.ctrl.Read(fdc.AddrTrack), uint8(2))
}

func TestSeekTiming(t *testing.T) {
	h := newHarness(t)
	h.blank()

	// one track of head movement takes 12ms at 3.5MHz
	h.ctrl.Write(fdc.AddrData, 1)
	h.command(0x10)
	steps := h.wait(10000000)
	test.ExpectSuccess(t, int64(steps)*tick >= h.env.Prefs.HeadStep())
}

func TestStep(t *testing.T) {
	h := newHarness(t)
	h.blank()
	h.seek(5)

	// step in with update
	h.command(0x50)
	h.wait(1000)
	test.ExpectEquality(t, h.ctrl.Cylinder(), 6)
	test.ExpectEquality(t, h.ctrl.Read(fdc.AddrTrack), uint8(6))

	// step out without update
	h.command(0x60)
	h.wait(1000)
	test.ExpectEquality(t, h.ctrl.Cylinder(), 5)
	test.ExpectEquality(t, h.ctrl.Read(fdc.AddrTrack), uint8(6))

	// step repeats the direction of the previous step
	h.command(0x30)
	h.wait(1000)
	test.ExpectEquality(t, h.ctrl.Cylinder(), 4)
	test.ExpectEquality(t, h.ctrl.Read(fdc.AddrTrack), uint8(5))
}

func TestStepBeyondDisk(t *testing.T) {
	h := newHarness(t)
	h.blank()
	h.ctrl.SetCylinder(79)

	h.command(0x40)
	h.wait(1000)
	test.ExpectEquality(t, h.ctrl.Cylinder(), 80)
	st := fdc.Status(h.ctrl.Read(fdc.AddrCommand))
	test.ExpectSuccess(t, st&fdc.SeekError != 0)
}

func TestReadSectorNoDisk(t *testing.T) {
	h := newHarness(t)
	h.ctrl.Write(fdc.AddrSector, 1)
	h.command(0x80)

	for range 100 {
		st := h.step()
		test.ExpectSuccess(t, st&fdc.DRQ == 0)
	}
	st := h.ctrl.Registers().Status
	test.ExpectSuccess(t, st&fdc.NotReady != 0)
	test.ExpectSuccess(t, st&fdc.Busy == 0)
}

func TestReadSector(t *testing.T) {
	h := newHarness(t)
	dsk := h.blank()

	s, ok := dsk.FindSector(0, 3, 5)
	test.DemandSuccess(t, ok)
	for i := range s.Size() {
		test.DemandSuccess(t, s.Poke(i, uint8(i^0xa5)))
	}

	h.seek(3)
	h.ctrl.Write(fdc.AddrSector, 5)
	h.command(0x80)
	b := h.transfer()

	test.DemandEquality(t, len(b), 256)
	for i, v := range b {
		test.ExpectEquality(t, v, uint8(i^0xa5))
	}

	st := h.ctrl.Registers().Status
	test.ExpectSuccess(t, st&fdc.LostData == 0)
	test.ExpectSuccess(t, st&fdc.RecordNotFound == 0)
	test.ExpectSuccess(t, st&fdc.CRCError == 0)
	test.ExpectEquality(t, h.ctrl.Read(fdc.AddrSector), uint8(6))
}

func TestReadSectorMultiple(t *testing.T) {
	h := newHarness(t)
	h.blank()

	h.ctrl.Write(fdc.AddrSector, 14)
	h.command(0x90)
	b := h.transfer()

	// sectors 14 to 16. the last sector of the track ends the command
	test.ExpectEquality(t, len(b), 3*256)
	test.ExpectEquality(t, h.ctrl.Read(fdc.AddrSector), uint8(17))
}

func TestReadSectorTrackRegister(t *testing.T) {
	h := newHarness(t)
	dsk := h.blank()

	s, ok := dsk.FindSector(0, 5, 1)
	test.DemandSuccess(t, ok)
	test.DemandSuccess(t, s.Poke(0, 0xaa))

	// the head is not moved. the track register names the track
	h.ctrl.Write(fdc.AddrTrack, 5)
	h.ctrl.Write(fdc.AddrSector, 1)
	h.command(0x80)
	b := h.transfer()
	test.DemandEquality(t, len(b), 256)
	test.ExpectEquality(t, b[0], uint8(0xaa))
	test.ExpectEquality(t, h.ctrl.Cylinder(), 0)
	test.ExpectSuccess(t, h.ctrl.Registers().Status&fdc.RecordNotFound == 0)

	// there is no track 90 on the disk
	h.ctrl.Write(fdc.AddrTrack, 90)
	h.ctrl.Write(fdc.AddrSector, 1)
	h.command(0x80)
	test.ExpectEquality(t, len(h.transfer()), 0)
	test.ExpectSuccess(t, h.ctrl.Registers().Status&fdc.RecordNotFound != 0)
}

func TestReadSectorNotFound(t *testing.T) {
	h := newHarness(t)
	h.blank()

	h.ctrl.Write(fdc.AddrSector, 17)
	h.command(0x80)
	b := h.transfer()
	test.ExpectEquality(t, len(b), 0)
	test.ExpectSuccess(t, h.ctrl.Registers().Status&fdc.RecordNotFound != 0)
}

func TestSideCheck(t *testing.T) {
	h := newHarness(t)
	h.blank()

	// side 1 is expected but side 0 is selected
	h.ctrl.Write(fdc.AddrSector, 1)
	h.command(0x80 | 0x02 | 0x08)
	h.transfer()
	test.ExpectSuccess(t, h.ctrl.Registers().Status&fdc.RecordNotFound != 0)

	h.ctrl.SetSide(1)
	h.command(0x80 | 0x02 | 0x08)
	b := h.transfer()
	test.ExpectEquality(t, len(b), 256)
	test.ExpectSuccess(t, h.ctrl.Registers().Status&fdc.RecordNotFound == 0)
}

func TestLostData(t *testing.T) {
	h := newHarness(t)
	h.blank()

	h.ctrl.Write(fdc.AddrSector, 1)
	h.command(0x80)
	for n := 0; h.step()&fdc.DRQ == 0; n++ {
		if n > 1000 {
			t.Fatalf("no data request")
		}
	}

	// the data register is never read
	h.wait(1000)
	st := h.ctrl.Registers().Status
	test.ExpectSuccess(t, st&fdc.LostData != 0)
	test.ExpectSuccess(t, st&fdc.Busy == 0)
}

func TestWriteSector(t *testing.T) {
	h := newHarness(t)
	dsk := h.blank()

	h.ctrl.Write(fdc.AddrSector, 3)
	h.command(0xa0)

	var v uint8
	n := h.supply(func() uint8 {
		v++
		return v
	})
	test.ExpectEquality(t, n, 256)

	s, _ := dsk.FindSector(0, 0, 3)
	for i := range s.Size() {
		b, _ := s.Peek(i)
		test.ExpectEquality(t, b, uint8(i+1))
	}
	test.ExpectSuccess(t, s.CRCOk())
	test.ExpectSuccess(t, dsk.IsDirty())

	st := h.ctrl.Registers().Status
	test.ExpectSuccess(t, st&fdc.LostData == 0)
	test.ExpectSuccess(t, st&fdc.WriteFault == 0)
	test.ExpectEquality(t, h.ctrl.Read(fdc.AddrSector), uint8(4))
}

func TestWriteSectorMultiple(t *testing.T) {
	h := newHarness(t)
	dsk := h.blank()

	h.ctrl.Write(fdc.AddrSector, 15)
	h.command(0xb0)
	n := h.supply(func() uint8 { return 0x77 })
	test.ExpectEquality(t, n, 2*256)

	for _, id := range []int{15, 16} {
		s, _ := dsk.FindSector(0, 0, id)
		b, _ := s.Peek(s.Size() - 1)
		test.ExpectEquality(t, b, uint8(0x77))
	}
}

func TestWriteProtected(t *testing.T) {
	h := newHarness(t)
	dsk := h.blank()
	before := append([]byte{}, dsk.Data()...)

	dsk.SetWriteProtect(true)
	h.ctrl.Write(fdc.AddrSector, 1)
	h.command(0xa0)

	n := h.supply(func() uint8 { return 0xff })
	test.ExpectEquality(t, n, 0)

	st := h.ctrl.Registers().Status
	test.ExpectSuccess(t, st&fdc.WriteProtect != 0)
	test.ExpectSuccess(t, st&fdc.Busy == 0)
	test.ExpectEquality(t, string(dsk.Data()), string(before))
	test.ExpectFailure(t, dsk.IsDirty())
}

func TestReadAddress(t *testing.T) {
	h := newHarness(t)
	dsk := h.blank()
	h.seek(2)

	h.command(0xc0)
	a := h.transfer()
	test.DemandEquality(t, len(a), 6)

	h.command(0xc0)
	b := h.transfer()
	test.DemandEquality(t, len(b), 6)

	test.ExpectEquality(t, a[0], uint8(2))
	test.ExpectEquality(t, a[1], uint8(0))
	test.ExpectEquality(t, a[3], uint8(1))
	test.ExpectEquality(t, int(b[2]), int(a[2])%16+1)

	s, _ := dsk.FindSector(0, 2, int(b[2]))
	test.ExpectEquality(t, b[4], uint8(s.CRC()>>8))
	test.ExpectEquality(t, b[5], uint8(s.CRC()))

	// the track field is copied to the sector register
	test.ExpectEquality(t, h.ctrl.Read(fdc.AddrSector), uint8(2))
}

func TestReadTrack(t *testing.T) {
	h := newHarness(t)
	h.blank()

	h.ctrl.SetMFM(true)
	h.command(0xe0)
	b := h.transfer()
	test.ExpectEquality(t, len(b), 146+16*372+598)

	h.ctrl.SetMFM(false)
	h.command(0xe0)
	b = h.transfer()
	test.ExpectEquality(t, len(b), 107+16*316+247)
}

func TestWriteTrack(t *testing.T) {
	h := newHarness(t)
	dsk := h.blank()
	h.ctrl.SetMFM(true)

	stream := []uint8{0x4e, 0x00, 0xf5, rawtrack.IDMark, 0, 0, 7, 1, 0xf7, 0x4e, rawtrack.DataMark}
	for range 256 {
		stream = append(stream, 0xc3)
	}

	h.command(0xf0)
	var i int
	n := h.supply(func() uint8 {
		defer func() { i++ }()
		if i < len(stream) {
			return stream[i]
		}
		return 0x4e
	})
	test.ExpectEquality(t, n, 6450)

	s, _ := dsk.FindSector(0, 0, 7)
	v, _ := s.Peek(128)
	test.ExpectEquality(t, v, uint8(0xc3))
	test.ExpectSuccess(t, h.ctrl.Registers().Status&fdc.WriteFault == 0)
}

func TestWriteTrackDiskChanged(t *testing.T) {
	h := newHarness(t)
	a := h.blank()
	b, err := floppy.NewBlank(2, 80)
	test.DemandSuccess(t, err)
	h.ctrl.SetMFM(true)

	stream := []uint8{0x4e, 0x4e, 0x4e, rawtrack.IDMark, 0, 0, 1, 1, 0xf7, 0x4e, rawtrack.DataMark}
	for range 256 {
		stream = append(stream, 0x77)
	}

	h.command(0xf0)
	var i int
	n := h.supply(func() uint8 {
		defer func() { i++ }()
		if i == 3 {
			h.ctrl.ActivateDisk(b)
		}
		if i < len(stream) {
			return stream[i]
		}
		return 0x4e
	})

	test.ExpectInequality(t, n, 6450)
	test.ExpectSuccess(t, h.ctrl.Registers().Status&fdc.WriteFault != 0)
	test.ExpectFailure(t, a.IsDirty())
	test.ExpectFailure(t, b.IsDirty())

	s, _ := a.FindSector(0, 0, 1)
	v, _ := s.Peek(0)
	test.ExpectInequality(t, v, uint8(0x77))
}

func TestReadTrackDiskChanged(t *testing.T) {
	h := newHarness(t)
	h.blank()
	b, err := floppy.NewBlank(2, 80)
	test.DemandSuccess(t, err)
	h.ctrl.SetMFM(true)

	h.command(0xe0)
	var n int
	for i := 0; h.busy(); i++ {
		if i > 1000000 {
			t.Fatalf("command did not complete")
		}
		if h.step()&fdc.DRQ != 0 {
			h.ctrl.Read(fdc.AddrData)
			n++
			if n == 10 {
				h.ctrl.ActivateDisk(b)
			}
		}
	}

	test.ExpectEquality(t, n, 10)
	test.ExpectSuccess(t, h.ctrl.Registers().Status&fdc.RecordNotFound != 0)
}

func TestForceInterrupt(t *testing.T) {
	h := newHarness(t)
	h.blank()

	h.ctrl.Write(fdc.AddrSector, 1)
	h.command(0x80)
	h.step()
	test.ExpectSuccess(t, h.busy())

	// other commands are ignored while busy
	h.command(0x00)
	test.ExpectEquality(t, h.ctrl.Registers().Command, uint8(0x80))

	h.command(0xd0)
	h.step()
	test.ExpectFailure(t, h.busy())
	st := fdc.Status(h.ctrl.Read(fdc.AddrCommand))
	test.ExpectSuccess(t, st&fdc.Track00 != 0)
}

func TestRegistersWhileBusy(t *testing.T) {
	h := newHarness(t)
	h.blank()

	h.ctrl.Write(fdc.AddrSector, 1)
	h.command(0x80)
	h.ctrl.Write(fdc.AddrSector, 9)
	h.ctrl.Write(fdc.AddrTrack, 9)
	test.ExpectEquality(t, h.ctrl.Read(fdc.AddrSector), uint8(1))
	test.ExpectEquality(t, h.ctrl.Read(fdc.AddrTrack), uint8(0))
}

func TestMotor(t *testing.T) {
	h := newHarness(t)
	h.blank()
	test.ExpectFailure(t, h.ctrl.IsMotorOn())

	h.command(0x00)
	h.wait(1000)
	test.ExpectSuccess(t, h.ctrl.IsMotorOn())

	h.now += h.env.Prefs.MotorOn()
	h.ctrl.Step(h.now)
	test.ExpectFailure(t, h.ctrl.IsMotorOn())
}

func TestResetIn(t *testing.T) {
	h := newHarness(t)
	h.blank()
	h.seek(4)

	h.ctrl.SetResetIn(true)
	test.ExpectEquality(t, h.ctrl.Read(fdc.AddrTrack), uint8(0))
	test.ExpectFailure(t, h.busy())

	// the head does not move on reset
	test.ExpectEquality(t, h.ctrl.Cylinder(), 4)
}

func TestCommandFamily(t *testing.T) {
	test.ExpectEquality(t, fdc.CommandFamily(0x00), fdc.TypeI)
	test.ExpectEquality(t, fdc.CommandFamily(0x7f), fdc.TypeI)
	test.ExpectEquality(t, fdc.CommandFamily(0x80), fdc.TypeII)
	test.ExpectEquality(t, fdc.CommandFamily(0xb3), fdc.TypeII)
	test.ExpectEquality(t, fdc.CommandFamily(0xc0), fdc.TypeIII)
	test.ExpectEquality(t, fdc.CommandFamily(0xe4), fdc.TypeIII)
	test.ExpectEquality(t, fdc.CommandFamily(0xf0), fdc.TypeIII)
	test.ExpectEquality(t, fdc.CommandFamily(0xd0), fdc.TypeIV)
}
