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

package fdc

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/raydac/zxpoly-sub001/environment"
	"github.com/raydac/zxpoly-sub001/hardware/betadisk/floppy"
	"github.com/raydac/zxpoly-sub001/hardware/betadisk/rawtrack"
	"github.com/raydac/zxpoly-sub001/hardware/clocks"
	"github.com/raydac/zxpoly-sub001/logger"
)

// Register addresses of the controller.
const (
	AddrCommand = 0
	AddrTrack   = 1
	AddrSector  = 2
	AddrData    = 3
)

// the highest cylinder the head can reach.
const maxCylinder = 255

// RESTORE gives up after this many steps.
const restoreLimit = 255

// value of lastBusy when the controller has not been busy since reset.
const neverBusy = math.MinInt64 / 2

// window holds the timing deadlines of a command in T-states. positioning is
// negative when the positioning delay has passed.
type window struct {
	positioning int64
	timeout     int64
}

// Controller is the floppy disk controller.
type Controller struct {
	env *environment.Environment

	disk atomic.Pointer[floppy.Disk]

	cmd    uint8
	status Status
	track  uint8
	sector uint8
	dataRd uint8
	dataWr uint8

	// head position of the selected drive. separate from the track register
	cylinder int

	// side selected by the system register
	side int

	// track format for READ TRACK and WRITE TRACK
	mfm bool

	// direction of the most recent step. either +1 or -1
	direction int

	resetIn bool
	index   bool

	// first call to Step() for the current command
	first bool

	// the host has not yet transferred the byte in the data register
	waitRd bool
	waitWr bool

	// byte counter for the current command
	counter int

	win window

	// the most recently accessed sector. only valid if it belongs to the
	// active disk
	cursor floppy.Sector

	// ID field for READ ADDRESS
	addr [6]uint8

	// raw track for READ TRACK and WRITE TRACK
	raw *rawtrack.Track

	// the T-state count of the most recent call to Step()
	now int64

	// copy of now and the T-state count when the controller was last busy.
	// read by IsMotorOn() from any goroutine
	stepped  atomic.Int64
	lastBusy atomic.Int64
}

// NewController is the preferred method of initialisation for the
// Controller type.
func NewController(env *environment.Environment) *Controller {
	ctrl := &Controller{
		env:       env,
		direction: 1,
	}
	env.Random.AttachClock(ctrl)
	ctrl.Reset()
	return ctrl
}

func (ctrl *Controller) String() string {
	return fmt.Sprintf("cmd=%02x st=%s trk=%d sec=%d data=%02x/%02x cyl=%d side=%d",
		ctrl.cmd, ctrl.status, ctrl.track, ctrl.sector, ctrl.dataRd, ctrl.dataWr, ctrl.cylinder, ctrl.side)
}

// Reset the controller. The head position is not changed.
func (ctrl *Controller) Reset() {
	ctrl.cmd = 0
	ctrl.status = 0
	ctrl.track = 0
	ctrl.sector = 0
	ctrl.dataRd = 0
	ctrl.dataWr = 0
	ctrl.waitRd = false
	ctrl.waitWr = false
	ctrl.first = false
	ctrl.counter = 0
	ctrl.raw = nil
	ctrl.lastBusy.Store(neverBusy)
}

// Cycles implements the random.Clock interface.
func (ctrl *Controller) Cycles() int64 {
	return ctrl.now
}

// SetResetIn changes the state of the reset line. The controller is reset
// when the line is raised.
func (ctrl *Controller) SetResetIn(signal bool) {
	if signal && !ctrl.resetIn {
		logger.Log(ctrl.env, "fdc", "reset")
		ctrl.Reset()
	}
	ctrl.resetIn = signal
}

// SetSide selects the side of the disk.
func (ctrl *Controller) SetSide(side int) {
	ctrl.side = side & 0x01
}

// Side returns the selected side of the disk.
func (ctrl *Controller) Side() int {
	return ctrl.side
}

// SetMFM selects the track format of READ TRACK and WRITE TRACK.
func (ctrl *Controller) SetMFM(mfm bool) {
	ctrl.mfm = mfm
}

// Cylinder returns the head position of the drive.
func (ctrl *Controller) Cylinder() int {
	return ctrl.cylinder
}

// SetCylinder moves the head without stepping. Used when another drive is
// selected, each drive having its own head.
func (ctrl *Controller) SetCylinder(cyl int) {
	ctrl.cylinder = min(max(cyl, 0), maxCylinder)
}

// ActivateDisk changes the disk in the selected drive. The disk can be nil.
// Safe to call from any goroutine.
func (ctrl *Controller) ActivateDisk(dsk *floppy.Disk) {
	ctrl.disk.Store(dsk)
}

// Disk returns the disk in the selected drive.
func (ctrl *Controller) Disk() *floppy.Disk {
	return ctrl.disk.Load()
}

// IsMotorOn returns true if the controller has been busy recently. Safe to
// call from any goroutine.
func (ctrl *Controller) IsMotorOn() bool {
	return ctrl.stepped.Load()-ctrl.lastBusy.Load() < ctrl.env.Prefs.MotorOn()
}

// Registers is a snapshot of the controller state.
type Registers struct {
	Command   uint8
	Status    Status
	Track     uint8
	Sector    uint8
	DataRead  uint8
	DataWrite uint8

	Cylinder int
	Side     int
	MFM      bool
}

func (r Registers) String() string {
	return fmt.Sprintf("cmd=%02x st=%s trk=%d sec=%d data=%02x/%02x cyl=%d side=%d mfm=%v",
		r.Command, r.Status, r.Track, r.Sector, r.DataRead, r.DataWrite, r.Cylinder, r.Side, r.MFM)
}

// Registers returns a snapshot of the controller. Reading the snapshot has no
// side effects, unlike reading the registers with Read().
func (ctrl *Controller) Registers() Registers {
	return Registers{
		Command:   ctrl.cmd,
		Status:    ctrl.status,
		Track:     ctrl.track,
		Sector:    ctrl.sector,
		DataRead:  ctrl.dataRd,
		DataWrite: ctrl.dataWr,
		Cylinder:  ctrl.cylinder,
		Side:      ctrl.side,
		MFM:       ctrl.mfm,
	}
}

// Read a controller register.
func (ctrl *Controller) Read(addr uint8) uint8 {
	switch addr & 0x03 {
	case AddrCommand:
		ctrl.index = !ctrl.index
		switch CommandFamily(ctrl.cmd) {
		case TypeI, TypeIV:
			st := ctrl.status.ForType1()
			st.SetTrack00(ctrl.cylinder == 0)
			st.SetIndex(ctrl.disk.Load() == nil || ctrl.index)
		}
		return uint8(ctrl.status)
	case AddrTrack:
		return ctrl.track
	case AddrSector:
		return ctrl.sector
	case AddrData:
		if ctrl.waitRd {
			ctrl.waitRd = false
			ctrl.status.ForType2And3().ClearDRQ()
		}
		return ctrl.dataRd
	}
	panic("fdc: impossible register address")
}

// Write to a controller register.
func (ctrl *Controller) Write(addr uint8, v uint8) {
	switch addr & 0x03 {
	case AddrCommand:
		if ctrl.status&Busy != 0 {
			if v>>4 != cmdForceInterrupt {
				return
			}
		} else {
			switch CommandFamily(v) {
			case TypeII, TypeIII:
				ctrl.resetStatus(false)
			}
		}
		ctrl.cmd = v
		ctrl.first = true
		ctrl.waitRd = false
		ctrl.waitWr = false
		ctrl.status |= Busy
		ctrl.lastBusy.Store(ctrl.now)
		logger.Logf(ctrl.env, "fdc", "%s (%08b)", ctrl.commandText(v), v)
	case AddrTrack:
		if ctrl.status&Busy == 0 {
			ctrl.track = v
		}
	case AddrSector:
		if ctrl.status&Busy == 0 {
			ctrl.sector = v
		}
	case AddrData:
		if ctrl.waitWr {
			ctrl.waitWr = false
			ctrl.status.ForType2And3().ClearDRQ()
		}
		ctrl.dataWr = v
	}
}

// Step advances the current command. The argument is the T-state count of
// the host CPU, which must never decrease.
func (ctrl *Controller) Step(tstates int64) {
	ctrl.now = tstates
	ctrl.stepped.Store(tstates)

	dsk := ctrl.disk.Load()
	ctrl.status.set(NotReady, dsk == nil)

	if ctrl.status&Busy == 0 {
		return
	}

	first := ctrl.first
	ctrl.first = false

	switch ctrl.cmd >> 4 {
	case cmdRestore:
		ctrl.restore(dsk, first)
	case cmdSeek:
		ctrl.seek(dsk, first)
	case cmdStep, cmdStepU:
		ctrl.step(dsk, first)
	case cmdStepIn, cmdStepInU:
		ctrl.direction = 1
		ctrl.step(dsk, first)
	case cmdStepOut, cmdStepOutU:
		ctrl.direction = -1
		ctrl.step(dsk, first)
	case cmdReadSector, cmdReadSectorM:
		ctrl.readSector(dsk, first)
	case cmdWriteSector, cmdWriteSectorM:
		ctrl.writeSector(dsk, first)
	case cmdReadAddress:
		ctrl.readAddress(dsk, first)
	case cmdForceInterrupt:
		ctrl.forceInterrupt(dsk)
	case cmdReadTrack:
		ctrl.readTrack(dsk, first)
	case cmdWriteTrack:
		ctrl.writeTrack(dsk, first)
	}

	if ctrl.status&Busy != 0 {
		ctrl.lastBusy.Store(tstates)
	}
}

// resetStatus clears the status register. The lost data bit is kept if
// keepLost is true.
func (ctrl *Controller) resetStatus(keepLost bool) {
	if keepLost {
		ctrl.status &= LostData
	} else {
		ctrl.status = 0
	}
}

func (ctrl *Controller) resetDataRegisters() {
	ctrl.dataRd = 0
	ctrl.dataWr = 0
	ctrl.waitRd = false
	ctrl.waitWr = false
}

func (ctrl *Controller) provideData(v uint8) {
	ctrl.dataRd = v
	ctrl.waitRd = true
}

// current returns the sector under the head. If the cursor does not belong
// to the disk it is resolved again from the head position.
func (ctrl *Controller) current(dsk *floppy.Disk) (floppy.Sector, bool) {
	if ctrl.cursor.IsValid() && ctrl.cursor.Disk() == dsk {
		return ctrl.cursor, true
	}
	s, ok := dsk.FindFirstSector(ctrl.side, ctrl.cylinder)
	ctrl.cursor = s
	return s, ok
}

// trackNumber is the track searched by Type II and Type III commands. It is
// the track register and not the position of the head.
func (ctrl *Controller) trackNumber() int {
	return int(ctrl.track)
}

// rnd returns the source of randomness used to choose the sector under the
// head after a seek. Returns nil if the random seek preference is off.
func (ctrl *Controller) rnd() floppy.Rand {
	if ctrl.env.Prefs.RandomSeek.Get().(bool) {
		return ctrl.env.Random
	}
	return nil
}

func (ctrl *Controller) headStep() int64 {
	return ctrl.env.Prefs.HeadStep()
}

// timing windows that do not depend on CPU frequency.
const (
	bufferValid       = clocks.BufferValid
	sectorPositioning = clocks.SectorPositioning
)
