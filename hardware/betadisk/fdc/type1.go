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
	"github.com/raydac/zxpoly-sub001/hardware/betadisk/floppy"
	"github.com/raydac/zxpoly-sub001/logger"
)

// moveHead steps the head by one cylinder in the direction.
func (ctrl *Controller) moveHead(direction int) {
	ctrl.cylinder = min(max(ctrl.cylinder+direction, 0), maxCylinder)
}

// type1Flags sets the status bits common to all Type I commands.
func (ctrl *Controller) type1Flags(st Type1Status, dsk *floppy.Disk) {
	if ctrl.cmd&flagHeadLoad != 0 {
		st.SetHeadLoaded()
	}
	if dsk.IsWriteProtected() {
		st.SetWriteProtect()
	}
}

// settle resolves the sector under the head after a head movement.
func (ctrl *Controller) settle(st Type1Status, dsk *floppy.Disk, random bool) bool {
	var s floppy.Sector
	var ok bool
	if random {
		s, ok = dsk.FindRandomSector(ctrl.side, ctrl.cylinder, ctrl.rnd())
	} else {
		s, ok = dsk.FindFirstSector(ctrl.side, ctrl.cylinder)
	}
	ctrl.cursor = s
	if !ok {
		st.SetSeekError()
		return false
	}
	if !s.CRCOk() {
		st.SetCRCError()
	}
	return true
}

func (ctrl *Controller) restore(dsk *floppy.Disk, first bool) {
	ctrl.resetStatus(false)
	st := ctrl.status.ForType1()

	if first {
		ctrl.counter = 0
	}

	if dsk == nil {
		st.SetNotReady()
		return
	}

	ctrl.type1Flags(st, dsk)

	if ctrl.cylinder > 0 {
		if ctrl.counter >= restoreLimit {
			st.SetSeekError()
			return
		}
		ctrl.counter++
		ctrl.moveHead(-1)
		if ctrl.track > 0 {
			ctrl.track--
		}
		if ctrl.settle(st, dsk, false) {
			ctrl.sector = 1
		}
		st.SetBusy()
		return
	}

	ctrl.track = 0
	if ctrl.settle(st, dsk, false) {
		ctrl.sector = 1
	}
	st.SetTrack00(true)
}

func (ctrl *Controller) seek(dsk *floppy.Disk, first bool) {
	ctrl.resetStatus(false)
	st := ctrl.status.ForType1()

	if dsk == nil {
		st.SetNotReady()
		return
	}

	if first {
		ctrl.win.timeout = ctrl.now + ctrl.headStep()
	}

	ctrl.type1Flags(st, dsk)

	if ctrl.track != ctrl.dataWr && ctrl.now >= ctrl.win.timeout {
		if ctrl.track < ctrl.dataWr {
			ctrl.track++
			ctrl.moveHead(1)
			ctrl.direction = 1
		} else {
			ctrl.track--
			ctrl.moveHead(-1)
			ctrl.direction = -1
		}
		if _, ok := dsk.FindFirstSector(ctrl.side, ctrl.cylinder); ok {
			ctrl.sector = 1
		}
		logger.Logf(ctrl.env, "fdc", "head moved to track %d, target track is %d", ctrl.track, ctrl.dataWr)
		ctrl.win.timeout = ctrl.now + ctrl.headStep()
	}

	completed := ctrl.track == ctrl.dataWr
	if !ctrl.settle(st, dsk, true) {
		completed = true
	}

	if completed {
		st.SetTrack00(ctrl.cylinder == 0)
		return
	}
	st.SetBusy()
}

// step handles STEP, STEP IN and STEP OUT. The direction has been set by the
// caller for STEP IN and STEP OUT.
func (ctrl *Controller) step(dsk *floppy.Disk, first bool) {
	ctrl.resetStatus(false)
	st := ctrl.status.ForType1()

	if dsk == nil {
		ctrl.resetDataRegisters()
		st.SetNotReady()
		return
	}

	if first {
		ctrl.win.timeout = ctrl.now + bufferValid
	}

	ctrl.type1Flags(st, dsk)
	if s, ok := ctrl.current(dsk); ok && !s.CRCOk() {
		st.SetCRCError()
	}

	if ctrl.now < ctrl.win.timeout {
		st.SetBusy()
		return
	}

	// clear the CRC error of the sector under the head before the move
	ctrl.status &^= CRCError

	ctrl.moveHead(ctrl.direction)
	if ctrl.cmd&flagUpdate != 0 {
		ctrl.track = uint8(int(ctrl.track) + ctrl.direction)
	}
	ctrl.settle(st, dsk, true)
	st.SetTrack00(ctrl.cylinder == 0)
}

func (ctrl *Controller) forceInterrupt(dsk *floppy.Disk) {
	ctrl.resetStatus(false)
	st := ctrl.status.ForType1()

	if dsk == nil {
		st.SetNotReady()
		return
	}

	ctrl.settle(st, dsk, false)
	st.SetTrack00(ctrl.cylinder == 0)
}
