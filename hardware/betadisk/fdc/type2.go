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

// findTarget resolves the sector named by the sector register on the track
// named by the track register. The side is compared with the command's side flag
// if the side check flag is set.
func (ctrl *Controller) findTarget(dsk *floppy.Disk) (floppy.Sector, bool) {
	s, ok := dsk.FindSector(ctrl.side, ctrl.trackNumber(), int(ctrl.sector))
	if !ok {
		return s, false
	}
	if ctrl.cmd&flagSideCheck != 0 {
		side := int(ctrl.cmd&flagSide) >> 3
		if s.Side() != side {
			return floppy.Sector{}, false
		}
	}
	return s, true
}

// positioned returns true once the sector positioning delay has passed. The
// data timeout starts when the delay ends.
func (ctrl *Controller) positioned() bool {
	if ctrl.now < ctrl.win.positioning {
		return false
	}
	if ctrl.win.positioning >= 0 {
		ctrl.win.timeout = ctrl.now + bufferValid
		ctrl.win.positioning = -1
	}
	return true
}

func (ctrl *Controller) readSector(dsk *floppy.Disk, first bool) {
	ctrl.resetStatus(true)
	st := ctrl.status.ForType2And3()

	if dsk == nil {
		st.SetNotReady()
		return
	}

	s, ok := ctrl.findTarget(dsk)
	if !ok {
		ctrl.resetDataRegisters()
		st.SetRecordNotFound()
		return
	}
	ctrl.cursor = s

	if first {
		ctrl.counter = 0
		ctrl.win.positioning = ctrl.now + sectorPositioning
	}

	if !ctrl.positioned() {
		st.SetBusy()
		return
	}

	if !s.CRCOk() {
		st.SetCRCError()
	}

	if ctrl.waitRd {
		if ctrl.now > ctrl.win.timeout {
			logger.Logf(ctrl.env, "fdc", "lost data reading sector %s at byte %d", s, ctrl.counter)
			st.SetLostData()
			return
		}
		st.SetDRQ()
		st.SetBusy()
		return
	}

	if ctrl.counter >= s.Size() {
		ctrl.sector++
		ctrl.win.positioning = ctrl.now + sectorPositioning
		if ctrl.cmd&flagMultiple != 0 && !s.IsLastOnTrack() {
			ctrl.counter = 0
			st.SetBusy()
		}
		return
	}

	v, _ := s.Peek(ctrl.counter)
	ctrl.counter++
	ctrl.win.positioning = ctrl.now + sectorPositioning

	if ctrl.now > ctrl.win.timeout {
		st.SetLostData()
		return
	}

	ctrl.win.timeout = ctrl.now + bufferValid
	ctrl.provideData(v)
	st.SetDRQ()
	st.SetBusy()
}

func (ctrl *Controller) writeSector(dsk *floppy.Disk, first bool) {
	ctrl.resetStatus(true)
	st := ctrl.status.ForType2And3()

	if dsk == nil {
		st.SetNotReady()
		return
	}

	if dsk.IsWriteProtected() {
		ctrl.resetDataRegisters()
		st.SetWriteProtect()
		return
	}

	s, ok := ctrl.findTarget(dsk)
	if !ok {
		ctrl.resetDataRegisters()
		st.SetRecordNotFound()
		return
	}
	ctrl.cursor = s

	if first {
		ctrl.counter = 0
		ctrl.waitWr = true
		ctrl.win.positioning = ctrl.now + sectorPositioning
	}

	if !ctrl.positioned() {
		st.SetBusy()
		return
	}

	if ctrl.waitWr {
		if ctrl.now <= ctrl.win.timeout {
			st.SetDRQ()
			st.SetBusy()
			return
		}

		// the host was too slow. a zero byte is written in place of the
		// missing data
		logger.Logf(ctrl.env, "fdc", "lost data writing sector %s at byte %d", s, ctrl.counter)
		st.SetLostData()
		ctrl.dataWr = 0
	}

	ctrl.waitWr = true

	if err := s.Poke(ctrl.counter, ctrl.dataWr); err != nil {
		logger.Log(ctrl.env, "fdc", err.Error())
		st.SetWriteFault()
		return
	}
	ctrl.counter++
	ctrl.win.timeout = ctrl.now + bufferValid

	if ctrl.counter < s.Size() {
		st.SetDRQ()
		st.SetBusy()
		return
	}

	ctrl.sector++
	if ctrl.cmd&flagMultiple != 0 && !s.IsLastOnTrack() {
		ctrl.counter = 0
		ctrl.win.positioning = ctrl.now + sectorPositioning
		st.SetBusy()
	}
}
