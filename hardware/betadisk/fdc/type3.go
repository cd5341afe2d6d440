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
	"github.com/raydac/zxpoly-sub001/hardware/betadisk/rawtrack"
	"github.com/raydac/zxpoly-sub001/logger"
)

func (ctrl *Controller) modulation() rawtrack.Modulation {
	if ctrl.mfm {
		return rawtrack.MFM
	}
	return rawtrack.FM
}

func (ctrl *Controller) readAddress(dsk *floppy.Disk, first bool) {
	ctrl.resetStatus(true)
	st := ctrl.status.ForType2And3()

	if dsk == nil {
		st.SetNotReady()
		return
	}

	if first {
		// the sector after the one most recently accessed passes under the
		// head next. if the track has changed since then it is the first
		// sector of the track
		s, ok := ctrl.current(dsk)
		if ok && s.Side() == ctrl.side && s.Track() == ctrl.trackNumber() {
			ctrl.cursor = dsk.FindNextSector(s)
		} else {
			ctrl.cursor, _ = dsk.FindFirstSector(ctrl.side, ctrl.trackNumber())
		}

		if ctrl.cursor.IsValid() {
			s := ctrl.cursor
			crc := s.CRC()
			ctrl.addr = [6]uint8{uint8(s.Track()), uint8(s.Side()), uint8(s.ID()), s.SizeCode(), uint8(crc >> 8), uint8(crc)}
		}
		ctrl.counter = 0
		ctrl.win.positioning = ctrl.now + sectorPositioning
	}

	if !ctrl.cursor.IsValid() || ctrl.cursor.Disk() != dsk {
		ctrl.resetDataRegisters()
		st.SetRecordNotFound()
		return
	}

	if !ctrl.positioned() {
		st.SetBusy()
		return
	}

	if !ctrl.cursor.CRCOk() {
		st.SetCRCError()
	}

	if ctrl.waitRd {
		if ctrl.now > ctrl.win.timeout {
			st.SetLostData()
			return
		}
		st.SetDRQ()
		st.SetBusy()
		return
	}

	if ctrl.counter >= len(ctrl.addr) {
		// the track field of the ID is copied to the sector register
		ctrl.sector = ctrl.addr[0]
		logger.Logf(ctrl.env, "fdc", "FOUND.ADDR %d:%d:%d", ctrl.addr[0], ctrl.addr[1], ctrl.addr[2])
		return
	}

	ctrl.win.timeout = ctrl.now + bufferValid
	ctrl.provideData(ctrl.addr[ctrl.counter])
	ctrl.counter++
	st.SetDRQ()
	st.SetBusy()
}

func (ctrl *Controller) readTrack(dsk *floppy.Disk, first bool) {
	ctrl.resetStatus(true)
	st := ctrl.status.ForType2And3()

	if dsk == nil {
		st.SetNotReady()
		return
	}

	if first {
		ctrl.raw = rawtrack.NewTrack(dsk, ctrl.modulation())
		ctrl.raw.PrepareForRead(ctrl.side, ctrl.trackNumber())
		ctrl.win.timeout = ctrl.now + bufferValid
	}

	// the disk has been changed since the track was read
	if ctrl.raw == nil || ctrl.raw.Disk() != dsk {
		logger.Log(ctrl.env, "fdc", "disk changed during READ TRACK")
		ctrl.raw = nil
		ctrl.resetDataRegisters()
		st.SetRecordNotFound()
		return
	}

	if ctrl.waitRd {
		if ctrl.now > ctrl.win.timeout {
			st.SetLostData()
			return
		}
		st.SetDRQ()
		st.SetBusy()
		return
	}

	v, ok := ctrl.raw.ReadNext()
	if !ok {
		ctrl.raw = nil
		return
	}

	ctrl.win.timeout = ctrl.now + bufferValid
	ctrl.provideData(v)
	st.SetDRQ()
	st.SetBusy()
}

func (ctrl *Controller) writeTrack(dsk *floppy.Disk, first bool) {
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

	if first {
		ctrl.raw = rawtrack.NewTrack(dsk, ctrl.modulation())
		ctrl.waitWr = true
		ctrl.win.timeout = ctrl.now + bufferValid
	}

	// the disk has been changed since the command started
	if ctrl.raw == nil || ctrl.raw.Disk() != dsk {
		logger.Log(ctrl.env, "fdc", "disk changed during WRITE TRACK")
		ctrl.raw = nil
		ctrl.resetDataRegisters()
		st.SetWriteFault()
		return
	}

	if ctrl.waitWr {
		if ctrl.now <= ctrl.win.timeout {
			st.SetDRQ()
			st.SetBusy()
			return
		}
		st.SetLostData()
		ctrl.dataWr = 0
	}

	ctrl.waitWr = true
	ctrl.win.timeout = ctrl.now + bufferValid

	more, err := ctrl.raw.WriteNext(ctrl.dataWr)
	if err != nil {
		logger.Log(ctrl.env, "fdc", err.Error())
		st.SetWriteFault()
		ctrl.raw = nil
		return
	}

	if !more {
		ctrl.raw = nil
		return
	}

	st.SetDRQ()
	st.SetBusy()
}
