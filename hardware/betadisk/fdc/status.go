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

import "strings"

// Status register of the controller.
type Status uint8

// Status bits with the same meaning for every command family.
const (
	Busy         Status = 0x01
	CRCError     Status = 0x08
	WriteProtect Status = 0x40
	NotReady     Status = 0x80
)

// Status bits after a Type I or Type IV command.
const (
	Index      Status = 0x02
	Track00    Status = 0x04
	SeekError  Status = 0x10
	HeadLoaded Status = 0x20
)

// Status bits after a Type II or Type III command.
const (
	DRQ            Status = 0x02
	LostData       Status = 0x04
	RecordNotFound Status = 0x10
	WriteFault     Status = 0x20
)

func (s Status) String() string {
	var b strings.Builder
	for i, c := range "NWHSCTIB" {
		if s&(0x80>>i) != 0 {
			b.WriteRune(c)
		} else {
			b.WriteRune('-')
		}
	}
	return b.String()
}

func (s *Status) set(bit Status, on bool) {
	if on {
		*s |= bit
	} else {
		*s &^= bit
	}
}

// Type1Status is a view of the status register for Type I and Type IV
// commands.
type Type1Status struct {
	s *Status
}

// ForType1 returns the Type I view of the status register.
func (s *Status) ForType1() Type1Status {
	return Type1Status{s: s}
}

// SetBusy indicates that a Type I command is in progress.
func (v Type1Status) SetBusy() { v.s.set(Busy, true) }

// SetNotReady indicates that there is no disk in the selected drive.
func (v Type1Status) SetNotReady() { v.s.set(NotReady, true) }

// SetWriteProtect reflects the write protect tab of the disk.
func (v Type1Status) SetWriteProtect() { v.s.set(WriteProtect, true) }

// SetCRCError indicates a bad CRC in the sector under the head.
func (v Type1Status) SetCRCError() { v.s.set(CRCError, true) }

// SetSeekError indicates that the track could not be verified after
// head movement.
func (v Type1Status) SetSeekError() { v.s.set(SeekError, true) }

// SetHeadLoaded indicates that the head is loaded and engaged.
func (v Type1Status) SetHeadLoaded() { v.s.set(HeadLoaded, true) }

// SetIndex changes the state of the index pulse bit.
func (v Type1Status) SetIndex(on bool) { v.s.set(Index, on) }

// SetTrack00 changes the state of the track zero bit.
func (v Type1Status) SetTrack00(on bool) { v.s.set(Track00, on) }

// Type2And3Status is a view of the status register for Type II and Type III
// commands.
type Type2And3Status struct {
	s *Status
}

// ForType2And3 returns the Type II and Type III view of the status register.
func (s *Status) ForType2And3() Type2And3Status {
	return Type2And3Status{s: s}
}

// SetBusy indicates that a Type II or Type III command is in progress.
func (v Type2And3Status) SetBusy() { v.s.set(Busy, true) }

// SetNotReady indicates that there is no disk in the selected drive.
func (v Type2And3Status) SetNotReady() { v.s.set(NotReady, true) }

// SetWriteProtect indicates that a write was refused because the disk is
// write protected.
func (v Type2And3Status) SetWriteProtect() { v.s.set(WriteProtect, true) }

// SetCRCError indicates a bad CRC in the sector being transferred.
func (v Type2And3Status) SetCRCError() { v.s.set(CRCError, true) }

// SetDRQ requests that the host transfers a byte through the data
// register.
func (v Type2And3Status) SetDRQ() { v.s.set(DRQ, true) }

// SetLostData indicates that the host did not transfer a byte in time.
func (v Type2And3Status) SetLostData() { v.s.set(LostData, true) }

// SetRecordNotFound indicates that the requested sector does not exist.
func (v Type2And3Status) SetRecordNotFound() { v.s.set(RecordNotFound, true) }

// SetWriteFault indicates that the data could not be written to the disk.
func (v Type2And3Status) SetWriteFault() { v.s.set(WriteFault, true) }

// ClearDRQ is called when the host has transferred the pending byte.
func (v Type2And3Status) ClearDRQ() { v.s.set(DRQ, false) }
