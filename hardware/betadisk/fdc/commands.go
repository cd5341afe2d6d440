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

import "fmt"

// Family of a command.
type Family int

// List of valid Family values.
const (
	TypeI Family = iota + 1
	TypeII
	TypeIII
	TypeIV
)

// command codes in the upper four bits of the command register.
const (
	cmdRestore        = 0x0
	cmdSeek           = 0x1
	cmdStep           = 0x2
	cmdStepU          = 0x3
	cmdStepIn         = 0x4
	cmdStepInU        = 0x5
	cmdStepOut        = 0x6
	cmdStepOutU       = 0x7
	cmdReadSector     = 0x8
	cmdReadSectorM    = 0x9
	cmdWriteSector    = 0xa
	cmdWriteSectorM   = 0xb
	cmdReadAddress    = 0xc
	cmdForceInterrupt = 0xd
	cmdReadTrack      = 0xe
	cmdWriteTrack     = 0xf
)

// command flags.
const (
	flagHeadLoad  = 0x08
	flagUpdate    = 0x10
	flagMultiple  = 0x10
	flagSide      = 0x08
	flagSideCheck = 0x02
)

// CommandFamily returns the family of the command value.
func CommandFamily(cmd uint8) Family {
	switch cmd >> 4 {
	case cmdRestore, cmdSeek, cmdStep, cmdStepU, cmdStepIn, cmdStepInU, cmdStepOut, cmdStepOutU:
		return TypeI
	case cmdReadSector, cmdReadSectorM, cmdWriteSector, cmdWriteSectorM:
		return TypeII
	case cmdReadAddress, cmdReadTrack, cmdWriteTrack:
		return TypeIII
	case cmdForceInterrupt:
		return TypeIV
	}
	panic(fmt.Sprintf("fdc: impossible command value (%#02x)", cmd))
}

// commandText describes the command for logging.
func (ctrl *Controller) commandText(cmd uint8) string {
	addr := fmt.Sprintf("%d:%d:%d", ctrl.track, ctrl.side, ctrl.sector)

	multi := func() string {
		if cmd&flagMultiple == 0 {
			return "(S)"
		}
		return "(M)"
	}

	switch cmd >> 4 {
	case cmdRestore:
		return "RESTORE"
	case cmdSeek:
		return fmt.Sprintf("SEEK (track=%d, target=%d, head=%d)", ctrl.track, ctrl.dataWr, ctrl.side)
	case cmdStep, cmdStepU:
		return "STEP"
	case cmdStepIn, cmdStepInU:
		return "STEP IN"
	case cmdStepOut, cmdStepOutU:
		return "STEP OUT"
	case cmdReadSector, cmdReadSectorM:
		return fmt.Sprintf("RD.SECTOR%s %s", multi(), addr)
	case cmdWriteSector, cmdWriteSectorM:
		return fmt.Sprintf("WR.SECTOR%s %s", multi(), addr)
	case cmdReadAddress:
		return "RD.ADDR"
	case cmdForceInterrupt:
		return "FRC.INTERRUPT"
	case cmdReadTrack:
		return fmt.Sprintf("RD.TRACK (track=%d)", ctrl.track)
	case cmdWriteTrack:
		return fmt.Sprintf("WR.TRACK (track=%d)", ctrl.track)
	}
	panic(fmt.Sprintf("fdc: impossible command value (%#02x)", cmd))
}
