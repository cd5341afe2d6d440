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

package betadisk

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/raydac/zxpoly-sub001/environment"
	"github.com/raydac/zxpoly-sub001/hardware/betadisk/fdc"
	"github.com/raydac/zxpoly-sub001/hardware/betadisk/floppy"
	"github.com/raydac/zxpoly-sub001/logger"
)

// NumSlots is the number of drive slots on the interface.
const NumSlots = 4

// I/O ports decoded by the interface. Only the low byte of the port address
// is significant.
const (
	PortCommand = 0x1f
	PortTrack   = 0x3f
	PortSector  = 0x5f
	PortData    = 0x7f
	PortSystem  = 0xff
)

// bits of the system register.
const (
	sysDrive   = 0x03
	sysReset   = 0x04
	sysMotor   = 0x08
	sysHead    = 0x10
	sysDensity = 0x40
)

// bits of the port 0xff read value.
const (
	sysINTRQ  = 0x80
	sysDRQ    = 0x40
	sysUnused = 0x3f
)

// Interface is the Beta Disk interface.
type Interface struct {
	env  *environment.Environment
	ctrl *fdc.Controller

	slots    [NumSlots]atomic.Pointer[floppy.Disk]
	selected atomic.Int32

	// head position of each drive. the controller only knows the position
	// of the selected drive
	cylinders [NumSlots]int

	activeROM bool
	system    uint8

	// T-states elapsed since the last reset
	cycles int64
}

// NewInterface is the preferred method of initialisation for the Interface
// type.
func NewInterface(env *environment.Environment) *Interface {
	bd := &Interface{
		env:  env,
		ctrl: fdc.NewController(env),
	}
	return bd
}

func (bd *Interface) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("sys=%08b drive=%d", bd.system, bd.selected.Load()))
	if bd.IsActive() {
		s.WriteString(" motor")
	}
	if bd.activeROM {
		s.WriteString(" trdos")
	}
	return s.String()
}

// Controller returns the floppy disk controller of the interface.
func (bd *Interface) Controller() *fdc.Controller {
	return bd.ctrl
}

// SetActiveROM indicates whether the TR-DOS ROM is paged in. The ports of the
// interface are only decoded when it is.
func (bd *Interface) SetActiveROM(active bool) {
	bd.activeROM = active
}

// InsertDisk binds the disk to the drive slot. Any disk already in the slot
// is replaced. A nil disk is the same as EjectDisk().
//
// The disk is write protected if the betadisk.writeprotect preference is set.
func (bd *Interface) InsertDisk(slot int, d *floppy.Disk) {
	slot &= sysDrive
	if d != nil && bd.env.Prefs.WriteProtect.Get().(bool) {
		d.SetWriteProtect(true)
	}
	bd.slots[slot].Store(d)
	bd.bind()
	if d == nil {
		logger.Logf(bd.env, "betadisk", "drive %c: ejected", 'A'+slot)
	} else {
		logger.Logf(bd.env, "betadisk", "drive %c: %s", 'A'+slot, d)
	}
}

// EjectDisk removes the disk from the drive slot.
func (bd *Interface) EjectDisk(slot int) {
	bd.InsertDisk(slot, nil)
}

// Disk returns the disk in the drive slot. Returns nil if the slot is empty.
func (bd *Interface) Disk(slot int) *floppy.Disk {
	return bd.slots[slot&sysDrive].Load()
}

// Selected returns the selected drive slot.
func (bd *Interface) Selected() int {
	return int(bd.selected.Load())
}

// IsActive returns true if the motor of the selected drive is running.
func (bd *Interface) IsActive() bool {
	return bd.ctrl.IsMotorOn()
}

// PreStep should be called before each CPU instruction. The reset argument is
// the state of the host's reset line.
func (bd *Interface) PreStep(reset bool) {
	if reset {
		bd.cycles = 0
		bd.ctrl.Reset()
	}
}

// PostStep should be called after each CPU instruction with the number of
// T-states spent by the instruction. The controller is only stepped while the
// motor bit of the system register is set.
func (bd *Interface) PostStep(spent int64) {
	bd.cycles += spent
	if bd.system&sysMotor != 0 {
		bd.ctrl.Step(bd.cycles)
	}
}

// Wait steps the interface until the controller raises INTRQ. The
// interface is stepped no more than limit times, by spent T-states each time.
// The drq function is called whenever DRQ is raised and should read or write
// the data port.
//
// Returns the number of steps and whether INTRQ was raised.
func (bd *Interface) Wait(limit int, spent int64, drq func()) (int, bool) {
	for n := 1; n <= limit; n++ {
		bd.PostStep(spent)
		sig := bd.signals()
		if sig&sysDRQ != 0 && drq != nil {
			drq()
		}
		if sig&sysINTRQ != 0 {
			return n, true
		}
	}
	return limit, false
}

// ReadIO reads from the port. Returns false if the port is not decoded by the
// interface.
func (bd *Interface) ReadIO(port uint16) (uint8, bool) {
	if !bd.activeROM {
		return 0, false
	}

	switch port & 0xff {
	case PortCommand:
		return bd.ctrl.Read(fdc.AddrCommand), true
	case PortTrack:
		return bd.ctrl.Read(fdc.AddrTrack), true
	case PortSector:
		return bd.ctrl.Read(fdc.AddrSector), true
	case PortData:
		return bd.ctrl.Read(fdc.AddrData), true
	case PortSystem:
		return bd.signals(), true
	}

	return 0, false
}

// WriteIO writes to the port. Returns false if the port is not decoded by
// the interface.
func (bd *Interface) WriteIO(port uint16, v uint8) bool {
	if !bd.activeROM {
		return false
	}

	switch port & 0xff {
	case PortCommand:
		bd.ctrl.Write(fdc.AddrCommand, v)
	case PortTrack:
		bd.ctrl.Write(fdc.AddrTrack, v)
	case PortSector:
		bd.ctrl.Write(fdc.AddrSector, v)
	case PortData:
		bd.ctrl.Write(fdc.AddrData, v)
	case PortSystem:
		bd.writeSystem(v)
	default:
		return false
	}

	return true
}

// signals returns the INTRQ and DRQ lines of the controller.
func (bd *Interface) signals() uint8 {
	r := bd.ctrl.Registers()

	v := uint8(sysUnused)
	if r.Status&fdc.Busy == 0 {
		v |= sysINTRQ
	}
	switch fdc.CommandFamily(r.Command) {
	case fdc.TypeII, fdc.TypeIII:
		if r.Status&fdc.DRQ != 0 {
			v |= sysDRQ
		}
	}
	return v
}

func (bd *Interface) writeSystem(v uint8) {
	bd.system = v

	bd.selectDrive(int(v & sysDrive))
	bd.ctrl.SetResetIn(v&sysReset != 0)

	// head select is active low
	if v&sysHead == 0 {
		bd.ctrl.SetSide(1)
	} else {
		bd.ctrl.SetSide(0)
	}

	// density is active low
	bd.ctrl.SetMFM(v&sysDensity == 0)
}

func (bd *Interface) selectDrive(slot int) {
	prev := int(bd.selected.Load())
	if prev == slot {
		return
	}

	bd.cylinders[prev] = bd.ctrl.Cylinder()
	bd.selected.Store(int32(slot))
	bd.ctrl.SetCylinder(bd.cylinders[slot])
	bd.bind()

	logger.Logf(bd.env, "betadisk", "drive %c selected", 'A'+slot)
}

// bind activates the disk in the selected slot. InsertDisk() and the
// selection of a drive can happen at the same time in different goroutines,
// so the binding is repeated until neither the selection nor the disk in the
// selected slot changed while it was made.
func (bd *Interface) bind() {
	for {
		slot := bd.selected.Load()
		d := bd.slots[slot].Load()
		bd.ctrl.ActivateDisk(d)
		if bd.selected.Load() == slot && bd.slots[slot].Load() == d {
			return
		}
	}
}
