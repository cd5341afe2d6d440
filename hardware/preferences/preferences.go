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

package preferences

import (
	"github.com/raydac/zxpoly-sub001/curated"
	"github.com/raydac/zxpoly-sub001/hardware/clocks"
	"github.com/raydac/zxpoly-sub001/paths"
	"github.com/raydac/zxpoly-sub001/prefs"
)

// Preferences defines and collates all the preference values used by the
// disk interface emulation.
type Preferences struct {
	dsk *prefs.Disk

	// after a head movement the controller finds a random sector on the
	// new track, emulating the rotational position of the disk. if false
	// the first sector of the track is always found
	RandomSeek prefs.Bool

	// frequency of the host CPU in T-states per second. used to convert
	// the millisecond timings of the drive into T-states
	CPUFreq prefs.Int

	// the motor stays on for this many milliseconds after the last busy
	// command
	MotorTimeout prefs.Int

	// disks inserted into a drive slot are write protected
	WriteProtect prefs.Bool
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type.
func NewPreferences() (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	pth, err := paths.ResourcePath(prefs.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}

	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Add("fdc.randomseek", &p.RandomSeek)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("fdc.cpufreq", &p.CPUFreq)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("fdc.motortimeout", &p.MotorTimeout)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("betadisk.writeprotect", &p.WriteProtect)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Load()
	if err != nil {
		// ignore missing prefs file errors
		if !curated.Is(err, prefs.NoPrefsFile) {
			return nil, err
		}
	}

	return p, nil
}

// SetDefaults reverts all preferences to their default values.
func (p *Preferences) SetDefaults() {
	// not worrying about errors. there are no hooks on these values
	_ = p.RandomSeek.Set(true)
	_ = p.CPUFreq.Set(clocks.ZX)
	_ = p.MotorTimeout.Set(clocks.MotorOnMs)
	_ = p.WriteProtect.Set(false)
}

// Load current preferences from disk.
func (p *Preferences) Load() error {
	err := p.dsk.Load()
	if err != nil && !curated.Is(err, prefs.NoPrefsFile) {
		return err
	}
	return nil
}

// Save current preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}

// HeadStep returns the time taken by the head to move one track, in T-states.
func (p *Preferences) HeadStep() int64 {
	return clocks.Millis(clocks.HeadStepMs, p.CPUFreq.Get().(int))
}

// MotorOn returns the time the motor stays on after the last busy command,
// in T-states.
func (p *Preferences) MotorOn() int64 {
	return clocks.Millis(int64(p.MotorTimeout.Get().(int)), p.CPUFreq.Get().(int))
}
