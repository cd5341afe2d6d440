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

// Package environment collects the context shared by the parts of a single
// disk interface instance: its name, its source of randomness and its
// preferences.
package environment

import (
	"github.com/raydac/zxpoly-sub001/hardware/preferences"
	"github.com/raydac/zxpoly-sub001/random"
)

// Label names an environment. The empty label is the main instance.
type Label string

// Labels used by the application.
const (
	MainEmulation Label = ""
	ScriptHost    Label = "script"
)

// Environment provides context for one disk interface. More than one
// interface can exist at the same time, for example, when the script host is
// running alongside the monitor.
type Environment struct {
	Label Label

	// any randomisation required by the controller must be taken from this
	// field, so that it is sensitive to virtual time
	Random *random.Random

	Prefs *preferences.Preferences

	// logging is suppressed when Quiet is true
	Quiet bool
}

// NewEnvironment is the preferred method of initialisation for the
// Environment type.
//
// The prefs argument can be nil, in which case a new Preferences instance will
// be created. Sharing a Preferences instance keeps the settings of more than
// one environment in step.
func NewEnvironment(clock random.Clock, prefs *preferences.Preferences) (*Environment, error) {
	env := &Environment{
		Random: random.NewRandom(clock),
	}

	if prefs == nil {
		var err error
		prefs, err = preferences.NewPreferences()
		if err != nil {
			return nil, err
		}
	}
	env.Prefs = prefs

	return env, nil
}

// Normalise puts the environment into a known state. Tests rely on this so
// that sector selection after a seek is repeatable.
func (env *Environment) Normalise() {
	env.Random.ZeroSeed = true
	env.Prefs.SetDefaults()
}

// AllowLogging implements the logger.Permission interface.
func (env *Environment) AllowLogging() bool {
	return env != nil && !env.Quiet
}

// IsEmulation returns true if the environment has the given label.
func (env *Environment) IsEmulation(label Label) bool {
	return env.Label == label
}
