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

package random

import (
	"math/rand"
	"time"
)

// the base seed for all random numbers
var baseSeed int64

func init() {
	baseSeed = int64(time.Now().Nanosecond())
}

// Clock is the source of virtual time for the Random type. The fdc package
// implements this interface.
type Clock interface {
	Cycles() int64
}

// Random is a random number generator that is sensitive to virtual time
// within the emulation. Two instances at the same virtual time produce the
// same numbers when ZeroSeed is true.
type Random struct {
	clock Clock

	// use zero seed rather than the random base seed. useful for tests and
	// any other situation where the random numbers must be predictable
	ZeroSeed bool
}

// NewRandom is the preferred method of initialisation for the Random type.
// The clock can be nil, in which case virtual time is always zero. The clock
// can be attached later with AttachClock().
func NewRandom(clock Clock) *Random {
	return &Random{
		clock: clock,
	}
}

// AttachClock changes the source of virtual time.
func (rnd *Random) AttachClock(clock Clock) {
	rnd.clock = clock
}

func (rnd *Random) rand() *rand.Rand {
	var t int64
	if rnd.clock != nil {
		t = rnd.clock.Cycles()
	}
	if rnd.ZeroSeed {
		return rand.New(rand.NewSource(t))
	}
	return rand.New(rand.NewSource(baseSeed + t))
}

// Intn returns a random number in the range 0 to n-1.
func (rnd *Random) Intn(n int) int {
	return rnd.rand().Intn(n)
}
