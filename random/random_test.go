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

package random_test

import (
	"testing"

	"github.com/raydac/zxpoly-sub001/random"
	"github.com/raydac/zxpoly-sub001/test"
)

type clock struct {
	cycles int64
}

func (c *clock) Cycles() int64 {
	return c.cycles
}

func TestRandom(t *testing.T) {
	c := &clock{cycles: 1000}
	a := random.NewRandom(c)
	b := random.NewRandom(c)
	a.ZeroSeed = true
	b.ZeroSeed = true

	for i := 1; i < 256; i++ {
		c.cycles += int64(i)
		test.ExpectEquality(t, a.Intn(i), b.Intn(i))
	}
}

func TestRange(t *testing.T) {
	c := &clock{}
	rnd := random.NewRandom(c)
	for i := 0; i < 1000; i++ {
		c.cycles = int64(i * 7)
		v := rnd.Intn(16)
		test.ExpectSuccess(t, v >= 0 && v < 16)
	}
}

func TestNilClock(t *testing.T) {
	a := random.NewRandom(nil)
	a.ZeroSeed = true
	b := random.NewRandom(nil)
	b.ZeroSeed = true
	test.ExpectEquality(t, a.Intn(100), b.Intn(100))
}
