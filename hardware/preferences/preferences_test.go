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

package preferences_test

import (
	"testing"

	"github.com/raydac/zxpoly-sub001/hardware/clocks"
	"github.com/raydac/zxpoly-sub001/hardware/preferences"
	"github.com/raydac/zxpoly-sub001/test"
)

func TestDefaults(t *testing.T) {
	p, err := preferences.NewPreferences()
	test.DemandSuccess(t, err)

	p.SetDefaults()
	test.ExpectEquality(t, p.RandomSeek.Get().(bool), true)
	test.ExpectEquality(t, p.CPUFreq.Get().(int), clocks.ZX)
	test.ExpectEquality(t, p.HeadStep(), int64(42000))
	test.ExpectEquality(t, p.MotorOn(), int64(7000000))

	test.ExpectSuccess(t, p.CPUFreq.Set("7000000"))
	test.ExpectEquality(t, p.HeadStep(), int64(84000))
}
