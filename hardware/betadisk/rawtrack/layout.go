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

package rawtrack

import "fmt"

// Modulation of the raw track.
type Modulation int

// List of valid Modulation values.
const (
	FM Modulation = iota
	MFM
)

func (m Modulation) String() string {
	switch m {
	case FM:
		return "FM"
	case MFM:
		return "MFM"
	}
	panic(fmt.Sprintf("rawtrack: unknown modulation (%d)", int(m)))
}

// run is a sequence of identical bytes.
type run struct {
	n int
	v uint8
}

// layout of a track for a modulation.
type layout struct {
	preamble []run

	// before the ID address mark
	leadIn []run

	// between the ID field and the data address mark
	gap2 []run

	// after the data CRC
	gap3 []run

	trailer run
}

// address marks.
const (
	IndexMark = 0xfc
	IDMark    = 0xfe
	DataMark  = 0xfb
)

var layouts = map[Modulation]layout{
	FM: {
		preamble: []run{{40, 0xff}, {40, 0x00}, {1, IndexMark}, {26, 0xff}},
		leadIn:   []run{{6, 0x00}},
		gap2:     []run{{11, 0xff}, {6, 0x00}},
		gap3:     []run{{27, 0xff}},
		trailer:  run{247, 0xff},
	},
	MFM: {
		preamble: []run{{80, 0x4e}, {12, 0x00}, {3, 0xf6}, {1, IndexMark}, {50, 0x4e}},
		leadIn:   []run{{12, 0x00}, {3, 0xf5}},
		gap2:     []run{{22, 0x4e}, {12, 0x00}, {3, 0xf5}},
		gap3:     []run{{54, 0x4e}},
		trailer:  run{598, 0x4e},
	},
}

func appendRuns(b []byte, runs ...run) []byte {
	for _, r := range runs {
		for range r.n {
			b = append(b, r.v)
		}
	}
	return b
}
