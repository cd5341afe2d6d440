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

package dsk_test

import (
	"encoding/binary"
	"testing"

	"github.com/raydac/zxpoly-sub001/curated"
	"github.com/raydac/zxpoly-sub001/hardware/betadisk/dsk"
	"github.com/raydac/zxpoly-sub001/test"
)

type sector struct {
	id   uint8
	code uint8
	st1  uint8
	len  int
}

// build creates a container image. tracks are listed in file order and the
// sizes table is only used for extended containers
func build(extended bool, tracksPerSide int, sides int, tracks [][]sector) []byte {
	d := make([]byte, 0x100)
	if extended {
		copy(d, "EXTENDED CPC DSK File\r\nDisk-Info\r\n")
	} else {
		copy(d, "MV - CPCEMU Disk-File\r\nDisk-Info\r\n")
	}
	d[0x30] = uint8(tracksPerSide)
	d[0x31] = uint8(sides)

	var blocks [][]byte
	largest := 0
	for i, trk := range tracks {
		if len(trk) == 0 {
			blocks = append(blocks, nil)
			continue
		}

		b := make([]byte, 0x100)
		copy(b, "Track-Info\r\n")
		b[0x10] = uint8(i / sides)
		b[0x11] = uint8(i % sides)
		b[0x14] = trk[0].code
		b[0x15] = uint8(len(trk))
		b[0x16] = 0x4e
		b[0x17] = 0xe5
		for j, s := range trk {
			info := b[0x18+j*8:]
			info[0] = uint8(i / sides)
			info[1] = uint8(i % sides)
			info[2] = s.id
			info[3] = s.code
			info[4] = s.st1
			binary.LittleEndian.PutUint16(info[6:], uint16(s.len))
		}
		for _, s := range trk {
			for k := range s.len {
				b = append(b, s.id+uint8(k))
			}
		}

		// blocks are rounded up to a multiple of 256 bytes
		if r := len(b) % 256; r != 0 {
			b = append(b, make([]byte, 256-r)...)
		}
		largest = max(largest, len(b))
		blocks = append(blocks, b)
	}

	if extended {
		for i, b := range blocks {
			d[0x34+i] = uint8(len(b) >> 8)
		}
	} else {
		binary.LittleEndian.PutUint16(d[0x32:], uint16(largest))
	}

	for _, b := range blocks {
		if !extended && len(b) < largest {
			b = append(b, make([]byte, largest-len(b))...)
		}
		d = append(d, b...)
	}

	return d
}

func nineSectors(code uint8) []sector {
	s := make([]sector, 9)
	for i := range s {
		s[i] = sector{id: 0xc1 + uint8(i), code: code, len: 128 << code}
	}
	return s
}

func TestStandard(t *testing.T) {
	img := build(false, 2, 1, [][]sector{nineSectors(2), nineSectors(2)})
	c, err := dsk.Parse(img)
	test.DemandSuccess(t, err)

	test.ExpectSuccess(t, c.Standard())
	test.ExpectEquality(t, c.TracksPerSide, 2)
	test.ExpectEquality(t, c.Sides, 1)
	test.DemandEquality(t, len(c.Tracks), 2)
	test.ExpectEquality(t, len(c.Tracks[1].Sectors), 9)
	test.ExpectEquality(t, c.Tracks[1].Gap3, uint8(0x4e))
	test.ExpectEquality(t, c.Tracks[1].Filler, uint8(0xe5))
	test.ExpectEquality(t, c.Tracks[1].Sectors[3].ID, uint8(0xc4))

	s := c.Tracks[1].Sectors[3]
	test.ExpectEquality(t, len(s.Data), 512)
	test.ExpectEquality(t, s.Data[0], uint8(0xc4))
	test.ExpectEquality(t, s.Data[10], uint8(0xc4+10))
}

func TestMaxSectorSize(t *testing.T) {
	trk := []sector{
		{id: 1, code: 1, len: 256},
		{id: 2, code: 3, len: 1024},
		{id: 3, code: 0, len: 128},
	}
	img := build(false, 1, 1, [][]sector{trk})
	c, err := dsk.Parse(img)
	test.DemandSuccess(t, err)

	var largest int
	for _, trk := range c.Tracks {
		for _, s := range trk.Sectors {
			largest = max(largest, len(s.Data))
		}
	}
	test.ExpectEquality(t, c.MaxSectorSize(), largest)
	test.ExpectEquality(t, c.MaxSectorSize(), 1024)
}

func TestSectorLength(t *testing.T) {
	for code, l := range []int{128, 256, 512, 1024, 2048, 4096} {
		v, ok := dsk.SectorLength(uint8(code))
		test.ExpectSuccess(t, ok)
		test.ExpectEquality(t, v, l)
	}
	_, ok := dsk.SectorLength(6)
	test.ExpectFailure(t, ok)
}

func TestExtended(t *testing.T) {
	// the declared length of an extended sector is taken literally
	odd := []sector{{id: 1, code: 2, len: 300}, {id: 2, code: 2, len: 512, st1: 0x20}}
	img := build(true, 3, 1, [][]sector{nineSectors(1), nil, odd})

	c, err := dsk.Parse(img)
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, c.Standard())
	test.DemandEquality(t, len(c.Tracks), 3)
	test.ExpectSuccess(t, c.Tracks[1].Unformatted)
	test.ExpectEquality(t, len(c.Tracks[2].Sectors[0].Data), 300)
	test.ExpectEquality(t, c.MaxSectorSize(), 512)

	d, err := c.Disk()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, d.TracksPerSide(), 3)

	_, ok := d.FindFirstSector(0, 1)
	test.ExpectFailure(t, ok)

	s, ok := d.FindSector(0, 2, 1)
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, s.Size(), 300)
	test.ExpectSuccess(t, s.CRCOk())
	v, _ := s.Peek(0)
	test.ExpectEquality(t, v, uint8(1))

	s, _ = d.FindSector(0, 2, 2)
	test.ExpectFailure(t, s.CRCOk())
	test.ExpectSuccess(t, s.IsLastOnTrack())
}

func TestBadSignature(t *testing.T) {
	_, err := dsk.Parse([]byte("NOT A DISK"))
	test.ExpectSuccess(t, curated.Is(err, dsk.BadSignature))
}

func TestTruncated(t *testing.T) {
	img := build(false, 1, 1, [][]sector{nineSectors(1)})

	_, err := dsk.Parse(img[:0x80])
	test.ExpectSuccess(t, curated.Is(err, dsk.Truncated))

	_, err = dsk.Parse(img[:0x100+0x100+100])
	test.ExpectSuccess(t, curated.Has(err, dsk.Truncated))

	// the sector data is complete but the track block is shorter than the
	// declared track size
	binary.LittleEndian.PutUint16(img[0x32:], 0xc00)
	_, err = dsk.Parse(img)
	test.ExpectSuccess(t, curated.Has(err, dsk.Truncated))
	test.ExpectSuccess(t, curated.Is(err, dsk.BadTrack))
}

func TestBadMarker(t *testing.T) {
	img := build(false, 1, 1, [][]sector{nineSectors(1)})
	img[0x100] = 'X'
	_, err := dsk.Parse(img)
	test.ExpectSuccess(t, curated.Is(err, dsk.BadTrack))
}

func TestNegativeSkip(t *testing.T) {
	img := build(false, 1, 1, [][]sector{nineSectors(1)})

	// declare a track size smaller than the sector data
	binary.LittleEndian.PutUint16(img[0x32:], 0x200)
	_, err := dsk.Parse(img)
	test.ExpectSuccess(t, curated.Is(err, dsk.BadTrack))
}

func TestBadSizeCode(t *testing.T) {
	img := build(false, 1, 1, [][]sector{nineSectors(1)})

	// size code of the first sector in the sector information list
	img[0x100+0x18+3] = 7
	_, err := dsk.Parse(img)
	test.ExpectSuccess(t, curated.Is(err, dsk.BadTrack))
}
