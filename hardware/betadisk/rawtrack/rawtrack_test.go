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

package rawtrack_test

import (
	"testing"

	"github.com/raydac/zxpoly-sub001/curated"
	"github.com/raydac/zxpoly-sub001/hardware/betadisk/floppy"
	"github.com/raydac/zxpoly-sub001/hardware/betadisk/rawtrack"
	"github.com/raydac/zxpoly-sub001/test"
)

func readAll(trk *rawtrack.Track) []byte {
	var b []byte
	for !trk.Completed() {
		v, ok := trk.ReadNext()
		if !ok {
			break
		}
		b = append(b, v)
	}
	return b
}

func TestReadMFM(t *testing.T) {
	dsk, _ := floppy.NewBlank(2, 80)
	s, _ := dsk.FindSector(1, 4, 1)
	test.DemandSuccess(t, s.Poke(0, 0x99))

	trk := rawtrack.NewTrack(dsk, rawtrack.MFM)
	trk.PrepareForRead(1, 4)
	b := readAll(trk)

	test.ExpectEquality(t, len(b), 146+16*372+598)
	test.ExpectSuccess(t, trk.Completed())
	_, ok := trk.ReadNext()
	test.ExpectFailure(t, ok)

	// the index mark follows the gap and sync bytes
	test.ExpectEquality(t, b[80+12+3], uint8(rawtrack.IndexMark))

	// first ID field
	id := b[146+15:]
	test.ExpectEquality(t, id[0], uint8(rawtrack.IDMark))
	test.ExpectEquality(t, id[1], uint8(4))
	test.ExpectEquality(t, id[2], uint8(1))
	test.ExpectEquality(t, id[3], uint8(1))
	test.ExpectEquality(t, id[4], uint8(1))
	test.ExpectEquality(t, id[5], uint8(s.CRC()>>8))
	test.ExpectEquality(t, id[6], uint8(s.CRC()))

	// data mark and first data byte
	dm := id[7+37:]
	test.ExpectEquality(t, dm[0], uint8(rawtrack.DataMark))
	test.ExpectEquality(t, dm[1], uint8(0x99))

	// every sector appears once
	var marks int
	for i := 0; i+3 < len(b); i++ {
		if b[i] == 0xf5 && b[i+1] == 0xf5 && b[i+2] == 0xf5 && b[i+3] == rawtrack.IDMark {
			marks++
		}
	}
	test.ExpectEquality(t, marks, 16)
}

func TestReadFM(t *testing.T) {
	dsk, _ := floppy.NewBlank(2, 80)
	trk := rawtrack.NewTrack(dsk, rawtrack.FM)
	trk.PrepareForRead(0, 0)
	b := readAll(trk)
	test.ExpectEquality(t, len(b), 107+16*316+247)
	test.ExpectEquality(t, b[80], uint8(rawtrack.IndexMark))
	test.ExpectEquality(t, b[107+6], uint8(rawtrack.IDMark))
}

func TestReadMissingTrack(t *testing.T) {
	dsk, _ := floppy.NewBlank(1, 40)
	trk := rawtrack.NewTrack(dsk, rawtrack.MFM)
	trk.PrepareForRead(1, 0)
	test.ExpectEquality(t, len(readAll(trk)), 146+598)
}

func writeSector(trk *rawtrack.Track, track, head, sector uint8, fill uint8) error {
	var err error
	for _, v := range []uint8{0x4e, 0x00, 0xf5, rawtrack.IDMark, track, head, sector, 1, 0xf7, 0x4e, rawtrack.DataMark} {
		if _, e := trk.WriteNext(v); e != nil {
			err = e
		}
	}
	for range 256 {
		if _, e := trk.WriteNext(fill); e != nil {
			err = e
		}
	}
	return err
}

func TestWrite(t *testing.T) {
	dsk, _ := floppy.NewBlank(2, 80)
	trk := rawtrack.NewTrack(dsk, rawtrack.MFM)

	test.ExpectSuccess(t, writeSector(trk, 2, 0, 5, 0x5a))
	s, _ := dsk.FindSector(0, 2, 5)
	v, _ := s.Peek(255)
	test.ExpectEquality(t, v, uint8(0x5a))
	fill := make([]byte, 256)
	for i := range fill {
		fill[i] = 0x5a
	}
	test.ExpectEquality(t, s.CRC(), floppy.CRC(fill))

	err := writeSector(trk, 2, 0, 17, 0x5a)
	test.ExpectSuccess(t, curated.Is(err, rawtrack.SectorNotFound))

	dsk.SetWriteProtect(true)
	err = writeSector(trk, 2, 0, 6, 0x5a)
	test.ExpectSuccess(t, curated.Is(err, rawtrack.WriteFailed))
	test.ExpectSuccess(t, curated.Has(err, floppy.WriteProtected))
}

func TestWriteLength(t *testing.T) {
	dsk, _ := floppy.NewBlank(2, 80)
	trk := rawtrack.NewTrack(dsk, rawtrack.FM)
	var n int
	for {
		n++
		more, err := trk.WriteNext(0x4e)
		test.DemandSuccess(t, err)
		if !more {
			break
		}
	}
	test.ExpectEquality(t, n, 6450)
	test.ExpectSuccess(t, trk.Completed())
}
