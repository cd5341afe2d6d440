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

import (
	"fmt"

	"github.com/raydac/zxpoly-sub001/curated"
	"github.com/raydac/zxpoly-sub001/hardware/betadisk/floppy"
)

// Sentinel error patterns returned by WriteNext().
const (
	SectorNotFound = "rawtrack: no sector %d:%d:%d"
	WriteFailed    = "rawtrack: writing sector %d:%d:%d: %v"
)

// number of bytes in a track transferred by WRITE TRACK.
const writeTrackLen = 6450

type writeState int

const (
	waitAddress writeState = iota
	addrTrack
	addrHead
	addrSector
	addrSize
	waitData
	data
)

// Track is the raw byte stream of a single track. A new Track should be
// created for each READ TRACK or WRITE TRACK command.
type Track struct {
	disk   *floppy.Disk
	layout layout

	position int
	total    int

	// track bytes for reading
	buffer []byte

	// write state and the most recent ID field
	state    writeState
	track    uint8
	head     uint8
	sector   uint8
	expected int
	dataIdx  int
}

// NewTrack is the preferred method of initialisation for the Track type.
func NewTrack(disk *floppy.Disk, mod Modulation) *Track {
	l, ok := layouts[mod]
	if !ok {
		panic(fmt.Sprintf("rawtrack: unknown modulation (%d)", int(mod)))
	}
	return &Track{
		disk:   disk,
		layout: l,
		total:  writeTrackLen,
	}
}

// Disk returns the disk the track was created for.
func (trk *Track) Disk() *floppy.Disk {
	return trk.disk
}

func (trk *Track) String() string {
	return fmt.Sprintf("%d/%d", trk.position, trk.total)
}

// appendID adds the ID field of the sector to the buffer. The CRC of the
// sector data is used as the CRC of the ID field.
func appendID(b []byte, s floppy.Sector) []byte {
	crc := s.CRC()
	return append(b, IDMark, uint8(s.Track()), uint8(s.Side()), uint8(s.ID()), s.SizeCode(), uint8(crc>>8), uint8(crc))
}

// PrepareForRead builds the byte stream for the track. Every sector on the
// track appears exactly once.
func (trk *Track) PrepareForRead(side int, track int) {
	l := trk.layout
	b := appendRuns(nil, l.preamble...)

	for _, s := range trk.disk.Sectors(side, track) {
		b = appendRuns(b, l.leadIn...)
		b = appendID(b, s)
		b = appendRuns(b, l.gap2...)
		b = append(b, DataMark)
		for i := range s.Size() {
			v, _ := s.Peek(i)
			b = append(b, v)
		}
		crc := s.CRC()
		b = append(b, uint8(crc>>8), uint8(crc))
		b = appendRuns(b, l.gap3...)
	}

	b = appendRuns(b, l.trailer)

	trk.buffer = b
	trk.position = 0
	trk.total = len(b)
}

// ReadNext returns the next byte of the track. Returns false if there are no
// more bytes.
func (trk *Track) ReadNext() (uint8, bool) {
	if trk.position >= trk.total || trk.position >= len(trk.buffer) {
		return 0, false
	}
	v := trk.buffer[trk.position]
	trk.position++
	return v, true
}

// Completed returns true once every byte of the track has been transferred.
func (trk *Track) Completed() bool {
	return trk.position >= trk.total
}

// WriteNext consumes the next byte of a track being written. Returns true if
// the track expects more bytes.
//
// An error is returned if the data following a data mark cannot be written
// to the sector named by the preceding ID field. The track can continue to
// be written after an error.
func (trk *Track) WriteNext(v uint8) (bool, error) {
	var err error

	switch trk.state {
	case waitAddress:
		if v == IDMark {
			trk.state = addrTrack
		}
	case addrTrack:
		trk.track = v
		trk.state = addrHead
	case addrHead:
		trk.head = v
		trk.state = addrSector
	case addrSector:
		trk.sector = v
		trk.state = addrSize
	case addrSize:
		trk.expected = 128 << (v & 0x03)
		trk.state = waitData
	case waitData:
		if v == DataMark {
			trk.dataIdx = 0
			trk.state = data
		}
	case data:
		s, ok := trk.disk.FindSector(int(trk.head), int(trk.track), int(trk.sector))
		if !ok {
			err = curated.Errorf(SectorNotFound, trk.track, trk.head, trk.sector)
		} else if e := s.Poke(trk.dataIdx, v); e != nil {
			err = curated.Errorf(WriteFailed, trk.track, trk.head, trk.sector, e)
		}
		trk.dataIdx++
		trk.expected--
		if trk.expected <= 0 {
			trk.state = waitAddress
		}
	default:
		panic(fmt.Sprintf("rawtrack: impossible write state (%d)", trk.state))
	}

	trk.position++
	return trk.position < trk.total, err
}
