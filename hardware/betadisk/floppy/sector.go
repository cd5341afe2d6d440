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

package floppy

import (
	"fmt"

	"github.com/raydac/zxpoly-sub001/curated"
)

// Sector is a view of a single sector of a Disk. The zero value is not a
// valid sector.
type Sector struct {
	disk *Disk
	idx  int
}

func (s Sector) String() string {
	if s.disk == nil {
		return "no sector"
	}
	e := s.disk.sectors[s.idx]
	return fmt.Sprintf("%d:%d:%d", e.Track, e.Side, e.ID)
}

// IsValid returns false for the zero value of the Sector type.
func (s Sector) IsValid() bool {
	return s.disk != nil
}

// Disk returns the disk that the sector belongs to.
func (s Sector) Disk() *Disk {
	return s.disk
}

// Side of the disk the sector is on.
func (s Sector) Side() int {
	return s.disk.sectors[s.idx].Side
}

// Track the sector is on.
func (s Sector) Track() int {
	return s.disk.sectors[s.idx].Track
}

// ID of the sector as it appears in the ID field.
func (s Sector) ID() int {
	return s.disk.sectors[s.idx].ID
}

// Size of the sector in bytes.
func (s Sector) Size() int {
	return s.disk.sectors[s.idx].Length
}

// SizeCode as it appears in the ID field.
func (s Sector) SizeCode() uint8 {
	return s.disk.sectors[s.idx].SizeCode
}

// IsLastOnTrack returns true if the sector is the last to pass under the
// head before the index hole.
func (s Sector) IsLastOnTrack() bool {
	e := s.disk.sectors[s.idx]
	t := s.disk.tracks[trackKey{side: e.Side, track: e.Track}]
	return t[len(t)-1] == s.idx
}

// IsWriteProtected returns the write protect state of the owning disk.
func (s Sector) IsWriteProtected() bool {
	return s.disk.IsWriteProtected()
}

// CRC of the sector data.
func (s Sector) CRC() uint16 {
	s.disk.crit.Lock()
	defer s.disk.crit.Unlock()
	return s.disk.crc[s.idx]
}

// CRCOk returns false if the sector was recorded with a bad data CRC.
func (s Sector) CRCOk() bool {
	return !s.disk.sectors[s.idx].CRCError
}

// Peek returns the byte at offset i of the sector.
func (s Sector) Peek(i int) (uint8, bool) {
	e := s.disk.sectors[s.idx]
	if i < 0 || i >= e.Length {
		return 0, false
	}
	s.disk.crit.Lock()
	defer s.disk.crit.Unlock()
	return s.disk.data[e.offset+i], true
}

// Poke changes the byte at offset i of the sector.
func (s Sector) Poke(i int, v uint8) error {
	e := s.disk.sectors[s.idx]
	if i < 0 || i >= e.Length {
		return curated.Errorf(OutOfRange, i)
	}
	return s.disk.Write(e.offset+i, v)
}
