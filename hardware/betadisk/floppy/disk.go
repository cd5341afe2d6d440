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
	"sort"
	"sync"
	"sync/atomic"

	"github.com/raydac/zxpoly-sub001/curated"
)

// Sentinel error patterns returned by this package.
const (
	WriteProtected = "floppy: disk is write protected"
	OutOfRange     = "floppy: address out of range (%d)"
	BadGeometry    = "floppy: unsupported geometry (%d sides, %d tracks)"
)

// Rand is the source of randomness for FindRandomSector(). The Random type in
// the random package satisfies the interface.
type Rand interface {
	Intn(n int) int
}

// SectorInfo describes a single sector when creating a disk with NewDisk().
type SectorInfo struct {
	Side  int
	Track int
	ID    int

	// length of the sector in bytes
	Length int

	// the size code as it appears in the ID field. for sectors that follow
	// the usual convention this is the base two logarithm of Length/128
	SizeCode uint8

	// the sector was recorded with a bad data CRC
	CRCError bool
}

type sectorEntry struct {
	SectorInfo
	offset int
}

type trackKey struct {
	side  int
	track int
}

// Disk is a floppy disk in a drive slot.
type Disk struct {
	// critical section covers data and crc. it is never held across calls
	// into other packages
	crit sync.Mutex
	data []byte
	crc  []uint16

	sectors []sectorEntry

	// indexes into the sectors slice for each track, in the order the
	// sectors pass under the head
	tracks map[trackKey][]int

	sides           int
	tracksPerSide   int
	sectorsPerTrack int

	trdos bool

	writeProtect atomic.Bool
	dirty        atomic.Bool
}

// NewDisk creates a disk from raw sector data. The sectors are laid out in
// data in the order of the info slice. The data is copied.
func NewDisk(info []SectorInfo, data []byte) (*Disk, error) {
	dsk := &Disk{
		tracks: make(map[trackKey][]int),
	}

	var offset int
	for _, s := range info {
		if s.Length <= 0 {
			return nil, curated.Errorf("floppy: sector %d:%d:%d has no data", s.Track, s.Side, s.ID)
		}
		dsk.sectors = append(dsk.sectors, sectorEntry{SectorInfo: s, offset: offset})
		offset += s.Length
	}

	if offset > len(data) {
		return nil, curated.Errorf("floppy: sector table needs %d bytes but data is %d bytes", offset, len(data))
	}

	dsk.data = make([]byte, len(data))
	copy(dsk.data, data)
	dsk.index()

	return dsk, nil
}

// index builds the per-track lookup table, the geometry attributes and the
// CRC of every sector.
func (dsk *Disk) index() {
	clear(dsk.tracks)
	dsk.sides = 0
	dsk.tracksPerSide = 0
	dsk.sectorsPerTrack = 0

	for i, s := range dsk.sectors {
		k := trackKey{side: s.Side, track: s.Track}
		dsk.tracks[k] = append(dsk.tracks[k], i)
		dsk.sides = max(dsk.sides, s.Side+1)
		dsk.tracksPerSide = max(dsk.tracksPerSide, s.Track+1)
		dsk.sectorsPerTrack = max(dsk.sectorsPerTrack, len(dsk.tracks[k]))
	}

	dsk.crc = make([]uint16, len(dsk.sectors))
	for i, s := range dsk.sectors {
		dsk.crc[i] = CRC(dsk.data[s.offset : s.offset+s.Length])
	}
}

func (dsk *Disk) String() string {
	return fmt.Sprintf("%d sides, %d tracks, %d sectors per track", dsk.sides, dsk.tracksPerSide, dsk.sectorsPerTrack)
}

// Sides returns the number of sides with at least one sector.
func (dsk *Disk) Sides() int {
	return dsk.sides
}

// TracksPerSide returns the number of tracks on the disk.
func (dsk *Disk) TracksPerSide() int {
	return dsk.tracksPerSide
}

// SectorsPerTrack returns the largest number of sectors on any track.
func (dsk *Disk) SectorsPerTrack() int {
	return dsk.sectorsPerTrack
}

// IsTRDOS returns true if the disk has the fixed TR-DOS geometry.
func (dsk *Disk) IsTRDOS() bool {
	return dsk.trdos
}

// Size returns the length of the disk buffer in bytes.
func (dsk *Disk) Size() int {
	return len(dsk.data)
}

// SetWriteProtect changes the state of the write protect tab.
func (dsk *Disk) SetWriteProtect(protect bool) {
	dsk.writeProtect.Store(protect)
}

// IsWriteProtected returns the state of the write protect tab.
func (dsk *Disk) IsWriteProtected() bool {
	return dsk.writeProtect.Load()
}

// IsDirty returns true if any byte of the disk has been changed since the
// disk was created or since the last call to MarkSaved().
func (dsk *Disk) IsDirty() bool {
	return dsk.dirty.Load()
}

// MarkSaved clears the dirty flag.
func (dsk *Disk) MarkSaved() {
	dsk.dirty.Store(false)
}

// Data returns a copy of the disk buffer.
func (dsk *Disk) Data() []byte {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()
	d := make([]byte, len(dsk.data))
	copy(d, dsk.data)
	return d
}

// Read the byte at the address in the disk buffer.
func (dsk *Disk) Read(address int) (uint8, bool) {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()
	if address < 0 || address >= len(dsk.data) {
		return 0, false
	}
	return dsk.data[address], true
}

// Write the byte to the address in the disk buffer. The CRC of the sector
// containing the address is updated before the function returns.
func (dsk *Disk) Write(address int, v uint8) error {
	if dsk.writeProtect.Load() {
		return curated.Errorf(WriteProtected)
	}

	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	if address < 0 || address >= len(dsk.data) {
		return curated.Errorf(OutOfRange, address)
	}

	dsk.data[address] = v
	dsk.dirty.Store(true)

	// sectors are stored in ascending offset order
	i := sort.Search(len(dsk.sectors), func(i int) bool {
		return dsk.sectors[i].offset > address
	}) - 1
	if i >= 0 {
		s := dsk.sectors[i]
		if address < s.offset+s.Length {
			dsk.crc[i] = CRC(dsk.data[s.offset : s.offset+s.Length])
		}
	}

	return nil
}

func (dsk *Disk) sector(idx int) Sector {
	return Sector{disk: dsk, idx: idx}
}

// FindFirstSector returns the first sector on the track.
func (dsk *Disk) FindFirstSector(side int, track int) (Sector, bool) {
	t := dsk.tracks[trackKey{side: side, track: track}]
	if len(t) == 0 {
		return Sector{}, false
	}
	return dsk.sector(t[0]), true
}

// FindSector returns the sector with the ID on the track.
func (dsk *Disk) FindSector(side int, track int, id int) (Sector, bool) {
	for _, i := range dsk.tracks[trackKey{side: side, track: track}] {
		if dsk.sectors[i].ID == id {
			return dsk.sector(i), true
		}
	}
	return Sector{}, false
}

// FindNextSector returns the sector that follows s on the same track. The
// first sector of the track follows the last.
func (dsk *Disk) FindNextSector(s Sector) Sector {
	e := dsk.sectors[s.idx]
	t := dsk.tracks[trackKey{side: e.Side, track: e.Track}]
	for n, i := range t {
		if i == s.idx {
			return dsk.sector(t[(n+1)%len(t)])
		}
	}
	panic(fmt.Sprintf("floppy: sector %d not indexed on its own track", s.idx))
}

// FindRandomSector returns a sector on the track chosen by walking forward
// from the first sector a random number of times. The first sector is
// returned if rnd is nil.
func (dsk *Disk) FindRandomSector(side int, track int, rnd Rand) (Sector, bool) {
	s, ok := dsk.FindFirstSector(side, track)
	if !ok || rnd == nil {
		return s, ok
	}

	n := len(dsk.tracks[trackKey{side: side, track: track}])
	for skip := rnd.Intn(n); skip > 0; skip-- {
		s = dsk.FindNextSector(s)
	}
	return s, true
}

// Sectors returns the sectors of the track in rotational order.
func (dsk *Disk) Sectors(side int, track int) []Sector {
	t := dsk.tracks[trackKey{side: side, track: track}]
	s := make([]Sector, len(t))
	for n, i := range t {
		s[n] = dsk.sector(i)
	}
	return s
}
