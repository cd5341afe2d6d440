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

package dsk

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/raydac/zxpoly-sub001/curated"
	"github.com/raydac/zxpoly-sub001/hardware/betadisk/floppy"
)

// Sentinel error patterns returned by Parse().
const (
	BadSignature = "dsk: unrecognised signature"
	Truncated    = "dsk: data truncated at %#04x"
	BadTrack     = "dsk: track %d: %v"
)

const (
	standardSig = "MV - CPCEMU "
	extendedSig = "EXTENDED CPC DSK "
	trackSig    = "Track-Info\r\n"

	// length of the disk information block and of the header of each track
	// information block. sector data begins after the track header
	infoBlockLen   = 0x100
	trackHeaderLen = 0x100

	sectorInfoLen = 8
)

// sector status bits in the FDC status registers stored with each sector.
// either bit indicates a data field recorded with a bad CRC
const (
	st1DataError = 0x20
	st2DataError = 0x20
)

// Sector in a DSK container.
type Sector struct {
	// values as they appear in the ID field of the sector
	Track    uint8
	Side     uint8
	ID       uint8
	SizeCode uint8

	// FDC status registers recorded when the sector was read
	ST1 uint8
	ST2 uint8

	Data []byte
}

func (s Sector) String() string {
	return fmt.Sprintf("%d:%d:%#02x (%d bytes)", s.Track, s.Side, s.ID, len(s.Data))
}

// Track in a DSK container.
type Track struct {
	// position of the track on the disk. these are the position of the
	// track information block in the container and not the values in the
	// block itself
	Cylinder int
	Head     int

	// values from the track information block
	Number   uint8
	Side     uint8
	SizeCode uint8
	Gap3     uint8
	Filler   uint8

	Unformatted bool

	Sectors []Sector
}

// Container is a parsed DSK image.
type Container struct {
	extended bool

	Sides         int
	TracksPerSide int

	// size of every track block in a standard container. zero for extended
	// containers
	TrackSize int

	Tracks []Track

	maxSectorSize int
}

func (c *Container) String() string {
	kind := "standard"
	if c.extended {
		kind = "extended"
	}
	return fmt.Sprintf("%s dsk: %d sides, %d tracks per side, %d tracks, max sector %d",
		kind, c.Sides, c.TracksPerSide, len(c.Tracks), c.maxSectorSize)
}

// Standard returns true if the container is a standard DSK. False if it is an
// Extended DSK.
func (c *Container) Standard() bool {
	return !c.extended
}

// MaxSectorSize returns the length of the largest sector in the container.
func (c *Container) MaxSectorSize() int {
	return c.maxSectorSize
}

// SectorLength returns the length in bytes of a sector with the size code.
// Returns false for size codes that cannot appear in a standard container.
func SectorLength(code uint8) (int, bool) {
	if code > 5 {
		return 0, false
	}
	return 128 << code, true
}

// Parse DSK data.
func Parse(data []byte) (*Container, error) {
	var extended bool
	switch {
	case bytes.HasPrefix(data, []byte(standardSig)):
	case bytes.HasPrefix(data, []byte(extendedSig)):
		extended = true
	default:
		return nil, curated.Errorf(BadSignature)
	}
	if len(data) < infoBlockLen {
		return nil, curated.Errorf(Truncated, len(data))
	}

	c := &Container{
		extended:      extended,
		TracksPerSide: int(data[0x30]),
		Sides:         int(data[0x31]),
	}

	n := c.TracksPerSide * c.Sides
	sizes := make([]int, n)
	if extended {
		if 0x34+n > infoBlockLen {
			return nil, curated.Errorf("dsk: too many tracks for track size table (%d)", n)
		}
		for i := range sizes {
			sizes[i] = int(data[0x34+i]) << 8
		}
	} else {
		c.TrackSize = int(binary.LittleEndian.Uint16(data[0x32:]))
		for i := range sizes {
			sizes[i] = c.TrackSize
		}
	}

	offset := infoBlockLen
	for i := 0; i < n && offset < len(data); i++ {
		trk := Track{
			Cylinder: i / c.Sides,
			Head:     i % c.Sides,
		}

		if extended && sizes[i] == 0 {
			trk.Unformatted = true
			c.Tracks = append(c.Tracks, trk)
			continue // for loop
		}

		next, err := parseTrack(&trk, data, offset, sizes[i], extended)
		if err != nil {
			return nil, curated.Errorf(BadTrack, i, err)
		}
		offset = next

		for _, s := range trk.Sectors {
			c.maxSectorSize = max(c.maxSectorSize, len(s.Data))
		}
		c.Tracks = append(c.Tracks, trk)
	}

	return c, nil
}

// parseTrack parses the track information block at offset and returns the
// offset of the next block.
func parseTrack(trk *Track, data []byte, offset int, size int, extended bool) (int, error) {
	if offset+trackHeaderLen > len(data) {
		return 0, curated.Errorf(Truncated, offset)
	}
	hdr := data[offset : offset+trackHeaderLen]

	if !bytes.HasPrefix(hdr, []byte(trackSig)) {
		return 0, curated.Errorf("missing track information block at %#04x", offset)
	}

	// skipping four unused bytes after the signature
	trk.Number = hdr[0x10]
	trk.Side = hdr[0x11]

	// skipping two unused bytes
	trk.SizeCode = hdr[0x14]
	count := int(hdr[0x15])
	trk.Gap3 = hdr[0x16]
	trk.Filler = hdr[0x17]

	if 0x18+count*sectorInfoLen > trackHeaderLen {
		return 0, curated.Errorf("too many sectors (%d)", count)
	}

	ptr := offset + trackHeaderLen
	for i := range count {
		info := hdr[0x18+i*sectorInfoLen : 0x18+(i+1)*sectorInfoLen]
		s := Sector{
			Track:    info[0],
			Side:     info[1],
			ID:       info[2],
			SizeCode: info[3],
			ST1:      info[4],
			ST2:      info[5],
		}

		var l int
		if extended {
			l = int(binary.LittleEndian.Uint16(info[6:]))
		} else {
			var ok bool
			l, ok = SectorLength(s.SizeCode)
			if !ok {
				return 0, curated.Errorf("sector %d has invalid size code (%d)", i, s.SizeCode)
			}
		}

		if ptr+l > len(data) {
			return 0, curated.Errorf(Truncated, ptr)
		}
		s.Data = make([]byte, l)
		copy(s.Data, data[ptr:ptr+l])
		ptr += l

		trk.Sectors = append(trk.Sectors, s)
	}

	if size > 0 {
		skip := size - (ptr - offset)
		if skip < 0 {
			return 0, curated.Errorf("sector data overruns track size (%d bytes)", -skip)
		}
		if ptr+skip > len(data) {
			return 0, curated.Errorf(Truncated, offset+size)
		}
		ptr += skip
	}

	return ptr, nil
}

// Disk creates a floppy.Disk from the container. Sectors with no data are
// not included on the disk.
func (c *Container) Disk() (*floppy.Disk, error) {
	var info []floppy.SectorInfo
	var data []byte

	for _, trk := range c.Tracks {
		for _, s := range trk.Sectors {
			if len(s.Data) == 0 {
				continue // for loop
			}
			info = append(info, floppy.SectorInfo{
				Side:     trk.Head,
				Track:    trk.Cylinder,
				ID:       int(s.ID),
				Length:   len(s.Data),
				SizeCode: s.SizeCode,
				CRCError: s.ST1&st1DataError != 0 || s.ST2&st2DataError != 0,
			})
			data = append(data, s.Data...)
		}
	}

	return floppy.NewDisk(info, data)
}
