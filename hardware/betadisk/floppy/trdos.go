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
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/raydac/zxpoly-sub001/curated"
)

// TR-DOS geometry.
const (
	MaxSides        = 2
	MaxTracks       = 86
	SectorsPerTrack = 16
	SectorSize      = 256

	trackSize  = MaxSides * SectorsPerTrack * SectorSize
	sideSize   = SectorsPerTrack * SectorSize
	trdosSize  = MaxTracks * trackSize
	systemSect = 8 * SectorSize
)

// SCL images can hold no more sectors than this.
const sclMaxSectors = 2544

// Sentinel error patterns for the TR-DOS image formats.
const (
	NotSCL = "floppy: not an SCL image: %v"
	NotTRD = "floppy: not a TRD image: %v"
)

// offsets in the TR-DOS system sector.
const (
	sysFirstFreeSector = 225
	sysFirstFreeTrack  = 226
	sysDiskType        = 227
	sysFileCount       = 228
	sysFreeSectors     = 229
	sysTRDOSID         = 231
	sysReserved        = 234
	sysDeletedCount    = 244
	sysLabel           = 245

	trdosID  = 0x10
	labelLen = 8
)

// newTRDOS creates a disk with the TR-DOS geometry. The data buffer is used
// directly and must be trdosSize bytes long.
func newTRDOS(data []byte, sides int, tracks int) *Disk {
	dsk := &Disk{
		data:   data,
		tracks: make(map[trackKey][]int),
		trdos:  true,
	}
	for t := range tracks {
		for sd := range sides {
			for id := 1; id <= SectorsPerTrack; id++ {
				dsk.sectors = append(dsk.sectors, sectorEntry{
					SectorInfo: SectorInfo{
						Side:     sd,
						Track:    t,
						ID:       id,
						Length:   SectorSize,
						SizeCode: 1,
					},
					offset: t*trackSize + sd*sideSize + (id-1)*SectorSize,
				})
			}
		}
	}
	dsk.index()
	return dsk
}

func diskType(sides int, tracks int) uint8 {
	switch {
	case sides == 2 && tracks >= 80:
		return 0x16
	case sides == 2:
		return 0x17
	case tracks >= 80:
		return 0x18
	}
	return 0x19
}

// writeSystemSector fills in the TR-DOS system sector in the data buffer.
// Position of the first free sector is given as an offset into the buffer.
func writeSystemSector(data []byte, firstFree int, dtype uint8, files int, free int, label string) {
	sys := data[systemSect : systemSect+SectorSize]
	clear(sys)
	sys[sysFirstFreeSector] = uint8((firstFree / SectorSize) % SectorsPerTrack)
	sys[sysFirstFreeTrack] = uint8(firstFree / sideSize)
	sys[sysDiskType] = dtype
	sys[sysFileCount] = uint8(files)
	binary.LittleEndian.PutUint16(sys[sysFreeSectors:], uint16(free))
	sys[sysTRDOSID] = trdosID
	copy(sys[sysReserved:sysReserved+9], bytes.Repeat([]byte{' '}, 9))
	sys[sysDeletedCount] = 0
	copy(sys[sysLabel:sysLabel+labelLen], fmt.Sprintf("%-8.8s", label))
}

// NewBlank creates a freshly formatted TR-DOS disk with an empty catalogue.
func NewBlank(sides int, tracks int) (*Disk, error) {
	if sides < 1 || sides > MaxSides || tracks < 1 || tracks > MaxTracks {
		return nil, curated.Errorf(BadGeometry, sides, tracks)
	}
	data := make([]byte, trdosSize)
	free := sides*tracks*SectorsPerTrack - SectorsPerTrack
	writeSystemSector(data, sideSize, diskType(sides, tracks), 0, free, "")
	return newTRDOS(data, sides, tracks), nil
}

// FromTRD creates a disk from a raw TR-DOS image. The image is padded to the
// full TR-DOS size or truncated if it is larger. The number of tracks on the
// disk is taken from the length of the image.
func FromTRD(data []byte) (*Disk, error) {
	if len(data) == 0 {
		return nil, curated.Errorf(NotTRD, "empty image")
	}
	tracks := min(MaxTracks, (len(data)+trackSize-1)/trackSize)
	d := make([]byte, trdosSize)
	copy(d, data)
	return newTRDOS(d, MaxSides, tracks), nil
}

// FromSCL creates a disk from an SCL image. The files in the image are
// stored sequentially from the second logical track and the catalogue and
// system sector are built on the first logical track.
func FromSCL(data []byte) (*Disk, error) {
	const hdrLen = 9
	const entryLen = 14

	if len(data) < hdrLen+1 || !bytes.HasPrefix(data, []byte("SINCLAIR")) {
		return nil, curated.Errorf(NotSCL, "missing signature")
	}

	files := int(data[8])
	if files > 128 {
		return nil, curated.Errorf(NotSCL, fmt.Sprintf("too many files (%d)", files))
	}
	if len(data) < hdrLen+entryLen*files {
		return nil, curated.Errorf(NotSCL, "truncated catalogue")
	}

	var sectors int
	for i := range files {
		sectors += int(data[hdrLen+entryLen*i+13])
	}
	if sectors > sclMaxSectors {
		return nil, curated.Errorf(NotSCL, fmt.Sprintf("too many sectors (%d)", sectors))
	}

	src := hdrLen + entryLen*files
	if len(data) < src+sectors*SectorSize {
		return nil, curated.Errorf(NotSCL, "truncated file data")
	}

	d := make([]byte, trdosSize)

	// file data begins on the second logical track
	dst := sideSize
	cat := 0
	for i := range files {
		entry := data[hdrLen+entryLen*i : hdrLen+entryLen*(i+1)]
		copy(d[cat:], entry)
		d[cat+14] = uint8((dst / SectorSize) % SectorsPerTrack)
		d[cat+15] = uint8(dst / sideSize)
		cat += 16

		n := int(entry[13]) * SectorSize
		copy(d[dst:dst+n], data[src:src+n])
		dst += n
		src += n
	}

	writeSystemSector(d, dst, diskType(MaxSides, 80), files, sclMaxSectors-sectors, "SCLIMAGE")

	return newTRDOS(d, MaxSides, MaxTracks), nil
}

// TRD returns the disk as a raw TR-DOS image. Only the tracks that exist on
// the disk are included.
func (dsk *Disk) TRD() ([]byte, error) {
	if !dsk.trdos {
		return nil, curated.Errorf("floppy: disk does not have TR-DOS geometry")
	}
	dsk.crit.Lock()
	defer dsk.crit.Unlock()
	d := make([]byte, dsk.tracksPerSide*trackSize)
	copy(d, dsk.data)
	return d, nil
}

// File is an entry in the TR-DOS catalogue.
type File struct {
	Name    string
	Ext     byte
	Start   uint16
	Length  uint16
	Sectors int

	// position of the file's first sector on the disk
	FirstSector int
	FirstTrack  int

	Deleted bool
}

func (f File) String() string {
	var del string
	if f.Deleted {
		del = " (deleted)"
	}
	return fmt.Sprintf("%-8s.%c %5d %5d %3d  %d:%d%s", f.Name, f.Ext, f.Start, f.Length, f.Sectors, f.FirstTrack, f.FirstSector, del)
}

// Catalogue of a TR-DOS disk.
type Catalogue struct {
	Label       string
	DiskType    uint8
	FreeSectors int
	Files       []File
}

func (c Catalogue) String() string {
	s := strings.Builder{}
	fmt.Fprintf(&s, "label: %s\ttype: %#02x\tfree: %d\n", c.Label, c.DiskType, c.FreeSectors)
	for _, f := range c.Files {
		s.WriteString(f.String())
		s.WriteString("\n")
	}
	return s.String()
}

// Catalogue reads the TR-DOS catalogue from the first track of the disk.
func (dsk *Disk) Catalogue() (Catalogue, error) {
	if !dsk.trdos {
		return Catalogue{}, curated.Errorf("floppy: disk does not have TR-DOS geometry")
	}

	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	sys := dsk.data[systemSect : systemSect+SectorSize]
	if sys[sysTRDOSID] != trdosID {
		return Catalogue{}, curated.Errorf("floppy: disk is not formatted for TR-DOS")
	}

	cat := Catalogue{
		Label:       strings.TrimRight(string(sys[sysLabel:sysLabel+labelLen]), " \x00"),
		DiskType:    sys[sysDiskType],
		FreeSectors: int(binary.LittleEndian.Uint16(sys[sysFreeSectors:])),
	}

	for i := range int(sys[sysFileCount]) {
		e := dsk.data[i*16 : (i+1)*16]
		if e[0] == 0x00 {
			break // for loop
		}
		cat.Files = append(cat.Files, File{
			Name:        strings.TrimRight(string(e[0:8]), " "),
			Ext:         e[8],
			Start:       binary.LittleEndian.Uint16(e[9:]),
			Length:      binary.LittleEndian.Uint16(e[11:]),
			Sectors:     int(e[13]),
			FirstSector: int(e[14]),
			FirstTrack:  int(e[15]),
			Deleted:     e[0] == 0x01,
		})
	}

	return cat, nil
}
