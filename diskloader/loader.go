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

package diskloader

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/raydac/zxpoly-sub001/curated"
	"github.com/raydac/zxpoly-sub001/hardware/betadisk/dsk"
	"github.com/raydac/zxpoly-sub001/hardware/betadisk/floppy"
)

// Sentinel errors.
const (
	LoadError         = "diskloader: %v"
	UnsupportedFormat = "diskloader: unsupported format (%s)"
)

// Loader is used to specify the disk image to insert into a drive.
type Loader struct {
	// filename of the disk image to load
	Filename string

	// one of "TRD", "SCL" or "DSK". the empty string or "AUTO" indicates that
	// the format should be decided by the content of the image
	Format string

	// expected hash of the loaded image. empty string indicates that the
	// hash is unknown and need not be validated. after a load operation the
	// value will be the hash of the loaded data
	Hash string

	// copy of the loaded data. subsequent calls to Load() will not reload
	// the data
	Data []byte
}

// NewLoader is the preferred method of initialisation for the Loader type.
//
// The format argument will be used to set the Format field, unless the
// argument is either "AUTO" or the empty string. In which case the file
// extension is used to set the field.
//
// Alphabetic characters in file extensions can be in upper or lower case or a
// mixture of both.
func NewLoader(filename string, format string) Loader {
	dl := Loader{
		Filename: filename,
		Format:   "AUTO",
	}

	format = strings.TrimSpace(strings.ToUpper(format))
	if format != "AUTO" && format != "" {
		dl.Format = format
	} else {
		ext := strings.ToUpper(path.Ext(filename))
		switch ext {
		case ".TRD", ".SCL", ".DSK":
			dl.Format = ext[1:]
		}
	}

	return dl
}

// ShortName returns a shortened version of the loader filename.
func (dl Loader) ShortName() string {
	n := path.Base(dl.Filename)
	return strings.TrimSuffix(n, path.Ext(dl.Filename))
}

// HasLoaded returns true if Load() has been successfully called.
func (dl Loader) HasLoaded() bool {
	return len(dl.Data) > 0
}

// Load the disk image. Loader filenames with a valid scheme will use that
// method to load the data. Currently supported schemes are HTTP and local
// files.
func (dl *Loader) Load() error {
	if len(dl.Data) > 0 {
		return nil
	}

	scheme := "file"

	u, err := url.Parse(dl.Filename)
	if err == nil {
		scheme = u.Scheme
	}

	switch scheme {
	case "http", "https":
		resp, err := http.Get(dl.Filename)
		if err != nil {
			return curated.Errorf(LoadError, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return curated.Errorf(LoadError, resp.Status)
		}

		dl.Data, err = io.ReadAll(resp.Body)
		if err != nil {
			return curated.Errorf(LoadError, err)
		}

	case "file", "":
		f, err := os.Open(dl.Filename)
		if err != nil {
			return curated.Errorf(LoadError, err)
		}
		defer f.Close()

		dl.Data, err = io.ReadAll(f)
		if err != nil {
			return curated.Errorf(LoadError, err)
		}

	default:
		return curated.Errorf(LoadError, fmt.Sprintf("unsupported URL scheme (%s)", scheme))
	}

	if len(dl.Data) == 0 {
		return curated.Errorf(LoadError, "empty file")
	}

	hash := fmt.Sprintf("%x", sha1.Sum(dl.Data))

	if dl.Hash != "" && dl.Hash != hash {
		dl.Data = nil
		return curated.Errorf(LoadError, "unexpected hash value")
	}

	dl.Hash = hash

	return nil
}

// fingerprint decides the format of the data from its content. TRD images
// have no signature and are the fallback.
func fingerprint(data []byte) string {
	switch {
	case bytes.HasPrefix(data, []byte("SINCLAIR")):
		return "SCL"
	case bytes.HasPrefix(data, []byte("MV - CPC")), bytes.HasPrefix(data, []byte("EXTENDED CPC DSK")):
		return "DSK"
	}
	return "TRD"
}

// Disk creates a new disk from the loaded data. Load() will be called if it
// has not been called already.
func (dl *Loader) Disk() (*floppy.Disk, error) {
	if err := dl.Load(); err != nil {
		return nil, err
	}

	format := dl.Format
	if format == "" || format == "AUTO" {
		format = fingerprint(dl.Data)
	}

	switch format {
	case "TRD":
		return floppy.FromTRD(dl.Data)
	case "SCL":
		return floppy.FromSCL(dl.Data)
	case "DSK":
		c, err := dsk.Parse(dl.Data)
		if err != nil {
			return nil, err
		}
		return c.Disk()
	}

	return nil, curated.Errorf(UnsupportedFormat, format)
}

// SaveTRD writes the disk to the file as a TRD image. The dirty flag of the
// disk is cleared on success.
func SaveTRD(filename string, d *floppy.Disk) error {
	data, err := d.TRD()
	if err != nil {
		return err
	}

	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return curated.Errorf(LoadError, err)
	}

	d.MarkSaved()
	return nil
}
