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

// Package curated is a helper for the plain Go error type. Errors are created
// with Errorf(), which takes a pattern and placeholder values in the same
// way as fmt.Errorf().
//
// The pattern is the identity of the error. Is() checks the outermost error
// and Has() searches the chain of wrapped curated errors:
//
//	e := curated.Errorf("dsk: %v", curated.Errorf(dsk.BadSignature))
//
//	curated.Is(e, "dsk: %v")      // true
//	curated.Has(e, dsk.BadSignature) // true
//	curated.Is(e, dsk.BadSignature)  // false
//
// Sentinel patterns are stored as exported const strings in the package that
// raises them.
//
// The Error() implementation removes adjacent duplicate parts from the message
// chain, parts being separated by ": ". Wrapping the same prefix twice
// therefore reads as a single prefix:
//
//	curated.Errorf("floppy: %v", curated.Errorf("floppy: sector not found"))
//
// prints "floppy: sector not found".
package curated
