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

// Package test contains helper functions that remove common boilerplate from
// tests written for the standard go test harness.
//
// The Expect functions report a failure and continue. The Demand functions
// stop the test on failure and should be used when subsequent tests depend on
// the value.
//
// ExpectSuccess() and ExpectFailure() interpret the value according to its
// type. A bool is successful when true and an error is successful when nil.
// The untyped nil is a success value, which follows from how errors are
// usually checked in Go.
//
// The CompareWriter type implements io.Writer and is used to capture output
// for later comparison.
package test
