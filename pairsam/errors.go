// Copyright ©2020 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pairsam

import "fmt"

// ParseError records a failure to parse one column of a SAM line
// belonging to a particular read. Parsing errors are not recoverable:
// a single malformed record is taken to indicate pipeline corruption
// upstream, and the pipeline must fail fast rather than emit a partial
// pairsam record.
type ParseError struct {
	ReadID string
	Column int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("pairsam: read %q: column %d: %s", e.ReadID, e.Column, e.Reason)
}
