// Copyright ©2020 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pairsam

// SAMEntrySep separates concatenated SAM lines within one side of a
// pairsam record's SAM block. It is distinct from both the SAM column
// separator ('\t') and the pairsam field separator ('\v'): ASCII unit
// separator, chosen once as part of the format contract shared with
// downstream consumers (see RecordSep).
const SAMEntrySep = '\x1f'

// RecordSep separates fields within a pairsam record. Any printable
// character, including the PHRED range used in SAM quality strings,
// may appear within a field, so plain tab cannot be used; vertical tab
// is reserved by the format instead.
const RecordSep = '\v'

// DropSentinel replaces a dropped read-id or SAM block.
const DropSentinel = "."

// Config holds the tunable parameters of the classifier.
type Config struct {
	// MinMAPQ is the minimum mapping quality for an alignment to be
	// considered unique.
	MinMAPQ int
	// MaxMoleculeSize bounds the inferred Hi-C molecule size accepted
	// by chimera rescue.
	MaxMoleculeSize int
	// DropReadID replaces the read id with "." in output records.
	DropReadID bool
	// DropSAM replaces each SAM block with "." in output records.
	DropSAM bool
	// CommentChar is the optional single-byte comment marker that
	// prefixes header lines on both input and output. 0 means no
	// prefix is used.
	CommentChar byte
}

// DefaultConfig returns the configuration used when no overrides are
// supplied: MinMAPQ 10, MaxMoleculeSize 2000, no dropped fields, no
// comment prefix.
func DefaultConfig() Config {
	return Config{
		MinMAPQ:         10,
		MaxMoleculeSize: 2000,
	}
}
