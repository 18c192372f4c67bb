// Copyright ©2020 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pairsam

import (
	"fmt"
	"strconv"
)

// ChromNone is the sentinel chromosome name for an unmapped or
// non-unique alignment.
const ChromNone = "!"

// Strand values.
const (
	StrandPlus  = '+'
	StrandMinus = '-'
)

// Cigar holds the aggregate span counters derived from a CIGAR
// string. Unlike a token-by-token CIGAR representation, it never needs
// to be serialized back to a string: pairsam always re-emits the
// original SAM text verbatim, so only the aggregate spans the
// classifier and rescuer consume are kept.
type Cigar struct {
	MatchedBP    int
	AlgnRefSpan  int
	AlgnReadSpan int
	ReadLen      int
	Clip5        int
	Clip3        int
}

// validCigarOps are the single-letter CIGAR operators defined by the
// SAM specification. M, I, D, S and H affect the span counters; the
// rest (N, P, =, X, B) are consumed but otherwise ignored, matching
// the reference sam_to_pairsam behaviour of accumulating spans only
// for the operators it cares about.
var validCigarOps = map[byte]bool{
	'M': true, 'I': true, 'D': true, 'N': true,
	'S': true, 'H': true, 'P': true, '=': true,
	'X': true, 'B': true,
}

// ParseCigar scans a CIGAR string left to right, accumulating a
// decimal length until a non-digit operator is read, and returns the
// aggregate span counters described by Cigar. A CIGAR of "*" yields a
// zero Cigar.
func ParseCigar(s []byte) (Cigar, error) {
	var c Cigar
	if len(s) == 1 && s[0] == '*' {
		return c, nil
	}
	if len(s) == 0 {
		return Cigar{}, fmt.Errorf("pairsam: empty cigar string")
	}
	var num int
	haveDigits := false
	for _, b := range s {
		if b >= '0' && b <= '9' {
			num = num*10 + int(b-'0')
			haveDigits = true
			continue
		}
		if !haveDigits {
			return Cigar{}, fmt.Errorf("pairsam: cigar %q: operator %q without preceding length", s, b)
		}
		if !validCigarOps[b] {
			return Cigar{}, fmt.Errorf("pairsam: cigar %q: unknown operator %q", s, b)
		}
		switch b {
		case 'M':
			c.MatchedBP += num
			c.AlgnRefSpan += num
			c.AlgnReadSpan += num
			c.ReadLen += num
		case 'I':
			c.AlgnReadSpan += num
			c.ReadLen += num
		case 'D':
			c.AlgnRefSpan += num
		case 'S', 'H':
			c.ReadLen += num
			if c.MatchedBP == 0 {
				c.Clip5 = num
			} else {
				c.Clip3 = num
			}
		}
		num = 0
		haveDigits = false
	}
	if haveDigits {
		return Cigar{}, fmt.Errorf("pairsam: cigar %q: trailing length with no operator", s)
	}
	return c, nil
}

// Algn is an alignment descriptor for one SAM record or supplementary
// alignment entry. It is produced per group by ParseAlgn/ParseSupp,
// never shared across groups, and discarded once the group has been
// serialized.
type Algn struct {
	Chrom    string
	Pos      int
	Strand   byte
	MapQ     int
	IsMapped bool
	IsUnique bool
	// IsLinear is only meaningful for a primary (representative)
	// alignment; it is left false (and ignored) on a parsed
	// supplementary alignment.
	IsLinear bool
	Cigar    Cigar
	DistTo5  int
}

// maskUnplaced sets a onto the conventional sentinel position used for
// unmapped or otherwise unusable alignments.
func maskUnplaced(a *Algn) {
	a.Chrom = ChromNone
	a.Pos = 0
	a.Strand = StrandMinus
}

const samFlagUnmapped = 0x4
const samFlagReverse = 0x10
const samFlagFirstInTemplate = 0x40
const samFlagSupplementary = 0x800

// ParseAlgn builds the alignment descriptor for the representative
// (primary) record of a mate, given its tab-split SAM columns.
func ParseAlgn(readID string, cols [][]byte, minMAPQ int) (Algn, error) {
	if len(cols) < 11 {
		return Algn{}, &ParseError{ReadID: readID, Column: len(cols), Reason: "fewer than 11 SAM columns"}
	}
	flag, err := strconv.ParseUint(string(cols[1]), 10, 32)
	if err != nil {
		return Algn{}, &ParseError{ReadID: readID, Column: 1, Reason: "flag is not an integer"}
	}
	mapq, err := strconv.Atoi(string(cols[4]))
	if err != nil {
		return Algn{}, &ParseError{ReadID: readID, Column: 4, Reason: "mapq is not an integer"}
	}
	cigar, err := ParseCigar(cols[5])
	if err != nil {
		return Algn{}, &ParseError{ReadID: readID, Column: 5, Reason: err.Error()}
	}

	a := Algn{
		MapQ:     mapq,
		IsMapped: flag&samFlagUnmapped == 0,
		IsUnique: mapq >= minMAPQ,
		IsLinear: !hasSuppTag(cols),
		Cigar:    cigar,
	}

	if a.IsMapped && a.IsUnique {
		a.Chrom = string(cols[2])
		if flag&samFlagReverse == 0 {
			a.Strand = StrandPlus
		} else {
			a.Strand = StrandMinus
		}
		pos, err := strconv.Atoi(string(cols[3]))
		if err != nil {
			return Algn{}, &ParseError{ReadID: readID, Column: 3, Reason: "position is not an integer"}
		}
		if a.Strand == StrandPlus {
			a.Pos = pos
		} else {
			a.Pos = pos + cigar.AlgnRefSpan
		}
	} else {
		maskUnplaced(&a)
	}

	if a.Strand == StrandPlus {
		a.DistTo5 = cigar.Clip5
	} else {
		a.DistTo5 = cigar.Clip3
	}
	return a, nil
}

// hasSuppTag reports whether any optional field beginning at column 12
// (index 11) is an SA:Z: supplementary-alignment tag.
func hasSuppTag(cols [][]byte) bool {
	for _, col := range cols[11:] {
		if len(col) >= 5 && string(col[:5]) == "SA:Z:" {
			return true
		}
	}
	return false
}

// ParseSupp extracts the supplementary alignments named by SA:Z:
// optional fields in cols, in file order. Each supplementary entry
// comma-splits into rname, pos, strand, cigar, mapq, nm.
func ParseSupp(readID string, cols [][]byte, minMAPQ int) ([]Algn, error) {
	var out []Algn
	for _, col := range cols[11:] {
		if len(col) < 5 || string(col[:5]) != "SA:Z:" {
			continue
		}
		fields := splitComma(col[5:])
		if len(fields) < 6 {
			return nil, &ParseError{ReadID: readID, Column: 11, Reason: fmt.Sprintf("malformed SA:Z: field %q", col)}
		}
		if len(fields[2]) != 1 {
			return nil, &ParseError{ReadID: readID, Column: 11, Reason: fmt.Sprintf("SA:Z: strand is not a single character: %q", col)}
		}
		mapq, err := strconv.Atoi(string(fields[4]))
		if err != nil {
			return nil, &ParseError{ReadID: readID, Column: 11, Reason: "SA:Z: mapq is not an integer"}
		}
		cigar, err := ParseCigar(fields[3])
		if err != nil {
			return nil, &ParseError{ReadID: readID, Column: 11, Reason: err.Error()}
		}

		a := Algn{
			MapQ:     mapq,
			IsMapped: true,
			IsUnique: mapq >= minMAPQ,
			Cigar:    cigar,
		}
		if a.IsUnique {
			a.Chrom = string(fields[0])
			a.Strand = fields[2][0]
			pos, err := strconv.Atoi(string(fields[1]))
			if err != nil {
				return nil, &ParseError{ReadID: readID, Column: 11, Reason: "SA:Z: position is not an integer"}
			}
			if a.Strand == StrandPlus {
				a.Pos = pos
			} else {
				a.Pos = pos + cigar.AlgnRefSpan
			}
		} else {
			maskUnplaced(&a)
		}
		if a.Strand == StrandPlus {
			a.DistTo5 = cigar.Clip5
		} else {
			a.DistTo5 = cigar.Clip3
		}
		out = append(out, a)
	}
	return out, nil
}

// splitComma splits b on ',' without allocating a []byte per field
// header; it is a narrow helper kept local to SA:Z: parsing, which is
// the only comma-delimited sub-field in the SAM format this package
// handles.
func splitComma(b []byte) [][]byte {
	var out [][]byte
	start := 0
	for i, c := range b {
		if c == ',' {
			out = append(out, b[start:i])
			start = i + 1
		}
	}
	out = append(out, b[start:])
	return out
}
