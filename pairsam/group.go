// Copyright ©2020 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pairsam

import "strconv"

// group accumulates the SAM lines belonging to one query name. sams1
// and sams2 hold the lines for mates 1 and 2 respectively, with the
// representative (non-supplementary) record of each mate always at
// index 0.
type group struct {
	readID string
	sams1  [][]byte
	sams2  [][]byte
}

func (g *group) reset() {
	g.readID = ""
	g.sams1 = g.sams1[:0]
	g.sams2 = g.sams2[:0]
}

func (g *group) empty() bool {
	return len(g.sams1) == 0 && len(g.sams2) == 0
}

// push adds line, a single SAM record, to the group. Mate assignment
// follows SAM flag 0x40 (first-in-template); within a mate, a record
// is inserted at the front if its 0x800 (supplementary) bit is clear,
// guaranteeing the representative record of each mate ends up at
// index 0 regardless of the order records arrive in.
func push(line []byte, sams1, sams2 *[][]byte) error {
	cols := splitTab(line)
	if len(cols) < 2 {
		return &ParseError{ReadID: string(firstCol(line)), Column: 1, Reason: "missing flag column"}
	}
	flag, err := strconv.ParseUint(string(cols[1]), 10, 32)
	if err != nil {
		return &ParseError{ReadID: string(cols[0]), Column: 1, Reason: "flag is not an integer"}
	}

	dst := sams2
	if flag&samFlagFirstInTemplate != 0 {
		dst = sams1
	}
	if flag&samFlagSupplementary == 0 {
		*dst = append(*dst, nil)
		copy((*dst)[1:], (*dst)[:len(*dst)-1])
		(*dst)[0] = line
	} else {
		*dst = append(*dst, line)
	}
	return nil
}

func firstCol(line []byte) []byte {
	for i, c := range line {
		if c == '\t' {
			return line[:i]
		}
	}
	return line
}
