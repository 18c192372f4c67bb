// Copyright ©2020 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pairsam

// splitTab splits a SAM line into its tab-separated columns.
func splitTab(line []byte) [][]byte {
	var out [][]byte
	start := 0
	for i, c := range line {
		if c == '\t' {
			out = append(out, line[start:i])
			start = i + 1
		}
	}
	out = append(out, line[start:])
	return out
}

// getPairOrder reports the canonical ordering of two placements: -1 if
// the first sorts before the second, +1 if it sorts after, 0 if they
// are equal. Chromosome name comparison takes precedence over
// position.
func getPairOrder(chrom1 string, pos1 int, chrom2 string, pos2 int) int {
	if chrom1 != chrom2 {
		if chrom1 < chrom2 {
			return -1
		}
		return 1
	}
	switch {
	case pos1 < pos2:
		return -1
	case pos1 > pos2:
		return 1
	default:
		return 0
	}
}

// Classify maps a pair of read-name groups to a pair type, the final
// (possibly rescued or masked) alignment descriptors for each side,
// and whether the two sides must be flipped before serialization.
//
// sams1 and sams2 are the ordered SAM lines collected for mates 1 and
// 2; index 0 of each is the representative (non-supplementary) record.
// A group missing either mate entirely (a truncated or non-paired
// input) is rejected rather than classified.
func Classify(readID string, sams1, sams2 [][]byte, minMAPQ, maxMoleculeSize int) (pairType PairType, algn1, algn2 Algn, flipPair bool, err error) {
	if len(sams1) == 0 || len(sams2) == 0 {
		return 0, Algn{}, Algn{}, false, &ParseError{ReadID: readID, Column: 0, Reason: "read group is missing one mate"}
	}
	cols1 := splitTab(sams1[0])
	cols2 := splitTab(sams2[0])

	a1, err := ParseAlgn(readID, cols1, minMAPQ)
	if err != nil {
		return 0, Algn{}, Algn{}, false, err
	}
	a2, err := ParseAlgn(readID, cols2, minMAPQ)
	if err != nil {
		return 0, Algn{}, Algn{}, false, err
	}

	isNull1, isNull2 := !a1.IsMapped, !a2.IsMapped
	isMulti1, isMulti2 := !a1.IsUnique, !a2.IsUnique
	isChim1, isChim2 := !a1.IsLinear, !a2.IsLinear

	var flip bool
	var t PairType

	switch {
	case isNull1 || isNull2:
		switch {
		case isNull1 && isNull2:
			t = NN
		case (!isNull1 && isMulti1) || (!isNull2 && isMulti2):
			t = NM
			flip = isNull2
		case isChim1 || isChim2:
			t = NC
			flip = isNull2
			maskUnplaced(&a1)
			maskUnplaced(&a2)
		default:
			t = NL
			flip = isNull2
		}

	case isMulti1 || isMulti2:
		switch {
		case isMulti1 && isMulti2:
			t = MM
		case isChim1 || isChim2:
			t = MC
			maskUnplaced(&a1)
			maskUnplaced(&a2)
			flip = isMulti2
		default:
			t = ML
			flip = isMulti2
		}

	case isChim1 || isChim2:
		if isChim1 && isChim2 {
			t = CC
			maskUnplaced(&a1)
			maskUnplaced(&a2)
			break
		}

		supp1, serr := ParseSupp(readID, cols1, minMAPQ)
		if serr != nil {
			return 0, Algn{}, Algn{}, false, serr
		}
		supp2, serr := ParseSupp(readID, cols2, minMAPQ)
		if serr != nil {
			return 0, Algn{}, Algn{}, false, serr
		}

		r1, r2, rescued := rescue(a1, a2, supp1, supp2, maxMoleculeSize)
		if rescued {
			t = CX
			a1, a2 = r1, r2
			flip = getPairOrder(a1.Chrom, a1.Pos, a2.Chrom, a2.Pos) > 0
		} else {
			t = CL
			flip = isChim2
			if isChim1 {
				maskUnplaced(&a1)
			} else {
				maskUnplaced(&a2)
			}
		}

	default:
		t = LL
		flip = getPairOrder(a1.Chrom, a1.Pos, a2.Chrom, a2.Pos) > 0
	}

	return t, a1, a2, flip, nil
}
