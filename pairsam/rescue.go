// Copyright ©2020 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pairsam

// rescue attempts to recover a usable linear-equivalent pair from one
// chimeric mate and one linear mate. The caller guarantees that
// exactly one of supp1, supp2 is non-empty and that neither
// representative is null or multi-mapping.
//
// It returns the two alignments to use in place of the representatives
// (in the original mate order) and whether rescue succeeded.
func rescue(repr1, repr2 Algn, supp1, supp2 []Algn, maxMoleculeSize int) (a1, a2 Algn, ok bool) {
	if len(supp1) == 0 && len(supp2) == 0 {
		return repr1, repr2, true
	}
	if len(supp1) != 0 && len(supp2) != 0 {
		return Algn{}, Algn{}, false
	}

	var supp Algn
	firstIsChimeric := len(supp1) != 0
	if firstIsChimeric {
		if len(supp1) > 1 {
			return Algn{}, Algn{}, false
		}
		supp = supp1[0]
	} else {
		if len(supp2) > 1 {
			return Algn{}, Algn{}, false
		}
		supp = supp2[0]
	}

	// A non-unique supplemental alignment needs no 3' rescue: treat
	// the mate pair as linear as-is.
	if !supp.IsUnique {
		return repr1, repr2, true
	}

	var chimeric, linear Algn
	if firstIsChimeric {
		chimeric, linear = repr1, repr2
	} else {
		chimeric, linear = repr2, repr1
	}

	var chim5, chim3 Algn
	if chimeric.DistTo5 < supp.DistTo5 {
		chim5, chim3 = chimeric, supp
	} else {
		chim5, chim3 = supp, chimeric
	}

	canRescue := chim3.Chrom == linear.Chrom && chim3.Strand != linear.Strand
	if linear.Strand == StrandPlus {
		canRescue = canRescue && linear.Pos < chim3.Pos
	} else {
		canRescue = canRescue && linear.Pos > chim3.Pos
	}

	var moleculeSize int
	if linear.Strand == StrandPlus {
		moleculeSize = chim3.Pos - linear.Pos + chim3.DistTo5 + linear.DistTo5
	} else {
		moleculeSize = linear.Pos - chim3.Pos + chim3.DistTo5 + linear.DistTo5
	}
	canRescue = canRescue && moleculeSize <= maxMoleculeSize

	if !canRescue {
		return Algn{}, Algn{}, false
	}
	if firstIsChimeric {
		return chim5, linear, true
	}
	return linear, chim5, true
}
