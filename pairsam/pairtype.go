// Copyright ©2020 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pairsam

// PairType classifies the quality and topology of a paired alignment.
// The set of pair types is closed; String and the classifier's
// decision tree must remain exhaustive over it.
type PairType byte

// The pair-type alphabet, in the precedence order applied by Classify.
const (
	// NN is a pair with both mates unmapped.
	NN PairType = iota
	// NM is a pair with one mate unmapped and the other non-unique.
	NM
	// NC is a pair with one mate unmapped and the other chimeric.
	NC
	// NL is a pair with one mate unmapped and the other linear and unique.
	NL
	// MM is a pair with both mates mapped non-uniquely.
	MM
	// MC is a pair with one mate non-unique and the other chimeric.
	MC
	// ML is a pair with one mate non-unique and the other linear and unique.
	ML
	// CC is a pair with both mates chimeric.
	CC
	// CX is a chimeric pair rescued into a linear-equivalent pair.
	CX
	// CL is a chimeric pair that could not be rescued.
	CL
	// LL is a pair with both mates linear, unique and mapped.
	LL

	nPairTypes
)

var pairTypeStrings = [nPairTypes]string{
	NN: "NN", NM: "NM", NC: "NC", NL: "NL",
	MM: "MM", MC: "MC", ML: "ML",
	CC: "CC", CX: "CX", CL: "CL",
	LL: "LL",
}

// String returns the two-letter code for t.
func (t PairType) String() string {
	if t >= nPairTypes {
		panic("pairsam: invalid pair type")
	}
	return pairTypeStrings[t]
}

// MarshalText implements encoding.TextMarshaler.
func (t PairType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
