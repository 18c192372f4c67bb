// Copyright ©2020 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pairsam classifies aligned, name-grouped paired-end SAM
// records into a vertical-tab-delimited pair record format suitable for Hi-C
// contact extraction.
//
// The package reads a stream of SAM text grouped by query name,
// classifies each read pair into one of a closed set of pair types,
// attempts to rescue chimeric alignments where the geometry is
// consistent with a single ligated molecule, and emits one pairsam
// record per group. It performs no alignment, deduplication, sorting
// or indexing of its own.
package pairsam
