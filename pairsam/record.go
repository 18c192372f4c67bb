// Copyright ©2020 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pairsam

import (
	"io"
	"strconv"
)

// WriteRecord serializes one classified read-name group as a single
// pairsam line: read_id, chrom1, chrom2, pos1, pos2, strand1, strand2,
// pair_type, sam_block_1, sam_block_2, each separated by RecordSep,
// with a trailing RecordSep before the newline. Side 1/2 ordering here
// is whatever the caller has already chosen (Classify's flipPair
// result is applied before calling WriteRecord, not inside it).
func WriteRecord(w io.Writer, readID string, a1, a2 Algn, t PairType, sams1, sams2 [][]byte, cfg Config) error {
	fields := []string{
		readIDField(readID, cfg),
		a1.Chrom, a2.Chrom,
		strconv.Itoa(a1.Pos), strconv.Itoa(a2.Pos),
		string(a1.Strand), string(a2.Strand),
		t.String(),
	}
	for _, f := range fields {
		if _, err := io.WriteString(w, f); err != nil {
			return err
		}
		if _, err := w.Write([]byte{RecordSep}); err != nil {
			return err
		}
	}
	if err := writeSAMBlock(w, sams1, t, cfg); err != nil {
		return err
	}
	if _, err := w.Write([]byte{RecordSep}); err != nil {
		return err
	}
	if err := writeSAMBlock(w, sams2, t, cfg); err != nil {
		return err
	}
	if _, err := w.Write([]byte{RecordSep, '\n'}); err != nil {
		return err
	}
	return nil
}

func readIDField(readID string, cfg Config) string {
	if cfg.DropReadID {
		return DropSentinel
	}
	return readID
}

func writeSAMBlock(w io.Writer, sams [][]byte, t PairType, cfg Config) error {
	if cfg.DropSAM {
		_, err := io.WriteString(w, DropSentinel)
		return err
	}
	for i, sam := range sams {
		if _, err := w.Write(sam); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\tYT:Z:"+t.String()); err != nil {
			return err
		}
		if i < len(sams)-1 {
			if _, err := w.Write([]byte{SAMEntrySep}); err != nil {
				return err
			}
		}
	}
	return nil
}
