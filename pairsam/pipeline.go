// Copyright ©2020 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pairsam

import (
	"bufio"
	"bytes"
	"io"
)

// Classifier is the streaming SAM-to-pairsam pipeline: it wires the
// header handler (C1), record grouper (C2), pair classifier (C4),
// chimera rescuer (C5) and pair serializer (C6) into one pass over an
// input byte stream. A Classifier is stateless across calls to Run
// other than through Config and Program, which it never mutates; it
// holds no state of its own between groups beyond the buffers local to
// Run.
type Classifier struct {
	Config  Config
	Program Program

	// Debug, if non-nil, is called with the classification result of
	// every dispatched group, before it is serialized. It is intended
	// for a caller-supplied verbose dump (e.g. utter.Sdump) and must
	// not retain the byte slices backing sams1/sams2 past the call.
	Debug func(readID string, t PairType, a1, a2 Algn, sams1, sams2 [][]byte)
}

// Run reads SAM text from r and writes the classified pairsam stream
// to w. Input must be grouped by query name (consecutive lines sharing
// a query name), as produced by a name-sorted aligner; Run does not
// detect or correct out-of-order input. Output preserves the input's
// group order. Run returns the first parse error or I/O error
// encountered; on error, no partial record for the group in progress
// is written.
func (c *Classifier) Run(r io.Reader, w io.Writer) error {
	br := bufio.NewReaderSize(r, 1<<16)
	bw := bufio.NewWriterSize(w, 1<<16)

	headerLines, firstBody, err := ReadHeader(br, c.Config.CommentChar)
	if err != nil {
		return err
	}
	outLines := AppendProgram(headerLines, c.Program)
	if err := WriteHeader(bw, outLines, c.Config.CommentChar); err != nil {
		return err
	}

	var g group
	pending, havePending := firstBody, firstBody != nil

	nextLine := func() ([]byte, error) {
		if havePending {
			havePending = false
			return pending, nil
		}
		line, rerr := br.ReadBytes('\n')
		if len(line) == 0 {
			if rerr == io.EOF {
				return nil, nil
			}
			return nil, rerr
		}
		if rerr != nil && rerr != io.EOF {
			return nil, rerr
		}
		return bytes.TrimRight(line, "\r\n"), nil
	}

	dispatch := func() error {
		if g.empty() {
			return nil
		}
		pairType, a1, a2, flip, err := Classify(g.readID, g.sams1, g.sams2, c.Config.MinMAPQ, c.Config.MaxMoleculeSize)
		if err != nil {
			return err
		}
		if c.Debug != nil {
			c.Debug(g.readID, pairType, a1, a2, g.sams1, g.sams2)
		}
		if flip {
			err = WriteRecord(bw, g.readID, a2, a1, pairType, g.sams2, g.sams1, c.Config)
		} else {
			err = WriteRecord(bw, g.readID, a1, a2, pairType, g.sams1, g.sams2, c.Config)
		}
		return err
	}

	for {
		line, err := nextLine()
		if err != nil {
			return err
		}
		if line == nil {
			if err := dispatch(); err != nil {
				return err
			}
			break
		}

		readID := string(firstCol(line))
		if readID != g.readID && !g.empty() {
			if err := dispatch(); err != nil {
				return err
			}
			g.reset()
		}
		g.readID = readID
		if err := push(line, &g.sams1, &g.sams2); err != nil {
			return err
		}
	}

	return bw.Flush()
}
