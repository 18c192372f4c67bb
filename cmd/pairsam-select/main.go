// Copyright ©2020 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command pairsam-select keeps only the pairsam records whose
// pair_type, chrom1, chrom2 or read_id field is in a comma-separated
// accept list. It is a minimal stand-in for the full pairsam_select
// tool, scoped down to the comma_list matching mode, existing to give
// the pairsam format a second real consumer.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/kortschak/pairsam/pairsam"
)

// field indexes a record's \v-separated columns, matching the layout
// documented in pairsam.WriteRecord: read_id, chrom1, chrom2, pos1,
// pos2, strand1, strand2, pair_type, sam1, sam2.
type field int

const (
	fieldReadID field = iota
	fieldChrom1
	fieldChrom2
	_
	_
	_
	_
	fieldPairType
)

var fieldNames = map[string]field{
	"read_id":   fieldReadID,
	"chrom1":    fieldChrom1,
	"chrom2":    fieldChrom2,
	"pair_type": fieldPairType,
}

func main() {
	if err := app().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func app() *cli.App {
	return &cli.App{
		Name:  "pairsam-select",
		Usage: "keep pairsam records matching a comma-separated list of accepted field values",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "field", Value: "pair_type", Usage: "field to match: read_id, chrom1, chrom2, or pair_type"},
			&cli.StringFlag{Name: "values", Required: true, Usage: "comma-separated list of accepted values"},
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Value: "-", Usage: "input pairsam path, or - for stdin"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Value: "-", Usage: "output pairsam path, or - for stdout"},
		},
		Action: run,
	}
}

func run(c *cli.Context) (err error) {
	f, ok := fieldNames[c.String("field")]
	if !ok {
		return fmt.Errorf("pairsam-select: unknown field %q", c.String("field"))
	}
	accept := make(map[string]bool)
	for _, v := range strings.Split(c.String("values"), ",") {
		accept[v] = true
	}

	r, closeR, err := openInput(c.String("input"))
	if err != nil {
		return err
	}
	defer closeR()

	w, closeW, err := openOutput(c.String("output"))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeW(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	err = Select(r, w, f, accept)
	return err
}

// Select copies from r to w every pairsam record whose f-th field is
// in accept, preserving header lines (any line beginning with '@') and
// input order.
func Select(r io.Reader, w io.Writer, f field, accept map[string]bool) error {
	br := bufio.NewReaderSize(r, 1<<16)
	bw := bufio.NewWriterSize(w, 1<<16)

	for {
		line, rerr := br.ReadBytes('\n')
		if len(line) == 0 {
			if rerr == io.EOF {
				break
			}
			return rerr
		}
		if rerr != nil && rerr != io.EOF {
			return rerr
		}

		if len(line) > 0 && line[0] == '@' {
			if _, err := bw.Write(line); err != nil {
				return err
			}
			continue
		}

		fields := strings.Split(strings.TrimRight(string(line), "\v\n"), string(rune(pairsam.RecordSep)))
		if int(f) >= len(fields) {
			return fmt.Errorf("pairsam-select: record has only %d fields, need field %d", len(fields), f)
		}
		if accept[fields[f]] {
			if _, err := bw.Write(line); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

func openInput(path string) (io.Reader, func() error, error) {
	if path == "-" || path == "" {
		return os.Stdin, func() error { return nil }, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("pairsam-select: opening %s: %w", path, err)
	}
	return f, f.Close, nil
}

func openOutput(path string) (io.Writer, func() error, error) {
	if path == "-" || path == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("pairsam-select: creating %s: %w", path, err)
	}
	return f, f.Close, nil
}
