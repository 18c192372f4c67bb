// Copyright ©2020 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command sam2pairsam classifies query-name-grouped SAM records into
// the pairsam format.
package main

import (
	"compress/gzip"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/kortschak/utter"
	"github.com/ulikunitz/xz"
	"github.com/urfave/cli/v2"
	"golang.org/x/exp/mmap"

	"github.com/kortschak/pairsam/pairsam"
)

func main() {
	if err := app().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func app() *cli.App {
	return &cli.App{
		Name:  "sam2pairsam",
		Usage: "classify query-name-grouped SAM records into pairsam records",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Value: "-", Usage: "input SAM path, or - for stdin; .xz and .gz are decompressed transparently"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Value: "-", Usage: "output pairsam path, or - for stdout; .xz and .gz are compressed transparently"},
			&cli.IntFlag{Name: "min-mapq", Value: pairsam.DefaultConfig().MinMAPQ, Usage: "minimum MAPQ for an alignment to be considered unique"},
			&cli.IntFlag{Name: "max-molecule-size", Value: pairsam.DefaultConfig().MaxMoleculeSize, Usage: "upper bound on the inferred molecule size accepted by chimera rescue"},
			&cli.BoolFlag{Name: "drop-readid", Usage: "replace the read id with the drop sentinel in output records"},
			&cli.BoolFlag{Name: "drop-sam", Usage: "replace each SAM block with the drop sentinel in output records"},
			&cli.StringFlag{Name: "comment-char", Usage: "single-byte comment marker prefixing header lines on input and output"},
			&cli.BoolFlag{Name: "mmap", Usage: "memory-map a named input file instead of streaming it (ignored for stdin)"},
			&cli.BoolFlag{Name: "verbose", Usage: "dump each classified group to stderr"},
			&cli.StringFlag{Name: "program-name", Value: "sam2pairsam", Usage: "PN tag of the injected @PG header line"},
			&cli.StringFlag{Name: "program-version", Value: "", Usage: "VN tag of the injected @PG header line"},
		},
		Action: run,
	}
}

func run(c *cli.Context) (err error) {
	cfg := pairsam.Config{
		MinMAPQ:         c.Int("min-mapq"),
		MaxMoleculeSize: c.Int("max-molecule-size"),
		DropReadID:      c.Bool("drop-readid"),
		DropSAM:         c.Bool("drop-sam"),
	}
	if s := c.String("comment-char"); s != "" {
		if len(s) != 1 {
			return fmt.Errorf("sam2pairsam: --comment-char must be exactly one byte, got %q", s)
		}
		cfg.CommentChar = s[0]
	}

	r, closeR, err := openInput(c.String("input"), c.Bool("mmap"))
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

	cl := &pairsam.Classifier{
		Config: cfg,
		Program: pairsam.Program{
			ID:      "sam2pairsam",
			Name:    c.String("program-name"),
			Command: strings.Join(os.Args, " "),
			Version: c.String("program-version"),
		},
	}
	if c.Bool("verbose") {
		cl.Debug = func(readID string, t pairsam.PairType, a1, a2 pairsam.Algn, sams1, sams2 [][]byte) {
			fmt.Fprintf(os.Stderr, "%s: %s\n", readID, t)
			fmt.Fprintln(os.Stderr, utter.Sdump(a1))
			fmt.Fprintln(os.Stderr, utter.Sdump(a2))
		}
	}

	err = cl.Run(r, w)
	return err
}

// openInput resolves --input into a readable stream, transparently
// decompressing a .xz or .gz path and optionally serving a named file
// through a memory-mapped reader for large inputs.
func openInput(path string, useMMap bool) (io.Reader, func() error, error) {
	if path == "-" || path == "" {
		return os.Stdin, func() error { return nil }, nil
	}

	if useMMap {
		m, err := mmap.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("sam2pairsam: opening %s: %w", path, err)
		}
		r := io.NewSectionReader(m, 0, int64(m.Len()))
		switch {
		case strings.HasSuffix(path, ".xz"):
			xr, err := xz.NewReader(r)
			if err != nil {
				m.Close()
				return nil, nil, fmt.Errorf("sam2pairsam: opening xz stream %s: %w", path, err)
			}
			return xr, m.Close, nil
		case strings.HasSuffix(path, ".gz"):
			gr, err := gzip.NewReader(r)
			if err != nil {
				m.Close()
				return nil, nil, fmt.Errorf("sam2pairsam: opening gzip stream %s: %w", path, err)
			}
			return gr, m.Close, nil
		}
		return r, m.Close, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("sam2pairsam: opening %s: %w", path, err)
	}
	switch {
	case strings.HasSuffix(path, ".xz"):
		xr, err := xz.NewReader(f)
		if err != nil {
			f.Close()
			return nil, nil, fmt.Errorf("sam2pairsam: opening xz stream %s: %w", path, err)
		}
		return xr, f.Close, nil
	case strings.HasSuffix(path, ".gz"):
		gr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, nil, fmt.Errorf("sam2pairsam: opening gzip stream %s: %w", path, err)
		}
		return gr, f.Close, nil
	}
	return f, f.Close, nil
}

// xzWriteCloser adapts xz.Writer, which needs Close to flush its
// trailing index, to the plain io.Closer callers expect.
type xzWriteCloser struct {
	*xz.Writer
	f *os.File
}

func (w *xzWriteCloser) Close() error {
	if err := w.Writer.Close(); err != nil {
		w.f.Close()
		return err
	}
	return w.f.Close()
}

// gzipWriteCloser adapts gzip.Writer, which needs Close to flush its
// trailer, to the plain io.Closer callers expect.
type gzipWriteCloser struct {
	*gzip.Writer
	f *os.File
}

func (w *gzipWriteCloser) Close() error {
	if err := w.Writer.Close(); err != nil {
		w.f.Close()
		return err
	}
	return w.f.Close()
}

func openOutput(path string) (io.Writer, func() error, error) {
	if path == "-" || path == "" {
		return os.Stdout, func() error { return nil }, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("sam2pairsam: creating %s: %w", path, err)
	}
	switch {
	case strings.HasSuffix(path, ".xz"):
		xw, err := xz.NewWriter(f)
		if err != nil {
			f.Close()
			return nil, nil, fmt.Errorf("sam2pairsam: opening xz stream %s: %w", path, err)
		}
		wc := &xzWriteCloser{Writer: xw, f: f}
		return wc, wc.Close, nil
	case strings.HasSuffix(path, ".gz"):
		wc := &gzipWriteCloser{Writer: gzip.NewWriter(f), f: f}
		return wc, wc.Close, nil
	}
	return f, f.Close, nil
}
