// Copyright ©2020 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pairsam

import (
	"bytes"
	"fmt"
	"strings"
)

// Program represents the single @PG header line this package injects
// to record its own provenance in the pairsam header. It is a
// deliberately narrower cousin of biogo/hts/sam.Program: pairsam never
// needs to parse or round-trip an arbitrary collection of @PG records,
// only to append one.
type Program struct {
	ID       string
	Name     string
	Command  string
	Previous string
	Version  string
}

// String returns the @PG line for p, in the tag order ID, PN, CL, PP, VN.
// A tag whose value is empty is omitted.
func (p Program) String() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "@PG\tID:%s", p.ID)
	if p.Name != "" {
		fmt.Fprintf(&buf, "\tPN:%s", p.Name)
	}
	if p.Command != "" {
		fmt.Fprintf(&buf, "\tCL:%s", p.Command)
	}
	if p.Previous != "" {
		fmt.Fprintf(&buf, "\tPP:%s", p.Previous)
	}
	if p.Version != "" {
		fmt.Fprintf(&buf, "\tVN:%s", p.Version)
	}
	return buf.String()
}

// lastProgramID returns the ID tag of the last @PG line in lines, or
// the empty string if none is present. A missing @PG chain is
// non-fatal: the caller simply appends its own @PG without a PP
// linkage.
func lastProgramID(lines []string) string {
	var id string
	for _, l := range lines {
		if !strings.HasPrefix(l, "@PG\t") {
			continue
		}
		for _, f := range strings.Split(l, "\t")[1:] {
			if strings.HasPrefix(f, "ID:") {
				id = f[len("ID:"):]
			}
		}
	}
	return id
}

// AppendProgram returns a copy of lines with prog's @PG line appended
// after all existing header lines, chaining prog.Previous onto the ID
// of the last existing @PG record if one is present and prog.Previous
// was not already set by the caller.
func AppendProgram(lines []string, prog Program) []string {
	if prog.Previous == "" {
		prog.Previous = lastProgramID(lines)
	}
	out := make([]string, len(lines), len(lines)+1)
	copy(out, lines)
	return append(out, prog.String())
}
