// Copyright ©2020 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestSelectByPairType(t *testing.T) {
	input := "@HD\tVN:1.6\n" +
		"r1\vchr1\vchr1\v100\v200\v+\v-\vLL\vsam1\vsam2\v\n" +
		"r2\v!\v!\v0\v0\v-\v-\vNN\v.\v.\v\n"

	var out bytes.Buffer
	err := Select(strings.NewReader(input), &out, fieldPairType, map[string]bool{"LL": true})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "@HD") {
		t.Errorf("header line dropped: %q", got)
	}
	if !strings.HasPrefix(got[strings.Index(got, "\n")+1:], "r1") {
		t.Errorf("expected r1 record to survive: %q", got)
	}
	if strings.Contains(got, "r2") {
		t.Errorf("r2 record should have been filtered out: %q", got)
	}
}

func TestSelectByChrom(t *testing.T) {
	input := "r1\vchr1\vchr2\v100\v200\v+\v-\vLL\vsam1\vsam2\v\n" +
		"r2\vchr3\vchr4\v100\v200\v+\v-\vLL\vsam1\vsam2\v\n"

	var out bytes.Buffer
	err := Select(strings.NewReader(input), &out, fieldChrom1, map[string]bool{"chr1": true})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if !strings.HasPrefix(out.String(), "r1") {
		t.Errorf("expected only r1 to survive: %q", out.String())
	}
}
