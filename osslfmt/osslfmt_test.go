// Copyright 2025 The EasyExtensions Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package osslfmt

import (
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bvdcode/cryptocharts/internal/inputfile"
)

func TestParseSummary(t *testing.T) {
	in := `version: 3.0.2
The 'numbers' are in 1000s of bytes per second processed.
type             16 bytes     64 bytes
AES-128-GCM     103872.58k   205000.00k
`
	tab, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	want := []Row{
		{16, 103.87258, "AES-128-GCM"},
		{64, 205.0, "AES-128-GCM"},
	}
	if len(tab.Rows) != len(want) {
		t.Fatalf("rows = %v, want %v", tab.Rows, want)
	}
	for i, w := range want {
		got := tab.Rows[i]
		if got.BlockBytes != w.BlockBytes || got.Label != w.Label ||
			math.Abs(got.ThroughputMBps-w.ThroughputMBps) > 1e-9 {
			t.Errorf("row %d = %v, want %v", i, got, w)
		}
	}
}

func TestParseSummaryTruncatesMismatch(t *testing.T) {
	in := `type             16 bytes     64 bytes    256 bytes
AES-128-GCM     103872.58k   205000.00k
`
	tab, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if len(tab.Rows) != 2 {
		t.Fatalf("rows = %v, want 2 rows", tab.Rows)
	}
	if tab.Rows[1].BlockBytes != 64 {
		t.Errorf("last block = %d, want 64", tab.Rows[1].BlockBytes)
	}
}

func TestParseProgressFallback(t *testing.T) {
	in := `Doing AES-128-GCM ops for 3s on 1024 size blocks: 2929111 AES-128-GCM ops in 3.00s
Doing AES-128-GCM ops for 3s on 16 size blocks: 19070356 AES-128-GCM ops in 2.94s
`
	tab, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if len(tab.Rows) != 2 {
		t.Fatalf("rows = %v, want 2 rows", tab.Rows)
	}
	// Sorted ascending by block size.
	if tab.Rows[0].BlockBytes != 16 || tab.Rows[1].BlockBytes != 1024 {
		t.Errorf("block order = %d, %d, want 16, 1024", tab.Rows[0].BlockBytes, tab.Rows[1].BlockBytes)
	}
	want := 19070356.0 * 16 / 2.94 / 1e6
	if got := tab.Rows[0].ThroughputMBps; math.Abs(got-want) > 1e-9 {
		t.Errorf("throughput = %v, want %v", got, want)
	}
	if tab.Rows[0].Label != "AES-128-GCM" {
		t.Errorf("label = %q, want AES-128-GCM", tab.Rows[0].Label)
	}
}

func TestParseSummaryTakesPrecedence(t *testing.T) {
	in := `Doing AES-128-GCM ops for 3s on 16 size blocks: 19070356 AES-128-GCM ops in 2.94s
type             16 bytes
AES-128-GCM     103872.58k
`
	tab, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if len(tab.Rows) != 1 {
		t.Fatalf("rows = %v, want 1 summary row", tab.Rows)
	}
	got := tab.Rows[0]
	if got.BlockBytes != 16 || math.Abs(got.ThroughputMBps-103.87258) > 1e-9 {
		t.Errorf("row = %v, want the summary-table value, not the progress-line value", got)
	}
}

func TestParseUnrecognized(t *testing.T) {
	tab, err := Parse(strings.NewReader("nothing to see here\n"))
	if err != nil {
		t.Fatal(err)
	}
	if !tab.Empty() {
		t.Errorf("rows = %v, want empty", tab.Rows)
	}
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "nope.txt"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !inputfile.IsMissing(err) {
		t.Errorf("error %v is not a missing-input error", err)
	}
}
