// Copyright 2025 The EasyExtensions Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bvdcode/cryptocharts/osslfmt"
	"github.com/bvdcode/cryptocharts/sweepfmt"
	"github.com/bvdcode/cryptocharts/sweeptab"
)

var (
	testEnc = sweepfmt.Table{Op: sweepfmt.Encryption, Rows: []sweepfmt.Row{
		{Threads: 1, ChunkMB: 1, Throughput: 100},
		{Threads: 16, ChunkMB: 32, Throughput: 1405.5},
	}}
	testDec = sweepfmt.Table{Op: sweepfmt.Decryption, Rows: []sweepfmt.Row{
		{Threads: 1, ChunkMB: 1, Throughput: 120},
		{Threads: 16, ChunkMB: 32, Throughput: 1601.25},
	}}
	testOSSL = osslfmt.Table{Rows: []osslfmt.Row{
		{BlockBytes: 16, ThroughputMBps: 103.9, Label: "OpenSSL AES-128-GCM"},
		{BlockBytes: 16384, ThroughputMBps: 2400.8, Label: "OpenSSL AES-128-GCM"},
	}}
)

func TestParseCharts(t *testing.T) {
	tests := []struct {
		in   string
		want []string
		ok   bool
	}{
		{"all", []string{"sweep", "analysis", "mega", "comparison"}, true},
		{"sweep", []string{"sweep"}, true},
		{"sweep, comparison", []string{"sweep", "comparison"}, true},
		{"sweep,bogus", nil, false},
		{"", nil, false},
	}
	for _, test := range tests {
		set, ok := parseCharts(test.in)
		if ok != test.ok {
			t.Errorf("parseCharts(%q) ok = %v, want %v", test.in, ok, test.ok)
			continue
		}
		if !ok {
			continue
		}
		if len(set) != len(test.want) {
			t.Errorf("parseCharts(%q) = %v, want %v", test.in, set, test.want)
			continue
		}
		for _, name := range test.want {
			if !set[name] {
				t.Errorf("parseCharts(%q) missing %q", test.in, name)
			}
		}
	}
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, sweeptab.Sweep(testEnc), sweeptab.Sweep(testDec), sweeptab.Reference(testOSSL))
	out := buf.String()
	for _, want := range []string{
		"Encrypt best: 1405.5 MB/s at 16 threads, 32MB chunks",
		"Decrypt best: 1601.2 MB/s at 16 threads, 32MB chunks",
		"Decrypt advantage: +",
		"OpenSSL best: 2400.8 MB/s at 16384 bytes buffer",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q in:\n%s", want, out)
		}
	}
}

func TestPrintSummaryNoReference(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, sweeptab.Sweep(testEnc), sweeptab.Sweep(testDec), sweeptab.Reference(osslfmt.Table{}))
	if strings.Contains(buf.String(), "OpenSSL") {
		t.Errorf("summary mentions OpenSSL without reference data:\n%s", buf.String())
	}
}

func TestWriteReport(t *testing.T) {
	var buf bytes.Buffer
	if err := writeReport(&buf, newReport("input.txt", testEnc, testDec, testOSSL)); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"<title>CottonCrypto Performance Report</title>",
		"Input: input.txt",
		"<h2>Encryption</h2>",
		"<h2>Decryption</h2>",
		"<h2>OpenSSL Reference</h2>",
		"<td>16<td>32<td>1405.50",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestWriteReportNoReference(t *testing.T) {
	var buf bytes.Buffer
	if err := writeReport(&buf, newReport("input.txt", testEnc, testDec, osslfmt.Table{})); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "OpenSSL Reference") {
		t.Error("report has a reference section without reference data")
	}
}
