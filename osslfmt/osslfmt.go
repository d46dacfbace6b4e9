// Copyright 2025 The EasyExtensions Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package osslfmt parses the output of "openssl speed -evp", used as
// an external reference for the CottonCrypto sweep results.
//
// Two shapes are recognized. The summary table printed at the end of
// a run is the primary one:
//
//	type             16 bytes     64 bytes    256 bytes
//	AES-128-GCM     103872.58k   205000.00k   310000.00k
//
// where the values are thousands of bytes per second. When the
// summary table is absent (for example when only the progress lines
// were captured), the per-block progress lines are used instead:
//
//	Doing AES-128-GCM ops for 3s on 16 size blocks: 19070356 AES-128-GCM ops in 2.94s
//
// Either way the result is a table of decimal MB/s per block size.
// Input matching neither shape yields an empty table, not an error.
package osslfmt

import (
	"bufio"
	"bytes"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/bvdcode/cryptocharts/internal/inputfile"
)

// A Row is one reference measurement.
type Row struct {
	// BlockBytes is the buffer size the tool operated on, in bytes.
	BlockBytes int
	// ThroughputMBps is the measured rate in decimal MB/s
	// (1 MB = 1,000,000 bytes).
	ThroughputMBps float64
	// Label names the cipher the row was measured for.
	Label string
}

// A Table is an ordered sequence of reference rows.
type Table struct {
	Rows []Row
}

// Empty reports whether the table holds no measurements.
func (t *Table) Empty() bool { return len(t.Rows) == 0 }

var (
	// headerPat matches the summary table header: the literal "type"
	// followed by one or more "<N> bytes" column labels.
	headerPat = regexp.MustCompile(`^type((?:\s+\d+\s+bytes)+)\s*$`)
	sizePat   = regexp.MustCompile(`(\d+)\s+bytes`)
	// kvalPat matches one "<V>k" cell of a summary data line.
	kvalPat = regexp.MustCompile(`^([\d.]+)k$`)
	// blockPat matches one progress line. Case-insensitive because
	// openssl builds differ in capitalization.
	blockPat = regexp.MustCompile(`(?i)on\s+(\d+)\s+size blocks:\s*(\d+)\s+(.*?)\s+ops in\s+([\d.]+)s`)
)

// Parse reads reference-tool output from r. The summary header/row
// shape is primary; the progress-line fallback applies only when no
// summary table is present.
func Parse(r io.Reader) (Table, error) {
	var lines []string
	s := bufio.NewScanner(r)
	for s.Scan() {
		lines = append(lines, s.Text())
	}
	if err := s.Err(); err != nil {
		return Table{}, err
	}

	if t, ok := parseSummary(lines); ok {
		return t, nil
	}
	return parseProgress(lines), nil
}

// parseSummary extracts the header sizes and the first data line
// whose cells are all k-suffixed values. The two are zipped
// positionally; a length mismatch truncates to the shorter side.
func parseSummary(lines []string) (Table, bool) {
	sizes := []int(nil)
	start := -1
	for i, line := range lines {
		m := headerPat.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		for _, sm := range sizePat.FindAllStringSubmatch(m[1], -1) {
			n, err := strconv.Atoi(sm[1])
			if err != nil {
				continue
			}
			sizes = append(sizes, n)
		}
		start = i + 1
		break
	}
	if start < 0 || len(sizes) == 0 {
		return Table{}, false
	}

	for _, line := range lines[start:] {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		label := fields[0]
		var vals []float64
		ok := true
		for _, f := range fields[1:] {
			m := kvalPat.FindStringSubmatch(f)
			if m == nil {
				ok = false
				break
			}
			v, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				ok = false
				break
			}
			vals = append(vals, v)
		}
		if !ok || len(vals) == 0 {
			continue
		}

		n := len(sizes)
		if len(vals) < n {
			n = len(vals)
		}
		var t Table
		for i := 0; i < n; i++ {
			t.Rows = append(t.Rows, Row{
				BlockBytes: sizes[i],
				// k-values are thousands of bytes per second.
				ThroughputMBps: vals[i] / 1000,
				Label:          label,
			})
		}
		return t, true
	}
	return Table{}, false
}

// parseProgress scans the free-form "Doing ... size blocks" lines and
// computes throughput from the operation count, block size, and
// elapsed time. Rows are sorted by block size ascending.
func parseProgress(lines []string) Table {
	var t Table
	for _, line := range lines {
		m := blockPat.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		block, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		ops, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		secs, err := strconv.ParseFloat(m[4], 64)
		if err != nil || secs == 0 {
			continue
		}
		t.Rows = append(t.Rows, Row{
			BlockBytes:     block,
			ThroughputMBps: float64(ops) * float64(block) / secs / 1e6,
			Label:          m[3],
		})
	}
	sort.SliceStable(t.Rows, func(i, j int) bool {
		return t.Rows[i].BlockBytes < t.Rows[j].BlockBytes
	})
	return t
}

// ParseFile reads the reference report at path. A missing file yields
// a *inputfile.MissingError.
func ParseFile(path string) (Table, error) {
	data, err := inputfile.Read(path)
	if err != nil {
		return Table{}, err
	}
	return Parse(bytes.NewReader(data))
}
