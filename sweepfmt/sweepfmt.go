// Copyright 2025 The EasyExtensions Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sweepfmt parses the text reports produced by the
// CottonCrypto thread/chunk sweep benchmark.
//
// A report contains one named section per operation, delimited by
// "==="-prefixed marker lines:
//
//	=== ENCRYPTION THREAD/CHUNK SWEEP ===
//	1 | 4 | 120.5
//	2 | 4 | 230.1
//	=== DECRYPTION THREAD/CHUNK SWEEP ===
//	1 | 4 | 150.0
//
// Within a section, every occurrence of "<int> | <number> | <number>"
// becomes a measurement row (threads, chunk size in MB, throughput in
// MB/s). Lines that do not match are ignored. A section whose marker
// is absent, or that contains no matching rows, parses to an empty
// table rather than an error; callers must check emptiness before
// computing aggregates.
package sweepfmt

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/bvdcode/cryptocharts/internal/inputfile"
)

// An Op identifies the benchmarked operation a table belongs to.
type Op string

const (
	Encryption Op = "encryption"
	Decryption Op = "decryption"
)

// Markers of the two standard sweep sections.
const (
	EncryptionMarker = "=== ENCRYPTION THREAD/CHUNK SWEEP ==="
	DecryptionMarker = "=== DECRYPTION THREAD/CHUNK SWEEP ==="
)

// A Row is a single sweep measurement. Rows are never mutated after
// parsing.
type Row struct {
	// Threads is the worker thread count of the configuration.
	Threads int
	// ChunkMB is the per-thread buffer size in megabytes.
	ChunkMB float64
	// Throughput is the measured rate in MB/s.
	Throughput float64
}

// A Table is the ordered sequence of rows parsed from one section.
// Duplicate (Threads, ChunkMB) configurations are preserved, not
// merged; callers aggregate as needed.
type Table struct {
	Op   Op
	Rows []Row
}

// Empty reports whether the table holds no measurements.
func (t *Table) Empty() bool { return len(t.Rows) == 0 }

// rowPat matches one measurement triplet anywhere in a line, with
// permissive whitespace around the pipes. Multiple triplets per line
// are all extracted.
var rowPat = regexp.MustCompile(`(\d+)\s*\|\s*([\d.]+)\s*\|\s*([\d.]+)`)

// sectionPrefix delimits sections: any line beginning with it either
// opens a known section or closes the current one.
const sectionPrefix = "==="

// normalizeMarker collapses runs of whitespace so that marker
// comparison tolerates extra spacing around and inside the header.
func normalizeMarker(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ParseSections scans r for the given section markers and returns one
// table per marker, in the order the markers were given. Each table
// accumulates, in encounter order, every row found between its marker
// and the next "==="-prefixed line (or end of input). Marker lookup is
// independent per marker: a marker that never appears simply yields
// an empty table.
func ParseSections(r io.Reader, markers ...string) ([]Table, error) {
	tables := make([]Table, len(markers))
	index := make(map[string]int, len(markers))
	for i, m := range markers {
		index[normalizeMarker(m)] = i
	}

	cur := -1 // index of the open section, or -1
	s := bufio.NewScanner(r)
	for s.Scan() {
		line := s.Text()
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, sectionPrefix) {
			if i, ok := index[normalizeMarker(trimmed)]; ok {
				cur = i
			} else {
				cur = -1
			}
			continue
		}
		if cur < 0 {
			continue
		}
		for _, m := range rowPat.FindAllStringSubmatch(line, -1) {
			row, ok := parseRow(m)
			if !ok {
				continue
			}
			tables[cur].Rows = append(tables[cur].Rows, row)
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("scanning report: %w", err)
	}
	return tables, nil
}

// parseRow converts the three captured fields of a triplet match.
// Malformed numbers (for example a bare ".") reject the row.
func parseRow(m []string) (Row, bool) {
	threads, err := strconv.Atoi(m[1])
	if err != nil {
		return Row{}, false
	}
	chunk, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return Row{}, false
	}
	tput, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return Row{}, false
	}
	return Row{Threads: threads, ChunkMB: chunk, Throughput: tput}, true
}

// Parse reads a sweep report from r and returns the encryption and
// decryption tables. Either table may be empty; that is not an error.
func Parse(r io.Reader) (enc, dec Table, err error) {
	tables, err := ParseSections(r, EncryptionMarker, DecryptionMarker)
	if err != nil {
		return Table{Op: Encryption}, Table{Op: Decryption}, err
	}
	enc, dec = tables[0], tables[1]
	enc.Op, dec.Op = Encryption, Decryption
	return enc, dec, nil
}

// ParseFile reads the sweep report at path. If the file does not
// exist, the error is a *inputfile.MissingError so the caller can
// report it distinctly.
func ParseFile(path string) (enc, dec Table, err error) {
	data, err := inputfile.Read(path)
	if err != nil {
		return Table{Op: Encryption}, Table{Op: Decryption}, err
	}
	return Parse(bytes.NewReader(data))
}
