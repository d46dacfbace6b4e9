// Copyright 2025 The EasyExtensions Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweepfmt

import (
	"fmt"
	"io"
	"strconv"
)

// Marker returns the section marker for op, or "" for an unknown op.
func Marker(op Op) string {
	switch op {
	case Encryption:
		return EncryptionMarker
	case Decryption:
		return DecryptionMarker
	}
	return ""
}

// WriteTable writes t in the sweep report format: the section marker
// for t.Op followed by one triplet line per row. Parsing the output
// reproduces t row for row.
func WriteTable(w io.Writer, t Table) error {
	if m := Marker(t.Op); m != "" {
		if _, err := fmt.Fprintln(w, m); err != nil {
			return err
		}
	}
	for _, r := range t.Rows {
		_, err := fmt.Fprintf(w, "%d | %s | %s\n",
			r.Threads, formatNum(r.ChunkMB), formatNum(r.Throughput))
		if err != nil {
			return err
		}
	}
	return nil
}

// formatNum prints a chunk size or throughput with the shortest
// representation that round-trips.
func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
