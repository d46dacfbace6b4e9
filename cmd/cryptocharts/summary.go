// Copyright 2025 The EasyExtensions Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"

	"github.com/aclements/go-gg/table"

	"github.com/bvdcode/cryptocharts/sweeptab"
)

// printSummary writes the console summary of a run: the best
// configuration and distribution statistics per operation, the
// decrypt advantage, and the best OpenSSL reference point when one
// was parsed.
func printSummary(w io.Writer, enc, dec, ref *table.Table) {
	fmt.Fprintf(w, "\nSummary:\n")
	if best, ok := sweeptab.Best(enc); ok {
		fmt.Fprintf(w, "  CottonCrypto Encrypt best: %.1f MB/s at %d threads, %gMB chunks\n",
			best.Throughput, best.Threads, best.ChunkMB)
	}
	if best, ok := sweeptab.Best(dec); ok {
		fmt.Fprintf(w, "  CottonCrypto Decrypt best: %.1f MB/s at %d threads, %gMB chunks\n",
			best.Throughput, best.Threads, best.ChunkMB)
	}

	encDist := sweeptab.Distribution(enc)
	decDist := sweeptab.Distribution(dec)
	fmt.Fprintf(w, "  Encrypt mean %.1f MB/s, median %.1f, stddev %.1f\n",
		encDist.Mean, encDist.Median, encDist.StdDev)
	fmt.Fprintf(w, "  Decrypt mean %.1f MB/s, median %.1f, stddev %.1f\n",
		decDist.Mean, decDist.Median, decDist.StdDev)
	if encDist.Mean > 0 {
		fmt.Fprintf(w, "  Decrypt advantage: %+.1f%%\n", (decDist.Mean/encDist.Mean-1)*100)
	}

	if block, tput, ok := sweeptab.ReferenceBest(ref); ok {
		fmt.Fprintf(w, "  OpenSSL best: %.1f MB/s at %d bytes buffer\n", tput, block)
	}
}
