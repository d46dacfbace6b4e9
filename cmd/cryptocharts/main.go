// Copyright 2025 The EasyExtensions Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Cryptocharts renders throughput charts and summaries from
// CottonCrypto encryption/decryption benchmark sweeps.
//
// Usage:
//
//	cryptocharts [options] [input.txt]
//
// The input file holds the plain-text output of the thread/chunk
// sweep benchmark, with an encryption and a decryption section:
//
//	=== ENCRYPTION THREAD/CHUNK SWEEP ===
//	Threads | Chunk MB | Avg MB/s
//	1 | 1 | 102.66
//	...
//	=== DECRYPTION THREAD/CHUNK SWEEP ===
//	...
//
// Cryptocharts writes up to four figures to the output directory:
// the core four-panel sweep figure, a six-panel analysis, a
// twelve-panel study, and, when OpenSSL "speed -evp" output is
// supplied with -openssl, a comparison against OpenSSL over buffer
// sizes. A textual summary of the run always goes to standard
// output; -html additionally writes an HTML report.
//
// With -store the parsed measurements are archived in a SQL database
// for run-over-run history, e.g.
//
//	cryptocharts -store results.db input.txt
//	cryptocharts -store user:pass@/cryptocharts -store-driver mysql input.txt
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	_ "github.com/go-sql-driver/mysql"

	"github.com/bvdcode/cryptocharts/internal/inputfile"
	"github.com/bvdcode/cryptocharts/osslfmt"
	"github.com/bvdcode/cryptocharts/sweepchart"
	"github.com/bvdcode/cryptocharts/sweepdb"
	_ "github.com/bvdcode/cryptocharts/sweepdb/sqlite3"
	"github.com/bvdcode/cryptocharts/sweepfmt"
	"github.com/bvdcode/cryptocharts/sweeptab"
)

var exit = os.Exit // replaced during testing

func usage() {
	fmt.Fprintf(os.Stderr, "usage: cryptocharts [options] [input.txt]\n")
	fmt.Fprintf(os.Stderr, "options:\n")
	flag.PrintDefaults()
	exit(2)
}

var (
	flagOpenSSL     = flag.String("openssl", "input-openssl.txt", "compare against OpenSSL speed output in `file`")
	flagOut         = flag.String("out", ".", "write chart images to `dir`")
	flagDPI         = flag.Int("dpi", 300, "raster image `resolution` in dots per inch")
	flagFormats     = flag.String("formats", "png", "comma-separated image `formats`: png, svg, pdf")
	flagCharts      = flag.String("charts", "all", "comma-separated `charts` to render: sweep, analysis, mega, comparison, or all")
	flagHTML        = flag.String("html", "", "write an HTML report to `file`")
	flagStore       = flag.String("store", "", "archive the parsed run in the database at `dsn`")
	flagStoreDriver = flag.String("store-driver", "sqlite3", "database `driver` for -store: sqlite3 or mysql")
)

// parseCharts expands the -charts flag into a set of figure names.
func parseCharts(s string) (map[string]bool, bool) {
	known := map[string]bool{"sweep": true, "analysis": true, "mega": true, "comparison": true}
	set := make(map[string]bool)
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)
		if name == "all" {
			for k := range known {
				set[k] = true
			}
			continue
		}
		if !known[name] {
			return nil, false
		}
		set[name] = true
	}
	return set, true
}

func main() {
	log.SetPrefix("cryptocharts: ")
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() > 1 {
		flag.Usage()
	}
	input := "input.txt"
	if flag.NArg() == 1 {
		input = flag.Arg(0)
	}
	charts, ok := parseCharts(*flagCharts)
	if !ok {
		flag.Usage()
	}

	enc, dec, err := sweepfmt.ParseFile(input)
	if err != nil {
		if inputfile.IsMissing(err) {
			log.Printf("input not found: %s", input)
			exit(1)
		}
		log.Fatal(err)
	}
	if enc.Empty() || dec.Empty() {
		log.Printf("no sweep data found in %s", input)
		exit(2)
	}
	fmt.Printf("Loaded data: enc=%d rows, dec=%d rows\n", len(enc.Rows), len(dec.Rows))

	var ossl osslfmt.Table
	if *flagOpenSSL != "" {
		ossl, err = osslfmt.ParseFile(*flagOpenSSL)
		switch {
		case inputfile.IsMissing(err):
			log.Printf("OpenSSL input not found, skipping comparison: %s", *flagOpenSSL)
		case err != nil:
			log.Fatal(err)
		default:
			fmt.Printf("Loaded OpenSSL data: %d points\n", len(ossl.Rows))
		}
	}

	encTab := sweeptab.Sweep(enc)
	decTab := sweeptab.Sweep(dec)
	refTab := sweeptab.Reference(ossl)

	var formats []string
	for _, format := range strings.Split(*flagFormats, ",") {
		if format = strings.TrimSpace(format); format != "" {
			formats = append(formats, format)
		}
	}
	o := sweepchart.Options{Dir: *flagOut, DPI: *flagDPI, Formats: formats}

	render := func(name string, f func() error) {
		if !charts[name] {
			return
		}
		if err := f(); err != nil {
			log.Fatalf("rendering %s: %v", name, err)
		}
	}
	render("sweep", func() error { return sweepchart.Sweep(encTab, decTab, o) })
	render("analysis", func() error { return sweepchart.Analysis(encTab, decTab, o) })
	render("mega", func() error { return sweepchart.Mega(encTab, decTab, o) })
	if !ossl.Empty() {
		render("comparison", func() error { return sweepchart.Comparison(encTab, decTab, refTab, o) })
	}

	printSummary(os.Stdout, encTab, decTab, refTab)

	if *flagHTML != "" {
		f, err := os.Create(*flagHTML)
		if err != nil {
			log.Fatal(err)
		}
		if err := writeReport(f, newReport(input, enc, dec, ossl)); err != nil {
			log.Fatalf("writing report: %v", err)
		}
		if err := f.Close(); err != nil {
			log.Fatal(err)
		}
	}

	if *flagStore != "" {
		storeRun(context.Background(), input, enc, dec, ossl)
	}
}

func storeRun(ctx context.Context, input string, enc, dec sweepfmt.Table, ossl osslfmt.Table) {
	db, err := sweepdb.OpenSQL(*flagStoreDriver, *flagStore)
	if err != nil {
		log.Fatalf("opening archive: %v", err)
	}
	defer db.Close()

	run, err := db.NewRun(ctx, input)
	if err != nil {
		log.Fatalf("archiving run: %v", err)
	}
	if err := run.InsertSweep(ctx, enc); err != nil {
		log.Fatalf("archiving run: %v", err)
	}
	if err := run.InsertSweep(ctx, dec); err != nil {
		log.Fatalf("archiving run: %v", err)
	}
	if !ossl.Empty() {
		if err := run.InsertReference(ctx, ossl); err != nil {
			log.Fatalf("archiving run: %v", err)
		}
	}
	fmt.Printf("Archived run %s\n", run.ID)
}
