// Copyright 2025 The EasyExtensions Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"html/template"
	"io"

	"github.com/bvdcode/cryptocharts/osslfmt"
	"github.com/bvdcode/cryptocharts/sweepfmt"
	"github.com/bvdcode/cryptocharts/sweeptab"
)

// A report is the data rendered into the HTML report.
type report struct {
	Input   string
	Ops     []opReport
	OpenSSL []osslfmt.Row
}

type opReport struct {
	Name string
	Rows []sweepfmt.Row
	Best sweepfmt.Row
	Dist sweeptab.Dist
}

func newReport(input string, enc, dec sweepfmt.Table, ossl osslfmt.Table) *report {
	op := func(t sweepfmt.Table) opReport {
		tab := sweeptab.Sweep(t)
		best, _ := sweeptab.Best(tab)
		return opReport{
			Name: string(t.Op),
			Rows: t.Rows,
			Best: best,
			Dist: sweeptab.Distribution(tab),
		}
	}
	return &report{
		Input:   input,
		Ops:     []opReport{op(enc), op(dec)},
		OpenSSL: ossl.Rows,
	}
}

var reportTemplate = template.Must(template.New("").Parse(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>CottonCrypto Performance Report</title>
<style>
.sweep { border-collapse: collapse; }
.sweep th { text-align: left; border-top: 1px solid #666; border-bottom: 1px solid #ccc; }
.sweep td { text-align: right; padding: 0em 1em; }
</style>
</head>
<body>
<h1>CottonCrypto Performance Report</h1>
<p>Input: {{.Input}}</p>
{{range .Ops}}
<h2>{{.Name}}</h2>
<p>Best {{printf "%.1f" .Best.Throughput}} MB/s at {{.Best.Threads}} threads, {{.Best.ChunkMB}}MB chunks.
Mean {{printf "%.1f" .Dist.Mean}} MB/s, median {{printf "%.1f" .Dist.Median}}, stddev {{printf "%.1f" .Dist.StdDev}}.</p>
<table class='sweep'>
<tr><th>Threads<th>Chunk (MB)<th>Throughput (MB/s)
{{range .Rows -}}
<tr><td>{{.Threads}}<td>{{.ChunkMB}}<td>{{printf "%.2f" .Throughput}}
{{end -}}
</table>
{{end}}
{{if .OpenSSL}}
<h2>OpenSSL Reference</h2>
<table class='sweep'>
<tr><th>Label<th>Block (bytes)<th>Throughput (MB/s)
{{range .OpenSSL -}}
<tr><td>{{.Label}}<td>{{.BlockBytes}}<td>{{printf "%.2f" .ThroughputMBps}}
{{end -}}
</table>
{{end}}
</body>
</html>
`))

// writeReport renders the HTML report to w.
func writeReport(w io.Writer, r *report) error {
	return reportTemplate.Execute(w, r)
}
