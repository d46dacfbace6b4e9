// Copyright 2025 The EasyExtensions Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweepchart

import (
	"github.com/aclements/go-gg/table"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg/draw"
)

// Figure file base names, one image per configured format.
const (
	SweepName      = "library_performance"
	AnalysisName   = "advanced_performance_analysis"
	MegaName       = "mega_performance_analysis"
	ComparisonName = "openssl_comparison"
)

// Sweep writes the core four-panel figure: throughput against chunk
// size and against thread count, for both operations.
func Sweep(enc, dec *table.Table, o Options) error {
	p1, err := threadLines(enc, "Encryption: Throughput vs Chunk Size", draw.CircleGlyph{})
	if err != nil {
		return err
	}
	p2, err := threadLines(dec, "Decryption: Throughput vs Chunk Size", draw.BoxGlyph{})
	if err != nil {
		return err
	}
	p3, err := chunkLines(enc, "Encryption: Throughput vs Threads", draw.CircleGlyph{})
	if err != nil {
		return err
	}
	p4, err := chunkLines(dec, "Decryption: Throughput vs Threads", draw.BoxGlyph{})
	if err != nil {
		return err
	}
	return o.writeFigure(SweepName, [][]*plot.Plot{
		{p1, p2},
		{p3, p4},
	})
}

// Analysis writes the six-panel figure: the four sweep panels plus
// per-thread maxima and scaling against the single-thread baseline.
func Analysis(enc, dec *table.Table, o Options) error {
	p1, err := threadLines(enc, "Encryption: Throughput vs Chunk Size", draw.CircleGlyph{})
	if err != nil {
		return err
	}
	p2, err := threadLines(dec, "Decryption: Throughput vs Chunk Size", draw.BoxGlyph{})
	if err != nil {
		return err
	}
	p3, err := chunkLines(enc, "Encryption: Throughput vs Threads", draw.CircleGlyph{})
	if err != nil {
		return err
	}
	p4, err := chunkLines(dec, "Decryption: Throughput vs Threads", draw.BoxGlyph{})
	if err != nil {
		return err
	}
	p5, err := maxBars(enc, dec)
	if err != nil {
		return err
	}
	p6, err := scalingLines(enc, dec)
	if err != nil {
		return err
	}
	return o.writeFigure(AnalysisName, [][]*plot.Plot{
		{p1, p2},
		{p3, p4},
		{p5, p6},
	})
}

// Mega writes the full twelve-panel study.
func Mega(enc, dec *table.Table, o Options) error {
	p1, err := threadLines(enc, "Encrypt: Throughput vs Chunks", draw.CircleGlyph{})
	if err != nil {
		return err
	}
	p2, err := threadLines(dec, "Decrypt: Throughput vs Chunks", draw.BoxGlyph{})
	if err != nil {
		return err
	}
	p3, err := chunkLines(enc, "Encrypt: Throughput vs Threads", draw.CircleGlyph{})
	if err != nil {
		return err
	}
	p4, err := chunkLines(dec, "Decrypt: Throughput vs Threads", draw.BoxGlyph{})
	if err != nil {
		return err
	}
	p5, err := heatPanel(enc, dec)
	if err != nil {
		return err
	}
	p6, err := meanStdBars(enc, dec)
	if err != nil {
		return err
	}
	p7, err := boxPanel(enc, dec)
	if err != nil {
		return err
	}
	p8, err := efficiencyLines(enc, dec)
	if err != nil {
		return err
	}
	p9, err := ratioPanel(enc, dec)
	if err != nil {
		return err
	}
	p10, err := zonesPanel(enc, dec)
	if err != nil {
		return err
	}
	p11, err := recommendationsPanel(enc, dec)
	if err != nil {
		return err
	}
	p12, err := sharePanel(enc, dec)
	if err != nil {
		return err
	}
	return o.writeFigure(MegaName, [][]*plot.Plot{
		{p1, p2, p3},
		{p4, p5, p6},
		{p7, p8, p9},
		{p10, p11, p12},
	})
}

// Comparison writes the single-panel reference comparison figure.
func Comparison(enc, dec, ref *table.Table, o Options) error {
	p, err := comparisonPanel(enc, dec, ref)
	if err != nil {
		return err
	}
	return o.writeFigure(ComparisonName, [][]*plot.Plot{{p}})
}
