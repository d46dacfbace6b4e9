// Copyright 2025 The EasyExtensions Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweeptab

import (
	"math"
	"reflect"
	"testing"

	"github.com/bvdcode/cryptocharts/osslfmt"
	"github.com/bvdcode/cryptocharts/sweepfmt"
)

func sweep(rows ...sweepfmt.Row) sweepfmt.Table {
	return sweepfmt.Table{Op: sweepfmt.Encryption, Rows: rows}
}

var encTab = sweep(
	sweepfmt.Row{Threads: 1, ChunkMB: 1, Throughput: 100},
	sweepfmt.Row{Threads: 1, ChunkMB: 4, Throughput: 120},
	sweepfmt.Row{Threads: 2, ChunkMB: 1, Throughput: 180},
	sweepfmt.Row{Threads: 2, ChunkMB: 4, Throughput: 220},
	sweepfmt.Row{Threads: 4, ChunkMB: 1, Throughput: 300},
	sweepfmt.Row{Threads: 4, ChunkMB: 4, Throughput: 360},
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func approxSlice(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !approx(a[i], b[i]) {
			return false
		}
	}
	return true
}

func TestSweepRoundTrip(t *testing.T) {
	tab := Sweep(encTab)
	if got := Rows(tab); !reflect.DeepEqual(got, encTab.Rows) {
		t.Errorf("Rows = %v, want %v", got, encTab.Rows)
	}
}

func TestUniques(t *testing.T) {
	tab := Sweep(encTab)
	if got, want := Threads(tab), []int{1, 2, 4}; !reflect.DeepEqual(got, want) {
		t.Errorf("Threads = %v, want %v", got, want)
	}
	if got, want := Chunks(tab), []float64{1, 4}; !reflect.DeepEqual(got, want) {
		t.Errorf("Chunks = %v, want %v", got, want)
	}
	if got, want := MidChunk(tab), 4.0; got != want {
		t.Errorf("MidChunk = %v, want %v", got, want)
	}
}

func TestEmptyTable(t *testing.T) {
	tab := Sweep(sweepfmt.Table{})
	if Threads(tab) != nil || Chunks(tab) != nil || Rows(tab) != nil {
		t.Error("expected nil results for empty table")
	}
	if _, ok := Best(tab); ok {
		t.Error("Best reported ok for empty table")
	}
	if _, _, ok := Speedups(tab, 1); ok {
		t.Error("Speedups reported ok for empty table")
	}
	if d := Distribution(tab); d != (Dist{}) {
		t.Errorf("Distribution = %+v, want zero", d)
	}
}

func TestSeries(t *testing.T) {
	tab := Sweep(encTab)

	chunks, tputs := ThreadSeries(tab, 2)
	if !approxSlice(chunks, []float64{1, 4}) || !approxSlice(tputs, []float64{180, 220}) {
		t.Errorf("ThreadSeries(2) = %v, %v", chunks, tputs)
	}

	threads, tputs := ChunkSeries(tab, 1)
	if !reflect.DeepEqual(threads, []int{1, 2, 4}) || !approxSlice(tputs, []float64{100, 180, 300}) {
		t.Errorf("ChunkSeries(1) = %v, %v", threads, tputs)
	}

	if chunks, tputs := ThreadSeries(tab, 99); chunks != nil || tputs != nil {
		t.Errorf("ThreadSeries(99) = %v, %v, want nil", chunks, tputs)
	}
}

func TestBest(t *testing.T) {
	best, ok := Best(Sweep(encTab))
	want := sweepfmt.Row{Threads: 4, ChunkMB: 4, Throughput: 360}
	if !ok || best != want {
		t.Errorf("Best = %v, %v, want %v, true", best, ok, want)
	}
}

func TestAggregates(t *testing.T) {
	tab := Sweep(encTab)

	threads, max := MaxByThreads(tab)
	if !reflect.DeepEqual(threads, []int{1, 2, 4}) || !approxSlice(max, []float64{120, 220, 360}) {
		t.Errorf("MaxByThreads = %v, %v", threads, max)
	}

	threads, mean := MeanByThreads(tab)
	if !reflect.DeepEqual(threads, []int{1, 2, 4}) || !approxSlice(mean, []float64{110, 200, 330}) {
		t.Errorf("MeanByThreads = %v, %v", threads, mean)
	}

	chunks, tputs := BestPerChunk(tab)
	if !approxSlice(chunks, []float64{1, 4}) || !approxSlice(tputs, []float64{300, 360}) {
		t.Errorf("BestPerChunk = %v, %v", chunks, tputs)
	}
}

func TestMeanStdByChunk(t *testing.T) {
	tab := Sweep(encTab)
	chunks, mean, std := MeanStdByChunk(tab)
	if !approxSlice(chunks, []float64{1, 4}) {
		t.Fatalf("chunks = %v", chunks)
	}
	wantMean := []float64{(100 + 180 + 300) / 3.0, (120 + 220 + 360) / 3.0}
	if !approxSlice(mean, wantMean) {
		t.Errorf("mean = %v, want %v", mean, wantMean)
	}
	for i, sd := range std {
		if sd <= 0 || math.IsNaN(sd) {
			t.Errorf("std[%d] = %v, want positive", i, sd)
		}
	}

	// Single measurement per chunk must report zero deviation,
	// not NaN.
	single := Sweep(sweep(sweepfmt.Row{Threads: 1, ChunkMB: 1, Throughput: 50}))
	_, _, std = MeanStdByChunk(single)
	if !approxSlice(std, []float64{0}) {
		t.Errorf("single-sample std = %v, want [0]", std)
	}
}

func TestSpeedupsAndEfficiency(t *testing.T) {
	tab := Sweep(encTab)

	threads, speedup, ok := Speedups(tab, 1)
	if !ok {
		t.Fatal("Speedups not ok")
	}
	if !reflect.DeepEqual(threads, []int{1, 2, 4}) || !approxSlice(speedup, []float64{1, 1.8, 3}) {
		t.Errorf("Speedups = %v, %v", threads, speedup)
	}

	threads, eff, ok := Efficiency(tab, 1)
	if !ok {
		t.Fatal("Efficiency not ok")
	}
	if !reflect.DeepEqual(threads, []int{1, 2, 4}) || !approxSlice(eff, []float64{100, 90, 75}) {
		t.Errorf("Efficiency = %v, %v", threads, eff)
	}

	// No single-thread baseline.
	noBase := Sweep(sweep(
		sweepfmt.Row{Threads: 2, ChunkMB: 1, Throughput: 180},
		sweepfmt.Row{Threads: 4, ChunkMB: 1, Throughput: 300},
	))
	if _, _, ok := Speedups(noBase, 1); ok {
		t.Error("Speedups ok without a single-thread baseline")
	}
}

func TestRatios(t *testing.T) {
	enc := Sweep(encTab)
	dec := Sweep(sweepfmt.Table{Op: sweepfmt.Decryption, Rows: []sweepfmt.Row{
		{Threads: 1, ChunkMB: 1, Throughput: 110},
		{Threads: 2, ChunkMB: 1, Throughput: 198},
		{Threads: 8, ChunkMB: 1, Throughput: 500},
	}})

	got := Ratios(enc, dec)
	want := []RatioPoint{
		{Threads: 1, ChunkMB: 1, Ratio: 1.1},
		{Threads: 2, ChunkMB: 1, Ratio: 1.1},
	}
	if len(got) != len(want) {
		t.Fatalf("Ratios = %v, want %v", got, want)
	}
	for i := range want {
		if got[i].Threads != want[i].Threads || got[i].ChunkMB != want[i].ChunkMB || !approx(got[i].Ratio, want[i].Ratio) {
			t.Errorf("Ratios[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestMeanGrid(t *testing.T) {
	enc := Sweep(sweep(
		sweepfmt.Row{Threads: 1, ChunkMB: 1, Throughput: 100},
		sweepfmt.Row{Threads: 1, ChunkMB: 1, Throughput: 200},
		sweepfmt.Row{Threads: 2, ChunkMB: 4, Throughput: 300},
	))
	dec := Sweep(sweepfmt.Table{Op: sweepfmt.Decryption, Rows: []sweepfmt.Row{
		{Threads: 1, ChunkMB: 1, Throughput: 50},
	}})

	threads, chunks, z := MeanGrid(enc, dec)
	if !reflect.DeepEqual(threads, []int{1, 2}) || !approxSlice(chunks, []float64{1, 4}) {
		t.Fatalf("grid axes = %v, %v", threads, chunks)
	}
	// enc mean 150, dec 50, cell mean 100.
	if !approx(z[0][0], 100) {
		t.Errorf("z[0][0] = %v, want 100", z[0][0])
	}
	if !approx(z[1][1], 300) {
		t.Errorf("z[1][1] = %v, want 300", z[1][1])
	}
	if !math.IsNaN(z[0][1]) || !math.IsNaN(z[1][0]) {
		t.Errorf("uncovered cells = %v, %v, want NaN", z[0][1], z[1][0])
	}
}

func TestDistribution(t *testing.T) {
	tab := Sweep(sweep(
		sweepfmt.Row{Threads: 1, ChunkMB: 1, Throughput: 10},
		sweepfmt.Row{Threads: 2, ChunkMB: 1, Throughput: 20},
		sweepfmt.Row{Threads: 4, ChunkMB: 1, Throughput: 30},
	))
	d := Distribution(tab)
	if !approx(d.Mean, 20) || !approx(d.Median, 20) || !approx(d.Min, 10) || !approx(d.Max, 30) {
		t.Errorf("Distribution = %+v", d)
	}
	if !approx(d.StdDev, 10) {
		t.Errorf("StdDev = %v, want 10", d.StdDev)
	}
}

func TestReference(t *testing.T) {
	tab := Reference(osslfmt.Table{Rows: []osslfmt.Row{
		{BlockBytes: 16, ThroughputMBps: 103.87258, Label: "AES-256-CBC"},
		{BlockBytes: 64, ThroughputMBps: 400.5, Label: "AES-256-CBC"},
	}})

	blocks, tputs, label := ReferenceSeries(tab)
	if !reflect.DeepEqual(blocks, []int{16, 64}) || label != "AES-256-CBC" {
		t.Errorf("ReferenceSeries = %v, %q", blocks, label)
	}
	if !approxSlice(tputs, []float64{103.87258, 400.5}) {
		t.Errorf("tputs = %v", tputs)
	}

	block, tput, ok := ReferenceBest(tab)
	if !ok || block != 64 || !approx(tput, 400.5) {
		t.Errorf("ReferenceBest = %v, %v, %v", block, tput, ok)
	}

	if _, _, ok := ReferenceBest(Reference(osslfmt.Table{})); ok {
		t.Error("ReferenceBest ok for empty table")
	}
}
