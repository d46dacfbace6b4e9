// Copyright 2025 The EasyExtensions Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sweeptab turns parsed benchmark tables into column-named
// data tables and computes the aggregates the charts and summaries
// are built from.
//
// The tables are go-gg tables keyed by column name: "Threads",
// "ChunkMB" and "Throughput" for the sweep results, "BlockBytes",
// "ThroughputMBps" and "Label" for the reference-tool results. Row
// order and duplicate configurations are preserved exactly as
// parsed; all aggregation happens here, on demand.
package sweeptab

import (
	"math"
	"sort"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"

	"github.com/bvdcode/cryptocharts/osslfmt"
	"github.com/bvdcode/cryptocharts/sweepfmt"
)

// Column names of the sweep and reference tables.
const (
	ColThreads        = "Threads"
	ColChunkMB        = "ChunkMB"
	ColThroughput     = "Throughput"
	ColBlockBytes     = "BlockBytes"
	ColThroughputMBps = "ThroughputMBps"
	ColLabel          = "Label"
)

// Sweep converts a parsed sweep table into a column-named table with
// the Threads, ChunkMB and Throughput columns.
func Sweep(t sweepfmt.Table) *table.Table {
	return table.TableFromStructs(t.Rows)
}

// Reference converts a parsed reference table into a column-named
// table with the BlockBytes, ThroughputMBps and Label columns.
func Reference(t osslfmt.Table) *table.Table {
	return table.TableFromStructs(t.Rows)
}

// Rows converts a sweep table back into parsed rows, in table order.
func Rows(t *table.Table) []sweepfmt.Row {
	if t.Len() == 0 {
		return nil
	}
	threads := t.MustColumn(ColThreads).([]int)
	chunks := t.MustColumn(ColChunkMB).([]float64)
	tputs := t.MustColumn(ColThroughput).([]float64)
	rows := make([]sweepfmt.Row, t.Len())
	for i := range rows {
		rows[i] = sweepfmt.Row{Threads: threads[i], ChunkMB: chunks[i], Throughput: tputs[i]}
	}
	return rows
}

// Threads returns the distinct thread counts in ascending order.
func Threads(t *table.Table) []int {
	if t.Len() == 0 {
		return nil
	}
	out := slice.Nub(t.MustColumn(ColThreads)).([]int)
	sort.Ints(out)
	return out
}

// Chunks returns the distinct chunk sizes in ascending order.
func Chunks(t *table.Table) []float64 {
	if t.Len() == 0 {
		return nil
	}
	out := slice.Nub(t.MustColumn(ColChunkMB)).([]float64)
	sort.Float64s(out)
	return out
}

// MidChunk returns the middle of the distinct chunk sizes, used as
// the fixed configuration for thread-scaling panels.
func MidChunk(t *table.Table) float64 {
	chunks := Chunks(t)
	if len(chunks) == 0 {
		return 0
	}
	return chunks[len(chunks)/2]
}

// ThreadSeries returns the (chunk size, throughput) series for one
// thread count, sorted by chunk size.
func ThreadSeries(t *table.Table, threads int) (chunks, tputs []float64) {
	if t.Len() == 0 {
		return nil, nil
	}
	g := table.FilterEq(t, ColThreads, threads)
	ft := table.Flatten(table.SortBy(g, ColChunkMB))
	if ft.Len() == 0 {
		return nil, nil
	}
	return ft.MustColumn(ColChunkMB).([]float64), ft.MustColumn(ColThroughput).([]float64)
}

// ChunkSeries returns the (threads, throughput) series for one chunk
// size, sorted by thread count.
func ChunkSeries(t *table.Table, chunk float64) (threads []int, tputs []float64) {
	if t.Len() == 0 {
		return nil, nil
	}
	g := table.FilterEq(t, ColChunkMB, chunk)
	ft := table.Flatten(table.SortBy(g, ColThreads))
	if ft.Len() == 0 {
		return nil, nil
	}
	return ft.MustColumn(ColThreads).([]int), ft.MustColumn(ColThroughput).([]float64)
}

// Best returns the row with the highest throughput.
func Best(t *table.Table) (sweepfmt.Row, bool) {
	if t.Len() == 0 {
		return sweepfmt.Row{}, false
	}
	i := slice.ArgMax(t.MustColumn(ColThroughput))
	return Rows(t)[i], true
}

// MaxByThreads returns, for each distinct thread count in ascending
// order, the maximum throughput observed at that count.
func MaxByThreads(t *table.Table) (threads []int, max []float64) {
	if t.Len() == 0 {
		return nil, nil
	}
	g := ggstat.Agg(ColThreads)(ggstat.AggMax(ColThroughput)).F(t)
	ft := table.Flatten(table.SortBy(g, ColThreads))
	return ft.MustColumn(ColThreads).([]int), ft.MustColumn("max " + ColThroughput).([]float64)
}

// MeanByThreads returns, for each distinct thread count in ascending
// order, the mean throughput at that count.
func MeanByThreads(t *table.Table) (threads []int, mean []float64) {
	if t.Len() == 0 {
		return nil, nil
	}
	g := ggstat.Agg(ColThreads)(ggstat.AggMean(ColThroughput)).F(t)
	ft := table.Flatten(table.SortBy(g, ColThreads))
	return ft.MustColumn(ColThreads).([]int), ft.MustColumn("mean " + ColThroughput).([]float64)
}

// MeanStdByChunk returns, for each distinct chunk size in ascending
// order, the mean and sample standard deviation of throughput at that
// size. The deviation is zero for sizes with a single measurement.
func MeanStdByChunk(t *table.Table) (chunks, mean, std []float64) {
	if t.Len() == 0 {
		return nil, nil, nil
	}
	g := ggstat.Agg(ColChunkMB)(ggstat.AggMean(ColThroughput), aggStdDev(ColThroughput)).F(t)
	ft := table.Flatten(table.SortBy(g, ColChunkMB))
	return ft.MustColumn(ColChunkMB).([]float64),
		ft.MustColumn("mean " + ColThroughput).([]float64),
		ft.MustColumn("stddev " + ColThroughput).([]float64)
}

// aggStdDev is the sample standard deviation aggregator missing from
// ggstat. NaN (single-element groups) is reported as zero so error
// bars degrade to nothing rather than poisoning axis ranges.
func aggStdDev(col string) ggstat.Aggregator {
	return func(input table.Grouping, b *table.Builder) {
		var out []float64
		var xs []float64
		for _, gid := range input.Tables() {
			slice.Convert(&xs, input.Table(gid).MustColumn(col))
			sd := stats.Sample{Xs: xs}.StdDev()
			if math.IsNaN(sd) {
				sd = 0
			}
			out = append(out, sd)
		}
		b.Add("stddev "+col, out)
	}
}

// BestPerChunk returns, for each distinct chunk size in ascending
// order, the best throughput across all thread counts.
func BestPerChunk(t *table.Table) (chunks, tputs []float64) {
	if t.Len() == 0 {
		return nil, nil
	}
	g := ggstat.Agg(ColChunkMB)(ggstat.AggMax(ColThroughput)).F(t)
	ft := table.Flatten(table.SortBy(g, ColChunkMB))
	return ft.MustColumn(ColChunkMB).([]float64), ft.MustColumn("max " + ColThroughput).([]float64)
}

// Speedups returns, per thread count in ascending order, the mean
// throughput at the given chunk size divided by the single-thread
// mean at that size. ok is false when there is no single-thread
// baseline to normalize against.
func Speedups(t *table.Table, chunk float64) (threads []int, speedup []float64, ok bool) {
	if t.Len() == 0 {
		return nil, nil, false
	}
	g := table.FilterEq(t, ColChunkMB, chunk)
	ft := table.Flatten(g)
	if ft.Len() == 0 {
		return nil, nil, false
	}
	g = ggstat.Agg(ColThreads)(ggstat.AggMean(ColThroughput)).F(ft)
	ft = table.Flatten(table.SortBy(g, ColThreads))
	threads = ft.MustColumn(ColThreads).([]int)
	means := ft.MustColumn("mean " + ColThroughput).([]float64)

	base := math.NaN()
	for i, th := range threads {
		if th == 1 {
			base = means[i]
			break
		}
	}
	if math.IsNaN(base) || base == 0 {
		return nil, nil, false
	}
	speedup = make([]float64, len(means))
	for i, m := range means {
		speedup[i] = m / base
	}
	return threads, speedup, true
}

// Efficiency returns thread-scaling efficiency as a percentage of
// ideal linear scaling at the given chunk size.
func Efficiency(t *table.Table, chunk float64) (threads []int, eff []float64, ok bool) {
	threads, speedup, ok := Speedups(t, chunk)
	if !ok {
		return nil, nil, false
	}
	eff = make([]float64, len(speedup))
	for i, s := range speedup {
		eff[i] = s / float64(threads[i]) * 100
	}
	return threads, eff, true
}

// A RatioPoint is one matched encryption/decryption configuration.
type RatioPoint struct {
	Threads int
	ChunkMB float64
	// Ratio is decryption throughput over encryption throughput.
	Ratio float64
}

// Ratios pairs each encryption row with the first decryption row of
// the same configuration and returns decrypt/encrypt ratios. Rows
// without a counterpart, or with zero encryption throughput, are
// skipped.
func Ratios(enc, dec *table.Table) []RatioPoint {
	encRows, decRows := Rows(enc), Rows(dec)
	var out []RatioPoint
	for _, er := range encRows {
		if er.Throughput <= 0 {
			continue
		}
		for _, dr := range decRows {
			if dr.Threads == er.Threads && dr.ChunkMB == er.ChunkMB {
				out = append(out, RatioPoint{
					Threads: er.Threads,
					ChunkMB: er.ChunkMB,
					Ratio:   dr.Throughput / er.Throughput,
				})
				break
			}
		}
	}
	return out
}

// MeanGrid returns the threads-by-chunks matrix of throughput,
// averaged over duplicate measurements and over the two operations.
// Cells covered by neither table are NaN. The first index of z is the
// thread axis, the second the chunk axis, both ascending.
func MeanGrid(enc, dec *table.Table) (threads []int, chunks []float64, z [][]float64) {
	threads = mergeInts(Threads(enc), Threads(dec))
	chunks = mergeFloats(Chunks(enc), Chunks(dec))

	encMean := meanByConfig(enc)
	decMean := meanByConfig(dec)
	z = make([][]float64, len(threads))
	for i, th := range threads {
		z[i] = make([]float64, len(chunks))
		for j, ch := range chunks {
			key := config{th, ch}
			e, eok := encMean[key]
			d, dok := decMean[key]
			switch {
			case eok && dok:
				z[i][j] = (e + d) / 2
			case eok:
				z[i][j] = e
			case dok:
				z[i][j] = d
			default:
				z[i][j] = math.NaN()
			}
		}
	}
	return threads, chunks, z
}

type config struct {
	threads int
	chunk   float64
}

func meanByConfig(t *table.Table) map[config]float64 {
	sums := make(map[config]float64)
	counts := make(map[config]int)
	for _, r := range Rows(t) {
		key := config{r.Threads, r.ChunkMB}
		sums[key] += r.Throughput
		counts[key]++
	}
	out := make(map[config]float64, len(sums))
	for key, sum := range sums {
		out[key] = sum / float64(counts[key])
	}
	return out
}

func mergeInts(a, b []int) []int {
	out := slice.Nub(append(append([]int{}, a...), b...)).([]int)
	sort.Ints(out)
	return out
}

func mergeFloats(a, b []float64) []float64 {
	out := slice.Nub(append(append([]float64{}, a...), b...)).([]float64)
	sort.Float64s(out)
	return out
}

// A Dist summarizes a throughput distribution.
type Dist struct {
	Mean, Median, StdDev, Min, Max float64
}

// Distribution computes summary statistics over every throughput
// value in the table.
func Distribution(t *table.Table) Dist {
	xs := append([]float64(nil), Throughputs(t)...)
	if len(xs) == 0 {
		return Dist{}
	}
	sort.Float64s(xs)
	s := stats.Sample{Xs: xs, Sorted: true}
	sd := s.StdDev()
	if math.IsNaN(sd) {
		sd = 0
	}
	return Dist{
		Mean:   s.Mean(),
		Median: s.Quantile(0.5),
		StdDev: sd,
		Min:    xs[0],
		Max:    xs[len(xs)-1],
	}
}

// Throughputs returns the raw throughput column, in table order.
func Throughputs(t *table.Table) []float64 {
	if t.Len() == 0 {
		return nil
	}
	return t.MustColumn(ColThroughput).([]float64)
}

// ReferenceSeries returns the reference table as (block bytes,
// MB/s) series plus its label, assumed uniform across rows.
func ReferenceSeries(t *table.Table) (blocks []int, tputs []float64, label string) {
	if t.Len() == 0 {
		return nil, nil, ""
	}
	blocks = t.MustColumn(ColBlockBytes).([]int)
	tputs = t.MustColumn(ColThroughputMBps).([]float64)
	labels := t.MustColumn(ColLabel).([]string)
	return blocks, tputs, labels[0]
}

// ReferenceBest returns the highest reference throughput and the
// block size it was measured at.
func ReferenceBest(t *table.Table) (blockBytes int, tput float64, ok bool) {
	blocks, tputs, _ := ReferenceSeries(t)
	if len(tputs) == 0 {
		return 0, 0, false
	}
	i := slice.ArgMax(tputs)
	return blocks[i], tputs[i], true
}
