// Copyright 2025 The EasyExtensions Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweepchart

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	"github.com/aclements/go-gg/table"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/bvdcode/cryptocharts/internal/sizefmt"
	"github.com/bvdcode/cryptocharts/sweeptab"
)

// threadLines plots throughput against chunk size, one line per
// thread count.
func threadLines(t *table.Table, title string, shape draw.GlyphDrawer) (*plot.Plot, error) {
	p := newPlot(title, "Chunk Size (MB)", "Throughput (MB/s)")
	threads := sweeptab.Threads(t)
	colors := seriesColors("Set1", len(threads))
	for i, th := range threads {
		chunks, tputs := sweeptab.ThreadSeries(t, th)
		label := fmt.Sprintf("%d threads", th)
		if err := addLinePoints(p, label, makeXYs(chunks, tputs), colors[i], shape); err != nil {
			return nil, err
		}
	}
	p.X.Tick.Marker = plot.ConstantTicks(floatTicks(sweeptab.Chunks(t)))
	return p, nil
}

// chunkLines plots throughput against thread count, one line per
// chunk size.
func chunkLines(t *table.Table, title string, shape draw.GlyphDrawer) (*plot.Plot, error) {
	p := newPlot(title, "Number of Threads", "Throughput (MB/s)")
	chunks := sweeptab.Chunks(t)
	colors := seriesColors("Paired", len(chunks))
	for i, ch := range chunks {
		threads, tputs := sweeptab.ChunkSeries(t, ch)
		label := strconv.FormatFloat(ch, 'g', -1, 64) + "MB"
		if err := addLinePoints(p, label, intXYs(threads, tputs), colors[i], shape); err != nil {
			return nil, err
		}
	}
	p.X.Tick.Marker = plot.ConstantTicks(intTicks(sweeptab.Threads(t)))
	return p, nil
}

// maxBars plots the maximum throughput per thread count as grouped
// encrypt/decrypt bars.
func maxBars(enc, dec *table.Table) (*plot.Plot, error) {
	p := newPlot("Maximum Throughput by Threads", "Number of Threads", "Max Throughput (MB/s)")

	threads, encMax := sweeptab.MaxByThreads(enc)
	decByThreads := make(map[int]float64)
	if ths, maxs := sweeptab.MaxByThreads(dec); ths != nil {
		for i, th := range ths {
			decByThreads[th] = maxs[i]
		}
	}
	decMax := make(plotter.Values, len(threads))
	labels := make([]string, len(threads))
	for i, th := range threads {
		decMax[i] = decByThreads[th]
		labels[i] = strconv.Itoa(th)
	}

	w := vg.Points(16)
	eb, err := plotter.NewBarChart(plotter.Values(encMax), w)
	if err != nil {
		return nil, err
	}
	eb.Offset = -w / 2
	eb.Color = skyBlue
	db, err := plotter.NewBarChart(decMax, w)
	if err != nil {
		return nil, err
	}
	db.Offset = w / 2
	db.Color = lightCoral

	p.Add(eb, db)
	p.Legend.Add("Encryption", eb)
	p.Legend.Add("Decryption", db)
	p.NominalX(labels...)
	return p, nil
}

type errPoints struct {
	plotter.XYs
	plotter.YErrors
}

// meanStdBars plots mean throughput per chunk size as grouped bars
// with standard deviation error bars.
func meanStdBars(enc, dec *table.Table) (*plot.Plot, error) {
	p := newPlot("Average Performance by Chunk Size", "Chunk Size (MB)", "Avg Throughput (MB/s)")

	chunks, encMean, encStd := sweeptab.MeanStdByChunk(enc)
	decByChunk := make(map[float64][2]float64)
	if chs, mean, std := sweeptab.MeanStdByChunk(dec); chs != nil {
		for i, ch := range chs {
			decByChunk[ch] = [2]float64{mean[i], std[i]}
		}
	}

	labels := make([]string, len(chunks))
	decMean := make(plotter.Values, len(chunks))
	decStd := make([]float64, len(chunks))
	for i, ch := range chunks {
		labels[i] = strconv.FormatFloat(ch, 'g', -1, 64)
		ms := decByChunk[ch]
		decMean[i], decStd[i] = ms[0], ms[1]
	}

	w := vg.Points(16)
	const off = 0.18
	addBars := func(means plotter.Values, stds []float64, c color.Color, offset vg.Length, xoff float64, label string) error {
		b, err := plotter.NewBarChart(means, w)
		if err != nil {
			return err
		}
		b.Offset = offset
		b.Color = c
		p.Add(b)
		p.Legend.Add(label, b)

		pts := errPoints{
			XYs:     make(plotter.XYs, len(means)),
			YErrors: make(plotter.YErrors, len(means)),
		}
		for i := range means {
			pts.XYs[i].X = float64(i) + xoff
			pts.XYs[i].Y = means[i]
			pts.YErrors[i].Low = stds[i]
			pts.YErrors[i].High = stds[i]
		}
		errBars, err := plotter.NewYErrorBars(pts)
		if err != nil {
			return err
		}
		errBars.Color = dimGray
		p.Add(errBars)
		return nil
	}
	if err := addBars(plotter.Values(encMean), encStd, skyBlue, -w/2, -off, "Encrypt"); err != nil {
		return nil, err
	}
	if err := addBars(decMean, decStd, lightCoral, w/2, off, "Decrypt"); err != nil {
		return nil, err
	}
	p.NominalX(labels...)
	return p, nil
}

// scalingLines plots speedup over the single-thread baseline at the
// mid chunk size, with the ideal linear line for reference.
func scalingLines(enc, dec *table.Table) (*plot.Plot, error) {
	mid := sweeptab.MidChunk(enc)
	title := fmt.Sprintf("Scaling Efficiency (Chunk Size: %gMB)", mid)
	p := newPlot(title, "Number of Threads", "Speedup Factor")

	encTh, encUp, encOK := sweeptab.Speedups(enc, mid)
	decTh, decUp, decOK := sweeptab.Speedups(dec, mid)
	if encOK {
		if err := addLinePoints(p, "Encryption Scaling", intXYs(encTh, encUp), color.RGBA{B: 0xff, A: 0xff}, draw.CircleGlyph{}); err != nil {
			return nil, err
		}
	}
	if decOK {
		if err := addLinePoints(p, "Decryption Scaling", intXYs(decTh, decUp), color.RGBA{R: 0xff, A: 0xff}, draw.BoxGlyph{}); err != nil {
			return nil, err
		}
	}

	threads := sweeptab.Threads(enc)
	if len(threads) > 0 {
		ideal := make(plotter.XYs, len(threads))
		for i, th := range threads {
			ideal[i].X = float64(th)
			ideal[i].Y = float64(th)
		}
		if err := addDashedLine(p, "Ideal Linear Scaling", ideal, dimGray); err != nil {
			return nil, err
		}
		p.X.Tick.Marker = plot.ConstantTicks(intTicks(threads))
	}
	return p, nil
}

// efficiencyLines plots per-thread efficiency as a percentage of
// ideal scaling, with the 100% reference line.
func efficiencyLines(enc, dec *table.Table) (*plot.Plot, error) {
	mid := sweeptab.MidChunk(enc)
	title := fmt.Sprintf("Scaling Efficiency (%gMB chunks)", mid)
	p := newPlot(title, "Number of Threads", "Efficiency (%)")

	encTh, encEff, encOK := sweeptab.Efficiency(enc, mid)
	decTh, decEff, decOK := sweeptab.Efficiency(dec, mid)
	if encOK {
		if err := addLinePoints(p, "Encrypt Efficiency", intXYs(encTh, encEff), color.RGBA{B: 0xff, A: 0xff}, draw.CircleGlyph{}); err != nil {
			return nil, err
		}
	}
	if decOK {
		if err := addLinePoints(p, "Decrypt Efficiency", intXYs(decTh, decEff), color.RGBA{R: 0xff, A: 0xff}, draw.BoxGlyph{}); err != nil {
			return nil, err
		}
	}

	threads := sweeptab.Threads(enc)
	if len(threads) > 0 {
		ref := plotter.XYs{
			{X: float64(threads[0]), Y: 100},
			{X: float64(threads[len(threads)-1]), Y: 100},
		}
		if err := addDashedLine(p, "Perfect Efficiency", ref, dimGray); err != nil {
			return nil, err
		}
		p.X.Tick.Marker = plot.ConstantTicks(intTicks(threads))
	}
	return p, nil
}

// meanGrid adapts the threads-by-chunks matrix to the heat map
// plotter using index coordinates on both axes.
type meanGrid struct {
	z [][]float64
}

func (g meanGrid) Dims() (c, r int) {
	if len(g.z) == 0 {
		return 0, 0
	}
	return len(g.z[0]), len(g.z)
}
func (g meanGrid) Z(c, r int) float64 { return g.z[r][c] }
func (g meanGrid) X(c int) float64    { return float64(c) }
func (g meanGrid) Y(r int) float64    { return float64(r) }

// heatPanel plots the combined encrypt/decrypt throughput grid as a
// heat map with per-cell value labels.
func heatPanel(enc, dec *table.Table) (*plot.Plot, error) {
	threads, chunks, z := sweeptab.MeanGrid(enc, dec)
	if len(threads) == 0 || len(chunks) == 0 {
		return nil, fmt.Errorf("no data for heat map")
	}

	// Holes in the sweep would poison the color range.
	min := math.Inf(1)
	for _, row := range z {
		for _, v := range row {
			if !math.IsNaN(v) && v < min {
				min = v
			}
		}
	}
	if math.IsInf(min, 1) {
		min = 0
	}
	for _, row := range z {
		for j, v := range row {
			if math.IsNaN(v) {
				row[j] = min
			}
		}
	}

	p := newPlot("Performance Heat Map (avg enc/dec)", "Chunk Size (MB)", "Threads")
	h := plotter.NewHeatMap(meanGrid{z}, moreland.SmoothBlueRed().Palette(255))
	p.Add(h)

	chunkTicks := make([]plot.Tick, len(chunks))
	for i, ch := range chunks {
		chunkTicks[i] = plot.Tick{Value: float64(i), Label: strconv.FormatFloat(ch, 'g', -1, 64)}
	}
	p.X.Tick.Marker = plot.ConstantTicks(chunkTicks)
	threadTicks := make([]plot.Tick, len(threads))
	for i, th := range threads {
		threadTicks[i] = plot.Tick{Value: float64(i), Label: strconv.Itoa(th)}
	}
	p.Y.Tick.Marker = plot.ConstantTicks(threadTicks)

	var cells plotter.XYLabels
	for i := range threads {
		for j := range chunks {
			cells.XYs = append(cells.XYs, plotter.XY{X: float64(j), Y: float64(i)})
			cells.Labels = append(cells.Labels, strconv.FormatFloat(z[i][j], 'f', 0, 64))
		}
	}
	labels, err := plotter.NewLabels(cells)
	if err != nil {
		return nil, err
	}
	p.Add(labels)
	return p, nil
}

// boxPanel plots the throughput distributions of the two operations
// as side-by-side box plots.
func boxPanel(enc, dec *table.Table) (*plot.Plot, error) {
	p := newPlot("Performance Distribution", "", "Throughput (MB/s)")
	w := vg.Points(40)

	eb, err := plotter.NewBoxPlot(w, 0, plotter.Values(sweeptab.Throughputs(enc)))
	if err != nil {
		return nil, err
	}
	eb.FillColor = skyBlue
	db, err := plotter.NewBoxPlot(w, 1, plotter.Values(sweeptab.Throughputs(dec)))
	if err != nil {
		return nil, err
	}
	db.FillColor = lightCoral

	p.Add(eb, db)
	p.NominalX("Encrypt", "Decrypt")
	return p, nil
}

// ratioPanel plots the decrypt/encrypt ratio of every matched
// configuration, color and size coded by the ratio value.
func ratioPanel(enc, dec *table.Table) (*plot.Plot, error) {
	p := newPlot("Decrypt/Encrypt Speed Ratios", "Threads", "Chunk Size (MB)")

	pts := sweeptab.Ratios(enc, dec)
	if len(pts) == 0 {
		return p, nil
	}
	xys := make(plotter.XYs, len(pts))
	minR, maxR := pts[0].Ratio, pts[0].Ratio
	for i, rp := range pts {
		xys[i].X = float64(rp.Threads)
		xys[i].Y = rp.ChunkMB
		if rp.Ratio < minR {
			minR = rp.Ratio
		}
		if rp.Ratio > maxR {
			maxR = rp.Ratio
		}
	}
	if maxR <= minR {
		maxR = minR + 1
	}

	cm := moreland.SmoothBlueRed()
	cm.SetMin(minR)
	cm.SetMax(maxR)

	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, err
	}
	sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		r := pts[i].Ratio
		c, err := cm.At(r)
		if err != nil {
			c = color.Black
		}
		rad := vg.Points(2 + 4*(r-minR)/(maxR-minR))
		return draw.GlyphStyle{Color: c, Radius: rad, Shape: draw.CircleGlyph{}}
	}
	p.Add(sc)
	return p, nil
}

// zonesPanel marks the high and medium throughput configurations of
// both operations in the threads/chunk plane.
func zonesPanel(enc, dec *table.Table) (*plot.Plot, error) {
	p := newPlot("Performance Zones", "Threads", "Chunk Size (MB)")

	addZones := func(t *table.Table, shape draw.GlyphDrawer, high, med color.Color, highLabel, medLabel string) error {
		best, ok := sweeptab.Best(t)
		if !ok {
			return nil
		}
		var highXYs, medXYs plotter.XYs
		for _, r := range sweeptab.Rows(t) {
			pt := plotter.XY{X: float64(r.Threads), Y: r.ChunkMB}
			switch {
			case r.Throughput > best.Throughput*0.9:
				highXYs = append(highXYs, pt)
			case r.Throughput > best.Throughput*0.7:
				medXYs = append(medXYs, pt)
			}
		}
		add := func(xys plotter.XYs, c color.Color, label string) error {
			if len(xys) == 0 {
				return nil
			}
			sc, err := plotter.NewScatter(xys)
			if err != nil {
				return err
			}
			sc.Color = c
			sc.Shape = shape
			sc.Radius = vg.Points(3.5)
			p.Add(sc)
			p.Legend.Add(label, sc)
			return nil
		}
		if err := add(highXYs, high, highLabel); err != nil {
			return err
		}
		return add(medXYs, med, medLabel)
	}

	green := color.RGBA{G: 0x80, A: 0xff}
	orange := color.RGBA{R: 0xff, G: 0xa5, A: 0xff}
	darkGreen := color.RGBA{G: 0x50, A: 0xff}
	darkOrange := color.RGBA{R: 0xcc, G: 0x66, A: 0xff}
	if err := addZones(enc, draw.CircleGlyph{}, green, orange, "High Encrypt", "Medium Encrypt"); err != nil {
		return nil, err
	}
	if err := addZones(dec, draw.BoxGlyph{}, darkGreen, darkOrange, "High Decrypt", "Medium Decrypt"); err != nil {
		return nil, err
	}
	return p, nil
}

// recommendationsPanel renders the textual best-configuration notes
// as an axis-free labels panel.
func recommendationsPanel(enc, dec *table.Table) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Recommendations"
	p.HideAxes()

	var lines []string
	if best, ok := sweeptab.Best(enc); ok {
		lines = append(lines, fmt.Sprintf("Best Encrypt: %.1f MB/s @ %dT, %gMB", best.Throughput, best.Threads, best.ChunkMB))
	}
	if best, ok := sweeptab.Best(dec); ok {
		lines = append(lines, fmt.Sprintf("Best Decrypt: %.1f MB/s @ %dT, %gMB", best.Throughput, best.Threads, best.ChunkMB))
	}
	lines = append(lines,
		fmt.Sprintf("Avg Encrypt: %.1f MB/s", sweeptab.Distribution(enc).Mean),
		fmt.Sprintf("Avg Decrypt: %.1f MB/s", sweeptab.Distribution(dec).Mean),
		"Tips:",
		" - Larger chunks often help encryption",
		" - 2-16 threads typically optimal",
	)

	var xyl plotter.XYLabels
	for i, line := range lines {
		xyl.XYs = append(xyl.XYs, plotter.XY{X: 0, Y: float64(len(lines) - i)})
		xyl.Labels = append(xyl.Labels, line)
	}
	labels, err := plotter.NewLabels(xyl)
	if err != nil {
		return nil, err
	}
	p.Add(labels)
	p.X.Min, p.X.Max = 0, 10
	p.Y.Min, p.Y.Max = 0, float64(len(lines)+1)
	return p, nil
}

// sharePanel plots each operation's share of the combined average
// throughput.
func sharePanel(enc, dec *table.Table) (*plot.Plot, error) {
	p := newPlot("Performance Share", "", "Share (%)")

	encMean := sweeptab.Distribution(enc).Mean
	decMean := sweeptab.Distribution(dec).Mean
	total := encMean + decMean
	if total == 0 {
		total = 1
	}
	w := vg.Points(40)
	bars, err := plotter.NewBarChart(plotter.Values{encMean / total * 100, decMean / total * 100}, w)
	if err != nil {
		return nil, err
	}
	bars.Color = skyBlue
	p.Add(bars)
	p.NominalX("Encrypt", "Decrypt")
	return p, nil
}

// comparisonPanel plots the reference tool against the library's
// best-per-chunk results over a log byte-size axis.
func comparisonPanel(enc, dec, ref *table.Table) (*plot.Plot, error) {
	p := newPlot("CottonCrypto vs OpenSSL: Throughput vs Buffer/Chunk Size",
		"Buffer / Chunk Size (bytes) [log scale]", "Throughput (MB/s)")
	p.X.Scale = plot.LogScale{}

	// The log axis cannot represent nonpositive sizes.
	var tickVals []float64
	blocks, tputs, label := sweeptab.ReferenceSeries(ref)
	refXYs := make(plotter.XYs, 0, len(blocks))
	for i, b := range blocks {
		if b <= 0 {
			continue
		}
		refXYs = append(refXYs, plotter.XY{X: float64(b), Y: tputs[i]})
		tickVals = append(tickVals, float64(b))
	}
	if err := addLinePoints(p, label, refXYs, color.RGBA{B: 0xff, A: 0xff}, draw.CircleGlyph{}); err != nil {
		return nil, err
	}

	addBest := func(t *table.Table, c color.Color, shape draw.GlyphDrawer, label string) error {
		chunks, best := sweeptab.BestPerChunk(t)
		xys := make(plotter.XYs, 0, len(chunks))
		for i, ch := range chunks {
			if ch <= 0 {
				continue
			}
			xys = append(xys, plotter.XY{X: ch * 1e6, Y: best[i]})
			tickVals = append(tickVals, ch*1e6)
		}
		return addLinePoints(p, label, xys, c, shape)
	}
	if err := addBest(enc, color.RGBA{R: 0xff, A: 0xff}, draw.BoxGlyph{}, "CottonCrypto Encrypt (best per chunk)"); err != nil {
		return nil, err
	}
	if err := addBest(dec, color.RGBA{G: 0x80, A: 0xff}, draw.PyramidGlyph{}, "CottonCrypto Decrypt (best per chunk)"); err != nil {
		return nil, err
	}

	ticks := make([]plot.Tick, 0, len(tickVals))
	for _, v := range tickVals {
		if v > 0 {
			ticks = append(ticks, plot.Tick{Value: v, Label: sizefmt.Scale(v, sizefmt.Decimal)})
		}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.Legend.Top = true
	p.Legend.Left = true
	return p, nil
}
