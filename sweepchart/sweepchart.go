// Copyright 2025 The EasyExtensions Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sweepchart renders the benchmark report figures.
//
// Rendering is fully headless: every figure is written straight to
// image files in the configured formats, there is no display surface
// anywhere. Each exported figure function takes the data tables and
// an Options value and writes one file per format.
package sweepchart

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"
)

// Options configures figure output.
type Options struct {
	// Dir is the output directory, created if needed.
	Dir string

	// DPI is the raster resolution. Zero means 300.
	DPI int

	// Formats lists the image formats to write, any of "png",
	// "svg" and "pdf". Empty means PNG only.
	Formats []string
}

func (o Options) dpi() int {
	if o.DPI <= 0 {
		return 300
	}
	return o.DPI
}

func (o Options) formats() []string {
	if len(o.Formats) == 0 {
		return []string{"png"}
	}
	return o.Formats
}

// panel size, chosen to roughly match a 4:3 subplot
const (
	panelWidth  = 6 * vg.Inch
	panelHeight = 4.5 * vg.Inch
)

func (o Options) canvas(w, h vg.Length, format string) (vg.CanvasWriterTo, error) {
	switch format {
	case "png":
		return vgimg.PngCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(w, h),
			vgimg.UseDPI(o.dpi()), vgimg.UseBackgroundColor(color.White))}, nil
	case "svg":
		return vgsvg.New(w, h), nil
	case "pdf":
		return vgpdf.New(w, h), nil
	}
	return nil, fmt.Errorf("unknown image format %q", format)
}

// writeFigure lays the plot grid out as tiles and writes one image
// per configured format. Nil cells are left blank.
func (o Options) writeFigure(name string, plots [][]*plot.Plot) error {
	rows := len(plots)
	cols := 0
	for _, r := range plots {
		if len(r) > cols {
			cols = len(r)
		}
	}
	if rows == 0 || cols == 0 {
		return fmt.Errorf("figure %s has no panels", name)
	}
	if err := os.MkdirAll(o.Dir, 0777); err != nil {
		return err
	}

	w := panelWidth * vg.Length(cols)
	h := panelHeight * vg.Length(rows)
	tiles := draw.Tiles{
		Rows: rows, Cols: cols,
		PadX: vg.Millimeter * 4, PadY: vg.Millimeter * 4,
		PadTop: vg.Millimeter * 2, PadBottom: vg.Millimeter * 2,
		PadLeft: vg.Millimeter * 2, PadRight: vg.Millimeter * 2,
	}

	for _, format := range o.formats() {
		can, err := o.canvas(w, h, format)
		if err != nil {
			return err
		}
		canvases := plot.Align(plots, tiles, draw.New(can))
		for i := range plots {
			for j := range plots[i] {
				if plots[i][j] != nil {
					plots[i][j].Draw(canvases[i][j])
				}
			}
		}

		file := filepath.Join(o.Dir, name+"."+format)
		f, err := os.Create(file)
		if err != nil {
			return err
		}
		if _, err := can.WriteTo(f); err != nil {
			f.Close()
			return fmt.Errorf("writing %s: %w", file, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}

var (
	skyBlue    = color.RGBA{0x87, 0xce, 0xeb, 0xff}
	lightCoral = color.RGBA{0xf0, 0x80, 0x80, 0xff}
	dimGray    = color.RGBA{0x69, 0x69, 0x69, 0xff}
)

// seriesColors returns n colors from a qualitative brewer palette,
// cycling when n exceeds the palette size.
func seriesColors(name string, n int) []color.Color {
	if n <= 0 {
		return nil
	}
	req := n
	if req < 3 {
		req = 3
	}
	if req > 9 {
		req = 9
	}
	pal, err := brewer.GetPalette(brewer.TypeQualitative, name, req)
	if err != nil {
		fallback := []color.Color{skyBlue, lightCoral, dimGray}
		out := make([]color.Color, n)
		for i := range out {
			out[i] = fallback[i%len(fallback)]
		}
		return out
	}
	cs := pal.Colors()
	out := make([]color.Color, n)
	for i := range out {
		out[i] = cs[i%len(cs)]
	}
	return out
}

func newPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	grid := plotter.NewGrid()
	p.Add(grid)
	return p
}

func makeXYs(xs, ys []float64) plotter.XYs {
	xys := make(plotter.XYs, len(xs))
	for i := range xs {
		xys[i].X = xs[i]
		xys[i].Y = ys[i]
	}
	return xys
}

func intXYs(xs []int, ys []float64) plotter.XYs {
	xys := make(plotter.XYs, len(xs))
	for i := range xs {
		xys[i].X = float64(xs[i])
		xys[i].Y = ys[i]
	}
	return xys
}

func floatTicks(vals []float64) []plot.Tick {
	ticks := make([]plot.Tick, len(vals))
	for i, v := range vals {
		ticks[i] = plot.Tick{Value: v, Label: strconv.FormatFloat(v, 'g', -1, 64)}
	}
	return ticks
}

func intTicks(vals []int) []plot.Tick {
	ticks := make([]plot.Tick, len(vals))
	for i, v := range vals {
		ticks[i] = plot.Tick{Value: float64(v), Label: strconv.Itoa(v)}
	}
	return ticks
}

// addLinePoints adds a marker line series to p and its legend.
func addLinePoints(p *plot.Plot, label string, xys plotter.XYs, c color.Color, shape draw.GlyphDrawer) error {
	if len(xys) == 0 {
		return nil
	}
	l, s, err := plotter.NewLinePoints(xys)
	if err != nil {
		return err
	}
	l.Color = c
	l.Width = vg.Points(1.5)
	s.Color = c
	s.Shape = shape
	s.Radius = vg.Points(2.5)
	p.Add(l, s)
	p.Legend.Add(label, l, s)
	return nil
}

// addDashedLine adds an unmarked dashed reference line.
func addDashedLine(p *plot.Plot, label string, xys plotter.XYs, c color.Color) error {
	l, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	l.Color = c
	l.Width = vg.Points(1)
	l.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	p.Add(l)
	if label != "" {
		p.Legend.Add(label, l)
	}
	return nil
}
