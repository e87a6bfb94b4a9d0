/*
 * Copyright 2025 Google LLC
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *    https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */
package histogram

import (
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Style controls the look of a rendered histogram.
type Style struct {
	Title  string
	XLabel string
	YLabel string
	Fill   color.Color
	Grid   bool
}

// DefaultStyle returns the style used for flag count histograms.
func DefaultStyle() Style {
	return Style{
		Title:  "Flag occurrences per row",
		XLabel: "Flag count",
		YLabel: "Frequency",
		Fill:   color.RGBA{R: 70, G: 130, B: 180, A: 255},
		Grid:   true,
	}
}

// Default image size for SavePNG callers that have no preference.
const (
	DefaultWidth  = 8 * vg.Inch
	DefaultHeight = 5 * vg.Inch
)

// NewPlot builds a plot of h. It holds no reference to any canvas.
func NewPlot(h Histogram, style Style) (*plot.Plot, error) {
	if len(h.Bins) == 0 {
		return nil, fmt.Errorf("histogram has no bins")
	}

	bins := make([]plotter.HistogramBin, len(h.Bins))
	for i, b := range h.Bins {
		bins[i] = plotter.HistogramBin{Min: b.Lo, Max: b.Hi, Weight: float64(b.Count)}
	}

	p := plot.New()
	p.Title.Text = style.Title
	p.X.Label.Text = style.XLabel
	p.Y.Label.Text = style.YLabel
	if style.Grid {
		p.Add(plotter.NewGrid())
	}
	p.Add(&plotter.Histogram{
		Bins:      bins,
		Width:     h.Bins[0].Hi - h.Bins[0].Lo,
		FillColor: style.Fill,
		LineStyle: plotter.DefaultLineStyle,
	})
	return p, nil
}

// Render draws h onto c.
func Render(h Histogram, c draw.Canvas, style Style) error {
	p, err := NewPlot(h, style)
	if err != nil {
		return err
	}
	p.Draw(c)
	return nil
}

// WritePNG renders h into a width x height PNG image written to w.
func WritePNG(w io.Writer, h Histogram, width, height vg.Length, style Style) error {
	img := vgimg.New(width, height)
	if err := Render(h, draw.New(img), style); err != nil {
		return err
	}
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(w); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// SavePNG renders h into a PNG file at path.
func SavePNG(path string, h Histogram, width, height vg.Length, style Style) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := WritePNG(f, h, width, height, style); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ASCII renders the bin counts as a terminal chart.
func ASCII(h Histogram, height int) string {
	caption := fmt.Sprintf("%s: %d values in %d bins", h.Column, h.Total, len(h.Bins))
	if len(h.Bins) > 0 {
		caption += fmt.Sprintf(" over [%g, %g]", h.Bins[0].Lo, h.Bins[len(h.Bins)-1].Hi)
	}
	return asciigraph.Plot(h.Counts(), asciigraph.Height(height), asciigraph.Caption(caption))
}
