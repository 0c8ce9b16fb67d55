// Package render draws diagnostic plots of spectral segments and their
// fitted models using gonum/plot.
package render

import (
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/astrokit/specfit/segment"
)

var ErrLengthMismatch = errors.New("render: model curve length does not match segment")

// Config controls the rendered figure.
type Config struct {
	// Title is drawn above the plot; empty leaves it off.
	Title string

	// Width and Height give the figure size. Zero values default to
	// 9x6 inches.
	Width  vg.Length
	Height vg.Length
}

func (c Config) size() (vg.Length, vg.Length) {
	w, h := c.Width, c.Height
	if w <= 0 {
		w = 9 * vg.Inch
	}

	if h <= 0 {
		h = 6 * vg.Inch
	}

	return w, h
}

// Overlay saves a figure of the segment's flux samples with error bars and
// the fitted model curve drawn through them. The curve must be sampled on
// the segment's wavelength grid.
func Overlay(seg segment.Segment, curve []float64, cfg Config, path string) error {
	if err := seg.Validate(); err != nil {
		return err
	}

	if len(curve) != seg.Len() {
		return fmt.Errorf("%w: %d samples, %d curve points", ErrLengthMismatch, seg.Len(), len(curve))
	}

	p := plot.New()
	p.Title.Text = cfg.Title
	p.X.Label.Text = "Wavelength (Å)"
	p.Y.Label.Text = "Flux"

	data := make(plotter.XYs, seg.Len())
	errs := make(plotter.YErrors, seg.Len())

	for i := range data {
		data[i].X = seg.Wavelengths[i]
		data[i].Y = seg.Flux[i]
		errs[i].Low = seg.Noise[i]
		errs[i].High = seg.Noise[i]
	}

	scatter, err := plotter.NewScatter(data)
	if err != nil {
		return fmt.Errorf("render: scatter: %w", err)
	}

	scatter.GlyphStyle.Radius = vg.Points(2)
	scatter.GlyphStyle.Color = color.RGBA{B: 180, A: 255}

	bars, err := plotter.NewYErrorBars(struct {
		plotter.XYer
		plotter.YErrorer
	}{data, errs})
	if err != nil {
		return fmt.Errorf("render: error bars: %w", err)
	}

	fitted := make(plotter.XYs, seg.Len())
	for i := range fitted {
		fitted[i].X = seg.Wavelengths[i]
		fitted[i].Y = curve[i]
	}

	line, err := plotter.NewLine(fitted)
	if err != nil {
		return fmt.Errorf("render: line: %w", err)
	}

	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Color = color.RGBA{R: 200, A: 255}

	p.Add(scatter, bars, line)
	p.Legend.Add("data", scatter)
	p.Legend.Add("model", line)
	p.Legend.Top = true

	w, h := cfg.size()
	if err := p.Save(w, h, path); err != nil {
		return fmt.Errorf("render: save %s: %w", path, err)
	}

	return nil
}

// Residuals saves a figure of (flux - model) / noise against wavelength,
// with a dashed zero line for reference.
func Residuals(seg segment.Segment, curve []float64, cfg Config, path string) error {
	if err := seg.Validate(); err != nil {
		return err
	}

	if len(curve) != seg.Len() {
		return fmt.Errorf("%w: %d samples, %d curve points", ErrLengthMismatch, seg.Len(), len(curve))
	}

	p := plot.New()
	p.Title.Text = cfg.Title
	p.X.Label.Text = "Wavelength (Å)"
	p.Y.Label.Text = "Residual (σ)"

	pts := make(plotter.XYs, seg.Len())
	for i := range pts {
		pts[i].X = seg.Wavelengths[i]
		pts[i].Y = (seg.Flux[i] - curve[i]) / seg.Noise[i]
	}

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("render: scatter: %w", err)
	}

	scatter.GlyphStyle.Radius = vg.Points(2)

	zero := plotter.XYs{
		{X: seg.Wavelengths[0], Y: 0},
		{X: seg.Wavelengths[seg.Len()-1], Y: 0},
	}

	zeroLine, err := plotter.NewLine(zero)
	if err != nil {
		return fmt.Errorf("render: line: %w", err)
	}

	zeroLine.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}

	p.Add(scatter, zeroLine)

	w, h := cfg.size()
	if err := p.Save(w, h, path); err != nil {
		return fmt.Errorf("render: save %s: %w", path, err)
	}

	return nil
}
