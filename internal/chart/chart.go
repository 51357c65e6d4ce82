// Package chart renders simulation results for the terminal and as PNG images.
package chart

import (
	"errors"
	"fmt"
	"io"
	"os"

	"battery_cycling/internal/simulation"

	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ErrEmptySeries is returned when there is nothing to draw.
var ErrEmptySeries = errors.New("chart: empty series")

const (
	DefaultHeight = 15
	DefaultWidth  = 80

	pngWidth  = 8 * vg.Inch
	pngHeight = 4 * vg.Inch
)

// ASCII draws y against sample index. The caption names both variables and
// the x range covered.
func ASCII(r *simulation.Result, height, width int) (string, error) {
	if r.Points() == 0 || len(r.YData) == 0 {
		return "", ErrEmptySeries
	}
	if height <= 0 {
		height = DefaultHeight
	}
	if width <= 0 {
		width = DefaultWidth
	}
	return asciigraph.Plot(r.YData,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption(r)),
	), nil
}

func caption(r *simulation.Result) string {
	first, last := r.XData[0], r.XData[len(r.XData)-1]
	return fmt.Sprintf("%s vs %s [%g .. %g]", r.YVariable, r.XVariable, first, last)
}

func checkXY(r *simulation.Result) error {
	if r.Points() == 0 {
		return ErrEmptySeries
	}
	if len(r.XData) != len(r.YData) {
		return fmt.Errorf("chart: %d x values for %d y values", len(r.XData), len(r.YData))
	}
	return nil
}

// WritePNG draws y against x and writes the image to w.
func WritePNG(w io.Writer, r *simulation.Result) error {
	if err := checkXY(r); err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = r.YVariable
	p.X.Label.Text = r.XVariable
	p.Y.Label.Text = r.YVariable
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(r.XData))
	for i := range r.XData {
		pts[i].X = r.XData[i]
		pts[i].Y = r.YData[i]
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("chart: %w", err)
	}
	p.Add(line)

	wt, err := p.WriterTo(pngWidth, pngHeight, "png")
	if err != nil {
		return fmt.Errorf("chart: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("chart: write png: %w", err)
	}
	return nil
}

// SavePNG writes the PNG chart to path. Nothing is left at path when
// rendering fails.
func SavePNG(path string, r *simulation.Result) (err error) {
	if err := checkXY(r); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("chart: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()
	return WritePNG(f, r)
}
