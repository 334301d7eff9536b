// Package render draws resolved curve sets as PNG charts.
package render

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/mwiater/cosmoview/internal/dataset"
	"github.com/mwiater/cosmoview/internal/query"
	"github.com/mwiater/cosmoview/internal/stats"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNothingToPlot is returned when no curve has two plottable points.
var ErrNothingToPlot = errors.New("nothing to plot")

// Options controls the chart geometry and axis transforms.
type Options struct {
	Width  int
	Height int
	Title  string

	// LogX and LogY plot log10 of the data; non-positive points are dropped.
	LogX bool
	LogY bool

	// Residual plots ξ(r) minus the 100·r^-1.8 reference power law.
	// It only applies to the clustering observable and disables LogY.
	Residual bool
}

// DefaultOptions mirrors the on-screen plots: ξ on a log r axis, n(M) on
// log-log axes (the mass axis is only transformed when it is linear).
func DefaultOptions(obs dataset.Observable, axis dataset.MassAxis) Options {
	o := Options{Width: 900, Height: 500}
	switch obs {
	case dataset.MassFunction:
		o.Title = "Halo Mass Function n(M)"
		o.LogX = axis != dataset.MassLog10
		o.LogY = true
	default:
		o.Title = "Two-Point Correlation Function ξ(r)"
		o.LogX = true
	}
	return o
}

var (
	colorPrimary  = drawing.ColorFromHex("667eea")
	colorFiducial = drawing.ColorFromHex("718096")
	colorMin      = drawing.ColorFromHex("e53e3e")
	colorMax      = drawing.ColorFromHex("48bb78")
)

func roleStyle(role query.Role) chart.Style {
	switch role {
	case query.RoleFiducial:
		return chart.Style{StrokeColor: colorFiducial, StrokeWidth: 2, StrokeDashArray: []float64{6, 4}}
	case query.RoleMin:
		return chart.Style{StrokeColor: colorMin.WithAlpha(180), StrokeWidth: 1, StrokeDashArray: []float64{2, 3}}
	case query.RoleMax:
		return chart.Style{StrokeColor: colorMax.WithAlpha(180), StrokeWidth: 1, StrokeDashArray: []float64{2, 3}}
	default:
		return chart.Style{StrokeColor: colorPrimary, StrokeWidth: 3, DotColor: drawing.ColorFromHex("764ba2"), DotWidth: 3}
	}
}

// Chart builds the go-chart description of r.
func Chart(r query.Resolved, opts Options) (chart.Chart, error) {
	if r.Observable != dataset.Clustering {
		opts.Residual = false
	}
	if opts.Residual {
		opts.LogY = false
	}

	var series []chart.Series
	for _, c := range r.Curves {
		y := c.Y
		if opts.Residual {
			res, err := stats.PowerLawResiduals(c.X, c.Y)
			if err != nil {
				return chart.Chart{}, fmt.Errorf("%s curve: %w", c.Role, err)
			}
			y = res
		}
		xs, ys := transform(c.X, y, opts.LogX, opts.LogY)
		if len(xs) < 2 {
			continue
		}
		series = append(series, chart.ContinuousSeries{
			Name:    c.Label,
			XValues: xs,
			YValues: ys,
			Style:   roleStyle(c.Role),
		})
	}
	if len(series) == 0 {
		return chart.Chart{}, ErrNothingToPlot
	}

	ch := chart.Chart{
		Title:      opts.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: axisName(r.Observable, true, opts)},
		YAxis:      chart.YAxis{Name: axisName(r.Observable, false, opts)},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch, nil
}

// PNG renders r to w.
func PNG(w io.Writer, r query.Resolved, opts Options) error {
	ch, err := Chart(r, opts)
	if err != nil {
		return err
	}
	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render %s chart: %w", r.Observable, err)
	}
	return nil
}

// transform applies the log axes, dropping points that have no logarithm.
func transform(x, y []float64, logX, logY bool) ([]float64, []float64) {
	xs := make([]float64, 0, len(x))
	ys := make([]float64, 0, len(y))
	for i := 0; i < len(x) && i < len(y); i++ {
		xv, yv := x[i], y[i]
		if logX {
			if xv <= 0 {
				continue
			}
			xv = math.Log10(xv)
		}
		if logY {
			if yv <= 0 {
				continue
			}
			yv = math.Log10(yv)
		}
		if math.IsNaN(xv) || math.IsNaN(yv) || math.IsInf(xv, 0) || math.IsInf(yv, 0) {
			continue
		}
		xs = append(xs, xv)
		ys = append(ys, yv)
	}
	return xs, ys
}

func axisName(obs dataset.Observable, x bool, opts Options) string {
	var name string
	switch {
	case obs == dataset.MassFunction && x:
		name = "M [M_sun]"
	case obs == dataset.MassFunction:
		name = "n(M) [h^3 Mpc^-3 dex^-1]"
	case x:
		name = "r [Mpc/h]"
	case opts.Residual:
		name = "ξ(r) - 100 r^-1.8"
	default:
		name = "ξ(r)"
	}
	if (x && opts.LogX) || (!x && opts.LogY) {
		name = "log10 " + name
	}
	return name
}
