// Package render draws dashboard charts as SVG with go-chart.
package render

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"nutri-dash/internal/models"
)

// ContentType is the MIME type of everything this package writes.
const ContentType = "image/svg+xml"

var ErrNothingToDraw = errors.New("nothing to draw")

// Size is the pixel size of a rendered chart.
type Size struct {
	Width  int
	Height int
}

var (
	textColor = hexColor("#2C3E50")
	gridColor = hexColor("#BDC3C7")
	lineColor = hexColor("#34495E")
	panelFill = hexColor("#F8F9FA")
)

func hexColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

// pointStyle renders points only, no connecting line.
func pointStyle(colors chart.DotColorProvider) chart.Style {
	return chart.Style{
		StrokeWidth:      chart.Disabled,
		DotWidth:         4,
		DotColorProvider: colors,
	}
}

// axisMax pads the largest value so the top point is not on the frame.
func axisMax(v float64) float64 {
	if v <= 0 {
		return 1
	}
	return v * 1.1
}

// Scatter draws the protein/fiber overview with carbs mapped onto Viridis.
func Scatter(w io.Writer, c models.ScatterChart, size Size) error {
	if len(c.Points) == 0 {
		return fmt.Errorf("scatter: %w", ErrNothingToDraw)
	}

	xs := make([]float64, len(c.Points))
	ys := make([]float64, len(c.Points))
	carbs := make([]float64, len(c.Points))
	maxX, maxY := 0.0, 0.0
	for i, p := range c.Points {
		xs[i], ys[i], carbs[i] = p.X, p.Y, p.Color
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	lo, hi := c.ColorMin, c.ColorMax
	if hi <= lo {
		hi = lo + 1
	}
	byCarbs := func(_, _ chart.Range, index int, _, _ float64) drawing.Color {
		return chart.Viridis(carbs[index], lo, hi)
	}

	ch := chart.Chart{
		Title:      c.Title,
		Width:      size.Width,
		Height:     size.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: c.XLabel, Range: &chart.ContinuousRange{Min: 0, Max: axisMax(maxX)}},
		YAxis:      chart.YAxis{Name: c.YLabel, Range: &chart.ContinuousRange{Min: 0, Max: axisMax(maxY)}},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    c.ColorLabel,
				XValues: xs,
				YValues: ys,
				Style:   pointStyle(byCarbs),
			},
		},
	}
	if err := ch.Render(chart.SVG, w); err != nil {
		return fmt.Errorf("failed to render scatter chart: %w", err)
	}
	return nil
}

// TopPerformers draws the ranked bars left to right in ascending order.
func TopPerformers(w io.Writer, c models.TopPerformersChart, size Size) error {
	if len(c.Bars) == 0 {
		return fmt.Errorf("top performers: %w", ErrNothingToDraw)
	}

	fill := hexColor(c.Color)
	bars := make([]chart.Value, 0, len(c.Bars))
	peak := 0.0
	for _, b := range c.Bars {
		peak = math.Max(peak, b.Value)
		bars = append(bars, chart.Value{
			Label: b.Label,
			Value: b.Value,
			Style: chart.Style{
				FillColor:   fill,
				StrokeColor: drawing.ColorBlack.WithAlpha(25),
				StrokeWidth: 1,
			},
		})
	}

	// keep all bars inside the canvas
	slot := (size.Width - 120) / (2 * len(bars))
	if slot < 4 {
		slot = 4
	}

	bc := chart.BarChart{
		Title:      c.Title,
		Width:      size.Width,
		Height:     size.Height,
		BarWidth:   slot,
		BarSpacing: slot,
		Background: chart.Style{Padding: chart.Box{Top: 40, Bottom: 120}},
		XAxis:      chart.Style{FontSize: 8, TextRotationDegrees: 45},
		YAxis: chart.YAxis{
			Name:  c.AxisLabel,
			Range: &chart.ContinuousRange{Min: 0, Max: axisMax(peak)},
		},
		Bars: bars,
	}
	if err := bc.Render(chart.SVG, w); err != nil {
		return fmt.Errorf("failed to render top performers chart: %w", err)
	}
	return nil
}
