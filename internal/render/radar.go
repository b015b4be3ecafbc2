package render

import (
	"fmt"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"

	"nutri-dash/internal/models"
)

const (
	radarRings       = 5
	radarLegendWidth = 200
	radarMargin      = 50
)

type point struct{ x, y int }

// radarPoint places value v of spoke i (of n) on a circle of radius
// v/axisMax*radius around (cx, cy). Spoke 0 points straight up; spokes run
// clockwise.
func radarPoint(cx, cy int, radius float64, i, n int, v, axisMax float64) point {
	theta := -math.Pi/2 + 2*math.Pi*float64(i)/float64(n)
	r := 0.0
	if axisMax > 0 {
		r = math.Min(v, axisMax) / axisMax * radius
	}
	return point{
		x: cx + int(math.Round(r*math.Cos(theta))),
		y: cy + int(math.Round(r*math.Sin(theta))),
	}
}

// Radar draws the comparison polygons on go-chart's SVG renderer: ring grid,
// spokes, axis labels, one translucent polygon per food and a legend. An
// empty chart still draws the grid.
func Radar(w io.Writer, c models.RadarChart, size Size) error {
	if len(c.Axes) < 3 {
		return fmt.Errorf("radar: %w: need at least 3 axes, got %d", ErrNothingToDraw, len(c.Axes))
	}

	r, err := chart.SVG(size.Width, size.Height)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return fmt.Errorf("failed to load font: %w", err)
	}
	r.SetFont(font)

	plotWidth := size.Width - radarLegendWidth
	cx, cy := plotWidth/2, size.Height/2
	radius := float64(min(plotWidth, size.Height))/2 - radarMargin
	if radius < 10 {
		radius = 10
	}
	n := len(c.Axes)

	// background
	r.SetFillColor(panelFill)
	r.SetStrokeColor(panelFill)
	r.MoveTo(0, 0)
	r.LineTo(size.Width, 0)
	r.LineTo(size.Width, size.Height)
	r.LineTo(0, size.Height)
	r.Close()
	r.FillStroke()

	// rings with their radial values
	r.SetFontSize(9)
	r.SetFontColor(textColor)
	for ring := 1; ring <= radarRings; ring++ {
		v := c.AxisMax * float64(ring) / radarRings
		r.ResetStyle()
		r.SetStrokeColor(gridColor)
		r.SetStrokeWidth(1)
		first := radarPoint(cx, cy, radius, 0, n, v, c.AxisMax)
		r.MoveTo(first.x, first.y)
		for i := 1; i < n; i++ {
			p := radarPoint(cx, cy, radius, i, n, v, c.AxisMax)
			r.LineTo(p.x, p.y)
		}
		r.Close()
		r.Stroke()

		r.SetFontSize(9)
		r.SetFontColor(textColor)
		r.Text(formatTick(v), first.x+4, first.y+3)
	}

	// spokes and axis labels
	r.SetFontSize(12)
	for i, label := range c.Axes {
		end := radarPoint(cx, cy, radius, i, n, c.AxisMax, c.AxisMax)
		r.ResetStyle()
		r.SetStrokeColor(lineColor)
		r.SetStrokeWidth(2)
		r.MoveTo(cx, cy)
		r.LineTo(end.x, end.y)
		r.Stroke()

		r.SetFontSize(12)
		r.SetFontColor(textColor)
		box := r.MeasureText(label)
		lp := radarPoint(cx, cy, radius+18, i, n, c.AxisMax, c.AxisMax)
		r.Text(label, lp.x-box.Width()/2, lp.y+box.Height()/2)
	}

	// one polygon per food
	for _, poly := range c.Polygons {
		if len(poly.Values) == 0 {
			continue
		}
		col := hexColor(poly.Color)
		r.ResetStyle()
		r.SetStrokeColor(col)
		r.SetStrokeWidth(3)
		r.SetFillColor(col.WithAlpha(100))
		for i, v := range poly.Closed() {
			p := radarPoint(cx, cy, radius, i%n, n, v, c.AxisMax)
			if i == 0 {
				r.MoveTo(p.x, p.y)
				continue
			}
			r.LineTo(p.x, p.y)
		}
		r.Close()
		r.FillStroke()
	}

	// legend
	lx, ly := plotWidth+10, radarMargin
	for i, poly := range c.Polygons {
		y := ly + i*22
		r.ResetStyle()
		col := hexColor(poly.Color)
		r.SetFillColor(col)
		r.SetStrokeColor(col)
		r.MoveTo(lx, y)
		r.LineTo(lx+12, y)
		r.LineTo(lx+12, y+12)
		r.LineTo(lx, y+12)
		r.Close()
		r.FillStroke()

		r.SetFontSize(11)
		r.SetFontColor(textColor)
		r.Text(poly.Label, lx+18, y+11)
	}

	if err := r.Save(w); err != nil {
		return fmt.Errorf("failed to write radar chart: %w", err)
	}
	return nil
}

func formatTick(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}
