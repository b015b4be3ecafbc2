// internal/charts/result.go
package charts

import (
	"fmt"

	"nutri-dash/internal/dataset"
	"nutri-dash/internal/models"
)

// Panel names.
const (
	PanelRadar      = "radar"
	PanelScatter    = "scatter"
	PanelComparison = "comparison"
	PanelTop        = "top_performers"
	PanelStats      = "quick_stats"
)

// Result is the outcome of building one dashboard panel: either data or the
// reason it could not be built.
type Result struct {
	Chart  string `json:"chart"`
	OK     bool   `json:"ok"`
	Data   any    `json:"data,omitempty"`
	Reason string `json:"reason,omitempty"`
}

func Failure(chart string, err error) Result {
	return Result{Chart: chart, Reason: err.Error()}
}

// Run builds a panel, turning an error or a panic into a failed Result.
func Run[T any](chart string, build func() (T, error)) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Failure(chart, fmt.Errorf("panic while building %s: %v", chart, r))
		}
	}()

	data, err := build()
	if err != nil {
		return Failure(chart, err)
	}
	return Result{Chart: chart, OK: true, Data: data}
}

// Dashboard holds every panel for one page view. Panels not shown for the
// current state are nil.
type Dashboard struct {
	Selection  []string            `json:"selection"`
	Nutrient   models.NutrientKind `json:"nutrient"`
	Radar      *Result             `json:"radar,omitempty"`
	Scatter    *Result             `json:"scatter"`
	Comparison *Result             `json:"comparison,omitempty"`
	Stats      *Result             `json:"quick_stats,omitempty"`
	Top        *Result             `json:"top_performers"`
}

// BuildDashboard assembles the page. With a selection it shows the radar,
// scatter, comparison table and top performers for k; without one it shows
// the scatter, quick stats and top performers for Protein.
func BuildDashboard(ds *dataset.Dataset, sel dataset.Selection, k models.NutrientKind) Dashboard {
	d := Dashboard{Selection: sel.Names()}
	scatter := Run(PanelScatter, func() (models.ScatterChart, error) { return BuildScatter(ds) })
	d.Scatter = &scatter

	if sel.Empty() {
		k = models.Protein
		stats := Run(PanelStats, func() (models.QuickStats, error) { return BuildQuickStats(ds) })
		d.Stats = &stats
	} else {
		radar := Run(PanelRadar, func() (models.RadarChart, error) { return BuildRadar(ds, sel) })
		table := Run(PanelComparison, func() (models.ComparisonTable, error) { return BuildComparison(ds, sel) })
		d.Radar = &radar
		d.Comparison = &table
	}

	d.Nutrient = k
	top := Run(PanelTop, func() (models.TopPerformersChart, error) { return BuildTopPerformers(ds, k) })
	d.Top = &top
	return d
}
