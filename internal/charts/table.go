// internal/charts/table.go
package charts

import (
	"fmt"

	"nutri-dash/internal/dataset"
	"nutri-dash/internal/models"
)

var comparisonColumns = []string{"Vegetable", "Protein (g)", "Fat (g)", "Fiber (g)", "Carbs (g)"}

// BuildComparison tabulates the selection's nutrients rounded to one decimal.
func BuildComparison(ds *dataset.Dataset, sel dataset.Selection) (models.ComparisonTable, error) {
	if ds == nil {
		return models.ComparisonTable{}, ErrNoDataset
	}
	out := models.ComparisonTable{
		Columns: append([]string(nil), comparisonColumns...),
		Rows:    make([]models.ComparisonRow, 0, sel.Len()),
	}
	for _, name := range sel.Names() {
		rec, ok := ds.Lookup(name)
		if !ok {
			return models.ComparisonTable{}, fmt.Errorf("%w: %q", dataset.ErrUnknownFood, name)
		}
		out.Rows = append(out.Rows, models.ComparisonRow{
			Food:     rec.Name,
			ProteinG: Round1(rec.ProteinG),
			FatG:     Round1(rec.FatG),
			FiberG:   Round1(rec.FiberG),
			CarbG:    Round1(rec.CarbG),
		})
	}
	return out, nil
}

// BuildQuickStats summarises the whole dataset.
func BuildQuickStats(ds *dataset.Dataset) (models.QuickStats, error) {
	if ds == nil {
		return models.QuickStats{}, ErrNoDataset
	}
	out := models.QuickStats{TotalFoods: ds.Len()}
	for i := 0; i < ds.Len(); i++ {
		rec := ds.At(i)
		if i == 0 || rec.ProteinG > out.HighestProtein {
			out.HighestProtein = rec.ProteinG
		}
		if i == 0 || rec.FiberG > out.HighestFiber {
			out.HighestFiber = rec.FiberG
		}
		if i == 0 || rec.CarbG < out.LowestCarbs {
			out.LowestCarbs = rec.CarbG
		}
	}
	out.HighestProtein = Round1(out.HighestProtein)
	out.HighestFiber = Round1(out.HighestFiber)
	out.LowestCarbs = Round1(out.LowestCarbs)
	return out, nil
}
