// internal/charts/scatter.go
package charts

import (
	"fmt"
	"html"

	"nutri-dash/internal/dataset"
	"nutri-dash/internal/models"
)

// BuildScatter plots every food: protein on X, fiber on Y, carbs as colour.
func BuildScatter(ds *dataset.Dataset) (models.ScatterChart, error) {
	if ds == nil {
		return models.ScatterChart{}, ErrNoDataset
	}

	out := models.ScatterChart{
		Title:      "All Vegetables: Protein vs Fiber (Color = Carbs)",
		XLabel:     models.Protein.AxisLabel(),
		YLabel:     models.Fiber.AxisLabel(),
		ColorLabel: models.Carbs.AxisLabel(),
		ColorScale: "Viridis",
		Points:     make([]models.ScatterPoint, 0, ds.Len()),
	}
	for i := 0; i < ds.Len(); i++ {
		rec := ds.At(i)
		if i == 0 || rec.CarbG < out.ColorMin {
			out.ColorMin = rec.CarbG
		}
		if i == 0 || rec.CarbG > out.ColorMax {
			out.ColorMax = rec.CarbG
		}
		out.Points = append(out.Points, models.ScatterPoint{
			Food:  rec.Name,
			X:     rec.ProteinG,
			Y:     rec.FiberG,
			Color: rec.CarbG,
			Hover: fmt.Sprintf("<b>%s</b><br>Protein: %.1fg<br>Fiber: %.1fg<br>Carbs: %.1fg",
				html.EscapeString(rec.Name), Round1(rec.ProteinG), Round1(rec.FiberG), Round1(rec.CarbG)),
		})
	}
	return out, nil
}
