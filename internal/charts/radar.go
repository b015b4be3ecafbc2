// internal/charts/radar.go
package charts

import (
	"fmt"

	"nutri-dash/internal/dataset"
	"nutri-dash/internal/models"
)

const (
	radarPadding   = 1.3
	radarMinScale  = 10.0
	radarEmptyMax  = 50.0
	radarNameLimit = 20
	radarNameKeep  = 17
)

// RadarPalette colours polygons by selection index.
var RadarPalette = []string{"#E74C3C", "#3498DB", "#2ECC71", "#F39C12", "#9B59B6"}

// BuildRadar returns one closed polygon per selected food, values ordered
// Protein, Fat, Fiber, Carbs, on a shared radial axis.
func BuildRadar(ds *dataset.Dataset, sel dataset.Selection) (models.RadarChart, error) {
	if ds == nil {
		return models.RadarChart{}, ErrNoDataset
	}

	out := models.RadarChart{
		Axes:     make([]string, 0, len(models.Nutrients)),
		AxisMax:  radarEmptyMax,
		Polygons: make([]models.RadarPolygon, 0, sel.Len()),
	}
	for _, k := range models.Nutrients {
		out.Axes = append(out.Axes, k.AxisLabel())
	}
	if sel.Empty() {
		return out, nil
	}

	peak := 0.0
	for i, name := range sel.Names() {
		rec, ok := ds.Lookup(name)
		if !ok {
			return models.RadarChart{}, fmt.Errorf("%w: %q", dataset.ErrUnknownFood, name)
		}
		vals := rec.Values()
		for _, v := range vals {
			if v > peak {
				peak = v
			}
		}
		out.Polygons = append(out.Polygons, models.RadarPolygon{
			Food:   rec.Name,
			Label:  truncate(rec.Name, radarNameLimit, radarNameKeep),
			Color:  RadarPalette[i%len(RadarPalette)],
			Values: vals,
		})
	}

	out.AxisMax = peak * radarPadding
	if out.AxisMax < radarMinScale {
		out.AxisMax = radarMinScale
	}
	return out, nil
}
