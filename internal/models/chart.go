// internal/models/chart.go
package models

// RadarChart compares up to five foods across the four nutrients.
type RadarChart struct {
	Axes     []string       `json:"axes"`
	AxisMax  float64        `json:"axis_max"`
	Polygons []RadarPolygon `json:"polygons"`
}

type RadarPolygon struct {
	Food   string    `json:"food"`
	Label  string    `json:"label"`
	Color  string    `json:"color"`
	Values []float64 `json:"values"` // Protein, Fat, Fiber, Carbs
}

// Closed returns the polygon's values with the first repeated at the end.
func (p RadarPolygon) Closed() []float64 {
	if len(p.Values) == 0 {
		return nil
	}
	out := make([]float64, 0, len(p.Values)+1)
	out = append(out, p.Values...)
	return append(out, p.Values[0])
}

type ScatterChart struct {
	Title      string         `json:"title"`
	XLabel     string         `json:"x_label"`
	YLabel     string         `json:"y_label"`
	ColorLabel string         `json:"color_label"`
	ColorScale string         `json:"color_scale"`
	ColorMin   float64        `json:"color_min"`
	ColorMax   float64        `json:"color_max"`
	Points     []ScatterPoint `json:"points"`
}

type ScatterPoint struct {
	Food  string  `json:"food"`
	X     float64 `json:"x"`     // protein
	Y     float64 `json:"y"`     // fiber
	Color float64 `json:"color"` // carbs
	Hover string  `json:"hover"`
}

type TopPerformersChart struct {
	Title       string       `json:"title"`
	Nutrient    NutrientKind `json:"nutrient"`
	AxisLabel   string       `json:"axis_label"`
	Color       string       `json:"color"`
	Orientation string       `json:"orientation"`
	Bars        []TopBar     `json:"bars"` // ascending by value
}

type TopBar struct {
	Food    string            `json:"food"`
	Label   string            `json:"label"`
	Value   float64           `json:"value"`
	Bucket  Bucket            `json:"bucket"`
	Profile []NutrientReading `json:"profile"`
	Hover   string            `json:"hover"`
}

// NutrientReading is one line of a food's nutritional profile.
type NutrientReading struct {
	Nutrient NutrientKind `json:"nutrient"`
	Value    float64      `json:"value"`
	Bucket   Bucket       `json:"bucket"`
}

type ComparisonTable struct {
	Columns []string        `json:"columns"`
	Rows    []ComparisonRow `json:"rows"`
}

type ComparisonRow struct {
	Food     string  `json:"food"`
	ProteinG float64 `json:"protein_g"`
	FatG     float64 `json:"fat_g"`
	FiberG   float64 `json:"fiber_g"`
	CarbG    float64 `json:"carbs_g"`
}

type QuickStats struct {
	TotalFoods     int     `json:"total_foods"`
	HighestProtein float64 `json:"highest_protein"`
	HighestFiber   float64 `json:"highest_fiber"`
	LowestCarbs    float64 `json:"lowest_carbs"`
}
