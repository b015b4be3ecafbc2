// internal/charts/top.go
package charts

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"nutri-dash/internal/dataset"
	"nutri-dash/internal/models"
)

const (
	// TopN is how many foods the top-performers chart ranks.
	TopN = 15

	topNameLimit = 25
)

// TopIndices returns the dataset positions of the n largest values of k,
// largest first. Equal values keep dataset order, so at the cutoff the
// earlier row wins.
func TopIndices(ds *dataset.Dataset, k models.NutrientKind, n int) []int {
	idx := make([]int, ds.Len())
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return ds.At(idx[a]).Value(k) > ds.At(idx[b]).Value(k)
	})
	if n < len(idx) {
		idx = idx[:n]
	}
	return idx
}

// BuildTopPerformers ranks the TopN foods for nutrient k. Bars come back in
// ascending order so the largest value is drawn at the top of a horizontal
// bar chart.
func BuildTopPerformers(ds *dataset.Dataset, k models.NutrientKind) (models.TopPerformersChart, error) {
	if ds == nil {
		return models.TopPerformersChart{}, ErrNoDataset
	}
	if _, err := k.MarshalText(); err != nil {
		return models.TopPerformersChart{}, err
	}

	pct := ds.Percentiles()
	ranked := TopIndices(ds, k, TopN)
	out := models.TopPerformersChart{
		Title:       fmt.Sprintf("Top %d %s Sources", TopN, k),
		Nutrient:    k,
		AxisLabel:   fmt.Sprintf("%s (g per 100g)", k),
		Color:       k.Color(),
		Orientation: "h",
		Bars:        make([]models.TopBar, 0, len(ranked)),
	}
	for i := len(ranked) - 1; i >= 0; i-- {
		rec := ds.At(ranked[i])
		profile := Profile(pct, rec)
		out.Bars = append(out.Bars, models.TopBar{
			Food:    rec.Name,
			Label:   truncate(rec.Name, topNameLimit, topNameLimit),
			Value:   rec.Value(k),
			Bucket:  pct.Classify(k, rec.Value(k)),
			Profile: profile,
			Hover:   profileHover(rec.Name, profile),
		})
	}
	return out, nil
}

// Profile reports all four nutrients of rec with their buckets.
func Profile(pct dataset.PercentileTable, rec models.FoodRecord) []models.NutrientReading {
	out := make([]models.NutrientReading, 0, len(models.Nutrients))
	for _, k := range models.Nutrients {
		v := rec.Value(k)
		out = append(out, models.NutrientReading{
			Nutrient: k,
			Value:    Round1(v),
			Bucket:   pct.Classify(k, v),
		})
	}
	return out
}

func profileHover(name string, profile []models.NutrientReading) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<b>%s</b><br><br><b>Complete Nutritional Profile:</b><br>", html.EscapeString(name))
	for _, r := range profile {
		fmt.Fprintf(&sb, "%s: %.1fg (%s)<br>", r.Nutrient, r.Value, r.Bucket)
	}
	return sb.String()
}
