// internal/dataset/percentile.go
package dataset

import (
	"math"
	"sort"

	"nutri-dash/internal/models"
)

// Cutpoints holds the percentile thresholds of one nutrient.
type Cutpoints struct {
	P25 float64 `json:"p25"`
	P50 float64 `json:"p50"`
	P75 float64 `json:"p75"`
	P90 float64 `json:"p90"`
	P95 float64 `json:"p95"`
}

// PercentileTable maps every nutrient to its cut points over the full dataset.
type PercentileTable map[models.NutrientKind]Cutpoints

func computePercentiles(records []models.FoodRecord) PercentileTable {
	table := make(PercentileTable, len(models.Nutrients))
	vals := make([]float64, len(records))
	for _, k := range models.Nutrients {
		for i, rec := range records {
			vals[i] = rec.Value(k)
		}
		sort.Float64s(vals)
		table[k] = Cutpoints{
			P25: Quantile(vals, 0.25),
			P50: Quantile(vals, 0.50),
			P75: Quantile(vals, 0.75),
			P90: Quantile(vals, 0.90),
			P95: Quantile(vals, 0.95),
		}
	}
	return table
}

// Quantile returns the q-th quantile of sorted values, interpolating linearly
// between the two closest ranks at position (n-1)*q. An empty slice yields 0.
func Quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[n-1]
	}
	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := lo + 1
	if hi >= n {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// Classify buckets v against the cut points of nutrient k. Thresholds are
// inclusive and checked from the top, so a value equal to p95 is Top 5%.
func (t PercentileTable) Classify(k models.NutrientKind, v float64) models.Bucket {
	c := t[k]
	switch {
	case v >= c.P95:
		return models.BucketTop5
	case v >= c.P90:
		return models.BucketTop10
	case v >= c.P75:
		return models.BucketHigh
	case v >= c.P50:
		return models.BucketAboveAverage
	case v >= c.P25:
		return models.BucketAverage
	default:
		return models.BucketBelowAverage
	}
}
