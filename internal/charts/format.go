// internal/charts/format.go
package charts

import (
	"errors"
	"math"
)

const ellipsis = "..."

var ErrNoDataset = errors.New("no dataset loaded")

// truncate shortens s to keep runes plus an ellipsis when it is longer than
// limit runes.
func truncate(s string, limit, keep int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:keep]) + ellipsis
}

// Round1 rounds to one decimal place, halves away from zero.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
