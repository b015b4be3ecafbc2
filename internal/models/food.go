// internal/models/food.go
package models

import (
	"errors"
	"fmt"
	"strings"
)

// FoodRecord is one row of the nutrition dataset. Values are grams per 100 g
// edible portion.
type FoodRecord struct {
	Name     string  `json:"name"`
	ProteinG float64 `json:"prot_g"`
	FatG     float64 `json:"tot_fat_g"`
	FiberG   float64 `json:"tot_fib_g"`
	CarbG    float64 `json:"carb_g"`
}

// Value returns the record's value for the given nutrient.
func (f FoodRecord) Value(k NutrientKind) float64 {
	switch k {
	case Protein:
		return f.ProteinG
	case Fat:
		return f.FatG
	case Fiber:
		return f.FiberG
	case Carbs:
		return f.CarbG
	}
	return 0
}

// Values returns the four nutrient values in Nutrients order.
func (f FoodRecord) Values() []float64 {
	vals := make([]float64, 0, len(Nutrients))
	for _, k := range Nutrients {
		vals = append(vals, f.Value(k))
	}
	return vals
}

type NutrientKind int

const (
	Protein NutrientKind = iota
	Fat
	Fiber
	Carbs
)

// Nutrients lists every tracked nutrient in display order.
var Nutrients = []NutrientKind{Protein, Fat, Fiber, Carbs}

var ErrUnknownNutrient = errors.New("unknown nutrient")

type nutrientInfo struct {
	name   string
	column string
	color  string
}

var nutrientTable = map[NutrientKind]nutrientInfo{
	Protein: {"Protein", "prot_g", "#E74C3C"},
	Fat:     {"Fat", "tot_fat_g", "#3498DB"},
	Fiber:   {"Fiber", "tot_fib_g", "#2ECC71"},
	Carbs:   {"Carbs", "carb_g", "#F39C12"},
}

func (k NutrientKind) String() string {
	if info, ok := nutrientTable[k]; ok {
		return info.name
	}
	return fmt.Sprintf("NutrientKind(%d)", int(k))
}

// Column is the CSV header the nutrient is read from.
func (k NutrientKind) Column() string { return nutrientTable[k].column }

// Color is the hex colour used for the nutrient's bars.
func (k NutrientKind) Color() string { return nutrientTable[k].color }

// AxisLabel returns e.g. "Protein (g)".
func (k NutrientKind) AxisLabel() string { return k.String() + " (g)" }

// ParseNutrient accepts a display name ("Protein", "carbs", ...) or a column
// name ("prot_g").
func ParseNutrient(s string) (NutrientKind, error) {
	s = strings.TrimSpace(s)
	for _, k := range Nutrients {
		info := nutrientTable[k]
		if strings.EqualFold(s, info.name) || s == info.column {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q (want one of Protein, Fat, Fiber, Carbs)", ErrUnknownNutrient, s)
}

func (k NutrientKind) MarshalText() ([]byte, error) {
	if _, ok := nutrientTable[k]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownNutrient, int(k))
	}
	return []byte(k.String()), nil
}

func (k *NutrientKind) UnmarshalText(text []byte) error {
	parsed, err := ParseNutrient(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Bucket classifies a value against the dataset-wide percentile cut points.
type Bucket string

const (
	BucketTop5         Bucket = "Top 5%"
	BucketTop10        Bucket = "Top 10%"
	BucketHigh         Bucket = "High"
	BucketAboveAverage Bucket = "Above Average"
	BucketAverage      Bucket = "Average"
	BucketBelowAverage Bucket = "Below Average"
)
