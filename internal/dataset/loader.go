// internal/dataset/loader.go
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"nutri-dash/internal/models"
)

// NameColumn is the header of the food name column.
const NameColumn = "Food Name"

var (
	ErrSourceNotFound   = errors.New("dataset source not found")
	ErrUnreadableFormat = errors.New("unreadable dataset format")
)

// LoadError reports a dataset that could not be produced at all. Individual
// bad rows never cause one; they are dropped.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load dataset from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Load reads a CSV file from disk.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &LoadError{Source: path, Err: fmt.Errorf("%w: %w", ErrSourceNotFound, err)}
		}
		return nil, &LoadError{Source: path, Err: err}
	}
	defer f.Close()

	ds, err := read(f)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	return ds, nil
}

// Read parses CSV from r. source names the input in errors.
func Read(r io.Reader, source string) (*Dataset, error) {
	ds, err := read(r)
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	return ds, nil
}

type columnIndex struct {
	name      int
	nutrients [4]int // indexed by models.NutrientKind
}

func read(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty input", ErrUnreadableFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableFormat, err)
	}
	cols, err := locateColumns(header)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{index: make(map[string]int)}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnreadableFormat, err)
		}
		ds.stats.Rows++
		food, ok := parseRow(rec, cols)
		if !ok {
			ds.stats.Incomplete++
			continue
		}
		ds.add(food)
	}
	ds.finish()
	return ds, nil
}

func locateColumns(header []string) (columnIndex, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, seen := pos[h]; !seen {
			pos[h] = i
		}
	}

	var cols columnIndex
	var missing []string
	idx, ok := pos[NameColumn]
	if !ok {
		missing = append(missing, NameColumn)
	}
	cols.name = idx
	for _, k := range models.Nutrients {
		idx, ok := pos[k.Column()]
		if !ok {
			missing = append(missing, k.Column())
		}
		cols.nutrients[k] = idx
	}
	if len(missing) > 0 {
		return cols, fmt.Errorf("%w: missing columns %s", ErrUnreadableFormat, strings.Join(missing, ", "))
	}
	return cols, nil
}

func parseRow(rec []string, cols columnIndex) (models.FoodRecord, bool) {
	field := func(i int) (string, bool) {
		if i >= len(rec) {
			return "", false
		}
		v := strings.TrimSpace(rec[i])
		return v, v != ""
	}

	name, ok := field(cols.name)
	if !ok {
		return models.FoodRecord{}, false
	}
	var vals [4]float64
	for _, k := range models.Nutrients {
		raw, ok := field(cols.nutrients[k])
		if !ok {
			return models.FoodRecord{}, false
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return models.FoodRecord{}, false
		}
		vals[k] = v
	}
	return models.FoodRecord{
		Name:     name,
		ProteinG: vals[models.Protein],
		FatG:     vals[models.Fat],
		FiberG:   vals[models.Fiber],
		CarbG:    vals[models.Carbs],
	}, true
}
