// internal/dataset/dataset.go
package dataset

import (
	"math"
	"sort"

	"nutri-dash/internal/models"
)

// Dataset is the loaded, validated food table. It is built once and only read
// afterwards, so a single *Dataset can be shared by concurrent handlers.
type Dataset struct {
	records     []models.FoodRecord
	index       map[string]int
	percentiles PercentileTable
	stats       LoadStats
}

// LoadStats reports what happened to the rows offered to the dataset.
type LoadStats struct {
	Rows       int `json:"rows"`
	Kept       int `json:"kept"`
	Incomplete int `json:"incomplete"`
	Duplicates int `json:"duplicates"`
}

// FromRecords builds a Dataset from already-typed records. Records with an
// empty name or a negative, NaN or infinite nutrient are dropped; later
// duplicates of a name are dropped.
func FromRecords(records []models.FoodRecord) *Dataset {
	ds := &Dataset{index: make(map[string]int, len(records))}
	for _, rec := range records {
		ds.stats.Rows++
		if rec.Name == "" || !validValues(rec) {
			ds.stats.Incomplete++
			continue
		}
		ds.add(rec)
	}
	ds.finish()
	return ds
}

func (d *Dataset) add(rec models.FoodRecord) {
	if _, dup := d.index[rec.Name]; dup {
		d.stats.Duplicates++
		return
	}
	d.index[rec.Name] = len(d.records)
	d.records = append(d.records, rec)
}

func (d *Dataset) finish() {
	d.stats.Kept = len(d.records)
	d.percentiles = computePercentiles(d.records)
}

func validValues(rec models.FoodRecord) bool {
	for _, v := range rec.Values() {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return false
		}
	}
	return true
}

func (d *Dataset) Len() int { return len(d.records) }

// At returns the i-th record in source order.
func (d *Dataset) At(i int) models.FoodRecord { return d.records[i] }

// Records returns a copy of all records in source order.
func (d *Dataset) Records() []models.FoodRecord {
	out := make([]models.FoodRecord, len(d.records))
	copy(out, d.records)
	return out
}

func (d *Dataset) Lookup(name string) (models.FoodRecord, bool) {
	i, ok := d.index[name]
	if !ok {
		return models.FoodRecord{}, false
	}
	return d.records[i], true
}

// Position returns the source-order index of name, or -1.
func (d *Dataset) Position(name string) int {
	if i, ok := d.index[name]; ok {
		return i
	}
	return -1
}

// Names returns food names in source order.
func (d *Dataset) Names() []string {
	names := make([]string, len(d.records))
	for i, rec := range d.records {
		names[i] = rec.Name
	}
	return names
}

// Options returns the food names sorted alphabetically, as offered by the
// selection control.
func (d *Dataset) Options() []string {
	names := d.Names()
	sort.Strings(names)
	return names
}

func (d *Dataset) Percentiles() PercentileTable { return d.percentiles }

func (d *Dataset) Stats() LoadStats { return d.stats }

// DefaultSelection is the first three foods in source order.
func (d *Dataset) DefaultSelection() Selection {
	n := DefaultSelectionSize
	if n > len(d.records) {
		n = len(d.records)
	}
	names := make([]string, 0, n)
	for _, rec := range d.records[:n] {
		names = append(names, rec.Name)
	}
	return Selection{names: names}
}
