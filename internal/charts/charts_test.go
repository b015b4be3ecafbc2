package charts

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"testing"

	"nutri-dash/internal/dataset"
	"nutri-dash/internal/models"
)

func twoFoods() *dataset.Dataset {
	return dataset.FromRecords([]models.FoodRecord{
		{Name: "Spinach", ProteinG: 2.9, FatG: 0.4, FiberG: 2.2, CarbG: 3.6},
		{Name: "Lentils", ProteinG: 9.0, FatG: 0.4, FiberG: 7.9, CarbG: 20.1},
	})
}

func mustSelect(t *testing.T, ds *dataset.Dataset, names ...string) dataset.Selection {
	t.Helper()
	sel, err := ds.Select(names...)
	if err != nil {
		t.Fatalf("Select(%v): %v", names, err)
	}
	return sel
}

func TestBuildRadarSpinachLentils(t *testing.T) {
	ds := twoFoods()
	chart, err := BuildRadar(ds, mustSelect(t, ds, "Spinach", "Lentils"))
	if err != nil {
		t.Fatalf("BuildRadar: %v", err)
	}
	if math.Abs(chart.AxisMax-26.13) > 1e-9 {
		t.Errorf("AxisMax = %v, want 26.13", chart.AxisMax)
	}
	if len(chart.Polygons) != 2 {
		t.Fatalf("expected 2 polygons, got %d", len(chart.Polygons))
	}
	want := [][]float64{{2.9, 0.4, 2.2, 3.6}, {9.0, 0.4, 7.9, 20.1}}
	for i, p := range chart.Polygons {
		if len(p.Values) != 4 {
			t.Fatalf("polygon %d has %d values", i, len(p.Values))
		}
		for j := range want[i] {
			if p.Values[j] != want[i][j] {
				t.Errorf("polygon %d value %d = %v, want %v", i, j, p.Values[j], want[i][j])
			}
		}
		if p.Color != RadarPalette[i] {
			t.Errorf("polygon %d color = %s, want %s", i, p.Color, RadarPalette[i])
		}
		closed := p.Closed()
		if len(closed) != 5 || closed[4] != closed[0] {
			t.Errorf("polygon %d not closed: %v", i, closed)
		}
	}
	wantAxes := []string{"Protein (g)", "Fat (g)", "Fiber (g)", "Carbs (g)"}
	for i, a := range chart.Axes {
		if a != wantAxes[i] {
			t.Errorf("axis %d = %q, want %q", i, a, wantAxes[i])
		}
	}
}

func TestBuildRadarEmptySelection(t *testing.T) {
	chart, err := BuildRadar(twoFoods(), dataset.Selection{})
	if err != nil {
		t.Fatalf("BuildRadar: %v", err)
	}
	if len(chart.Polygons) != 0 {
		t.Errorf("expected no polygons, got %d", len(chart.Polygons))
	}
	if chart.AxisMax < radarMinScale {
		t.Errorf("AxisMax %v below floor", chart.AxisMax)
	}
}

func TestBuildRadarAxisFloor(t *testing.T) {
	ds := dataset.FromRecords([]models.FoodRecord{
		{Name: "Cucumber", ProteinG: 0.4, FatG: 0.1, FiberG: 0.4, CarbG: 2.5},
		{Name: "Water", ProteinG: 0, FatG: 0, FiberG: 0, CarbG: 0},
	})
	for _, names := range [][]string{{"Cucumber"}, {"Water"}, {"Water", "Cucumber"}} {
		chart, err := BuildRadar(ds, mustSelect(t, ds, names...))
		if err != nil {
			t.Fatal(err)
		}
		if chart.AxisMax != 10 {
			t.Errorf("%v: AxisMax = %v, want 10", names, chart.AxisMax)
		}
	}
}

func TestBuildRadarPolygonsMatchSelection(t *testing.T) {
	recs := make([]models.FoodRecord, 8)
	for i := range recs {
		f := float64(i + 1)
		recs[i] = models.FoodRecord{Name: fmt.Sprintf("food %d", i), ProteinG: f, FatG: 2 * f, FiberG: 3 * f, CarbG: 4 * f}
	}
	ds := dataset.FromRecords(recs)
	for n := 0; n <= dataset.MaxSelection; n++ {
		names := ds.Names()[:n]
		chart, err := BuildRadar(ds, mustSelect(t, ds, names...))
		if err != nil {
			t.Fatal(err)
		}
		if len(chart.Polygons) != n {
			t.Fatalf("n=%d: got %d polygons", n, len(chart.Polygons))
		}
		peak := 0.0
		for i, p := range chart.Polygons {
			rec, _ := ds.Lookup(names[i])
			for j, k := range models.Nutrients {
				if p.Values[j] != rec.Value(k) {
					t.Errorf("n=%d polygon %d %s = %v, want %v", n, i, k, p.Values[j], rec.Value(k))
				}
				peak = math.Max(peak, rec.Value(k))
			}
		}
		if chart.AxisMax < 10 {
			t.Errorf("n=%d: AxisMax %v < 10", n, chart.AxisMax)
		}
		if peak*1.3 > 10 && chart.AxisMax < peak*1.3 {
			t.Errorf("n=%d: AxisMax %v < 1.3*%v", n, chart.AxisMax, peak)
		}
	}
}

func TestBuildRadarLabelsAndPaletteCycle(t *testing.T) {
	ds := dataset.FromRecords([]models.FoodRecord{
		{Name: "Exactly Twenty Chars"},
		{Name: "Twenty One Characters"},
	})
	chart, err := BuildRadar(ds, mustSelect(t, ds, "Exactly Twenty Chars", "Twenty One Characters"))
	if err != nil {
		t.Fatal(err)
	}
	if got := chart.Polygons[0].Label; got != "Exactly Twenty Chars" {
		t.Errorf("label = %q, want untouched", got)
	}
	if got := chart.Polygons[1].Label; got != "Twenty One Charac..." {
		t.Errorf("label = %q, want %q", got, "Twenty One Charac...")
	}
	if chart.Polygons[1].Food != "Twenty One Characters" {
		t.Errorf("Food should keep the full name")
	}
}

func TestBuildRadarForeignSelection(t *testing.T) {
	other := dataset.FromRecords([]models.FoodRecord{{Name: "Jackfruit"}})
	sel := mustSelect(t, other, "Jackfruit")
	_, err := BuildRadar(twoFoods(), sel)
	if !errors.Is(err, dataset.ErrUnknownFood) {
		t.Errorf("expected ErrUnknownFood, got %v", err)
	}
	if _, err := BuildRadar(nil, sel); !errors.Is(err, ErrNoDataset) {
		t.Errorf("expected ErrNoDataset, got %v", err)
	}
}

func TestBuildScatter(t *testing.T) {
	ds := twoFoods()
	chart, err := BuildScatter(ds)
	if err != nil {
		t.Fatal(err)
	}
	if len(chart.Points) != ds.Len() {
		t.Fatalf("expected %d points, got %d", ds.Len(), len(chart.Points))
	}
	p := chart.Points[1]
	if p.Food != "Lentils" || p.X != 9.0 || p.Y != 7.9 || p.Color != 20.1 {
		t.Errorf("unexpected point %+v", p)
	}
	if p.Hover != "<b>Lentils</b><br>Protein: 9.0g<br>Fiber: 7.9g<br>Carbs: 20.1g" {
		t.Errorf("unexpected hover %q", p.Hover)
	}
	if chart.ColorMin != 3.6 || chart.ColorMax != 20.1 {
		t.Errorf("colour range = [%v, %v]", chart.ColorMin, chart.ColorMax)
	}

	empty, err := BuildScatter(dataset.FromRecords(nil))
	if err != nil || len(empty.Points) != 0 {
		t.Errorf("empty dataset: %v points, err %v", len(empty.Points), err)
	}
}

func rankedDataset(n int) *dataset.Dataset {
	recs := make([]models.FoodRecord, n)
	for i := range recs {
		recs[i] = models.FoodRecord{
			Name:     fmt.Sprintf("food %02d", i),
			ProteinG: float64((i * 7) % n),
			FatG:     float64(i),
			FiberG:   1,
			CarbG:    float64(n - i),
		}
	}
	return dataset.FromRecords(recs)
}

func TestBuildTopPerformersSizeAndOrder(t *testing.T) {
	for _, n := range []int{0, 3, 15, 40} {
		ds := rankedDataset(n)
		for _, k := range models.Nutrients {
			chart, err := BuildTopPerformers(ds, k)
			if err != nil {
				t.Fatal(err)
			}
			want := TopN
			if n < want {
				want = n
			}
			if len(chart.Bars) != want {
				t.Fatalf("n=%d %s: got %d bars, want %d", n, k, len(chart.Bars), want)
			}
			if !sort.SliceIsSorted(chart.Bars, func(a, b int) bool { return chart.Bars[a].Value < chart.Bars[b].Value }) {
				t.Errorf("n=%d %s: bars not ascending", n, k)
			}
			if n == 0 {
				continue
			}
			// the last bar is the dataset maximum
			peak := 0.0
			for _, rec := range ds.Records() {
				peak = math.Max(peak, rec.Value(k))
			}
			if chart.Bars[len(chart.Bars)-1].Value != peak {
				t.Errorf("n=%d %s: top bar %v, want %v", n, k, chart.Bars[len(chart.Bars)-1].Value, peak)
			}
		}
	}
}

func TestBuildTopPerformersTieBreak(t *testing.T) {
	recs := make([]models.FoodRecord, 20)
	for i := range recs {
		recs[i] = models.FoodRecord{Name: fmt.Sprintf("tie %02d", i), FiberG: 5}
	}
	ds := dataset.FromRecords(recs)
	chart, err := BuildTopPerformers(ds, models.Fiber)
	if err != nil {
		t.Fatal(err)
	}
	// first 15 rows win, shown in reverse so the earliest is on top
	for i, bar := range chart.Bars {
		want := fmt.Sprintf("tie %02d", TopN-1-i)
		if bar.Food != want {
			t.Errorf("bar %d = %s, want %s", i, bar.Food, want)
		}
	}
}

func TestBuildTopPerformersAnnotations(t *testing.T) {
	ds := dataset.FromRecords([]models.FoodRecord{
		{Name: "Bottle Gourd Without Skin Raw", ProteinG: 0.2, FatG: 0.1, FiberG: 0.5, CarbG: 3.2},
		{Name: "Soya Bean", ProteinG: 37.8, FatG: 19.4, FiberG: 21.6, CarbG: 11.0},
		{Name: "Peas", ProteinG: 7.2, FatG: 0.1, FiberG: 4.5, CarbG: 10.9},
	})
	chart, err := BuildTopPerformers(ds, models.Protein)
	if err != nil {
		t.Fatal(err)
	}
	if chart.Title != "Top 15 Protein Sources" || chart.AxisLabel != "Protein (g per 100g)" {
		t.Errorf("unexpected titles %q / %q", chart.Title, chart.AxisLabel)
	}
	if chart.Color != "#E74C3C" || chart.Orientation != "h" {
		t.Errorf("unexpected colour/orientation %s %s", chart.Color, chart.Orientation)
	}

	gourd := chart.Bars[0]
	if gourd.Label != "Bottle Gourd Without Skin..." {
		t.Errorf("label = %q", gourd.Label)
	}
	if gourd.Bucket != models.BucketBelowAverage {
		t.Errorf("gourd bucket = %s", gourd.Bucket)
	}

	soya := chart.Bars[2]
	if soya.Food != "Soya Bean" || soya.Bucket != models.BucketTop5 {
		t.Errorf("unexpected top bar %+v", soya)
	}
	if len(soya.Profile) != 4 {
		t.Fatalf("profile has %d entries", len(soya.Profile))
	}
	for i, r := range soya.Profile {
		if r.Nutrient != models.Nutrients[i] {
			t.Errorf("profile[%d] nutrient = %s", i, r.Nutrient)
		}
		if r.Bucket != models.BucketTop5 {
			t.Errorf("profile[%d] bucket = %s, want Top 5%%", i, r.Bucket)
		}
	}
	if !strings.Contains(soya.Hover, "Fat: 19.4g (Top 5%)") || !strings.Contains(soya.Hover, "<b>Soya Bean</b>") {
		t.Errorf("hover missing profile: %q", soya.Hover)
	}
}

func TestBuildTopPerformersRejectsUnknownNutrient(t *testing.T) {
	_, err := BuildTopPerformers(twoFoods(), models.NutrientKind(9))
	if !errors.Is(err, models.ErrUnknownNutrient) {
		t.Errorf("expected ErrUnknownNutrient, got %v", err)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in          string
		limit, keep int
		want        string
	}{
		{"Bottle Gourd Without Skin Raw", 25, 25, "Bottle Gourd Without Skin..."},
		{"Exactly twenty-five chars", 25, 25, "Exactly twenty-five chars"},
		{"Amaranth Leaves Green Fresh", 20, 17, "Amaranth Leaves G..."},
		{"Jāmun fruit, ripe, with seed", 20, 17, "Jāmun fruit, ripe..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.limit, tt.keep); got != tt.want {
			t.Errorf("truncate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildComparisonAndStats(t *testing.T) {
	ds := dataset.FromRecords([]models.FoodRecord{
		{Name: "A", ProteinG: 1.25, FatG: 0.04, FiberG: 3.35, CarbG: 10.96},
		{Name: "B", ProteinG: 20.01, FatG: 2, FiberG: 12.5, CarbG: 0.75},
	})
	table, err := BuildComparison(ds, mustSelect(t, ds, "B", "A"))
	if err != nil {
		t.Fatal(err)
	}
	if len(table.Columns) != 5 || table.Columns[0] != "Vegetable" {
		t.Errorf("columns = %v", table.Columns)
	}
	if table.Rows[0].Food != "B" || table.Rows[1].Food != "A" {
		t.Errorf("rows not in selection order: %+v", table.Rows)
	}
	if a := table.Rows[1]; a.FatG != 0 || a.CarbG != 11 {
		t.Errorf("rounding: %+v", a)
	}

	stats, err := BuildQuickStats(ds)
	if err != nil {
		t.Fatal(err)
	}
	want := models.QuickStats{TotalFoods: 2, HighestProtein: 20, HighestFiber: 12.5, LowestCarbs: 0.8}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}
}

func TestRunRecoversPanics(t *testing.T) {
	res := Run("boom", func() (int, error) { panic("kaput") })
	if res.OK || !strings.Contains(res.Reason, "kaput") {
		t.Errorf("unexpected result %+v", res)
	}
	res = Run("err", func() (int, error) { return 0, errors.New("nope") })
	if res.OK || res.Reason != "nope" {
		t.Errorf("unexpected result %+v", res)
	}
	res = Run("fine", func() (int, error) { return 7, nil })
	if !res.OK || res.Data.(int) != 7 {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestBuildDashboard(t *testing.T) {
	ds := twoFoods()

	withSel := BuildDashboard(ds, mustSelect(t, ds, "Lentils"), models.Fiber)
	if withSel.Radar == nil || withSel.Comparison == nil || withSel.Stats != nil {
		t.Fatalf("unexpected panels with selection: %+v", withSel)
	}
	if !withSel.Radar.OK || !withSel.Scatter.OK || !withSel.Top.OK {
		t.Errorf("expected all panels ok: %+v", withSel)
	}
	if withSel.Nutrient != models.Fiber {
		t.Errorf("nutrient = %s", withSel.Nutrient)
	}

	none := BuildDashboard(ds, dataset.Selection{}, models.Fat)
	if none.Radar != nil || none.Comparison != nil || none.Stats == nil {
		t.Fatalf("unexpected panels without selection: %+v", none)
	}
	if none.Nutrient != models.Protein {
		t.Errorf("empty selection should rank Protein, got %s", none.Nutrient)
	}

	// a failing panel leaves the others intact
	other := dataset.FromRecords([]models.FoodRecord{{Name: "Elsewhere"}})
	broken := BuildDashboard(ds, mustSelect(t, other, "Elsewhere"), models.Carbs)
	if broken.Radar.OK || broken.Comparison.OK {
		t.Error("expected radar and comparison to fail")
	}
	if !broken.Scatter.OK || !broken.Top.OK {
		t.Error("scatter and top should still succeed")
	}
}
