// internal/server/page.go
package server

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/http"

	"nutri-dash/internal/charts"
	"nutri-dash/internal/dataset"
	"nutri-dash/internal/models"
	"nutri-dash/internal/render"
)

type foodOption struct {
	Name     string
	Selected bool
}

type nutrientOption struct {
	Value    string
	Selected bool
}

// panelView is one rendered dashboard panel, or the reason it failed.
type panelView struct {
	Title string
	SVG   template.HTML
	Error string
}

type pageData struct {
	Foods        []foodOption
	Nutrients    []nutrientOption
	MaxSelection int
	Empty        bool
	Error        string
	Panels       []panelView
	Comparison   *models.ComparisonTable
	Stats        *models.QuickStats
	Load         dataset.LoadStats
}

var pageTemplate = template.Must(template.New("page").Parse(pageHTML))

// handlePage renders the whole dashboard server side. A request without
// parameters starts from the default selection; submitting the form with
// nothing selected yields the empty-selection view.
func (s *DashboardServer) handlePage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data := pageData{MaxSelection: dataset.MaxSelection, Load: s.dataset.Stats()}

	sel := s.dataset.DefaultSelection()
	if q.Has("submitted") || q.Has("food") {
		var err error
		sel, err = s.dataset.Select(q["food"]...)
		if err != nil {
			data.Error = err.Error()
			sel = dataset.Selection{}
		}
	}

	k, err := nutrient(r)
	if err != nil {
		data.Error = err.Error()
		k = models.Protein
	}

	dash := charts.BuildDashboard(s.dataset, sel, k)
	data.Empty = sel.Empty()

	selected := make(map[string]bool, sel.Len())
	for _, name := range sel.Names() {
		selected[name] = true
	}
	for _, name := range s.dataset.Options() {
		data.Foods = append(data.Foods, foodOption{Name: name, Selected: selected[name]})
	}
	for _, n := range models.Nutrients {
		data.Nutrients = append(data.Nutrients, nutrientOption{Value: n.String(), Selected: n == k})
	}

	if dash.Radar != nil {
		data.Panels = append(data.Panels, s.panel("Nutritional Profile Comparison", *dash.Radar))
	}
	data.Panels = append(data.Panels, s.panel("Protein vs Fiber Overview", *dash.Scatter))
	data.Panels = append(data.Panels, s.panel(fmt.Sprintf("Top %s Performers", dash.Nutrient), *dash.Top))

	if dash.Comparison != nil && dash.Comparison.OK {
		if table, ok := dash.Comparison.Data.(models.ComparisonTable); ok {
			data.Comparison = &table
		}
	}
	if dash.Stats != nil && dash.Stats.OK {
		if stats, ok := dash.Stats.Data.(models.QuickStats); ok {
			data.Stats = &stats
		}
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		log.Printf("Failed to render page: %v", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// panel renders a built chart to inline SVG. Build and render failures stay
// local to the panel.
func (s *DashboardServer) panel(title string, res charts.Result) panelView {
	view := panelView{Title: title}
	if !res.OK {
		view.Error = res.Reason
		return view
	}

	var buf bytes.Buffer
	var err error
	switch c := res.Data.(type) {
	case models.RadarChart:
		err = render.Radar(&buf, c, s.config.Render)
	case models.ScatterChart:
		err = render.Scatter(&buf, c, s.config.Render)
	case models.TopPerformersChart:
		err = render.TopPerformers(&buf, c, s.config.Render)
	default:
		err = fmt.Errorf("%w: unexpected panel data %T", render.ErrNothingToDraw, res.Data)
	}
	if err != nil {
		view.Error = err.Error()
		return view
	}
	view.SVG = template.HTML(buf.String())
	return view
}

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Vegetarian Foods Nutrition Dashboard</title>
<style>
body { font-family: Arial, sans-serif; background: #F8F9FA; color: #2C3E50; margin: 0 2em; }
h1 { text-align: center; }
form { background: #fff; padding: 1em; border-radius: 6px; }
select[multiple] { min-width: 24em; min-height: 10em; }
.info { background: #EBF5FB; padding: .5em 1em; border-radius: 4px; }
.error { background: #FDEDEC; color: #C0392B; padding: .5em 1em; border-radius: 4px; }
.panel { background: #fff; margin: 1em 0; padding: 1em; border-radius: 6px; }
table { border-collapse: collapse; }
th, td { border: 1px solid #BDC3C7; padding: .3em .8em; text-align: right; }
th:first-child, td:first-child { text-align: left; }
.stats { display: flex; gap: 2em; }
.stat b { display: block; font-size: 1.6em; }
</style>
</head>
<body>
<h1>Vegetarian Foods Nutrition Dashboard</h1>
<form method="get" action="/">
<input type="hidden" name="submitted" value="1">
<label>Select foods to compare (max {{.MaxSelection}}):<br>
<select name="food" multiple>
{{- range .Foods}}
<option value="{{.Name}}"{{if .Selected}} selected{{end}}>{{.Name}}</option>
{{- end}}
</select></label>
<label>Top performers by:
<select name="nutrient">
{{- range .Nutrients}}
<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Value}}</option>
{{- end}}
</select></label>
<button type="submit">Update</button>
</form>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
{{if .Empty}}<p class="info">Select foods above to compare their nutritional profiles.</p>{{end}}
{{range .Panels}}
<div class="panel">
<h2>{{.Title}}</h2>
{{if .Error}}<p class="error">Chart unavailable: {{.Error}}</p>{{else}}{{.SVG}}{{end}}
</div>
{{end}}
{{with .Comparison}}
<div class="panel">
<h2>Detailed Comparison</h2>
<table>
<tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
{{- range .Rows}}
<tr><td>{{.Food}}</td><td>{{printf "%.1f" .ProteinG}}</td><td>{{printf "%.1f" .FatG}}</td><td>{{printf "%.1f" .FiberG}}</td><td>{{printf "%.1f" .CarbG}}</td></tr>
{{- end}}
</table>
</div>
{{end}}
{{with .Stats}}
<div class="panel">
<h2>Quick Stats</h2>
<div class="stats">
<div class="stat"><b>{{.TotalFoods}}</b>Total Foods</div>
<div class="stat"><b>{{printf "%.1f" .HighestProtein}}g</b>Highest Protein</div>
<div class="stat"><b>{{printf "%.1f" .HighestFiber}}g</b>Highest Fiber</div>
<div class="stat"><b>{{printf "%.1f" .LowestCarbs}}g</b>Lowest Carbs</div>
</div>
</div>
{{end}}
<p><small>{{.Load.Kept}} foods loaded, {{.Load.Incomplete}} incomplete rows and {{.Load.Duplicates}} duplicates skipped.</small></p>
</body>
</html>
`
