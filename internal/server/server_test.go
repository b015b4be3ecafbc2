package server

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"nutri-dash/internal/dataset"
	"nutri-dash/internal/models"
	"nutri-dash/internal/render"
)

func newTestServer(t *testing.T) *DashboardServer {
	t.Helper()
	ds := dataset.FromRecords([]models.FoodRecord{
		{Name: "Spinach", ProteinG: 2.9, FatG: 0.4, FiberG: 2.2, CarbG: 3.6},
		{Name: "Lentils", ProteinG: 9.0, FatG: 0.4, FiberG: 7.9, CarbG: 20.1},
		{Name: "Peas", ProteinG: 7.2, FatG: 0.1, FiberG: 4.5, CarbG: 10.9},
		{Name: "Amaranth", ProteinG: 4.0, FatG: 0.5, FiberG: 4.4, CarbG: 2.8},
	})
	s, err := NewDashboardServer(&Config{Host: "127.0.0.1", Port: 0, Render: render.Size{Width: 800, Height: 500}}, ds)
	if err != nil {
		t.Fatalf("NewDashboardServer: %v", err)
	}
	return s
}

func get(t *testing.T, s *DashboardServer, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestNewDashboardServerRequiresDataset(t *testing.T) {
	if _, err := NewDashboardServer(&Config{}, nil); err == nil {
		t.Fatal("expected error for nil dataset")
	}
}

func TestAPIStatusCodes(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		target string
		status int
	}{
		{"/healthz", http.StatusOK},
		{"/api/foods", http.StatusOK},
		{"/api/radar?food=Spinach&food=Lentils", http.StatusOK},
		{"/api/radar", http.StatusOK},
		{"/api/radar?food=Kale", http.StatusBadRequest},
		{"/api/radar?food=Spinach&food=Spinach", http.StatusBadRequest},
		{"/api/radar?food=a&food=b&food=c&food=d&food=e&food=f", http.StatusBadRequest},
		{"/api/scatter", http.StatusOK},
		{"/api/top", http.StatusOK},
		{"/api/top?nutrient=fiber", http.StatusOK},
		{"/api/top?nutrient=sodium", http.StatusBadRequest},
		{"/api/compare?food=Peas", http.StatusOK},
		{"/api/stats", http.StatusOK},
		{"/api/dashboard?food=Peas&nutrient=Carbs", http.StatusOK},
		{"/charts/scatter.svg", http.StatusOK},
		{"/charts/top.svg?nutrient=Fat", http.StatusOK},
		{"/charts/radar.svg?food=Peas", http.StatusOK},
		{"/charts/radar.svg?food=Kale", http.StatusBadRequest},
		{"/nope", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := get(t, s, tt.target)
			if rec.Code != tt.status {
				t.Errorf("GET %s = %d, want %d (%s)", tt.target, rec.Code, tt.status, rec.Body.String())
			}
		})
	}
}

func TestAPIRadar(t *testing.T) {
	s := newTestServer(t)
	rec := get(t, s, "/api/radar?food=Spinach&food=Lentils")

	var chart models.RadarChart
	if err := json.Unmarshal(rec.Body.Bytes(), &chart); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(chart.Polygons) != 2 || chart.Polygons[0].Food != "Spinach" {
		t.Errorf("unexpected polygons: %+v", chart.Polygons)
	}
	if math.Abs(chart.AxisMax-26.13) > 1e-9 {
		t.Errorf("AxisMax = %v, want 26.13", chart.AxisMax)
	}
}

func TestAPIFoodsSortedWithDefaults(t *testing.T) {
	s := newTestServer(t)
	rec := get(t, s, "/api/foods")

	var body struct {
		Foods            []string `json:"foods"`
		DefaultSelection []string `json:"default_selection"`
		MaxSelection     int      `json:"max_selection"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []string{"Amaranth", "Lentils", "Peas", "Spinach"}
	if strings.Join(body.Foods, ",") != strings.Join(want, ",") {
		t.Errorf("foods = %v, want %v", body.Foods, want)
	}
	if strings.Join(body.DefaultSelection, ",") != "Spinach,Lentils,Peas" {
		t.Errorf("default selection = %v", body.DefaultSelection)
	}
	if body.MaxSelection != 5 {
		t.Errorf("max selection = %d", body.MaxSelection)
	}
}

func TestAPIDashboardEmptySelection(t *testing.T) {
	s := newTestServer(t)
	rec := get(t, s, "/api/dashboard?nutrient=Fiber")

	var body map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := body["radar"]; ok {
		t.Error("radar should be absent without a selection")
	}
	if _, ok := body["quick_stats"]; !ok {
		t.Error("quick stats missing without a selection")
	}
	if string(body["nutrient"]) != `"Protein"` {
		t.Errorf("nutrient = %s, want Protein", body["nutrient"])
	}
}

func TestSVGContentType(t *testing.T) {
	s := newTestServer(t)
	rec := get(t, s, "/charts/top.svg?nutrient=Protein")
	if ct := rec.Header().Get("Content-Type"); ct != render.ContentType {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "<svg") {
		t.Error("body is not svg")
	}
}

func TestPage(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Nutritional Profile Comparison", "Detailed Comparison", `<option value="Spinach" selected>`} {
		if !strings.Contains(body, want) {
			t.Errorf("default page missing %q", want)
		}
	}

	rec = get(t, s, "/?submitted=1")
	body = rec.Body.String()
	if strings.Contains(body, "Nutritional Profile Comparison") {
		t.Error("empty selection should not show the radar panel")
	}
	if !strings.Contains(body, "Quick Stats") {
		t.Error("empty selection should show quick stats")
	}

	rec = get(t, s, "/?submitted=1&food=Kale")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `class="error"`) {
		t.Error("unknown food should show an error banner")
	}
}

func callTool(t *testing.T, s *DashboardServer, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(body)))
	return rec
}

func TestMCPTools(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"list foods", `{"name":"list_foods"}`, http.StatusOK},
		{"radar", `{"name":"radar_chart","arguments":{"foods":["Peas"]}}`, http.StatusOK},
		{"scatter", `{"name":"scatter_overview"}`, http.StatusOK},
		{"top", `{"name":"top_performers","arguments":{"nutrient":"carbs"}}`, http.StatusOK},
		{"top bad nutrient", `{"name":"top_performers","arguments":{"nutrient":"salt"}}`, http.StatusBadRequest},
		{"compare", `{"name":"compare_foods","arguments":{"foods":["Peas","Spinach"]}}`, http.StatusOK},
		{"compare nothing", `{"name":"compare_foods","arguments":{}}`, http.StatusBadRequest},
		{"compare unknown", `{"name":"compare_foods","arguments":{"foods":["Kale"]}}`, http.StatusBadRequest},
		{"stats", `{"name":"dataset_stats"}`, http.StatusOK},
		{"dashboard", `{"name":"dashboard","arguments":{"foods":["Peas"],"nutrient":"Fat"}}`, http.StatusOK},
		{"unknown tool", `{"name":"delete_food"}`, http.StatusNotFound},
		{"bad json", `{`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := callTool(t, s, tt.body)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d (%s)", rec.Code, tt.status, rec.Body.String())
			}
		})
	}
}

func TestMCPToolResultIsTextContent(t *testing.T) {
	s := newTestServer(t)
	rec := callTool(t, s, `{"name":"compare_foods","arguments":{"foods":["Lentils"]}}`)

	var result struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(result.Content) != 1 || result.Content[0].Type != "text" {
		t.Fatalf("unexpected content: %+v", result.Content)
	}

	var table models.ComparisonTable
	if err := json.Unmarshal([]byte(result.Content[0].Text), &table); err != nil {
		t.Fatalf("decode table: %v", err)
	}
	if len(table.Rows) != 1 || table.Rows[0].ProteinG != 9.0 {
		t.Errorf("unexpected rows: %+v", table.Rows)
	}
}

func TestMCPMethods(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/mcp")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /mcp = %d, want 405", rec.Code)
	}

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/mcp", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("OPTIONS /mcp = %d, want 200", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}
}
