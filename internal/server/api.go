// internal/server/api.go
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"nutri-dash/internal/charts"
	"nutri-dash/internal/dataset"
	"nutri-dash/internal/render"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errBadRequest):
		status = http.StatusBadRequest
	case errors.Is(err, render.ErrNothingToDraw):
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *DashboardServer) handleFoods(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"foods":             s.dataset.Options(),
		"default_selection": s.dataset.DefaultSelection().Names(),
		"max_selection":     dataset.MaxSelection,
	})
}

func (s *DashboardServer) handleRadar(w http.ResponseWriter, r *http.Request) {
	sel, err := s.selection(r)
	if err != nil {
		writeError(w, err)
		return
	}
	chart, err := charts.BuildRadar(s.dataset, sel)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chart)
}

func (s *DashboardServer) handleScatter(w http.ResponseWriter, r *http.Request) {
	chart, err := charts.BuildScatter(s.dataset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chart)
}

func (s *DashboardServer) handleTop(w http.ResponseWriter, r *http.Request) {
	k, err := nutrient(r)
	if err != nil {
		writeError(w, err)
		return
	}
	chart, err := charts.BuildTopPerformers(s.dataset, k)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chart)
}

func (s *DashboardServer) handleCompare(w http.ResponseWriter, r *http.Request) {
	sel, err := s.selection(r)
	if err != nil {
		writeError(w, err)
		return
	}
	table, err := charts.BuildComparison(s.dataset, sel)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, table)
}

func (s *DashboardServer) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := charts.BuildQuickStats(s.dataset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"quick_stats": stats,
		"load":        s.dataset.Stats(),
		"percentiles": s.dataset.Percentiles(),
	})
}

// handleDashboard returns every panel as a Result; one failed panel does not
// fail the response.
func (s *DashboardServer) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sel, err := s.selection(r)
	if err != nil {
		writeError(w, err)
		return
	}
	k, err := nutrient(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, charts.BuildDashboard(s.dataset, sel, k))
}

func (s *DashboardServer) writeSVG(w http.ResponseWriter, draw func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := draw(&buf); err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", render.ContentType)
	w.Write(buf.Bytes())
}

func (s *DashboardServer) handleRadarSVG(w http.ResponseWriter, r *http.Request) {
	sel, err := s.selection(r)
	if err != nil {
		writeError(w, err)
		return
	}
	s.writeSVG(w, func(buf *bytes.Buffer) error {
		chart, err := charts.BuildRadar(s.dataset, sel)
		if err != nil {
			return err
		}
		return render.Radar(buf, chart, s.config.Render)
	})
}

func (s *DashboardServer) handleScatterSVG(w http.ResponseWriter, r *http.Request) {
	s.writeSVG(w, func(buf *bytes.Buffer) error {
		chart, err := charts.BuildScatter(s.dataset)
		if err != nil {
			return err
		}
		return render.Scatter(buf, chart, s.config.Render)
	})
}

func (s *DashboardServer) handleTopSVG(w http.ResponseWriter, r *http.Request) {
	k, err := nutrient(r)
	if err != nil {
		writeError(w, err)
		return
	}
	s.writeSVG(w, func(buf *bytes.Buffer) error {
		chart, err := charts.BuildTopPerformers(s.dataset, k)
		if err != nil {
			return err
		}
		return render.TopPerformers(buf, chart, s.config.Render)
	})
}
