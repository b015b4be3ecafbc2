// internal/server/tools.go
package server

import (
	"encoding/json"
	"fmt"
	"log"
	"sort"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"

	"nutri-dash/internal/charts"
	"nutri-dash/internal/dataset"
	"nutri-dash/internal/models"
)

type toolHandler func(*protocol.CallToolRequest) (*protocol.CallToolResult, error)

type SelectionParams struct {
	Foods []string `json:"foods,omitempty" description:"Food names to compare (at most 5)"`
}

type TopPerformersParams struct {
	Nutrient string `json:"nutrient,omitempty" description:"Nutrient to rank by: protein, fat, fiber or carbs (defaults to protein)"`
}

type DashboardParams struct {
	Foods    []string `json:"foods,omitempty" description:"Food names to compare (at most 5)"`
	Nutrient string   `json:"nutrient,omitempty" description:"Nutrient for the top performers panel"`
}

// extractParams safely extracts parameters from the request arguments
func extractParams(req *protocol.CallToolRequest, target interface{}) error {
	// Convert the Arguments map to JSON bytes, then unmarshal to target
	jsonBytes, err := json.Marshal(req.Arguments)
	if err != nil {
		return fmt.Errorf("failed to marshal arguments: %w", err)
	}

	if err := json.Unmarshal(jsonBytes, target); err != nil {
		return fmt.Errorf("%w: failed to unmarshal parameters: %w", errBadRequest, err)
	}

	return nil
}

func (s *DashboardServer) selectFoods(foods []string) (dataset.Selection, error) {
	sel, err := s.dataset.Select(foods...)
	if err != nil {
		return dataset.Selection{}, fmt.Errorf("%w: %w", errBadRequest, err)
	}
	return sel, nil
}

func parseNutrient(raw string) (models.NutrientKind, error) {
	if raw == "" {
		return models.Protein, nil
	}
	k, err := models.ParseNutrient(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", errBadRequest, err)
	}
	return k, nil
}

// handleListFoods returns the selectable food names in alphabetical order
func (s *DashboardServer) handleListFoods(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	return s.createJSONResponse(map[string]interface{}{
		"count": s.dataset.Len(),
		"foods": s.dataset.Options(),
	})
}

func (s *DashboardServer) handleRadarChart(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params SelectionParams
	if err := extractParams(req, &params); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	sel, err := s.selectFoods(params.Foods)
	if err != nil {
		return nil, err
	}
	chart, err := charts.BuildRadar(s.dataset, sel)
	if err != nil {
		return nil, fmt.Errorf("failed to build radar chart: %w", err)
	}
	return s.createJSONResponse(chart)
}

func (s *DashboardServer) handleScatterOverview(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	chart, err := charts.BuildScatter(s.dataset)
	if err != nil {
		return nil, fmt.Errorf("failed to build scatter chart: %w", err)
	}
	return s.createJSONResponse(chart)
}

// handleTopPerformers ranks the 15 richest foods for one nutrient
func (s *DashboardServer) handleTopPerformers(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params TopPerformersParams
	if err := extractParams(req, &params); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	k, err := parseNutrient(params.Nutrient)
	if err != nil {
		return nil, err
	}
	chart, err := charts.BuildTopPerformers(s.dataset, k)
	if err != nil {
		return nil, fmt.Errorf("failed to build top performers: %w", err)
	}
	return s.createJSONResponse(chart)
}

func (s *DashboardServer) handleCompareFoods(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params SelectionParams
	if err := extractParams(req, &params); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	if len(params.Foods) == 0 {
		return nil, fmt.Errorf("%w: at least one food is required", errBadRequest)
	}
	sel, err := s.selectFoods(params.Foods)
	if err != nil {
		return nil, err
	}
	table, err := charts.BuildComparison(s.dataset, sel)
	if err != nil {
		return nil, fmt.Errorf("failed to build comparison: %w", err)
	}
	return s.createJSONResponse(table)
}

func (s *DashboardServer) handleDatasetStats(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	stats, err := charts.BuildQuickStats(s.dataset)
	if err != nil {
		return nil, fmt.Errorf("failed to build stats: %w", err)
	}
	return s.createJSONResponse(map[string]interface{}{
		"quick_stats": stats,
		"load":        s.dataset.Stats(),
		"percentiles": s.dataset.Percentiles(),
	})
}

// handleDashboardTool builds every panel in one call
func (s *DashboardServer) handleDashboardTool(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params DashboardParams
	if err := extractParams(req, &params); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	sel, err := s.selectFoods(params.Foods)
	if err != nil {
		return nil, err
	}
	k, err := parseNutrient(params.Nutrient)
	if err != nil {
		return nil, err
	}
	return s.createJSONResponse(charts.BuildDashboard(s.dataset, sel, k))
}

func (s *DashboardServer) registerTools() error {
	s.tools = map[string]toolHandler{
		"list_foods":       s.handleListFoods,
		"radar_chart":      s.handleRadarChart,
		"scatter_overview": s.handleScatterOverview,
		"top_performers":   s.handleTopPerformers,
		"compare_foods":    s.handleCompareFoods,
		"dataset_stats":    s.handleDatasetStats,
		"dashboard":        s.handleDashboardTool,
	}

	if s.config.Verbose {
		names := make([]string, 0, len(s.tools))
		for name := range s.tools {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			log.Printf("Registered tool: %s", name)
		}
	}

	return nil
}
