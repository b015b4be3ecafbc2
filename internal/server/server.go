// internal/server/server.go
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"
	"github.com/ThinkInAIXYZ/go-mcp/server"

	"nutri-dash/internal/dataset"
	"nutri-dash/internal/models"
	"nutri-dash/internal/render"
)

type Config struct {
	Host    string
	Port    int
	Render  render.Size
	Verbose bool
}

type DashboardServer struct {
	server     *server.Server
	httpServer *http.Server
	dataset    *dataset.Dataset
	tools      map[string]toolHandler
	config     *Config
}

// errBadRequest marks errors caused by the caller's input.
var errBadRequest = errors.New("bad request")

func NewDashboardServer(cfg *Config, ds *dataset.Dataset) (*DashboardServer, error) {
	if ds == nil {
		return nil, fmt.Errorf("failed to create server: %w", dataset.ErrSourceNotFound)
	}

	dashServer := &DashboardServer{
		dataset: ds,
		config:  cfg,
	}

	// MCP server is used for its protocol types; transport is plain HTTP below
	mcpServer, err := server.NewServer(
		nil,
		server.WithServerInfo(protocol.Implementation{
			Name:    "nutri-dash",
			Version: "1.0.0",
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create MCP server: %w", err)
	}

	dashServer.server = mcpServer

	if err := dashServer.registerTools(); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	dashServer.httpServer = &http.Server{
		Addr:              addr,
		Handler:           dashServer.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return dashServer, nil
}

// Handler returns the routed HTTP handler.
func (s *DashboardServer) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("GET /api/foods", s.handleFoods)
	mux.HandleFunc("GET /api/radar", s.handleRadar)
	mux.HandleFunc("GET /api/scatter", s.handleScatter)
	mux.HandleFunc("GET /api/top", s.handleTop)
	mux.HandleFunc("GET /api/compare", s.handleCompare)
	mux.HandleFunc("GET /api/stats", s.handleStats)
	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)

	mux.HandleFunc("GET /charts/radar.svg", s.handleRadarSVG)
	mux.HandleFunc("GET /charts/scatter.svg", s.handleScatterSVG)
	mux.HandleFunc("GET /charts/top.svg", s.handleTopSVG)

	mux.HandleFunc("/mcp", s.handleMCP)

	if s.config.Verbose {
		return logRequests(mux)
	}
	return mux
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s (%s)", r.Method, r.URL.RequestURI(), time.Since(start).Round(time.Microsecond))
	})
}

func (s *DashboardServer) handleMCP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

	if r.Method == http.MethodOptions {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var request protocol.CallToolRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, fmt.Sprintf("Invalid JSON: %v", err), http.StatusBadRequest)
		return
	}

	handler, ok := s.tools[request.Name]
	if !ok {
		http.Error(w, fmt.Sprintf("Unknown tool: %s", request.Name), http.StatusNotFound)
		return
	}

	result, err := handler(&request)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, errBadRequest) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func (s *DashboardServer) Start(ctx context.Context) error {
	log.Printf("Serving %d foods on %s", s.dataset.Len(), s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *DashboardServer) Stop() error {
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

func (s *DashboardServer) createJSONResponse(data interface{}) (*protocol.CallToolResult, error) {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}

	return &protocol.CallToolResult{
		Content: []protocol.Content{
			protocol.TextContent{
				Type: "text",
				Text: string(jsonBytes),
			},
		},
	}, nil
}

// selection parses repeated ?food= parameters.
func (s *DashboardServer) selection(r *http.Request) (dataset.Selection, error) {
	return s.selectFoods(r.URL.Query()["food"])
}

// nutrient parses ?nutrient=, defaulting to Protein.
func nutrient(r *http.Request) (models.NutrientKind, error) {
	return parseNutrient(r.URL.Query().Get("nutrient"))
}
