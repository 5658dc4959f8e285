package main

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/njchilds90/gojets"
	"github.com/njchilds90/gojets/algebra"
	"github.com/njchilds90/gojets/internal/config"
)

// server answers tool calls with one shared engine. Each request gets its
// own id and a context bounded by the configured engine timeout.
type server struct {
	cfg    *config.Config
	log    *zap.Logger
	engine *algebra.Engine
}

// newServer wires the routes and registers the engine metrics on reg.
func newServer(cfg *config.Config, log *zap.Logger, reg *prometheus.Registry) (http.Handler, error) {
	metrics := algebra.NewMetrics("gojets")
	if err := metrics.Register(reg); err != nil {
		return nil, err
	}
	s := &server{
		cfg:    cfg,
		log:    log,
		engine: cfg.NewEngine(log, algebra.WithMetrics(metrics)),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/tool", s.handleTool)
	mux.HandleFunc("/schema", s.handleSchema)
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true}))
	return mux, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// POST /tool: handle a tool call
func (s *server) handleTool(w http.ResponseWriter, r *http.Request) {
	id := uuid.New().String()
	log := s.log.With(zap.String("request_id", id))
	w.Header().Set("X-Request-Id", id)

	defer func() {
		if rec := recover(); rec != nil {
			log.Error("panic in /tool", zap.Any("panic", rec), zap.ByteString("stack", debug.Stack()))
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
	}()

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxBodyBytes)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req gojets.ToolRequest
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	// Ensure there's no trailing junk.
	if dec.More() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: trailing data"})
		return
	}

	ctx := r.Context()
	if d := s.cfg.GetTimeout(); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	tb := gojets.Toolbox{
		Engine:        s.engine,
		Logger:        log,
		Order:         s.cfg.Jets.Order,
		MaxGenerators: s.cfg.Jets.MaxGenerators,
	}
	start := time.Now()
	resp := tb.Handle(ctx, req)
	log.Info("tool call",
		zap.String("tool", req.Tool),
		zap.Duration("elapsed", time.Since(start)),
		zap.String("error_kind", resp.Kind),
		zap.Bool("ok", resp.Error == ""))
	writeJSON(w, http.StatusOK, resp)
}

// GET /schema: return tool schema for agent registration
func (s *server) handleSchema(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(gojets.MCPToolSpec()))
}

// GET /health: liveness check
func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
