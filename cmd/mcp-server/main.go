// cmd/mcp-server/main.go: Standalone HTTP MCP server for gojets
//
// Exposes the gojets tools as an HTTP endpoint for AI agent frameworks.
//
// Usage:
//
//	go run ./cmd/mcp-server -config gojets.yaml -port 8080
//
// Tool call endpoint: POST /tool
// Schema endpoint:    GET  /schema
// Health endpoint:    GET  /health
// Metrics endpoint:   GET  /metrics
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/njchilds90/gojets/internal/config"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	port := flag.Int("port", 0, "Port to listen on (default from config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger, err := cfg.Logger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	reg := prometheus.NewRegistry()
	handler, err := newServer(cfg, logger, reg)
	if err != nil {
		logger.Fatal("failed to build server", zap.Error(err))
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Info("gojets MCP server listening",
		zap.String("addr", addr),
		zap.Strings("endpoints", []string{"POST /tool", "GET /schema", "GET /health", "GET /metrics"}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		// Tool calls may run up to the engine timeout.
		WriteTimeout: cfg.GetTimeout() + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
