// Package main provides the streamable HTTP entry point for the ragmcp MCP server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/raphaelgruber/ragmcp-go/internal/config"
	"github.com/raphaelgruber/ragmcp-go/internal/prompts"
	"github.com/raphaelgruber/ragmcp-go/internal/server"
	"github.com/raphaelgruber/ragmcp-go/internal/tools"
)

const version = "0.1.0"

func main() {
	// Load configuration
	cfg := config.Load()

	// Setup logger (dual output: stderr text + file JSON)
	logger, cleanup := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	defer cleanup()

	logger.Info("ragmcp-server starting",
		"version", version,
		"host", cfg.HTTPHost,
		"port", cfg.HTTPPort,
		"path", cfg.HTTPPath,
	)

	// A misconfigured server still starts; tools report the problem per call.
	if err := cfg.ValidateEmbedding(); err != nil {
		logger.Warn("embedding configuration incomplete", "error", err)
	}
	if err := cfg.ValidateVectorStore(); err != nil {
		logger.Warn("vector store configuration incomplete", "error", err)
	}

	deps, err := tools.BuildDependencies(&cfg, logger)
	if err != nil {
		logger.Error("failed to build dependencies", "error", err)
		os.Exit(1)
	}

	// Create and setup server
	srv := server.New(version, logger, deps.Metrics)
	srv.Setup()

	tools.RegisterAll(srv.MCPServer(), deps, &cfg)

	catalog, err := prompts.Load()
	if err != nil {
		logger.Error("failed to load prompt templates", "error", err)
		os.Exit(1)
	}
	prompts.RegisterAll(srv.MCPServer(), catalog)

	// Setup routes
	mux := http.NewServeMux()

	// MCP endpoint (streamable HTTP)
	mux.Handle(cfg.HTTPPath, srv.HTTPHandler())

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	addr := cfg.HTTPHost + ":" + cfg.HTTPPort
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second, // Long for LLM responses
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("MCP endpoint available", "url", fmt.Sprintf("http://%s%s", addr, cfg.HTTPPath))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// Wait for shutdown signal or server error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	select {
	case err := <-serverErr:
		logger.Error("server error", "error", err)
		os.Exit(1)
	case sig := <-sigCh:
		logger.Info("received shutdown signal", "signal", sig)
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("shutdown complete")
}
