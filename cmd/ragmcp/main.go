// Package main provides the stdio entry point for the ragmcp MCP server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

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

	logger.Info("ragmcp starting",
		"version", version,
		"embedding_model", cfg.EmbedModel,
		"qdrant_collection", cfg.QdrantCollection,
	)

	// A misconfigured server still starts; tools report the problem per call.
	if err := cfg.ValidateEmbedding(); err != nil {
		logger.Warn("embedding configuration incomplete", "error", err)
	}
	if err := cfg.ValidateVectorStore(); err != nil {
		logger.Warn("vector store configuration incomplete", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	deps, err := tools.BuildDependencies(&cfg, logger)
	if err != nil {
		logger.Error("failed to build dependencies", "error", err)
		os.Exit(1)
	}
	logger.Info("embedder initialized", "model", deps.Embedder.Model(), "dimension", deps.Embedder.Dimension())

	// Create and setup server
	srv := server.New(version, logger, deps.Metrics)
	srv.Setup()

	// Register tools and prompts
	tools.RegisterAll(srv.MCPServer(), deps, &cfg)

	catalog, err := prompts.Load()
	if err != nil {
		logger.Error("failed to load prompt templates", "error", err)
		os.Exit(1)
	}
	prompts.RegisterAll(srv.MCPServer(), catalog)

	logger.Info("server ready, awaiting connections", "tools", 4, "prompts", len(catalog.Names()))

	// Run server (blocks until disconnect or context cancelled)
	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	logger.Info("shutdown complete")
}
