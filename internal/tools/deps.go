// Package tools provides MCP tool handlers and registration.
package tools

import (
	"context"
	"log/slog"
	"time"

	"github.com/raphaelgruber/ragmcp-go/internal/config"
	"github.com/raphaelgruber/ragmcp-go/internal/embedding"
	"github.com/raphaelgruber/ragmcp-go/internal/llm"
	"github.com/raphaelgruber/ragmcp-go/internal/metrics"
	"github.com/raphaelgruber/ragmcp-go/internal/vectorstore"
)

// Generator produces an answer from a system and user prompt.
// Satisfied by llm.Model; faked in tests.
type Generator interface {
	GenerateWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Dependencies holds shared services for tool handlers.
// Passed to handler factories via closure capture.
type Dependencies struct {
	Embedder embedding.Embedder
	Store    vectorstore.Store
	LLM      Generator
	Logger   *slog.Logger
	Metrics  *metrics.Collector
}

// BuildDependencies wires the embedding client, vector store, and LLM from
// configuration. Construction never dials a remote service, so the server
// starts even when credentials are missing; the handlers surface those
// failures per call. An unusable LLM only disables the ask tool.
func BuildDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	embedder, err := embedding.New(*cfg)
	if err != nil {
		return nil, err
	}

	store := vectorstore.NewQdrantStore(*cfg)

	var generator Generator
	model, err := llm.NewModel(*cfg)
	if err != nil {
		logger.Warn("LLM unavailable, ask tool disabled", "error", err)
	} else {
		generator = model
	}

	return &Dependencies{
		Embedder: embedder,
		Store:    store,
		LLM:      generator,
		Logger:   logger,
		Metrics:  metrics.NewCollector(),
	}, nil
}

// observe records a completed tool call when a metrics collector is wired.
func (d *Dependencies) observe(tool string, start time.Time, failed bool) {
	if d.Metrics != nil {
		d.Metrics.RecordTool(tool, time.Since(start), failed)
	}
}
