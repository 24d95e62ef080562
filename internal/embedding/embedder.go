// Package embedding provides text embedding generation with multiple backend support.
package embedding

import (
	"context"
	"fmt"

	"github.com/raphaelgruber/ragmcp-go/internal/config"
)

// Embedder defines the interface for text embedding providers.
// Implementations include OpenAI (API) and Ollama (local).
type Embedder interface {
	// Embed generates an embedding vector for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts.
	// More efficient than multiple Embed calls for bulk operations.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Model returns the name of the embedding model being used.
	Model() string

	// Dimension returns the embedding vector dimension.
	// CRITICAL: Must match the Qdrant collection's vector size.
	Dimension() int
}

// New creates an Embedder based on the provided configuration.
// Construction never dials the backend; credentials are checked per call
// so a misconfigured server still starts and reports errors through tools.
func New(cfg config.Config) (Embedder, error) {
	switch cfg.EmbedProvider {
	case config.ProviderOpenAI, "":
		return NewOpenAIClient(cfg), nil

	case config.ProviderOllama:
		return NewOllamaClient(cfg)

	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", cfg.EmbedProvider)
	}
}
