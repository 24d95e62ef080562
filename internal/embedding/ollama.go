package embedding

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"

	"github.com/raphaelgruber/ragmcp-go/internal/config"
)

// OllamaClient implements Embedder using a local Ollama server via langchaingo.
type OllamaClient struct {
	embedder  embeddings.Embedder
	model     string
	dimension int
}

// Compile-time check that OllamaClient implements Embedder.
var _ Embedder = (*OllamaClient)(nil)

// NewOllamaClient creates an Ollama embedding client from configuration.
func NewOllamaClient(cfg config.Config) (*OllamaClient, error) {
	llm, err := ollama.New(
		ollama.WithModel(cfg.EmbedModel),
		ollama.WithServerURL(cfg.OllamaHost),
	)
	if err != nil {
		return nil, fmt.Errorf("create ollama client: %w", err)
	}

	embedder, err := embeddings.NewEmbedder(llm)
	if err != nil {
		return nil, fmt.Errorf("create ollama embedder: %w", err)
	}

	return &OllamaClient{
		embedder:  embedder,
		model:     cfg.EmbedModel,
		dimension: cfg.EmbedDimension,
	}, nil
}

// Model returns the configured embedding model name.
func (c *OllamaClient) Model() string {
	return c.model
}

// Dimension returns the expected embedding dimension.
func (c *OllamaClient) Dimension() int {
	return c.dimension
}

// Embed generates an embedding vector for the given text.
func (c *OllamaClient) Embed(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := c.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("%w: no embeddings returned", ErrMalformedResponse)
	}
	return embeddings[0], nil
}

// EmbedBatch generates embeddings for multiple texts.
// All embeddings are verified to match the expected dimension.
func (c *OllamaClient) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	vectors, err := c.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed batch: %w", err)
	}

	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("%w: got %d embeddings, want %d",
			ErrMalformedResponse, len(vectors), len(texts))
	}

	for i, v := range vectors {
		if len(v) != c.dimension {
			return nil, fmt.Errorf("%w: embedding %d got %d, want %d (model: %s)",
				ErrDimensionMismatch, i, len(v), c.dimension, c.model)
		}
	}

	return vectors, nil
}
