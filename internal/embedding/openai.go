package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/raphaelgruber/ragmcp-go/internal/config"
)

// requestTimeout bounds every outbound embedding call so a hung provider
// cannot starve the server.
const requestTimeout = 30 * time.Second

// OpenAIClient implements Embedder using the OpenAI embeddings REST API.
// It is safe for concurrent use.
type OpenAIClient struct {
	baseURL   string
	apiKey    string
	model     string
	dimension int
	client    *http.Client
}

// Compile-time check that OpenAIClient implements Embedder.
var _ Embedder = (*OpenAIClient)(nil)

// NewOpenAIClient creates an OpenAI embedding client from configuration.
// The API key is validated per call, not here, so tools can surface the
// missing-credential error instead of the process refusing to start.
func NewOpenAIClient(cfg config.Config) *OpenAIClient {
	return &OpenAIClient{
		baseURL:   strings.TrimSuffix(cfg.OpenAIBaseURL, "/"),
		apiKey:    cfg.OpenAIAPIKey,
		model:     cfg.EmbedModel,
		dimension: cfg.EmbedDimension,
		client:    &http.Client{Timeout: requestTimeout},
	}
}

// Model returns the configured embedding model name.
func (c *OpenAIClient) Model() string {
	return c.model
}

// Dimension returns the expected embedding dimension.
func (c *OpenAIClient) Dimension() int {
	return c.dimension
}

// embedRequest is the JSON body sent to the embeddings endpoint.
type embedRequest struct {
	Input []string `json:"input"`
	Model string   `json:"model"`
}

// embedResponse is the JSON body returned from the embeddings endpoint.
type embedResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
}

// Embed generates an embedding vector for the given text.
func (c *OpenAIClient) Embed(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := c.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("%w: no embeddings returned", ErrMalformedResponse)
	}
	return embeddings[0], nil
}

// EmbedBatch generates embeddings for multiple texts in a single request.
// Fails fast with ErrMissingConfig before any network I/O when the API key
// is unset; a call is never sent with an empty credential.
func (c *OpenAIClient) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: OPENAI_API_KEY is not set", ErrMissingConfig)
	}
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	jsonBody, err := json.Marshal(embedRequest{
		Input: texts,
		Model: c.model,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/embeddings", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &ProviderError{Status: resp.StatusCode, Body: string(body)}
	}

	var result embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if len(result.Data) != len(texts) {
		return nil, fmt.Errorf("%w: got %d embeddings, want %d",
			ErrMalformedResponse, len(result.Data), len(texts))
	}

	// The API may return data out of order; place by index.
	embeddings := make([][]float32, len(texts))
	for _, d := range result.Data {
		if d.Index < 0 || d.Index >= len(embeddings) {
			return nil, fmt.Errorf("%w: embedding index %d out of range", ErrMalformedResponse, d.Index)
		}
		if len(d.Embedding) != c.dimension {
			return nil, fmt.Errorf("%w: got %d, want %d (model: %s)",
				ErrDimensionMismatch, len(d.Embedding), c.dimension, c.model)
		}
		embeddings[d.Index] = d.Embedding
	}

	return embeddings, nil
}
