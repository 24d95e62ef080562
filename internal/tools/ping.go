package tools

import (
	"context"
	"encoding/json"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/raphaelgruber/ragmcp-go/internal/config"
	"github.com/raphaelgruber/ragmcp-go/internal/metrics"
)

// PingInput defines the input schema for the ping tool.
type PingInput struct {
	Echo string `json:"echo,omitempty" jsonschema:"Text to echo back"`
}

// PingResult reports server health and configuration state.
// Validation only inspects configuration; no remote data path is touched.
type PingResult struct {
	Status          string            `json:"status"`
	Echo            string            `json:"echo,omitempty"`
	EmbeddingModel  string            `json:"embedding_model"`
	Dimension       int               `json:"dimension"`
	Collection      string            `json:"collection"`
	ConfigErrors    []string          `json:"config_errors,omitempty"`
	Metrics         *metrics.Snapshot `json:"metrics,omitempty"`
}

// NewPingHandler creates the ping tool handler with injected dependencies.
func NewPingHandler(deps *Dependencies, cfg *config.Config) mcp.ToolHandlerFor[PingInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input PingInput) (*mcp.CallToolResult, any, error) {
		start := time.Now()

		if deps.Logger != nil {
			deps.Logger.Debug("ping tool called", "echo", input.Echo)
		}

		result := PingResult{
			Status:         "ok",
			Echo:           input.Echo,
			EmbeddingModel: cfg.EmbedModel,
			Dimension:      cfg.EmbedDimension,
			Collection:     cfg.QdrantCollection,
		}

		if err := cfg.ValidateEmbedding(); err != nil {
			result.ConfigErrors = append(result.ConfigErrors, err.Error())
		}
		if err := cfg.ValidateVectorStore(); err != nil {
			result.ConfigErrors = append(result.ConfigErrors, err.Error())
		}
		if len(result.ConfigErrors) > 0 {
			result.Status = "misconfigured"
		}

		if deps.Metrics != nil {
			snap := deps.Metrics.Snapshot()
			result.Metrics = &snap
		}

		deps.observe("ping", start, false)

		jsonBytes, _ := json.MarshalIndent(result, "", "  ")
		return TextResult(string(jsonBytes)), nil, nil
	}
}
