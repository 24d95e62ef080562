package tools

import (
	"context"
	"encoding/json"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/raphaelgruber/ragmcp-go/internal/vectorstore"
)

// defaultTopK is the result count when the caller does not specify one.
const defaultTopK = 5

// maxTopK caps the result count a single call may request.
const maxTopK = 100

// SearchDocumentsInput defines the input schema for the search_documents tool.
type SearchDocumentsInput struct {
	Query string `json:"query" jsonschema:"required,The search query text"`
	TopK  int    `json:"top_k,omitempty" jsonschema:"Max results 1-100, default 5"`
}

// SearchDocumentsResult is the response from the search_documents tool.
type SearchDocumentsResult struct {
	Hits  []vectorstore.SearchHit `json:"hits"`
	Count int                     `json:"count"`
}

// NewSearchDocumentsHandler creates the search_documents tool handler.
// Pipeline: embed the query, then run nearest-neighbor search.
func NewSearchDocumentsHandler(deps *Dependencies) mcp.ToolHandlerFor[SearchDocumentsInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SearchDocumentsInput) (
		*mcp.CallToolResult, any, error,
	) {
		start := time.Now()

		if input.Query == "" {
			deps.observe("search_documents", start, true)
			return ErrorResult("query cannot be empty", "Provide a search query"), nil, nil
		}

		topK := input.TopK
		if topK <= 0 {
			topK = defaultTopK
		}
		if topK > maxTopK {
			deps.observe("search_documents", start, true)
			return ErrorResult("top_k must be 1-100", "Reduce the top_k value"), nil, nil
		}

		vector, err := deps.Embedder.Embed(ctx, input.Query)
		if err != nil {
			deps.Logger.Error("query embedding failed", "error", err)
			deps.observe("search_documents", start, true)
			return ErrorResult("Failed to generate query embedding: "+err.Error(), "Check the embedding provider configuration"), nil, nil
		}

		hits, err := deps.Store.Search(ctx, vector, topK)
		if err != nil {
			deps.Logger.Error("search failed", "error", err)
			deps.observe("search_documents", start, true)
			return ErrorResult("Search failed: "+err.Error(), "Check the vector store configuration"), nil, nil
		}

		queryLog := input.Query
		if len(queryLog) > 30 {
			queryLog = queryLog[:30] + "..."
		}
		deps.Logger.Info("search completed", "query", queryLog, "results", len(hits))
		deps.observe("search_documents", start, false)

		jsonBytes, _ := json.MarshalIndent(SearchDocumentsResult{
			Hits:  hits,
			Count: len(hits),
		}, "", "  ")
		return TextResult(string(jsonBytes)), nil, nil
	}
}
