package tools

import (
	"context"
	"encoding/json"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// StoreDocumentInput defines the input schema for the store_document tool.
type StoreDocumentInput struct {
	DocID    string         `json:"doc_id" jsonschema:"required,Unique document identifier (stable key for upserts)"`
	Text     string         `json:"text" jsonschema:"required,Document text to embed and store"`
	Metadata map[string]any `json:"metadata,omitempty" jsonschema:"Optional metadata stored alongside the document"`
}

// StoreDocumentResult is the response from the store_document tool.
type StoreDocumentResult struct {
	DocID  string `json:"doc_id"`
	Status string `json:"status"`
}

// NewStoreDocumentHandler creates the store_document tool handler.
// Pipeline: embed text, then upsert the vector with its payload.
// A failure anywhere leaves prior state untouched; the document is either
// fully stored or not stored at all.
func NewStoreDocumentHandler(deps *Dependencies) mcp.ToolHandlerFor[StoreDocumentInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input StoreDocumentInput) (
		*mcp.CallToolResult, any, error,
	) {
		start := time.Now()

		// Required arguments are rejected when missing, not defaulted.
		if input.DocID == "" {
			deps.observe("store_document", start, true)
			return ErrorResult("doc_id cannot be empty", "Provide a stable document identifier"), nil, nil
		}
		if input.Text == "" {
			deps.observe("store_document", start, true)
			return ErrorResult("text cannot be empty", "Provide the document text to store"), nil, nil
		}

		vector, err := deps.Embedder.Embed(ctx, input.Text)
		if err != nil {
			deps.Logger.Error("embedding failed", "doc_id", input.DocID, "error", err)
			deps.observe("store_document", start, true)
			return ErrorResult("Failed to generate embedding: "+err.Error(), "Check the embedding provider configuration"), nil, nil
		}

		if err := deps.Store.Upsert(ctx, input.DocID, vector, input.Text, input.Metadata); err != nil {
			deps.Logger.Error("upsert failed", "doc_id", input.DocID, "error", err)
			deps.observe("store_document", start, true)
			return ErrorResult("Failed to store document: "+err.Error(), "Check the vector store configuration"), nil, nil
		}

		deps.Logger.Info("document stored", "doc_id", input.DocID, "text_len", len(input.Text))
		deps.observe("store_document", start, false)

		jsonBytes, _ := json.MarshalIndent(StoreDocumentResult{
			DocID:  input.DocID,
			Status: "stored",
		}, "", "  ")
		return TextResult(string(jsonBytes)), nil, nil
	}
}
