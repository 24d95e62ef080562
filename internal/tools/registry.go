package tools

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/raphaelgruber/ragmcp-go/internal/config"
)

// RegisterAll registers all tools with the MCP server.
// The catalog is fixed at startup; nothing registers tools afterwards.
// This is called from main after server creation but before Run().
func RegisterAll(server *mcp.Server, deps *Dependencies, cfg *config.Config) {
	// Ping tool - health check and configuration validation
	mcp.AddTool(server, &mcp.Tool{
		Name:        "ping",
		Description: "Health check - validates configuration and reports server stats without calling remote services",
	}, NewPingHandler(deps, cfg))

	// Store tool - embed a document and upsert it into the vector store
	mcp.AddTool(server, &mcp.Tool{
		Name:        "store_document",
		Description: "Store a document with its vector embedding; calling again with the same doc_id overwrites it",
	}, NewStoreDocumentHandler(deps))

	// Search tool - semantic similarity search over stored documents
	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_documents",
		Description: "Search stored documents by semantic similarity, best matches first",
	}, NewSearchDocumentsHandler(deps))

	// Ask tool - retrieval-augmented answer synthesis
	mcp.AddTool(server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a question using the stored documents as context (retrieval-augmented generation)",
	}, NewAskHandler(deps))
}
