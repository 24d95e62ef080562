package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// askSystemPrompt instructs the model to answer strictly from the
// retrieved context.
const askSystemPrompt = `You are a retrieval-augmented assistant. Answer the question using only the provided context documents. If the context does not contain the answer, say so instead of guessing. Cite document ids in square brackets.`

// AskInput defines the input schema for the ask tool.
type AskInput struct {
	Query string `json:"query" jsonschema:"required,The question to answer"`
	TopK  int    `json:"top_k,omitempty" jsonschema:"How many documents to retrieve as context, default 5"`
}

// NewAskHandler creates the ask tool handler.
// Pipeline: embed the question, retrieve the closest documents, then ask
// the LLM to synthesize an answer grounded in them.
func NewAskHandler(deps *Dependencies) mcp.ToolHandlerFor[AskInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input AskInput) (
		*mcp.CallToolResult, any, error,
	) {
		start := time.Now()

		if input.Query == "" {
			deps.observe("ask", start, true)
			return ErrorResult("query cannot be empty", "Provide a question"), nil, nil
		}
		if deps.LLM == nil {
			deps.observe("ask", start, true)
			return ErrorResult("LLM is not configured", "Set LLM_PROVIDER and its credentials to enable ask"), nil, nil
		}

		topK := input.TopK
		if topK <= 0 {
			topK = defaultTopK
		}
		if topK > maxTopK {
			deps.observe("ask", start, true)
			return ErrorResult("top_k must be 1-100", "Reduce the top_k value"), nil, nil
		}

		vector, err := deps.Embedder.Embed(ctx, input.Query)
		if err != nil {
			deps.Logger.Error("question embedding failed", "error", err)
			deps.observe("ask", start, true)
			return ErrorResult("Failed to generate question embedding: "+err.Error(), "Check the embedding provider configuration"), nil, nil
		}

		hits, err := deps.Store.Search(ctx, vector, topK)
		if err != nil {
			deps.Logger.Error("retrieval failed", "error", err)
			deps.observe("ask", start, true)
			return ErrorResult("Retrieval failed: "+err.Error(), "Check the vector store configuration"), nil, nil
		}

		if len(hits) == 0 {
			deps.observe("ask", start, false)
			return TextResult("No stored documents matched the question. Store documents first with store_document."), nil, nil
		}

		var contextBlock strings.Builder
		for _, hit := range hits {
			fmt.Fprintf(&contextBlock, "[%s] %s\n\n", hit.ID, hit.Text)
		}
		userPrompt := fmt.Sprintf("Context documents:\n\n%sQuestion: %s", contextBlock.String(), input.Query)

		answer, err := deps.LLM.GenerateWithSystem(ctx, askSystemPrompt, userPrompt)
		if err != nil {
			deps.Logger.Error("answer generation failed", "error", err)
			deps.observe("ask", start, true)
			return ErrorResult("Failed to generate answer: "+err.Error(), "Check the LLM configuration"), nil, nil
		}

		deps.Logger.Info("question answered", "context_docs", len(hits))
		deps.observe("ask", start, false)
		return TextResult(answer), nil, nil
	}
}
