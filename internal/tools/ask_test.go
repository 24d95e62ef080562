package tools_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphaelgruber/ragmcp-go/internal/config"
	"github.com/raphaelgruber/ragmcp-go/internal/embedding"
	"github.com/raphaelgruber/ragmcp-go/internal/metrics"
	"github.com/raphaelgruber/ragmcp-go/internal/tools"
)

func TestAskSynthesizesAnswerFromHits(t *testing.T) {
	deps, _, _ := testDeps()
	llm := &fakeLLM{answer: "Foxes are quick."}
	deps.LLM = llm
	session := newSession(t, deps, validConfig())

	callTool(t, session, "store_document", map[string]any{
		"doc_id": "d1",
		"text":   "the quick brown fox jumps over the lazy dog",
	})

	result := callTool(t, session, "ask", map[string]any{"query": "how quick is the fox"})
	require.False(t, result.IsError, resultText(t, result))

	assert.Contains(t, resultText(t, result), "Foxes are quick.")
	assert.Contains(t, llm.lastUser, "[d1]", "retrieved documents must be cited in the prompt")
	assert.Contains(t, llm.lastUser, "quick brown fox")
	assert.NotEmpty(t, llm.lastSystem)
}

func TestAskWithoutLLMConfigured(t *testing.T) {
	deps, _, _ := testDeps()
	deps.LLM = nil
	session := newSession(t, deps, validConfig())

	result := callTool(t, session, "ask", map[string]any{"query": "anything"})
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "LLM")
}

func TestAskWithNoMatchingDocuments(t *testing.T) {
	deps, _, _ := testDeps()
	llm := &fakeLLM{answer: "should not be called"}
	deps.LLM = llm
	session := newSession(t, deps, validConfig())

	result := callTool(t, session, "ask", map[string]any{"query": "anything at all"})
	require.False(t, result.IsError)
	assert.NotContains(t, resultText(t, result), "should not be called")
	assert.Empty(t, llm.lastUser, "LLM must not be invoked without retrieved context")
}

func TestAskLLMFailure(t *testing.T) {
	deps, _, _ := testDeps()
	deps.LLM = &fakeLLM{err: fmt.Errorf("model overloaded")}
	session := newSession(t, deps, validConfig())

	callTool(t, session, "store_document", map[string]any{"doc_id": "d1", "text": "some context"})

	result := callTool(t, session, "ask", map[string]any{"query": "some context"})
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "model overloaded")
}

// TestMissingCredentialsFailBeforeNetwork wires the real OpenAI embedding
// client without an API key against a counting test server: the tool must
// return an error result without issuing a single outbound request.
func TestMissingCredentialsFailBeforeNetwork(t *testing.T) {
	var requests atomic.Int64
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer upstream.Close()

	cfg := &config.Config{
		EmbedProvider:    config.ProviderOpenAI,
		OpenAIAPIKey:     "",
		OpenAIBaseURL:    upstream.URL,
		EmbedModel:       "text-embedding-3-small",
		EmbedDimension:   testDimension,
		QdrantURL:        "http://localhost:6333",
		QdrantCollection: "documents",
	}
	embedder, err := embedding.New(*cfg)
	require.NoError(t, err, "construction must succeed even when credentials are missing")

	deps := &tools.Dependencies{
		Embedder: embedder,
		Store:    newFakeStore(),
		Logger:   testLogger(),
		Metrics:  metrics.NewCollector(),
	}
	session := newSession(t, deps, cfg)

	result := callTool(t, session, "store_document", map[string]any{"doc_id": "d1", "text": "body"})
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "OPENAI_API_KEY")

	result = callTool(t, session, "search_documents", map[string]any{"query": "body"})
	assert.True(t, result.IsError)

	assert.Zero(t, requests.Load(), "missing credentials must fail before any outbound request")
}
