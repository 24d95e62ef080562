package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// Make sure no ambient environment leaks into the assertions.
	for _, key := range []string{
		"EMBED_PROVIDER", "OPENAI_API_KEY", "OPENAI_BASE_URL",
		"RAGMCP_EMBEDDING_MODEL", "RAGMCP_EMBEDDING_DIMENSION",
		"QDRANT_URL", "QDRANT_API_KEY", "QDRANT_COLLECTION",
		"PORT", "RAGMCP_HTTP_PATH", "RAGMCP_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, ProviderOpenAI, cfg.EmbedProvider)
	assert.Equal(t, "https://api.openai.com/v1", cfg.OpenAIBaseURL)
	assert.Equal(t, "text-embedding-3-small", cfg.EmbedModel)
	assert.Equal(t, 1536, cfg.EmbedDimension)
	assert.Equal(t, "documents", cfg.QdrantCollection)
	assert.Equal(t, "8000", cfg.HTTPPort)
	assert.Equal(t, "/mcp", cfg.HTTPPath)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("EMBED_PROVIDER", "ollama")
	t.Setenv("RAGMCP_EMBEDDING_MODEL", "nomic-embed-text")
	t.Setenv("RAGMCP_EMBEDDING_DIMENSION", "768")
	t.Setenv("QDRANT_URL", "http://qdrant:6333")
	t.Setenv("QDRANT_COLLECTION", "notes")
	t.Setenv("PORT", "9090")
	t.Setenv("RAGMCP_LOG_LEVEL", "debug")

	cfg := Load()

	assert.Equal(t, ProviderOllama, cfg.EmbedProvider)
	assert.Equal(t, "nomic-embed-text", cfg.EmbedModel)
	assert.Equal(t, 768, cfg.EmbedDimension)
	assert.Equal(t, "http://qdrant:6333", cfg.QdrantURL)
	assert.Equal(t, "notes", cfg.QdrantCollection)
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestInvalidDimensionFallsBack(t *testing.T) {
	t.Setenv("RAGMCP_EMBEDDING_DIMENSION", "not-a-number")

	cfg := Load()
	assert.Equal(t, 1536, cfg.EmbedDimension)
}

func TestValidateEmbedding(t *testing.T) {
	cfg := Config{
		EmbedProvider:  ProviderOpenAI,
		EmbedModel:     "text-embedding-3-small",
		EmbedDimension: 1536,
	}

	err := cfg.ValidateEmbedding()
	require.Error(t, err, "missing API key must be rejected")
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")

	cfg.OpenAIAPIKey = "sk-test"
	assert.NoError(t, cfg.ValidateEmbedding())

	// Ollama needs no credential, just a host.
	cfg = Config{
		EmbedProvider:  ProviderOllama,
		OllamaHost:     "http://localhost:11434",
		EmbedModel:     "all-minilm",
		EmbedDimension: 384,
	}
	assert.NoError(t, cfg.ValidateEmbedding())
}

func TestValidateVectorStore(t *testing.T) {
	cfg := Config{QdrantCollection: "documents"}

	err := cfg.ValidateVectorStore()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "QDRANT_URL")

	cfg.QdrantURL = "http://localhost:6333"
	assert.NoError(t, cfg.ValidateVectorStore())
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLogLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLogLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("bogus"))
}
