package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Provider identifies an embedding or LLM backend.
type Provider string

const (
	// ProviderOpenAI talks to the OpenAI-compatible embeddings/completions API.
	ProviderOpenAI Provider = "openai"

	// ProviderOllama talks to a local Ollama server.
	ProviderOllama Provider = "ollama"
)

// Config holds all configuration values.
type Config struct {
	// Embedding provider
	EmbedProvider  Provider
	OpenAIAPIKey   string
	OpenAIBaseURL  string
	EmbedModel     string
	EmbedDimension int
	OllamaHost     string

	// Qdrant vector store
	QdrantURL        string
	QdrantAPIKey     string
	QdrantCollection string

	// LLM (used by the ask tool)
	LLMProvider Provider
	LLMModel    string

	// HTTP transport
	HTTPHost string
	HTTPPort string
	HTTPPath string

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// Load reads configuration from environment variables.
func Load() Config {
	return Config{
		// Embedding
		EmbedProvider:  Provider(getEnv("EMBED_PROVIDER", string(ProviderOpenAI))),
		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:  getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		EmbedModel:     getEnv("RAGMCP_EMBEDDING_MODEL", "text-embedding-3-small"),
		EmbedDimension: getEnvInt("RAGMCP_EMBEDDING_DIMENSION", 1536),
		OllamaHost:     getEnv("OLLAMA_HOST", "http://localhost:11434"),

		// Qdrant
		QdrantURL:        os.Getenv("QDRANT_URL"),
		QdrantAPIKey:     os.Getenv("QDRANT_API_KEY"),
		QdrantCollection: getEnv("QDRANT_COLLECTION", "documents"),

		// LLM
		LLMProvider: Provider(getEnv("LLM_PROVIDER", string(ProviderOpenAI))),
		LLMModel:    getEnv("RAGMCP_LLM_MODEL", "gpt-4o-mini"),

		// HTTP
		HTTPHost: getEnv("RAGMCP_HTTP_HOST", ""),
		HTTPPort: getEnv("PORT", "8000"),
		HTTPPath: getEnv("RAGMCP_HTTP_PATH", "/mcp"),

		// Logging
		LogFile:  getEnv("RAGMCP_LOG_FILE", "/tmp/ragmcp.log"),
		LogLevel: parseLogLevel(getEnv("RAGMCP_LOG_LEVEL", "INFO")),
	}
}

// ValidateEmbedding checks the configuration required by the embedding
// provider. Returns nil when every required value is present.
func (c Config) ValidateEmbedding() error {
	var missing []string
	switch c.EmbedProvider {
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			missing = append(missing, "OPENAI_API_KEY")
		}
	case ProviderOllama:
		if c.OllamaHost == "" {
			missing = append(missing, "OLLAMA_HOST")
		}
	default:
		return fmt.Errorf("unknown embedding provider: %s", c.EmbedProvider)
	}
	if c.EmbedModel == "" {
		missing = append(missing, "RAGMCP_EMBEDDING_MODEL")
	}
	if c.EmbedDimension <= 0 {
		missing = append(missing, "RAGMCP_EMBEDDING_DIMENSION")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing embedding configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ValidateVectorStore checks the configuration required by the vector store.
func (c Config) ValidateVectorStore() error {
	var missing []string
	if c.QdrantURL == "" {
		missing = append(missing, "QDRANT_URL")
	}
	if c.QdrantCollection == "" {
		missing = append(missing, "QDRANT_COLLECTION")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing vector store configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
