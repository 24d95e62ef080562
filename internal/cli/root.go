// Package cli provides the command-line interface for ragmcp.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/ragmcp-go/internal/config"
	"github.com/raphaelgruber/ragmcp-go/internal/embedding"
	"github.com/raphaelgruber/ragmcp-go/internal/llm"
	"github.com/raphaelgruber/ragmcp-go/internal/vectorstore"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose bool

	// Global config, loaded in PersistentPreRunE
	cfg config.Config

	// Lazy-initialized clients
	embedder embedding.Embedder
	store    vectorstore.Store
	model    *llm.Model
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ragmcp",
	Short: "Semantic document store with retrieval-augmented answers",
	Long: `ragmcp stores documents as vector embeddings in Qdrant and retrieves
them by semantic similarity.

Add text or whole Markdown files, search them by meaning rather than
keywords, and ask questions that are answered from the stored content.
The same pipeline backs the ragmcp MCP server.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Version and help need no configuration
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		cfg = config.Load()
		return nil
	},
}

// getClients lazily builds the embedding and vector store clients.
// Commands that synthesize answers pass requireLLM=true.
func getClients(requireLLM bool) error {
	if embedder == nil {
		var err error
		embedder, err = embedding.New(cfg)
		if err != nil {
			return fmt.Errorf("init embedder: %w", err)
		}
		store = vectorstore.NewQdrantStore(cfg)
	}
	if requireLLM && model == nil {
		var err error
		model, err = llm.NewModel(cfg)
		if err != nil {
			return fmt.Errorf("init model: %w", err)
		}
	}
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
}
