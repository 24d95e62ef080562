package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var statusProbe bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration state and vector store reachability",
	Long: `Report the effective configuration: embedding provider, model,
dimension, and Qdrant collection, plus any missing settings.

With --probe, also issue a test search against Qdrant to verify the
collection is reachable.

Examples:
  ragmcp status
  ragmcp status --probe`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusProbe, "probe", false, "issue a test search against the vector store")
}

func runStatus(cmd *cobra.Command, args []string) error {
	fmt.Println(defaultTheme.headingStyle().Render("ragmcp configuration"))
	fmt.Printf("  embedding provider: %s\n", cfg.EmbedProvider)
	fmt.Printf("  embedding model:    %s\n", cfg.EmbedModel)
	fmt.Printf("  dimension:          %d\n", cfg.EmbedDimension)
	fmt.Printf("  qdrant url:         %s\n", cfg.QdrantURL)
	fmt.Printf("  collection:         %s\n", cfg.QdrantCollection)
	fmt.Printf("  llm provider:       %s\n", cfg.LLMProvider)
	fmt.Printf("  llm model:          %s\n", cfg.LLMModel)
	fmt.Println()

	healthy := true
	if err := cfg.ValidateEmbedding(); err != nil {
		healthy = false
		fmt.Println(defaultTheme.errorStyle().Render("  ✗ " + err.Error()))
	}
	if err := cfg.ValidateVectorStore(); err != nil {
		healthy = false
		fmt.Println(defaultTheme.errorStyle().Render("  ✗ " + err.Error()))
	}
	if healthy {
		fmt.Println(defaultTheme.successStyle().Render("  ✓ configuration complete"))
	}

	if !statusProbe {
		return nil
	}
	if !healthy {
		return fmt.Errorf("cannot probe with incomplete configuration")
	}

	if err := getClients(false); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	probe := make([]float32, cfg.EmbedDimension)
	start := time.Now()
	hits, err := store.Search(ctx, probe, 1)
	if err != nil {
		fmt.Println(defaultTheme.errorStyle().Render("  ✗ qdrant unreachable: " + err.Error()))
		return err
	}

	fmt.Println(defaultTheme.successStyle().Render(
		fmt.Sprintf("  ✓ qdrant reachable (%d ms, %d sample hits)", time.Since(start).Milliseconds(), len(hits))))
	return nil
}
