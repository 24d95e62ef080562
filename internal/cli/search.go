package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search stored documents by semantic similarity",
	Long: `Search stored documents by meaning rather than keywords.

Returns the best matching documents ranked by similarity score.
Use 'ask' for an LLM-synthesized answer instead of raw matches.

Examples:
  ragmcp search "vector indexing"
  ragmcp search "who owns the auth service" --limit 3`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 5, "max results")
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if err := getClients(false); err != nil {
		return err
	}

	ctx := context.Background()
	vector, err := embedder.Embed(ctx, query)
	if err != nil {
		return fmt.Errorf("embed query: %w", err)
	}

	hits, err := store.Search(ctx, vector, searchLimit)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	if len(hits) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Println(defaultTheme.headingStyle().Render(fmt.Sprintf("Found %d results:", len(hits))))
	fmt.Println()
	for i, hit := range hits {
		score := defaultTheme.scoreStyle().Render(fmt.Sprintf("%.3f", hit.Score))
		fmt.Printf("%d. %s  (score %s)\n", i+1, hit.ID, score)

		text := hit.Text
		if !verbose && len(text) > 100 {
			text = text[:100] + "..."
		}
		fmt.Printf("   %s\n", text)

		if verbose && len(hit.Metadata) > 0 {
			fmt.Printf("   %s\n", defaultTheme.hintStyle().Render(fmt.Sprintf("metadata: %v", hit.Metadata)))
		}
		fmt.Println()
	}

	return nil
}
