package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askLimit int

const askSystem = `You answer questions using only the provided document excerpts.
Cite document ids in square brackets. If the excerpts do not contain the
answer, say so instead of guessing.`

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a question answered from the stored documents",
	Long: `Ask a question and get an LLM-synthesized answer grounded in the
stored documents.

The question is embedded, the best matching documents are retrieved, and
the LLM answers using only that context.

Examples:
  ragmcp ask "how does qdrant index vectors"
  ragmcp ask "who owns the auth service" --limit 3`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askLimit, "limit", "n", 5, "max documents used as context")
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]

	if err := getClients(true); err != nil {
		return err
	}

	ctx := context.Background()
	vector, err := embedder.Embed(ctx, question)
	if err != nil {
		return fmt.Errorf("embed question: %w", err)
	}

	hits, err := store.Search(ctx, vector, askLimit)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	if len(hits) == 0 {
		fmt.Println("No stored documents matched the question. Add documents first with 'ragmcp add'.")
		return nil
	}

	var sb strings.Builder
	sb.WriteString("Document excerpts:\n\n")
	for _, hit := range hits {
		fmt.Fprintf(&sb, "[%s] %s\n\n", hit.ID, hit.Text)
	}
	fmt.Fprintf(&sb, "Question: %s", question)

	answer, err := model.GenerateWithSystem(ctx, askSystem, sb.String())
	if err != nil {
		return fmt.Errorf("generate answer: %w", err)
	}

	fmt.Println(answer)
	fmt.Println()
	fmt.Println(defaultTheme.hintStyle().Render(fmt.Sprintf("(based on %d documents)", len(hits))))

	return nil
}
