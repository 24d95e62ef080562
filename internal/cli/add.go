package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	addID       string
	addMetadata []string
)

var addCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Store a document in the vector store",
	Long: `Store a piece of text as a document with its vector embedding.

Use --id to choose the document id; adding again with the same id
overwrites the previous version. Without --id the text itself (truncated)
is used as the id.

Examples:
  ragmcp add "Qdrant supports HNSW indexes for vector search"
  ragmcp add "Meeting notes from standup" --id standup-2026-08-30
  ragmcp add "John is the auth service owner" --id john --meta "team=platform"`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addID, "id", "i", "", "document id (derived from text if not provided)")
	addCmd.Flags().StringSliceVarP(&addMetadata, "meta", "m", nil, "metadata in key=value format")
}

func runAdd(cmd *cobra.Command, args []string) error {
	text := args[0]

	docID := addID
	if docID == "" {
		docID = text
		if len(docID) > 50 {
			docID = docID[:50]
		}
	}

	metadata, err := parseMetadata(addMetadata)
	if err != nil {
		return err
	}

	if err := getClients(false); err != nil {
		return err
	}

	ctx := context.Background()
	vector, err := embedder.Embed(ctx, text)
	if err != nil {
		return fmt.Errorf("embed document: %w", err)
	}
	if err := store.Upsert(ctx, docID, vector, text, metadata); err != nil {
		return fmt.Errorf("store document: %w", err)
	}

	fmt.Println(defaultTheme.successStyle().Render("Stored " + docID))
	return nil
}

// parseMetadata converts key=value pairs into a metadata map.
func parseMetadata(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	metadata := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid metadata %q, expected key=value", pair)
		}
		metadata[key] = value
	}
	return metadata, nil
}
