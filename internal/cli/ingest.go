package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/ragmcp-go/internal/parser"
)

var ingestID string

var ingestCmd = &cobra.Command{
	Use:   "ingest <file.md>",
	Short: "Ingest a Markdown file as chunked documents",
	Long: `Parse a Markdown file, split it into section-aware chunks, and store
each chunk as a document.

Chunk ids are derived from the document id: doc#0, doc#1, and so on.
Re-ingesting the same file overwrites the previous chunks. Frontmatter
becomes chunk metadata.

Examples:
  ragmcp ingest notes/architecture.md
  ragmcp ingest README.md --id readme`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestID, "id", "i", "", "document id prefix (derived from filename if not provided)")
}

func runIngest(cmd *cobra.Command, args []string) error {
	path := args[0]

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	docID := ingestID
	if docID == "" {
		docID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	doc := parser.ParseMarkdown(string(content))
	chunks := parser.ChunkDocument(doc, parser.DefaultChunkConfig())
	if len(chunks) == 0 {
		return fmt.Errorf("no content to ingest in %s", path)
	}

	if err := getClients(false); err != nil {
		return err
	}

	ctx := context.Background()
	for _, chunk := range chunks {
		metadata := map[string]any{
			"source": path,
			"chunk":  chunk.Position,
		}
		if doc.Title != "" {
			metadata["title"] = doc.Title
		}
		if chunk.HeadingPath != "" {
			metadata["section"] = chunk.HeadingPath
		}
		for key, value := range doc.Frontmatter {
			metadata[key] = value
		}

		chunkID := fmt.Sprintf("%s#%d", docID, chunk.Position)
		vector, err := embedder.Embed(ctx, chunk.Content)
		if err != nil {
			return fmt.Errorf("embed chunk %s: %w", chunkID, err)
		}
		if err := store.Upsert(ctx, chunkID, vector, chunk.Content, metadata); err != nil {
			return fmt.Errorf("store chunk %s: %w", chunkID, err)
		}

		if verbose {
			fmt.Printf("  stored %s (%d chars)\n", chunkID, len(chunk.Content))
		}
	}

	fmt.Println(defaultTheme.successStyle().Render(
		fmt.Sprintf("Ingested %s as %d chunks (id prefix %s)", path, len(chunks), docID)))
	return nil
}
