// Package vectorstore provides vector persistence and similarity search
// backed by Qdrant.
package vectorstore

import "context"

// SearchHit is a single similarity search result.
// Transient: produced per search call, never persisted.
type SearchHit struct {
	ID       string         `json:"id"`
	Score    float32        `json:"score"`
	Text     string         `json:"text"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Store defines the vector store operations used by the tool handlers.
type Store interface {
	// Upsert inserts or replaces the document under docID (idempotent by id).
	Upsert(ctx context.Context, docID string, vector []float32, text string, metadata map[string]any) error

	// Search returns up to limit hits ordered by descending similarity.
	Search(ctx context.Context, vector []float32, limit int) ([]SearchHit, error)
}
