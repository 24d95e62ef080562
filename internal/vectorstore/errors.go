package vectorstore

import (
	"errors"
	"fmt"
)

// Sentinel errors for vector store operations.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrMissingConfig indicates the store URL or collection is absent.
	// Raised before any network I/O is attempted.
	ErrMissingConfig = errors.New("vector store configuration incomplete")

	// ErrDimensionMismatch indicates an upsert vector whose length does not
	// match the collection's configured dimensionality. The upsert is
	// rejected locally rather than corrupting the collection.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
)

// StoreError carries the HTTP status and body of a failed Qdrant call.
type StoreError struct {
	Op     string
	Status int
	Body   string
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("qdrant %s failed (status %d): %s", e.Op, e.Status, e.Body)
}
