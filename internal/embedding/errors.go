package embedding

import (
	"errors"
	"fmt"
)

// Sentinel errors for embedding operations.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrMissingConfig indicates a required credential or endpoint is absent.
	// Raised before any network I/O is attempted.
	ErrMissingConfig = errors.New("embedding configuration incomplete")

	// ErrMalformedResponse indicates the provider returned a body without
	// the expected embedding fields.
	ErrMalformedResponse = errors.New("malformed embedding response")

	// ErrDimensionMismatch indicates the provider returned a vector whose
	// length does not match the configured dimension.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)

// ProviderError carries the HTTP status and body of a failed provider call.
type ProviderError struct {
	Status int
	Body   string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("embedding provider error (status %d): %s", e.Status, e.Body)
}
