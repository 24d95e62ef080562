package vectorstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/raphaelgruber/ragmcp-go/internal/config"
)

// requestTimeout bounds every outbound Qdrant call.
const requestTimeout = 30 * time.Second

// QdrantStore implements Store against the Qdrant REST API.
// It is safe for concurrent use.
type QdrantStore struct {
	baseURL    string
	apiKey     string
	collection string
	dimension  int
	client     *http.Client

	// provisioning state: the collection is created once, on first use
	mu          sync.Mutex
	provisioned bool
}

// Compile-time check that QdrantStore implements Store.
var _ Store = (*QdrantStore)(nil)

// NewQdrantStore creates a Qdrant client from configuration.
// Construction never dials; missing configuration surfaces per call.
func NewQdrantStore(cfg config.Config) *QdrantStore {
	return &QdrantStore{
		baseURL:    strings.TrimSuffix(cfg.QdrantURL, "/"),
		apiKey:     cfg.QdrantAPIKey,
		collection: cfg.QdrantCollection,
		dimension:  cfg.EmbedDimension,
		client:     &http.Client{Timeout: requestTimeout},
	}
}

// Collection returns the target collection name.
func (s *QdrantStore) Collection() string {
	return s.collection
}

// Dimension returns the collection's configured vector dimensionality.
func (s *QdrantStore) Dimension() int {
	return s.dimension
}

// PointID derives the deterministic Qdrant point ID for a document ID.
// Qdrant only accepts UUID or integer IDs, so caller-supplied IDs are
// hashed to a UUIDv5. The same docID always maps to the same point,
// which is what makes Upsert idempotent per document.
func PointID(docID string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("ragmcp://"+docID)).String()
}

func (s *QdrantStore) checkConfig() error {
	if s.baseURL == "" {
		return fmt.Errorf("%w: QDRANT_URL is not set", ErrMissingConfig)
	}
	if s.collection == "" {
		return fmt.Errorf("%w: QDRANT_COLLECTION is not set", ErrMissingConfig)
	}
	return nil
}

// do sends a JSON request and returns the response, converting non-success
// statuses into a typed StoreError.
func (s *QdrantStore) do(ctx context.Context, op, method, url string, body any) (*http.Response, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal %s request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("qdrant %s: %w", op, err)
	}

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &StoreError{Op: op, Status: resp.StatusCode, Body: string(b)}
	}
	return resp, nil
}

// ensureCollection provisions the collection on first use.
// Check-then-create, with "already exists" treated as success so concurrent
// first calls cannot fail each other.
func (s *QdrantStore) ensureCollection(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.provisioned {
		return nil
	}

	collectionURL := s.baseURL + "/collections/" + s.collection

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, collectionURL, nil)
	if err != nil {
		return fmt.Errorf("create collection check request: %w", err)
	}
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("qdrant collection check: %w", err)
	}
	resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		s.provisioned = true
		return nil
	}

	createResp, err := s.do(ctx, "create collection", http.MethodPut, collectionURL, map[string]any{
		"vectors": map[string]any{
			"size":     s.dimension,
			"distance": "Cosine",
		},
	})
	if err != nil {
		// A concurrent creator winning the race is not a failure.
		var storeErr *StoreError
		if errors.As(err, &storeErr) &&
			(storeErr.Status == http.StatusConflict || strings.Contains(storeErr.Body, "already exists")) {
			s.provisioned = true
			return nil
		}
		return err
	}
	createResp.Body.Close()

	s.provisioned = true
	return nil
}

// Upsert inserts or replaces a document point. Replace-or-insert by id:
// calling twice with the same docID overwrites, never duplicates.
func (s *QdrantStore) Upsert(ctx context.Context, docID string, vector []float32, text string, metadata map[string]any) error {
	if err := s.checkConfig(); err != nil {
		return err
	}
	if len(vector) != s.dimension {
		return fmt.Errorf("%w: got %d, collection %q expects %d",
			ErrDimensionMismatch, len(vector), s.collection, s.dimension)
	}
	if err := s.ensureCollection(ctx); err != nil {
		return err
	}

	payload := map[string]any{
		"doc_id": docID,
		"text":   text,
	}
	if metadata != nil {
		payload["metadata"] = metadata
	}

	url := fmt.Sprintf("%s/collections/%s/points?wait=true", s.baseURL, s.collection)
	resp, err := s.do(ctx, "upsert", http.MethodPut, url, map[string]any{
		"points": []map[string]any{
			{
				"id":      PointID(docID),
				"vector":  vector,
				"payload": payload,
			},
		},
	})
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// searchResponse is the Qdrant search result envelope.
type searchResponse struct {
	Result []struct {
		ID      string          `json:"id"`
		Score   float32         `json:"score"`
		Payload json.RawMessage `json:"payload"`
	} `json:"result"`
}

// pointPayload is the payload shape written by Upsert.
type pointPayload struct {
	DocID    string         `json:"doc_id"`
	Text     string         `json:"text"`
	Metadata map[string]any `json:"metadata"`
}

// Search returns up to limit hits ordered by descending similarity score.
// Ties keep the store's native order. A response without a parsable result
// field yields an empty hit list, not an error.
func (s *QdrantStore) Search(ctx context.Context, vector []float32, limit int) ([]SearchHit, error) {
	if err := s.checkConfig(); err != nil {
		return nil, err
	}
	if limit < 1 {
		limit = 1
	}
	if err := s.ensureCollection(ctx); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/collections/%s/points/search", s.baseURL, s.collection)
	resp, err := s.do(ctx, "search", http.MethodPost, url, map[string]any{
		"vector":       vector,
		"limit":        limit,
		"with_payload": true,
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var response searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		// Tolerate a malformed body rather than failing the whole call.
		return []SearchHit{}, nil
	}

	hits := make([]SearchHit, 0, len(response.Result))
	for _, r := range response.Result {
		hit := SearchHit{ID: r.ID, Score: r.Score}
		if len(r.Payload) > 0 {
			var payload pointPayload
			if err := json.Unmarshal(r.Payload, &payload); err == nil {
				if payload.DocID != "" {
					hit.ID = payload.DocID
				}
				hit.Text = payload.Text
				hit.Metadata = payload.Metadata
			}
		}
		hits = append(hits, hit)
	}
	return hits, nil
}
