package vectorstore_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphaelgruber/ragmcp-go/internal/config"
	"github.com/raphaelgruber/ragmcp-go/internal/vectorstore"
)

// fakeQdrant is an in-memory stand-in for the Qdrant REST API. It keeps the
// last payload per point id and scores search hits by dot product.
type fakeQdrant struct {
	mu          sync.Mutex
	collections map[string]int // name -> dimension
	points      map[string]fakePoint
	requests    int
	createCalls int
}

type fakePoint struct {
	ID      string         `json:"id"`
	Vector  []float32      `json:"vector"`
	Payload map[string]any `json:"payload"`
}

func newFakeQdrant() *fakeQdrant {
	return &fakeQdrant{
		collections: make(map[string]int),
		points:      make(map[string]fakePoint),
	}
}

func (f *fakeQdrant) handler(t *testing.T) http.Handler {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("GET /collections/{name}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.requests++
		if _, ok := f.collections[r.PathValue("name")]; !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `{"result":{}}`)
	})

	mux.HandleFunc("PUT /collections/{name}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.requests++
		f.createCalls++
		name := r.PathValue("name")
		if _, ok := f.collections[name]; ok {
			http.Error(w, `{"status":{"error":"collection already exists"}}`, http.StatusConflict)
			return
		}
		var req struct {
			Vectors struct {
				Size int `json:"size"`
			} `json:"vectors"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		f.collections[name] = req.Vectors.Size
		fmt.Fprint(w, `{"result":true}`)
	})

	mux.HandleFunc("PUT /collections/{name}/points", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.requests++
		var req struct {
			Points []fakePoint `json:"points"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		for _, p := range req.Points {
			f.points[p.ID] = p
		}
		fmt.Fprint(w, `{"result":{"status":"completed"}}`)
	})

	mux.HandleFunc("POST /collections/{name}/points/search", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.requests++
		var req struct {
			Vector []float32 `json:"vector"`
			Limit  int       `json:"limit"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		type hit struct {
			ID      string         `json:"id"`
			Score   float32        `json:"score"`
			Payload map[string]any `json:"payload"`
		}
		hits := make([]hit, 0, len(f.points))
		for _, p := range f.points {
			var score float32
			for i := range req.Vector {
				if i < len(p.Vector) {
					score += req.Vector[i] * p.Vector[i]
				}
			}
			hits = append(hits, hit{ID: p.ID, Score: score, Payload: p.Payload})
		}
		sort.Slice(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
		if len(hits) > req.Limit {
			hits = hits[:req.Limit]
		}
		json.NewEncoder(w).Encode(map[string]any{"result": hits})
	})

	return mux
}

func storeConfig(url string, dim int) config.Config {
	return config.Config{
		QdrantURL:        url,
		QdrantCollection: "documents",
		EmbedDimension:   dim,
	}
}

func vec(dim int, values ...float32) []float32 {
	v := make([]float32, dim)
	copy(v, values)
	return v
}

func TestUpsertProvisionsCollectionOnce(t *testing.T) {
	fake := newFakeQdrant()
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	store := vectorstore.NewQdrantStore(storeConfig(srv.URL, 4))
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, "d1", vec(4, 1), "first", nil))
	require.NoError(t, store.Upsert(ctx, "d2", vec(4, 0, 1), "second", nil))

	assert.Equal(t, 1, fake.createCalls, "collection should be created exactly once")
	assert.Equal(t, 4, fake.collections["documents"])
}

func TestUpsertIdempotentPerDocID(t *testing.T) {
	fake := newFakeQdrant()
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	store := vectorstore.NewQdrantStore(storeConfig(srv.URL, 4))
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, "d1", vec(4, 1), "old text", nil))
	require.NoError(t, store.Upsert(ctx, "d1", vec(4, 1), "new text", map[string]any{"rev": 2}))

	require.Len(t, fake.points, 1, "same doc_id must overwrite, never duplicate")

	hits, err := store.Search(ctx, vec(4, 1), 5)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "d1", hits[0].ID)
	assert.Equal(t, "new text", hits[0].Text)
}

func TestSearchOrderingAndLimit(t *testing.T) {
	fake := newFakeQdrant()
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	store := vectorstore.NewQdrantStore(storeConfig(srv.URL, 4))
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, "far", vec(4, 0, 0, 1), "far", nil))
	require.NoError(t, store.Upsert(ctx, "near", vec(4, 1), "near", nil))
	require.NoError(t, store.Upsert(ctx, "mid", vec(4, 0.5, 0.5), "mid", nil))

	hits, err := store.Search(ctx, vec(4, 1), 2)
	require.NoError(t, err)
	require.Len(t, hits, 2, "limit must cap the result count")
	assert.Equal(t, "near", hits[0].ID)
	assert.Equal(t, "mid", hits[1].ID)
	assert.GreaterOrEqual(t, hits[0].Score, hits[1].Score)
}

func TestUpsertRejectsDimensionMismatch(t *testing.T) {
	fake := newFakeQdrant()
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	store := vectorstore.NewQdrantStore(storeConfig(srv.URL, 4))

	err := store.Upsert(context.Background(), "d1", vec(8, 1), "text", nil)
	require.ErrorIs(t, err, vectorstore.ErrDimensionMismatch)
	assert.Zero(t, fake.requests, "mismatched vector must be rejected before any network call")
}

func TestMissingConfigFailsBeforeNetwork(t *testing.T) {
	store := vectorstore.NewQdrantStore(config.Config{EmbedDimension: 4})

	err := store.Upsert(context.Background(), "d1", vec(4, 1), "text", nil)
	require.ErrorIs(t, err, vectorstore.ErrMissingConfig)

	_, err = store.Search(context.Background(), vec(4, 1), 5)
	require.ErrorIs(t, err, vectorstore.ErrMissingConfig)
}

func TestCreateCollectionAlreadyExistsIsSuccess(t *testing.T) {
	fake := newFakeQdrant()
	fake.collections["documents"] = 4
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	store := vectorstore.NewQdrantStore(storeConfig(srv.URL, 4))

	// Collection pre-exists: the GET check short-circuits the create.
	require.NoError(t, store.Upsert(context.Background(), "d1", vec(4, 1), "text", nil))
	assert.Zero(t, fake.createCalls)
}

func TestSearchToleratesMalformedResponse(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /collections/{name}", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"result":{}}`)
	})
	mux.HandleFunc("POST /collections/{name}/points/search", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `not json at all`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := vectorstore.NewQdrantStore(storeConfig(srv.URL, 4))

	hits, err := store.Search(context.Background(), vec(4, 1), 5)
	require.NoError(t, err, "malformed search body must not crash the call")
	assert.Empty(t, hits)
}

func TestSearchPropagatesStoreError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /collections/{name}", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"result":{}}`)
	})
	mux.HandleFunc("POST /collections/{name}/points/search", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"status":{"error":"service unavailable"}}`, http.StatusServiceUnavailable)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := vectorstore.NewQdrantStore(storeConfig(srv.URL, 4))

	_, err := store.Search(context.Background(), vec(4, 1), 5)
	var storeErr *vectorstore.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, http.StatusServiceUnavailable, storeErr.Status)
	assert.Contains(t, storeErr.Body, "service unavailable")
}

func TestPointIDDeterministic(t *testing.T) {
	a := vectorstore.PointID("doc-1")
	b := vectorstore.PointID("doc-1")
	c := vectorstore.PointID("doc-2")

	assert.Equal(t, a, b, "same doc_id must map to the same point id")
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 36, "point id must be a UUID string")
}
