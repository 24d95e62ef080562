//go:build integration

package vectorstore_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/raphaelgruber/ragmcp-go/internal/config"
	"github.com/raphaelgruber/ragmcp-go/internal/vectorstore"
)

var qdrantURL string

// TestMain starts a Qdrant container shared by all integration tests.
func TestMain(m *testing.M) {
	// Disable ryuk (cleanup container) as it can cause issues in some environments
	os.Setenv("TESTCONTAINERS_RYUK_DISABLED", "true")

	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "qdrant/qdrant:v1.12.4",
			ExposedPorts: []string{"6333/tcp"},
			WaitingFor:   wait.ForListeningPort("6333/tcp").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		log.Fatalf("Failed to start Qdrant container: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		log.Fatalf("Failed to get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6333")
	if err != nil {
		log.Fatalf("Failed to get mapped port: %v", err)
	}
	qdrantURL = fmt.Sprintf("http://%s:%s", host, port.Port())

	code := m.Run()

	_ = container.Terminate(ctx)
	os.Exit(code)
}

func integrationConfig(collection string) config.Config {
	return config.Config{
		QdrantURL:        qdrantURL,
		QdrantCollection: collection,
		EmbedDimension:   4,
	}
}

func TestQdrantRoundTrip(t *testing.T) {
	store := vectorstore.NewQdrantStore(integrationConfig("roundtrip"))
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, "d1", []float32{1, 0, 0, 0}, "the quick brown fox", nil))
	require.NoError(t, store.Upsert(ctx, "d2", []float32{0, 1, 0, 0}, "something unrelated", map[string]any{"source": "test"}))

	hits, err := store.Search(ctx, []float32{1, 0, 0, 0}, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "d1", hits[0].ID)
	assert.Equal(t, "the quick brown fox", hits[0].Text)
}

func TestQdrantUpsertOverwrites(t *testing.T) {
	store := vectorstore.NewQdrantStore(integrationConfig("overwrite"))
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, "d1", []float32{1, 0, 0, 0}, "old", nil))
	require.NoError(t, store.Upsert(ctx, "d1", []float32{1, 0, 0, 0}, "new", nil))

	hits, err := store.Search(ctx, []float32{1, 0, 0, 0}, 10)
	require.NoError(t, err)
	require.Len(t, hits, 1, "second upsert under the same id must overwrite")
	assert.Equal(t, "new", hits[0].Text)
}

func TestQdrantProvisioningIsIdempotent(t *testing.T) {
	ctx := context.Background()

	// Two independent clients race to provision the same collection.
	first := vectorstore.NewQdrantStore(integrationConfig("shared"))
	second := vectorstore.NewQdrantStore(integrationConfig("shared"))

	require.NoError(t, first.Upsert(ctx, "a", []float32{1, 0, 0, 0}, "a", nil))
	require.NoError(t, second.Upsert(ctx, "b", []float32{0, 1, 0, 0}, "b", nil))

	hits, err := first.Search(ctx, []float32{1, 1, 0, 0}, 10)
	require.NoError(t, err)
	assert.Len(t, hits, 2)
}
