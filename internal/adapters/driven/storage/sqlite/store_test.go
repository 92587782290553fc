package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/finsim/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	return store
}

func testCollection(id, name string) domain.Collection {
	now := time.Now().UTC().Truncate(time.Second)
	return domain.Collection{
		ID:     id,
		Name:   name,
		Kind:   domain.CollectionKindTicker,
		Origin: "ticker_history.csv",
		Documents: []domain.Document{
			{ID: 0, Text: "150.0 155.0 149.0 154.0 aapl", Key: "08/11/2023|aapl",
				Metadata: map[string]string{"ticker": "aapl"}},
			{ID: 1, Text: "150.1 155.2 149.1 154.3 aapl", Key: "08/12/2023|aapl"},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ==================== Store Creation ====================

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "collections.db"), store.Path())
	_, err = os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestNewStore_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, testCollection("c1", "prices")))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.GetByName(ctx, "prices")
	require.NoError(t, err)
	assert.Len(t, got.Documents, 2)
}

// ==================== Collection Store ====================

func TestStore_SaveAndGet(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	want := testCollection("c1", "prices")

	require.NoError(t, store.Save(ctx, want))

	got, err := store.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.Kind, got.Kind)
	assert.Equal(t, want.Origin, got.Origin)
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt))
	assert.True(t, want.UpdatedAt.Equal(got.UpdatedAt))
	require.Len(t, got.Documents, 2)
	assert.Equal(t, want.Documents[0].Text, got.Documents[0].Text)
	assert.Equal(t, want.Documents[0].Key, got.Documents[0].Key)
	assert.Equal(t, "aapl", got.Documents[0].Metadata["ticker"])
	assert.Nil(t, got.Documents[1].Metadata)
	assert.Equal(t, 1, got.Documents[1].ID)
}

func TestStore_GetNotFound(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = store.GetByName(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_SaveReplacesDocuments(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	c := testCollection("c1", "prices")
	require.NoError(t, store.Save(ctx, c))

	c.Documents = []domain.Document{{ID: 0, Text: "10.0 12.0 9.0 11.0 msft"}}
	c.UpdatedAt = c.UpdatedAt.Add(time.Minute)
	require.NoError(t, store.Save(ctx, c))

	got, err := store.GetByName(ctx, "prices")
	require.NoError(t, err)
	require.Len(t, got.Documents, 1)
	assert.Equal(t, "10.0 12.0 9.0 11.0 msft", got.Documents[0].Text)
	assert.True(t, c.UpdatedAt.Equal(got.UpdatedAt))
}

func TestStore_EmptyCollection(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	c := testCollection("c1", "empty")
	c.Documents = nil
	require.NoError(t, store.Save(ctx, c))

	got, err := store.Get(ctx, "c1")
	require.NoError(t, err)
	assert.NotNil(t, got.Documents)
	assert.Empty(t, got.Documents)
}

func TestStore_DuplicateName(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, testCollection("c1", "prices")))

	err := store.Save(ctx, testCollection("c2", "prices"))
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestStore_ListAndDelete(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, testCollection("c2", "zeta")))
	require.NoError(t, store.Save(ctx, testCollection("c1", "alpha")))

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "alpha", list[0].Name)
	assert.Nil(t, list[0].Documents)

	require.NoError(t, store.Delete(ctx, "c1"))
	require.NoError(t, store.Delete(ctx, "c1"))

	list, err = store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "zeta", list[0].Name)

	var count int
	require.NoError(t, store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM documents WHERE collection_id = ?", "c1").Scan(&count))
	assert.Zero(t, count, "documents are removed by cascade")
}

func TestStore_MigrationsIdempotent(t *testing.T) {
	store := setupTestStore(t)

	require.NoError(t, store.migrate(migrationsFS()))

	var version int
	require.NoError(t, store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 1, version)
}
