package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "config")

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestConfigStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("retrieval.top_k", 5))
	require.NoError(t, store.Set("retrieval.min_score", 0.25))
	require.NoError(t, store.Set("retrieval.stop_words", false))
	require.NoError(t, store.Set("news.user_agent", "agent/1"))

	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, 5, reopened.GetInt("retrieval.top_k"))
	assert.InDelta(t, 0.25, reopened.GetFloat("retrieval.min_score"), 1e-12)
	_, ok := reopened.Get("retrieval.stop_words")
	assert.True(t, ok)
	assert.False(t, reopened.GetBool("retrieval.stop_words"))
	assert.Equal(t, "agent/1", reopened.GetString("news.user_agent"))
}

func TestConfigStore_WritesTables(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("retrieval.top_k", 3))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	assert.Contains(t, string(data), "[retrieval]")
	assert.Contains(t, string(data), "top_k = 3")
}

func TestConfigStore_ReadsHandWrittenFile(t *testing.T) {
	dir := t.TempDir()
	content := "[retrieval]\nmin_score = 0\nstemming = true\n\n[news]\nrequests_per_second = 4\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.True(t, store.GetBool("retrieval.stemming"))
	assert.Zero(t, store.GetFloat("retrieval.min_score"))
	assert.InDelta(t, 4.0, store.GetFloat("news.requests_per_second"), 1e-12)
}

func TestConfigStore_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not = [valid"), 0600))

	_, err := NewConfigStore(dir)
	assert.Error(t, err)
}

func TestConfigStore_Delete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("retrieval.top_k", 3))

	require.NoError(t, store.Delete("retrieval.top_k"))

	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)
	_, ok := reopened.Get("retrieval.top_k")
	assert.False(t, ok)
}

func TestFlattenAndNest(t *testing.T) {
	flat := map[string]any{"a.b": 1, "a.c": "x", "d": true}

	nested := nestMap(flat)
	assert.Equal(t, map[string]any{"a": map[string]any{"b": 1, "c": "x"}, "d": true}, nested)
	assert.Equal(t, flat, flattenMap(nested, ""))
}
