package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/deepagent/core"
)

var _ core.DocumentStore = (*Store)(nil)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "documents.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)

	docs := core.Documents{
		"plans/topic/plan.json": `{"steps":[]}`,
		"notes/scratch.md":      "# notes",
	}
	require.NoError(t, store.Save("s1", docs))

	out, err := store.Load("s1")
	require.NoError(t, err)
	assert.Equal(t, docs, out)
}

func TestStore_SaveIsUpsertNotReplace(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Save("s1", core.Documents{"a": "1", "b": "2"}))
	// A later save without "b" must not delete it.
	require.NoError(t, store.Save("s1", core.Documents{"a": "updated"}))

	out, err := store.Load("s1")
	require.NoError(t, err)
	assert.Equal(t, core.Documents{"a": "updated", "b": "2"}, out)
}

func TestStore_SessionsAreIsolated(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Save("s1", core.Documents{"doc": "one"}))
	require.NoError(t, store.Save("s2", core.Documents{"doc": "two"}))

	out1, err := store.Load("s1")
	require.NoError(t, err)
	out2, err := store.Load("s2")
	require.NoError(t, err)

	assert.Equal(t, "one", out1["doc"])
	assert.Equal(t, "two", out2["doc"])
}

func TestStore_UnknownSessionIsEmpty(t *testing.T) {
	store := newTestStore(t)

	out, err := store.Load("missing")
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}
