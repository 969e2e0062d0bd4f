package file

import (
	"testing"

	"github.com/flowvault/flowvault/pkg/models"
	"github.com/flowvault/flowvault/pkg/versionstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_RoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	doc := models.WorkflowDocument{
		"name":    "Lead Nurture",
		"actions": []any{map[string]any{"id": "1", "type": "DELAY", "delayMillis": float64(60000)}},
	}

	require.NoError(t, store.SaveVersion(t.Context(), "wf-1", "3", doc))

	loaded, err := store.GetVersion(t.Context(), "wf-1", "3")
	require.NoError(t, err)
	assert.Equal(t, "Lead Nurture", loaded.Name())
	require.Len(t, loaded.Actions(), 1)
	assert.Equal(t, "DELAY", models.AsString(loaded.Actions()[0]["type"]))
}

func TestStore_GetMissingVersion(t *testing.T) {
	store := NewStore(t.TempDir())

	_, err := store.GetVersion(t.Context(), "wf-1", "1")
	assert.ErrorIs(t, err, versionstore.ErrVersionNotFound)
}

func TestStore_ListVersions(t *testing.T) {
	store := NewStore(t.TempDir())

	for _, version := range []string{"2", "1", "10"} {
		require.NoError(t, store.SaveVersion(t.Context(), "wf-1", version, models.WorkflowDocument{"name": "v" + version}))
	}

	versions, err := store.ListVersions(t.Context(), "wf-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "10", "2"}, versions)
}

func TestStore_ListVersionsUnknownWorkflow(t *testing.T) {
	store := NewStore(t.TempDir())

	versions, err := store.ListVersions(t.Context(), "missing")
	require.NoError(t, err)
	assert.Empty(t, versions)
}

func TestStore_FileURLPrefix(t *testing.T) {
	dir := t.TempDir()
	store := NewStore("file://" + dir)

	require.NoError(t, store.SaveVersion(t.Context(), "wf-1", "1", models.WorkflowDocument{"name": "X"}))

	loaded, err := store.GetVersion(t.Context(), "wf-1", "1")
	require.NoError(t, err)
	assert.Equal(t, "X", loaded.Name())
}
