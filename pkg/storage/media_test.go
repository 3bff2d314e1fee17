package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaStoreSaveAndRemove(t *testing.T) {
	root := filepath.Join(t.TempDir(), "media")
	store, err := NewMediaStore(root)
	require.NoError(t, err)

	rel, err := store.Save("artist_profiles", "Portrait.PNG", []byte("data"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rel, "artist_profiles/"))
	assert.True(t, strings.HasSuffix(rel, ".png"))

	content, err := os.ReadFile(store.Path(rel))
	require.NoError(t, err)
	assert.Equal(t, "data", string(content))

	require.NoError(t, store.Remove(rel))
	require.NoError(t, store.Remove(rel))
	_, err = os.Stat(store.Path(rel))
	assert.True(t, os.IsNotExist(err))
}

func TestMediaStorePathStaysInRoot(t *testing.T) {
	root := t.TempDir()
	store, err := NewMediaStore(root)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "etc", "passwd"), store.Path("../../etc/passwd"))
}
