package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct {
	MemoryStore
	err error
}

func (f *failingStore) Save(string) error { return f.err }

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "auth_token")
	store := NewFileStore(path)

	token, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token, "missing file means no token")

	require.NoError(t, store.Save("abc"))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	token, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear(), "clearing twice is fine")
	token, err = store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestSession_RestoresFromStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth_token")
	require.NoError(t, NewFileStore(path).Save("persisted"))

	s, err := New(NewFileStore(path))
	require.NoError(t, err)
	assert.True(t, s.Authenticated())
	assert.Equal(t, "persisted", s.Token())
}

func TestSession_Lifecycle(t *testing.T) {
	store := &MemoryStore{}
	s, err := New(store)
	require.NoError(t, err)
	assert.False(t, s.Authenticated())

	require.NoError(t, s.Set("abc"))
	assert.Equal(t, "abc", s.Token())
	stored, _ := store.Load()
	assert.Equal(t, "abc", stored)

	require.NoError(t, s.Clear())
	assert.False(t, s.Authenticated())
	stored, _ = store.Load()
	assert.Empty(t, stored)
}

func TestSession_SetKeepsTokenWhenPersistFails(t *testing.T) {
	s, err := New(&failingStore{err: assert.AnError})
	require.NoError(t, err)

	err = s.Set("abc")
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, "abc", s.Token())
}
