package credstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Save(KeySession, []byte(`{"token":"abc"}`)))

	data, ok, err := s.Load(KeySession)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"token":"abc"}`, string(data))
}

func TestFileStore_MissingKeyIsAbsentNotError(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, ok, err := s.Load(KeyActiveHouse)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStore_CorruptEntryDiscarded(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.Save(KeySession, []byte(`{"token":"abc"}`)))

	// simulate a torn write
	path := filepath.Join(dir, KeySession+".json")
	require.NoError(t, os.WriteFile(path, []byte(`{"token":`), 0o600))

	_, ok, err := s.Load(KeySession)
	require.NoError(t, err)
	assert.False(t, ok)

	// the bad file is gone, not resurrected on the next read
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestFileStore_SaveOverwrites(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Save(KeyActiveHouse, []byte(`{"house_id":1}`)))
	require.NoError(t, s.Save(KeyActiveHouse, []byte(`{"house_id":2}`)))

	data, ok, err := s.Load(KeyActiveHouse)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"house_id":2}`, string(data))
}

func TestFileStore_DeleteIsIdempotent(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, s.Save(KeySession, []byte(`{}`)))

	require.NoError(t, s.Delete(KeySession))
	require.NoError(t, s.Delete(KeySession))

	_, ok, err := s.Load(KeySession)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStore_ClearRemovesAllEntries(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, s.Save(KeySession, []byte(`{}`)))
	require.NoError(t, s.Save(KeyActiveHouse, []byte(`{}`)))

	require.NoError(t, s.Clear())

	_, ok, err := s.Load(KeySession)
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = s.Load(KeyActiveHouse)
	require.NoError(t, err)
	assert.False(t, ok)
}
