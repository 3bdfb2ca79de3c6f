package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"quickhire-proctor/internal/storage"
)

func TestFileStorageRoundtrip(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.OpenFileStorage(dir, "demo")
	require.NoError(t, err)

	store.Set("key", "value")
	got, ok := store.Get("key")
	require.True(t, ok)
	require.Equal(t, "value", got)

	store.Remove("key")
	_, ok = store.Get("key")
	require.False(t, ok)
}

func TestFileStoragePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	first, err := storage.OpenFileStorage(dir, "demo")
	require.NoError(t, err)
	first.Set("pauseSuspiciousActivityCount_demo", "3")

	// перезапуск процесса: новое хранилище поверх того же файла
	second, err := storage.OpenFileStorage(dir, "demo")
	require.NoError(t, err)
	got, ok := second.Get("pauseSuspiciousActivityCount_demo")
	require.True(t, ok)
	require.Equal(t, "3", got)
}

func TestFileStorageIsolatedBySession(t *testing.T) {
	dir := t.TempDir()

	first, err := storage.OpenFileStorage(dir, "one")
	require.NoError(t, err)
	first.Set("key", "value")

	second, err := storage.OpenFileStorage(dir, "two")
	require.NoError(t, err)
	_, ok := second.Get("key")
	require.False(t, ok)
}

func TestFileStorageCorruptFileStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "session_demo.json"), []byte("{broken"), 0644))

	store, err := storage.OpenFileStorage(dir, "demo")
	require.NoError(t, err)
	_, ok := store.Get("key")
	require.False(t, ok)

	// после порчи хранилище снова работоспособно
	store.Set("key", "value")
	got, ok := store.Get("key")
	require.True(t, ok)
	require.Equal(t, "value", got)
}
