package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	target := filepath.Join(dir, "physics.json")
	require.NoError(t, os.WriteFile(target, []byte("{}"), 0o644))

	select {
	case got := <-w.Events:
		assert.Equal(t, target, got)
	case <-time.After(2 * time.Second):
		t.Fatal("no event for physics.json")
	}
}

func TestWatcher_BurstSettles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	target := filepath.Join(dir, "physics.json")
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(target, []byte(`{"gravity":`+string(rune('0'+i))+`}`), 0o644))
		time.Sleep(watchDebounce / 4)
	}
	lastWrite := time.Now()

	select {
	case got := <-w.Events:
		assert.Equal(t, target, got)
		assert.GreaterOrEqual(t, time.Since(lastWrite), watchDebounce/2)
	case <-time.After(2 * time.Second):
		t.Fatal("no event after the burst")
	}

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, `{"gravity":4}`, string(data))

	select {
	case got := <-w.Events:
		t.Fatalf("second event for %s", got)
	case <-time.After(3 * watchDebounce):
	}
}

func TestWatcher_Close(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())

	_, ok := <-w.Events
	assert.False(t, ok)
}

func TestNewWatcher_MissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
