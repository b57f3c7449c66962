package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Path(t *testing.T) {
	f := NewFileStore("/data", nil)
	assert.Equal(t, filepath.Join("/data", "devresume_data.json"), f.Path())
}

func TestFileStore_LoadMissing(t *testing.T) {
	f := NewFileStore(t.TempDir(), nil)
	_, err := f.Load(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	f := NewFileStore(filepath.Join(t.TempDir(), "nested"), nil)
	doc := sampleDocument()

	require.NoError(t, f.Save(ctx, doc))
	loaded, err := f.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, doc, loaded)
}

func TestFileStore_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	f := NewFileStore(dir, nil)
	require.NoError(t, f.Save(context.Background(), sampleDocument()))
	require.NoError(t, f.Save(context.Background(), sampleDocument()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "devresume_data.json", entries[0].Name())
}

func TestFileStore_Clear(t *testing.T) {
	ctx := context.Background()
	f := NewFileStore(t.TempDir(), nil)
	require.NoError(t, f.Save(ctx, sampleDocument()))

	require.NoError(t, f.Clear(ctx))
	require.NoError(t, f.Clear(ctx))
	_, err := f.Load(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	f := NewFileStore(dir, nil)
	require.NoError(t, os.WriteFile(f.Path(), []byte("not json"), 0o644))

	_, err := f.Load(context.Background())
	var corrupt *CorruptDataError
	assert.ErrorAs(t, err, &corrupt)
}

func TestFileStore_Ping(t *testing.T) {
	dir := t.TempDir()
	f := NewFileStore(dir, nil)
	require.NoError(t, f.Ping(context.Background()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFileStore_WatchExternalChange(t *testing.T) {
	dir := t.TempDir()
	f := NewFileStore(dir, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *types.Document, 4)
	done := make(chan error, 1)
	go func() {
		done <- f.Watch(ctx, func(doc *types.Document) { changes <- doc })
	}()
	// Give the watcher time to register the directory
	time.Sleep(100 * time.Millisecond)

	// Own writes are not reported
	require.NoError(t, f.Save(ctx, sampleDocument()))

	external := types.NewEmptyDocument()
	external.Personal.FullName = "Edited Elsewhere"
	data, err := types.MarshalDocument(external)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(f.Path(), data, 0o644))

	select {
	case doc := <-changes:
		assert.Equal(t, "Edited Elsewhere", doc.Personal.FullName)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for external change")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("watch did not stop")
	}
}
