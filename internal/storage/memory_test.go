package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_LoadEmpty(t *testing.T) {
	_, err := NewMemoryStore().Load(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_SaveLoadClear(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	doc := sampleDocument()

	require.NoError(t, m.Save(ctx, doc))
	assert.Equal(t, 1, m.SaveCount())

	loaded, err := m.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, doc, loaded)

	require.NoError(t, m.Clear(ctx))
	_, err = m.Load(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_CorruptData(t *testing.T) {
	m := NewMemoryStore()
	m.SetRaw([]byte("{broken"))

	_, err := m.Load(context.Background())
	var corrupt *CorruptDataError
	assert.ErrorAs(t, err, &corrupt)
}
