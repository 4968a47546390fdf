package collections

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreAddAssignsIDAndTimestamp(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	id, err := store.Add(ctx, "u", "notes", map[string]interface{}{"content": "hello"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	w, err := store.Watch(ctx, "u", "notes")
	require.NoError(t, err)
	defer w.Stop()

	docs, err := w.Next()
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, id, docs[0].ID)
	assert.False(t, docs[0].CreatedAt.IsZero())
}

func TestMemoryStoreAddDoesNotAliasCallerFields(t *testing.T) {
	store := NewMemoryStore()
	fields := map[string]interface{}{"content": "hello"}

	_, err := store.Add(context.Background(), "u", "notes", fields)
	require.NoError(t, err)

	// The store must not have written its timestamp into the
	// caller's map.
	_, tainted := fields[createdAtField]
	assert.False(t, tainted)
}

func TestMemoryStoreDeleteUnknownIDIsNoOp(t *testing.T) {
	store := NewMemoryStore()
	err := store.Delete(context.Background(), "u", "notes", "no-such-id")
	assert.NoError(t, err)
}

func TestMemoryStoreFailAffectsAllOperations(t *testing.T) {
	store := NewMemoryStore()
	store.Fail(ErrTransport)

	_, err := store.Add(context.Background(), "u", "notes", map[string]interface{}{"content": "x"})
	assert.ErrorIs(t, err, ErrTransport)

	err = store.Delete(context.Background(), "u", "notes", "id")
	assert.ErrorIs(t, err, ErrTransport)

	_, err = store.Watch(context.Background(), "u", "notes")
	assert.ErrorIs(t, err, ErrTransport)
}
