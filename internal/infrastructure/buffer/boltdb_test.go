package buffer

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T, maxSize int) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "buffer.db"), "", maxSize)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_EnqueueKeepsWriteOrder(t *testing.T) {
	store := openStore(t, 0)
	base := time.Date(2024, time.June, 1, 8, 0, 0, 0, time.UTC)

	for i, op := range []string{OperationCreate, OperationUpdate, OperationDelete} {
		require.NoError(t, store.Enqueue(Item{
			EntityID:  "task-1",
			Entity:    EntityTask,
			Operation: op,
			Data:      json.RawMessage(`{"id":"task-1"}`),
			Timestamp: base.Add(time.Duration(i) * time.Second),
		}))
	}

	items, err := store.GetBatch(10)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, OperationCreate, items[0].Operation)
	assert.Equal(t, OperationUpdate, items[1].Operation)
	assert.Equal(t, OperationDelete, items[2].Operation)
	assert.Equal(t, defaultPriority, items[0].Priority)
	assert.NotEmpty(t, items[0].ID)

	size, err := store.Size()
	require.NoError(t, err)
	assert.Equal(t, 3, size, "GetBatch does not consume")
}

func TestStore_RemoveAndRequeue(t *testing.T) {
	store := openStore(t, 0)
	require.NoError(t, store.Enqueue(Item{ID: "a", Entity: EntityNote, Operation: OperationCreate}))
	require.NoError(t, store.Enqueue(Item{ID: "b", Entity: EntityNote, Operation: OperationCreate}))

	items, err := store.GetBatch(1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	first := items[0]

	first.Retries++
	require.NoError(t, store.Requeue(first))

	items, err = store.GetBatch(10)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, first.ID, items[0].ID, "requeued item keeps its turn")
	assert.Equal(t, 1, items[0].Retries)
	assert.Equal(t, first.Timestamp.UnixNano(), items[0].Timestamp.UnixNano())

	require.NoError(t, store.Remove(Item{ID: items[0].ID}))
	size, err := store.Size()
	require.NoError(t, err)
	assert.Equal(t, 1, size)
}

func TestStore_HasPending(t *testing.T) {
	store := openStore(t, 0)
	require.NoError(t, store.Enqueue(Item{EntityID: "task-1", Entity: EntityTask, Operation: OperationCreate}))

	pending, err := store.HasPending(EntityTask, "task-1")
	require.NoError(t, err)
	assert.True(t, pending)

	pending, err = store.HasPending(EntityNote, "task-1")
	require.NoError(t, err)
	assert.False(t, pending, "entity kind is part of the match")

	pending, err = store.HasPending(EntityTask, "")
	require.NoError(t, err)
	assert.False(t, pending)
}

func TestStore_MaxSize(t *testing.T) {
	store := openStore(t, 2)
	require.NoError(t, store.Enqueue(Item{Entity: EntitySleep, Operation: OperationCreate}))
	require.NoError(t, store.Enqueue(Item{Entity: EntitySleep, Operation: OperationCreate}))
	assert.ErrorIs(t, store.Enqueue(Item{Entity: EntitySleep, Operation: OperationCreate}), ErrFull)
}

func TestStore_Cleanup(t *testing.T) {
	store := openStore(t, 0)
	now := time.Now()
	require.NoError(t, store.Enqueue(Item{Entity: EntityTask, Timestamp: now.Add(-48 * time.Hour)}))
	require.NoError(t, store.Enqueue(Item{Entity: EntityTask, Timestamp: now}))

	removed, err := store.Cleanup(now.Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	size, err := store.Size()
	require.NoError(t, err)
	assert.Equal(t, 1, size)
}

func TestStore_NilIsClosed(t *testing.T) {
	var store *Store
	_, err := store.Size()
	assert.Error(t, err)
	assert.NoError(t, store.Close())
}
