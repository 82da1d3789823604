package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryQueue_DrainsInInsertionOrder(t *testing.T) {
	q := NewInMemoryQueue(8)
	for i := 0; i < 5; i++ {
		require.NoError(t, q.Enqueue(i))
	}
	assert.Equal(t, 5, q.Size())

	items := q.ReadAllMessages()
	require.Len(t, items, 5)
	for i, item := range items {
		assert.Equal(t, i, item)
	}
	assert.Zero(t, q.Size())
	assert.Empty(t, q.ReadAllMessages())
}

func TestInMemoryQueue_RejectsWhenFull(t *testing.T) {
	q := NewInMemoryQueue(2)
	require.NoError(t, q.Enqueue("a"))
	require.NoError(t, q.Enqueue("b"))
	assert.Error(t, q.Enqueue("c"))
	assert.Equal(t, 2, q.Size())

	// Draining frees the capacity again.
	q.ReadAllMessages()
	assert.NoError(t, q.Enqueue("c"))
}

func TestInMemoryQueue_ClearQueue(t *testing.T) {
	q := NewInMemoryQueue(8)
	require.NoError(t, q.Enqueue("a"))
	q.ClearQueue()
	assert.Zero(t, q.Size())
	assert.Empty(t, q.ReadAllMessages())
}

func TestNewInMemoryQueue_DefaultsSize(t *testing.T) {
	q := NewInMemoryQueue(0)
	for i := 0; i < DefaultBufferSize; i++ {
		require.NoError(t, q.Enqueue(i))
	}
	assert.Error(t, q.Enqueue("overflow"))
}
