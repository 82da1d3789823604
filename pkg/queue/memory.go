package queue

import (
	"fmt"
	"sync"
)

const (
	// DefaultBufferSize represents the maximum number of buffered items
	DefaultBufferSize = 1024
)

// InMemoryQueue implements an in-memory queue.
type InMemoryQueue struct {
	items []interface{}
	max   int
	lock  sync.Mutex
}

// NewInMemoryQueue creates a new queue holding at most size items.
func NewInMemoryQueue(size int) *InMemoryQueue {
	if size <= 0 {
		size = DefaultBufferSize
	}
	return &InMemoryQueue{
		max: size,
	}
}

// Enqueue adds an item to the end of the queue. It never blocks: when the
// queue is full the item is rejected with an error.
func (q *InMemoryQueue) Enqueue(item interface{}) error {
	q.lock.Lock()
	defer q.lock.Unlock()
	if len(q.items) >= q.max {
		return fmt.Errorf("queue is full (%d items)", q.max)
	}
	q.items = append(q.items, item)
	return nil
}

// ReadAllMessages drains the queue and returns all pending items in
// insertion order.
func (q *InMemoryQueue) ReadAllMessages() []interface{} {
	q.lock.Lock()
	defer q.lock.Unlock()
	items := q.items
	q.items = nil
	return items
}

// Size returns the current size of the queue.
func (q *InMemoryQueue) Size() int {
	q.lock.Lock()
	defer q.lock.Unlock()
	return len(q.items)
}

// ClearQueue discards all pending items.
func (q *InMemoryQueue) ClearQueue() {
	q.lock.Lock()
	defer q.lock.Unlock()
	q.items = nil
}
