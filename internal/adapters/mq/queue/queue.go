// Package queue defines the contract for handing uploaded clips to the
// retention workers.
//
// Retention is best-effort: the analyze path never blocks on it, so the
// queue exposes a non-blocking enqueue that reports backpressure instead of
// waiting.
package queue

import (
	"context"
	"sync"

	"github.com/pitchlab/rabona/internal/domain/model"
	"github.com/pitchlab/rabona/pkg/metrics"
)

// defaultCapacity bounds the in-memory retention queue.
const defaultCapacity = 1024

// Blob is the payload type flowing through the queue.
type Blob = model.MediaBlob

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds a blob to the queue.
	// Returns false if the queue is full or closed.
	Enqueue(ctx context.Context, b Blob) bool

	// Dequeue returns a channel that receives blobs as they become
	// available. The channel is closed when the queue is closed.
	Dequeue(ctx context.Context) <-chan Blob

	// Len returns the current number of queued blobs.
	Len(ctx context.Context) int

	// Close stops the queue. After closing, no new blobs can be enqueued
	// and the dequeue channel drains then closes.
	Close() error
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	blobs    chan Blob
	capacity int
	mu       sync.RWMutex
	closed   bool
}

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{
		capacity: defaultCapacity,
	}
	for _, opt := range opts {
		opt(q)
	}
	q.blobs = make(chan Blob, q.capacity)

	metrics.UpdateMediaQueueCapacity(q.capacity)
	metrics.UpdateMediaQueueSize(0)
	return q
}

// Enqueue adds a blob to the queue without blocking.
func (q *InMemoryQueue) Enqueue(ctx context.Context, b Blob) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordMediaEnqueueError()
		metrics.RecordErrorByComponent("media_queue", "closed")
		return false
	}

	select {
	case q.blobs <- b:
		metrics.RecordMediaEnqueue()
		metrics.UpdateMediaQueueSize(len(q.blobs))
		return true
	case <-ctx.Done():
		metrics.RecordMediaEnqueueError()
		metrics.RecordErrorByComponent("media_queue", "context_cancelled")
		return false
	default:
		metrics.RecordMediaEnqueueError()
		metrics.RecordErrorByComponent("media_queue", "queue_full")
		return false
	}
}

// Dequeue returns the receive side of the queue.
func (q *InMemoryQueue) Dequeue(_ context.Context) <-chan Blob {
	return q.blobs
}

// Len returns the current number of queued blobs.
func (q *InMemoryQueue) Len(_ context.Context) int {
	size := len(q.blobs)
	metrics.UpdateMediaQueueSize(size)
	return size
}

// Close stops the queue.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	close(q.blobs)
	q.closed = true
	return nil
}

// IsClosed returns true if the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
