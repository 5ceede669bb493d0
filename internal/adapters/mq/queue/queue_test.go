package queue

import (
	"context"
	"fmt"
	"testing"
)

func blob(i int) Blob {
	return Blob{Digest: fmt.Sprintf("digest-%d", i), Data: []byte("clip")}
}

func TestEnqueueDequeue(t *testing.T) {
	ctx := context.Background()
	q := NewInMemoryQueue(WithCapacity(4))

	if !q.Enqueue(ctx, blob(1)) {
		t.Fatal("enqueue should succeed")
	}
	if q.Len(ctx) != 1 {
		t.Errorf("expected length 1, got %d", q.Len(ctx))
	}

	got := <-q.Dequeue(ctx)
	if got.Digest != "digest-1" {
		t.Errorf("expected digest-1, got %s", got.Digest)
	}
}

func TestBackpressure(t *testing.T) {
	ctx := context.Background()
	q := NewInMemoryQueue(WithCapacity(2))

	if !q.Enqueue(ctx, blob(1)) || !q.Enqueue(ctx, blob(2)) {
		t.Fatal("enqueues within capacity should succeed")
	}
	if q.Enqueue(ctx, blob(3)) {
		t.Error("enqueue beyond capacity should report backpressure")
	}
}

func TestClose(t *testing.T) {
	ctx := context.Background()
	q := NewInMemoryQueue(WithCapacity(2))

	q.Enqueue(ctx, blob(1))
	if err := q.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if err := q.Close(); err != nil {
		t.Fatalf("double close should be a no-op: %v", err)
	}
	if !q.IsClosed() {
		t.Error("queue should report closed")
	}
	if q.Enqueue(ctx, blob(2)) {
		t.Error("enqueue after close should fail")
	}

	// The dequeue channel drains the remaining blob, then closes.
	if got := <-q.Dequeue(ctx); got.Digest != "digest-1" {
		t.Errorf("expected digest-1, got %s", got.Digest)
	}
	if _, ok := <-q.Dequeue(ctx); ok {
		t.Error("channel should be closed after draining")
	}
}
