// Package dedupe tracks content digests of retained uploads so that
// byte-identical clips are written to the media store at most once.
package dedupe

import (
	"context"
	"sync"
)

// defaultMaxSize bounds the digest cache; oldest digests are evicted first.
const defaultMaxSize = 50_000

// Deduper records seen content digests.
type Deduper interface {
	// SeenAndRecord atomically checks whether digest was seen and records
	// it if not. Returns true if digest was already seen.
	SeenAndRecord(ctx context.Context, digest string) bool

	// Unrecord removes a digest, allowing the blob to be retained again.
	// Used when a recorded blob failed to reach the media store.
	Unrecord(ctx context.Context, digest string)

	// Size returns the number of digests currently tracked.
	Size() int64
}

// inMemoryDeduper implements Deduper with a map plus a FIFO eviction ring.
// When the cache is full the oldest digest is dropped; re-retaining an
// evicted blob costs one redundant write, nothing worse.
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	ring    []string
	next    int
	maxSize int
}

// NewInMemoryDeduper creates a bounded in-memory deduper.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		maxSize: defaultMaxSize,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[string]struct{}, d.maxSize)
	d.ring = make([]string, d.maxSize)
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, digest string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[digest]; ok {
		return true
	}

	// Evict the slot's previous occupant once the ring wraps.
	if old := d.ring[d.next]; old != "" {
		delete(d.seen, old)
	}
	d.ring[d.next] = digest
	d.next = (d.next + 1) % d.maxSize
	d.seen[digest] = struct{}{}
	return false
}

func (d *inMemoryDeduper) Unrecord(_ context.Context, digest string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.seen, digest)
}

func (d *inMemoryDeduper) Size() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return int64(len(d.seen))
}
