// Package worker runs the media retention workers that drain the clip queue
// and write uploads to the media store.
package worker

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/pitchlab/rabona/internal/adapters/mq/queue"
	"github.com/pitchlab/rabona/pkg/logger"
	"github.com/pitchlab/rabona/pkg/metrics"
)

// Blob is what workers read off the queue.
type Blob = queue.Blob

// Sink is where retained clips end up.
type Sink interface {
	// Write persists one blob and returns the number of bytes written.
	Write(ctx context.Context, b Blob) (int64, error)
}

// Queue defines how workers receive blobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Blob
}

// Worker drains the queue until its context is cancelled or the queue closes.
type Worker struct {
	queue queue.Queue
	sink  Sink
	name  string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewWorker creates a retention worker with configuration options.
func NewWorker(q queue.Queue, sink Sink, opts ...Option) *Worker {
	w := &Worker{
		queue:    q,
		sink:     sink,
		name:     "retention",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = logger.Get().Named(w.name)
	}
	return w
}

// Run processes blobs until ctx is cancelled, Shutdown is called, or the
// queue closes.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)

	blobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case b, ok := <-blobs:
			if !ok {
				return
			}
			w.retain(ctx, b)
		}
	}
}

// Shutdown stops the worker, waiting for the in-flight blob to finish.
func (w *Worker) Shutdown(ctx context.Context) error {
	close(w.shutdown)
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("worker shutdown: %w", ctx.Err())
	}
}

func (w *Worker) retain(ctx context.Context, b Blob) {
	start := time.Now()
	n, err := w.sink.Write(ctx, b)
	latency := float64(time.Since(start).Milliseconds())
	metrics.RecordMediaWriteLatency(latency)

	if err != nil {
		metrics.RecordMediaWriteError()
		metrics.RecordErrorByComponent("media_worker", "write_failed")
		w.logger.Error(ctx, "clip retention failed",
			logger.String("digest", b.Digest),
			logger.String("session_id", b.SessionID),
			logger.Error(err),
		)
		return
	}

	metrics.RecordMediaWrite(n)
	w.logger.Debug(ctx, "clip retained",
		logger.String("digest", b.Digest),
		logger.Int64("bytes", n),
	)
}

// Pool manages a fixed set of retention workers.
type Pool struct {
	workers []*Worker
}

// NewPool creates workerCount workers over the same queue and sink.
func NewPool(workerCount int, q queue.Queue, sink Sink) *Pool {
	if workerCount < 1 {
		workerCount = 1
	}
	p := &Pool{workers: make([]*Worker, workerCount)}
	for i := range p.workers {
		p.workers[i] = NewWorker(q, sink, WithName("retention-"+strconv.Itoa(i)))
	}
	metrics.UpdateMediaWorkerCount(workerCount)
	return p
}

// Start launches all workers.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Stop shuts down every worker, bounded by ctx.
func (p *Pool) Stop(ctx context.Context) error {
	var firstErr error
	for _, w := range p.workers {
		if err := w.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Size returns the number of workers in the pool.
func (p *Pool) Size() int {
	return len(p.workers)
}
