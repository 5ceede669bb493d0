// Package service provides the core analysis service that implements the
// dependencies required by the HTTP API.
package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pitchlab/rabona/internal/adapters/media"
	mediaqueue "github.com/pitchlab/rabona/internal/adapters/mq/queue"
	workerpool "github.com/pitchlab/rabona/internal/adapters/mq/worker"
	"github.com/pitchlab/rabona/internal/adapters/repository"
	"github.com/pitchlab/rabona/internal/domain/advice"
	"github.com/pitchlab/rabona/internal/domain/biometrics"
	"github.com/pitchlab/rabona/internal/domain/dedupe"
	"github.com/pitchlab/rabona/internal/domain/feature"
	"github.com/pitchlab/rabona/internal/domain/model"
	"github.com/pitchlab/rabona/internal/domain/ranking"
	"github.com/pitchlab/rabona/internal/roster"
	"github.com/pitchlab/rabona/pkg/logger"
	"github.com/pitchlab/rabona/pkg/metrics"
)

// shutdownTimeout bounds how long Stop waits for the retention workers.
const shutdownTimeout = 10 * time.Second

// Service implements the API dependencies for the analysis system.
type Service struct {
	mu sync.RWMutex

	// Core components
	store      repository.Store
	provider   biometrics.Provider
	ranker     *ranking.Ranker
	deduper    dedupe.Deduper
	mediaQueue mediaqueue.Queue
	mediaSink  workerpool.Sink
	pool       *workerpool.Pool

	// Configuration
	sessionDir       string
	mediaDir         string
	rosterPath       string
	topN             int
	mediaQueueSize   int
	mediaWorkerCount int
	dedupeSize       int

	// State
	started    bool
	poolCancel context.CancelFunc

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSessionDir sets where session records are persisted.
func WithSessionDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.sessionDir = dir
		}
	}
}

// WithMediaDir sets where retained clips are written.
func WithMediaDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.mediaDir = dir
		}
	}
}

// WithRosterPath selects a roster dataset file; empty keeps the embedded one.
func WithRosterPath(path string) Option {
	return func(s *Service) {
		s.rosterPath = path
	}
}

// WithTopN sets how many similar players an analysis returns.
func WithTopN(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.topN = n
		}
	}
}

// WithMediaQueueSize bounds the retention queue.
func WithMediaQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.mediaQueueSize = size
		}
	}
}

// WithMediaWorkerCount sets the number of retention workers.
func WithMediaWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.mediaWorkerCount = count
		}
	}
}

// WithDedupeSize bounds the upload digest cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithStore injects a session store, replacing the default file store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithProvider injects a metrics provider, replacing the random one.
func WithProvider(p biometrics.Provider) Option {
	return func(s *Service) {
		if p != nil {
			s.provider = p
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		sessionDir:       "./data/sessions",
		mediaDir:         "./data/media",
		topN:             5,
		mediaQueueSize:   1024,
		mediaWorkerCount: runtime.NumCPU(),
		dedupeSize:       50_000,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the roster and wires the remaining components. The roster is
// validated here so a malformed dataset stops the process before it serves
// a single request.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting analysis service...")

	players, err := roster.Load(ctx, s.rosterPath, feature.PlayerVectorLen)
	if err != nil {
		return fmt.Errorf("load roster: %w", err)
	}
	s.ranker, err = ranking.New(players, feature.PlayerVectorLen, ranking.WithTopN(s.topN))
	if err != nil {
		return fmt.Errorf("build ranker: %w", err)
	}
	metrics.UpdateRosterSize(len(players))

	if s.store == nil {
		store, err := repository.NewFileStore(s.sessionDir)
		if err != nil {
			return fmt.Errorf("open session store: %w", err)
		}
		s.store = store
	}
	if s.provider == nil {
		s.provider = biometrics.NewRandomProvider()
	}

	sink, err := media.NewDirStore(s.mediaDir)
	if err != nil {
		return fmt.Errorf("open media store: %w", err)
	}
	s.mediaSink = sink
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	s.mediaQueue = mediaqueue.NewInMemoryQueue(mediaqueue.WithCapacity(s.mediaQueueSize))

	poolCtx, cancel := context.WithCancel(context.Background())
	s.poolCancel = cancel
	s.pool = workerpool.NewPool(s.mediaWorkerCount, s.mediaQueue, s.mediaSink)
	s.pool.Start(poolCtx)

	s.started = true
	s.logger.Info(ctx, "analysis service started",
		logger.Int("rosterSize", len(players)),
		logger.Int("topN", s.topN),
		logger.Int("mediaWorkers", s.mediaWorkerCount),
	)
	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.logger.Info(ctx, "stopping analysis service...")

	if q, ok := s.mediaQueue.(*mediaqueue.InMemoryQueue); ok {
		_ = q.Close()
	}
	if s.pool != nil {
		if err := s.pool.Stop(ctx); err != nil {
			s.logger.Warn(ctx, "retention pool stop", logger.Error(err))
		}
	}
	if s.poolCancel != nil {
		s.poolCancel()
	}

	s.started = false
	s.logger.Info(ctx, "analysis service stopped")
}

// Analyze runs the full pipeline for one request: measure placeholder
// biomechanics, encode and compose the player vector, rank against the
// roster, derive suggestions, and persist the session record. Either the
// whole session is persisted or an error is returned and nothing is written.
func (s *Service) Analyze(ctx context.Context, attrs model.PlayerAttributes, video io.Reader) (model.Session, []string, error) {
	start := time.Now()

	if video == nil {
		video = bytes.NewReader(nil)
	}
	data, err := io.ReadAll(video)
	if err != nil {
		metrics.RecordAnalysisError()
		return model.Session{}, nil, fmt.Errorf("read upload: %w", err)
	}

	m, err := s.provider.Measure(ctx, bytes.NewReader(data))
	if err != nil {
		metrics.RecordAnalysisError()
		return model.Session{}, nil, fmt.Errorf("measure biomechanics: %w", err)
	}

	vec := feature.Compose(feature.Encode(attrs), m)
	matches, err := s.ranker.Rank(ctx, vec)
	if err != nil {
		metrics.RecordAnalysisError()
		return model.Session{}, nil, fmt.Errorf("rank player: %w", err)
	}

	session := model.Session{
		ID:             uuid.NewString(),
		CreatedAt:      time.Now().UTC(),
		Attributes:     attrs,
		Metrics:        m,
		SimilarPlayers: matches,
	}
	if err := s.store.Create(ctx, session); err != nil {
		metrics.RecordAnalysisError()
		return model.Session{}, nil, fmt.Errorf("persist session: %w", err)
	}

	// Retention is best-effort and never fails the request.
	s.retainClip(ctx, session.ID, data)

	metrics.RecordAnalysis()
	metrics.RecordAnalysisDuration(float64(time.Since(start).Milliseconds()))

	return session, advice.Suggest(m), nil
}

// retainClip hands the uploaded bytes to the retention pipeline unless a
// byte-identical clip was already retained.
func (s *Service) retainClip(ctx context.Context, sessionID string, data []byte) {
	if len(data) == 0 {
		return
	}
	sum := sha256.Sum256(data)
	digest := hex.EncodeToString(sum[:])

	if s.deduper.SeenAndRecord(ctx, digest) {
		metrics.RecordMediaDuplicateSkip()
		s.logger.Debug(ctx, "duplicate clip, retention skipped",
			logger.String("digest", digest),
			logger.String("sessionID", sessionID),
		)
		return
	}

	blob := model.MediaBlob{Digest: digest, SessionID: sessionID, Data: data}
	if !s.mediaQueue.Enqueue(ctx, blob) {
		// Allow a later upload of the same clip to retry.
		s.deduper.Unrecord(ctx, digest)
		s.logger.Warn(ctx, "retention queue full, clip dropped",
			logger.String("digest", digest),
			logger.String("sessionID", sessionID),
		)
	}
}

// GetSession returns a persisted session record by id.
func (s *Service) GetSession(ctx context.Context, id string) (model.Session, error) {
	return s.store.Get(ctx, id)
}

// RosterSize returns the number of reference players loaded.
func (s *Service) RosterSize() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.ranker == nil {
		return 0
	}
	return s.ranker.RosterSize()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":          s.started,
		"topN":             s.topN,
		"mediaWorkerCount": s.mediaWorkerCount,
	}

	if s.started {
		stats["rosterSize"] = s.ranker.RosterSize()
		stats["sessionCount"] = s.store.Count(ctx)
		stats["mediaQueueLength"] = s.mediaQueue.Len(ctx)
		stats["dedupeSize"] = s.deduper.Size()
	}
	return stats
}
