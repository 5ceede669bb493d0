// Package biometrics defines the contract for measuring biomechanical
// metrics from an uploaded clip.
//
// The shipped implementation is a placeholder that draws values uniformly
// from the documented ranges; a real video analysis pipeline can be swapped
// in behind the same interface.
package biometrics

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/pitchlab/rabona/internal/domain/model"
)

// Documented metric ranges. Callers may rely on range membership only,
// never on specific values.
const (
	MinKneeFlex    = 30
	MaxKneeFlex    = 90
	MinBodyLean    = 5
	MaxBodyLean    = 30
	MinSprintTempo = 140
	MaxSprintTempo = 200
	MinTouches     = 10
	MaxTouches     = 35
)

// Provider measures biomechanical metrics for a clip.
type Provider interface {
	// Measure produces one metric set, honoring ctx for cancellation.
	Measure(ctx context.Context, video io.Reader) (model.Metrics, error)
}

// Option applies a configuration option to the RandomProvider.
type Option func(*RandomProvider)

// WithRand sets the random source, useful for reproducible tests.
func WithRand(rng *rand.Rand) Option {
	return func(p *RandomProvider) {
		if rng != nil {
			p.rng = rng
		}
	}
}

// RandomProvider implements Provider with uniform draws from the documented
// ranges. The clip content is read and discarded; it carries no signal here.
type RandomProvider struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomProvider creates a random provider with configuration options.
func NewRandomProvider(opts ...Option) *RandomProvider {
	p := &RandomProvider{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // placeholder metrics, not security material
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Measure draws each metric independently and uniformly from its range.
func (p *RandomProvider) Measure(ctx context.Context, video io.Reader) (model.Metrics, error) {
	if err := ctx.Err(); err != nil {
		return model.Metrics{}, fmt.Errorf("measure cancelled: %w", err)
	}
	if video != nil {
		// Drain the clip so multipart readers are left in a clean state.
		if _, err := io.Copy(io.Discard, video); err != nil {
			return model.Metrics{}, fmt.Errorf("read video: %w", err)
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return model.Metrics{
		KneeFlex:    p.intn(MinKneeFlex, MaxKneeFlex),
		BodyLean:    p.intn(MinBodyLean, MaxBodyLean),
		SprintTempo: p.intn(MinSprintTempo, MaxSprintTempo),
		Touches:     p.intn(MinTouches, MaxTouches),
	}, nil
}

// intn draws from [lo,hi] inclusive.
func (p *RandomProvider) intn(lo, hi int) int {
	return lo + p.rng.Intn(hi-lo+1)
}
