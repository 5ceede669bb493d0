// Package ranking scores a player vector against the roster and returns the
// closest matches by cosine similarity.
package ranking

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/pitchlab/rabona/internal/domain/model"
	"github.com/pitchlab/rabona/internal/roster"
)

// epsilon keeps the norm product away from zero when a vector is all-zero.
// It leaves the similarity marginally outside [-1,1] in the worst case.
const epsilon = 1e-9

// defaultTopN matches the API contract of five similar players.
const defaultTopN = 5

// Option applies a configuration option to the Ranker.
type Option func(*Ranker)

// WithTopN sets how many matches Rank returns.
func WithTopN(n int) Option {
	return func(r *Ranker) {
		if n > 0 {
			r.topN = n
		}
	}
}

// Ranker compares player vectors against an immutable roster. The roster is
// validated once at construction; ranking itself cannot fail.
type Ranker struct {
	entries []roster.Player
	dim     int
	topN    int
}

// New builds a Ranker over the given roster. Every roster vector must have
// length dim; a mismatch is a configuration error, reported up front rather
// than surfacing as a wrong similarity later.
func New(entries []roster.Player, dim int, opts ...Option) (*Ranker, error) {
	for _, p := range entries {
		if len(p.Vector) != dim {
			return nil, fmt.Errorf("%w: %q has %d dimensions, want %d",
				ErrDimensionMismatch, p.Name, len(p.Vector), dim)
		}
	}
	r := &Ranker{
		entries: entries,
		dim:     dim,
		topN:    defaultTopN,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// RosterSize returns the number of roster entries under comparison.
func (r *Ranker) RosterSize() int {
	return len(r.entries)
}

// Rank scores vec against every roster entry and returns the top matches in
// descending similarity. Ties keep roster order (stable sort). The result
// length is min(topN, roster size).
func (r *Ranker) Rank(ctx context.Context, vec []float64) ([]model.Match, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("rank cancelled: %w", err)
	}
	if len(vec) != r.dim {
		return nil, fmt.Errorf("%w: player vector has %d dimensions, want %d",
			ErrDimensionMismatch, len(vec), r.dim)
	}

	matches := make([]model.Match, len(r.entries))
	for i, p := range r.entries {
		matches[i] = model.Match{
			Name:       p.Name,
			Position:   p.Position,
			Club:       p.Club,
			Similarity: Cosine(vec, p.Vector),
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	if len(matches) > r.topN {
		matches = matches[:r.topN]
	}
	return matches, nil
}

// Cosine returns the cosine similarity of two equal-length vectors: the dot
// product over the product of Euclidean norms, with epsilon in the
// denominator so all-zero vectors score 0 instead of dividing by zero.
func Cosine(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	return dot / (math.Sqrt(normA)*math.Sqrt(normB) + epsilon)
}
