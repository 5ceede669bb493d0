// Package feature builds the numeric vectors used for similarity ranking.
//
// Two steps: Encode turns player attributes into a fixed-length feature
// vector, Compose appends the normalized biomechanical metrics. The layout
// is frozen; roster vectors are stored in exactly the same order.
package feature

import (
	"github.com/pitchlab/rabona/internal/domain/model"
)

// Vector layout sizes.
const (
	// AttributeLen is the length of the encoded attribute vector:
	// height, age, four skills, three foot flags, five position flags,
	// and three composite skill indices.
	AttributeLen = 17

	// PlayerVectorLen is AttributeLen plus the four normalized metrics.
	PlayerVectorLen = 21
)

// Attribute normalization bounds. Values outside saturate at the boundary.
const (
	minHeightCM = 150.0
	maxHeightCM = 200.0
	minAge      = 12.0
	maxAge      = 32.0
)

// Metric scale divisors. Each metric is divided by its divisor and capped
// at 1 so the metric tail of the player vector stays in [0,1].
const (
	KneeFlexScale    = 120.0
	BodyLeanScale    = 45.0
	SprintTempoScale = 220.0
	TouchesScale     = 60.0
)

// feet and positions fix the one-hot encoding order. Unrecognized values
// encode as all-zero flags rather than an error.
var feet = []string{"right", "left", "two-footed"}

var positions = []string{"winger", "striker", "midfielder", "defender", "goalkeeper"}

// Positions returns the recognized position values in encoding order.
func Positions() []string {
	out := make([]string, len(positions))
	copy(out, positions)
	return out
}

// Encode maps attributes to the 17-element attribute vector.
func Encode(attrs model.PlayerAttributes) []float64 {
	v := make([]float64, 0, AttributeLen)
	v = append(v,
		normalize(attrs.HeightCM, minHeightCM, maxHeightCM),
		normalize(attrs.Age, minAge, maxAge),
		attrs.Pace,
		attrs.Dribbling,
		attrs.Passing,
		attrs.Shooting,
	)
	v = append(v, oneHot(attrs.DominantFoot, feet)...)
	v = append(v, oneHot(attrs.Position, positions)...)
	// Composite indices stay in [0,1] as long as the skill inputs do.
	attack := (attrs.Pace + attrs.Shooting) / 2
	control := (attrs.Dribbling + attrs.Passing) / 2
	overall := (attrs.Pace + attrs.Dribbling + attrs.Passing + attrs.Shooting) / 4
	v = append(v, attack, control, overall)
	return v
}

// Compose appends the normalized metrics to an attribute vector, producing
// the 21-element player vector used as the similarity comparison key.
func Compose(attrVec []float64, m model.Metrics) []float64 {
	v := make([]float64, 0, PlayerVectorLen)
	v = append(v, attrVec...)
	v = append(v,
		capAtOne(float64(m.KneeFlex)/KneeFlexScale),
		capAtOne(float64(m.BodyLean)/BodyLeanScale),
		capAtOne(float64(m.SprintTempo)/SprintTempoScale),
		capAtOne(float64(m.Touches)/TouchesScale),
	)
	return v
}

// normalize maps v from [lo,hi] to [0,1], clamping at both ends.
func normalize(v, lo, hi float64) float64 {
	switch {
	case v <= lo:
		return 0
	case v >= hi:
		return 1
	default:
		return (v - lo) / (hi - lo)
	}
}

func capAtOne(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
}

func oneHot(value string, domain []string) []float64 {
	flags := make([]float64, len(domain))
	for i, d := range domain {
		if value == d {
			flags[i] = 1
			break
		}
	}
	return flags
}
