package probe

import (
	"context"
	"crypto/rand"
	"math/big"

	"github.com/pitchlab/rabona/pkg/logger"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
	archetypeDivisor   = 5
)

// Attribute generation ranges.
const (
	minHeightCM   = 150.0
	heightRangeCM = 50.0
	minAge        = 12.0
	ageRange      = 20.0
)

// Archetype cases controlling the skill distribution of a synthetic player.
const (
	caseBalanced = 0
	caseSpeedy   = 1
	casePlaymake = 2
	caseFinisher = 3
	caseRaw      = 4
)

var probeFeet = []string{"right", "left", "two-footed"}

var probePositions = []string{"winger", "striker", "midfielder", "defender", "goalkeeper"}

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// getRandomIndex returns a random int in [0, n).
func getRandomIndex(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// generateClips creates the requested number of synthetic clips. Video
// payloads are random bytes so the dedupe cache treats each upload as new.
func generateClips(ctx context.Context, config *Config, stats *Stats) ([]Clip, error) {
	logger.Get().Info(ctx, "generating synthetic clips", logger.Int("numClips", config.NumClips))

	clips := make([]Clip, config.NumClips)
	for i := range clips {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		video := make([]byte, config.ClipBytes)
		if _, err := rand.Read(video); err != nil {
			return nil, err
		}
		clips[i] = Clip{
			Attributes: generateAttributes(),
			Video:      video,
		}
	}

	stats.ClipsGenerated = len(clips)
	logger.Get().Info(ctx, "generated clips successfully", logger.Int("count", len(clips)))
	return clips, nil
}

// generateAttributes builds one randomized player attribute set using a
// handful of archetypes so the similarity search sees varied inputs.
func generateAttributes() Attributes {
	attrs := Attributes{
		HeightCM:     minHeightCM + getRandomFloat()*heightRangeCM,
		DominantFoot: probeFeet[getRandomIndex(len(probeFeet))],
		Position:     probePositions[getRandomIndex(len(probePositions))],
		Age:          minAge + getRandomFloat()*ageRange,
	}

	switch getRandomIndex(archetypeDivisor) {
	case caseBalanced:
		attrs.Pace = 0.5 + getRandomFloat()*0.3
		attrs.Dribbling = 0.5 + getRandomFloat()*0.3
		attrs.Passing = 0.5 + getRandomFloat()*0.3
		attrs.Shooting = 0.5 + getRandomFloat()*0.3
	case caseSpeedy:
		attrs.Pace = 0.8 + getRandomFloat()*0.2
		attrs.Dribbling = 0.6 + getRandomFloat()*0.3
		attrs.Passing = 0.3 + getRandomFloat()*0.3
		attrs.Shooting = 0.3 + getRandomFloat()*0.3
	case casePlaymake:
		attrs.Pace = 0.4 + getRandomFloat()*0.3
		attrs.Dribbling = 0.6 + getRandomFloat()*0.3
		attrs.Passing = 0.8 + getRandomFloat()*0.2
		attrs.Shooting = 0.4 + getRandomFloat()*0.3
	case caseFinisher:
		attrs.Pace = 0.6 + getRandomFloat()*0.3
		attrs.Dribbling = 0.4 + getRandomFloat()*0.3
		attrs.Passing = 0.4 + getRandomFloat()*0.3
		attrs.Shooting = 0.8 + getRandomFloat()*0.2
	default:
		attrs.Pace = getRandomFloat()
		attrs.Dribbling = getRandomFloat()
		attrs.Passing = getRandomFloat()
		attrs.Shooting = getRandomFloat()
	}
	return attrs
}
