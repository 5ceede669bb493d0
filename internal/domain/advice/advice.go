// Package advice maps biomechanical metrics to coaching suggestions.
package advice

import (
	"github.com/pitchlab/rabona/internal/domain/model"
)

// Rule thresholds. Each rule fires independently when the metric falls
// below its threshold, and the output preserves rule order.
const (
	KneeFlexThreshold    = 50
	BodyLeanThreshold    = 10
	SprintTempoThreshold = 160
	TouchesThreshold     = 15
)

// Suggestion texts.
const (
	kneeFlexAdvice    = "Increase knee flexion during your strides for more explosive acceleration."
	bodyLeanAdvice    = "Lean your torso further forward when sprinting to improve drive."
	sprintTempoAdvice = "Work on sprint cadence drills to raise your step tempo."
	touchesAdvice     = "Take more touches on the ball to sharpen close control."
	fallbackAdvice    = "Good mechanics overall - keep up the consistent technique."
)

// Suggest evaluates every threshold rule against m. Multiple rules may fire
// at once; when none fire, a single fallback suggestion is returned, so the
// result is never empty.
func Suggest(m model.Metrics) []string {
	var out []string
	if m.KneeFlex < KneeFlexThreshold {
		out = append(out, kneeFlexAdvice)
	}
	if m.BodyLean < BodyLeanThreshold {
		out = append(out, bodyLeanAdvice)
	}
	if m.SprintTempo < SprintTempoThreshold {
		out = append(out, sprintTempoAdvice)
	}
	if m.Touches < TouchesThreshold {
		out = append(out, touchesAdvice)
	}
	if len(out) == 0 {
		out = append(out, fallbackAdvice)
	}
	return out
}
