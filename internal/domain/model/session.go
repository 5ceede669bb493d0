// Package model contains domain models passed between layers.
package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// DefaultSkillScore is assumed for any skill the client leaves out.
const DefaultSkillScore = 0.6

// PlayerAttributes describes the player under analysis. Fields mirror the
// JSON schema of the attributes part of POST /analyze.
type PlayerAttributes struct {
	HeightCM     float64 `json:"height_cm"`
	DominantFoot string  `json:"dominant_foot"` // "right", "left" or "two-footed"
	Position     string  `json:"position"`      // winger, striker, midfielder, defender, goalkeeper
	Age          float64 `json:"age"`
	Pace         float64 `json:"pace"`
	Dribbling    float64 `json:"dribbling"`
	Passing      float64 `json:"passing"`
	Shooting     float64 `json:"shooting"`
}

// UnmarshalJSON fills absent skill scores with DefaultSkillScore. Scores the
// client does send pass through unchanged; range checks are the caller's
// concern.
func (a *PlayerAttributes) UnmarshalJSON(data []byte) error {
	type wire struct {
		HeightCM     float64  `json:"height_cm"`
		DominantFoot string   `json:"dominant_foot"`
		Position     string   `json:"position"`
		Age          float64  `json:"age"`
		Pace         *float64 `json:"pace"`
		Dribbling    *float64 `json:"dribbling"`
		Passing      *float64 `json:"passing"`
		Shooting     *float64 `json:"shooting"`
	}
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode player attributes: %w", err)
	}
	a.HeightCM = w.HeightCM
	a.DominantFoot = w.DominantFoot
	a.Position = w.Position
	a.Age = w.Age
	a.Pace = skillOrDefault(w.Pace)
	a.Dribbling = skillOrDefault(w.Dribbling)
	a.Passing = skillOrDefault(w.Passing)
	a.Shooting = skillOrDefault(w.Shooting)
	return nil
}

func skillOrDefault(v *float64) float64 {
	if v == nil {
		return DefaultSkillScore
	}
	return *v
}

// Metrics is the biomechanical measurement set for one analyzed clip.
// Callers may rely on the field shape and documented ranges only; the
// values themselves come from a pluggable provider.
type Metrics struct {
	KneeFlex    int `json:"knee_flex"`    // degrees
	BodyLean    int `json:"body_lean"`    // degrees
	SprintTempo int `json:"sprint_tempo"` // steps/min
	Touches     int `json:"touches"`
}

// Match is one roster player scored against the analyzed player.
type Match struct {
	Name       string  `json:"name"`
	Position   string  `json:"position"`
	Club       string  `json:"club"`
	Similarity float64 `json:"similarity"`
}

// Session is the immutable record of a single analyze request. It is written
// once when the analysis completes and never mutated afterwards.
type Session struct {
	ID             string           `json:"id"`
	CreatedAt      time.Time        `json:"created_at"`
	Attributes     PlayerAttributes `json:"attrs"`
	Metrics        Metrics          `json:"metrics"`
	SimilarPlayers []Match          `json:"similar_players"`
}
