package probe

import (
	"context"
	"fmt"
	"log"

	"github.com/pitchlab/rabona/internal/domain/biometrics"
)

// verifyAnalyzeResponse checks one analyze response against the API
// contract: a session id, metrics inside the measurable ranges, at least
// one suggestion and a similarity-ordered match list.
func verifyAnalyzeResponse(resp AnalyzeResponse) error {
	if resp.SessionID == "" {
		return fmt.Errorf("empty session_id")
	}
	if err := verifyMetrics(resp.Metrics); err != nil {
		return err
	}
	if len(resp.Suggestions) == 0 {
		return fmt.Errorf("empty suggestions list")
	}
	if len(resp.SimilarPlayers) == 0 {
		return fmt.Errorf("empty similar_players list")
	}
	for i, m := range resp.SimilarPlayers {
		if m.Name == "" {
			return fmt.Errorf("similar player %d has no name", i)
		}
		if m.Similarity < -1.0000001 || m.Similarity > 1.0000001 {
			return fmt.Errorf("similar player %d has similarity %.4f outside [-1, 1]", i, m.Similarity)
		}
		if i > 0 && m.Similarity > resp.SimilarPlayers[i-1].Similarity {
			return fmt.Errorf("similar players not sorted: entry %d ranks above entry %d", i, i-1)
		}
	}
	return nil
}

// verifyMetrics checks each biomechanical metric against its range.
func verifyMetrics(m Metrics) error {
	switch {
	case m.KneeFlex < biometrics.MinKneeFlex || m.KneeFlex > biometrics.MaxKneeFlex:
		return fmt.Errorf("knee_flex %d outside [%d, %d]", m.KneeFlex, biometrics.MinKneeFlex, biometrics.MaxKneeFlex)
	case m.BodyLean < biometrics.MinBodyLean || m.BodyLean > biometrics.MaxBodyLean:
		return fmt.Errorf("body_lean %d outside [%d, %d]", m.BodyLean, biometrics.MinBodyLean, biometrics.MaxBodyLean)
	case m.SprintTempo < biometrics.MinSprintTempo || m.SprintTempo > biometrics.MaxSprintTempo:
		return fmt.Errorf("sprint_tempo %d outside [%d, %d]", m.SprintTempo, biometrics.MinSprintTempo, biometrics.MaxSprintTempo)
	case m.Touches < biometrics.MinTouches || m.Touches > biometrics.MaxTouches:
		return fmt.Errorf("touches %d outside [%d, %d]", m.Touches, biometrics.MinTouches, biometrics.MaxTouches)
	}
	return nil
}

// verifySessions fetches a sample of stored sessions and checks that
// persisted records match what /analyze returned.
func verifySessions(ctx context.Context, config *Config, responses []AnalyzeResponse, stats *Stats) error {
	if len(responses) == 0 {
		return fmt.Errorf("no responses to verify")
	}
	log.Printf("verifying %d stored sessions...", len(responses))

	client := newHTTPClient(config.Timeout)
	for _, resp := range responses {
		session, err := fetchSession(ctx, client, config.BaseURL, resp.SessionID)
		if err != nil {
			stats.SessionMismatches++
			log.Printf("session %s fetch failed: %v", resp.SessionID, err)
			continue
		}
		if err := compareSession(resp, session); err != nil {
			stats.SessionMismatches++
			log.Printf("session %s mismatch: %v", resp.SessionID, err)
			continue
		}
		stats.SessionsVerified++
	}

	if stats.SessionMismatches > 0 {
		return fmt.Errorf("%d of %d sessions failed verification", stats.SessionMismatches, len(responses))
	}
	log.Printf("all %d sessions verified", stats.SessionsVerified)
	return nil
}

// compareSession checks a stored record against the original response.
func compareSession(resp AnalyzeResponse, session SessionResponse) error {
	if session.ID != resp.SessionID {
		return fmt.Errorf("stored id %s does not match %s", session.ID, resp.SessionID)
	}
	if session.Metrics != resp.Metrics {
		return fmt.Errorf("stored metrics %+v differ from response metrics %+v", session.Metrics, resp.Metrics)
	}
	if len(session.SimilarPlayers) != len(resp.SimilarPlayers) {
		return fmt.Errorf("stored %d similar players, response had %d", len(session.SimilarPlayers), len(resp.SimilarPlayers))
	}
	for i := range session.SimilarPlayers {
		if session.SimilarPlayers[i] != resp.SimilarPlayers[i] {
			return fmt.Errorf("similar player %d differs between store and response", i)
		}
	}
	if session.CreatedAt == "" {
		return fmt.Errorf("stored session has no created_at timestamp")
	}
	return nil
}
