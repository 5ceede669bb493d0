package probe

import "time"

// Config holds configuration for the analysis probe run.
type Config struct {
	BaseURL    string        // Base URL of the service
	NumClips   int           // Number of synthetic clips to submit
	Workers    int           // Number of concurrent workers
	Timeout    time.Duration // HTTP request timeout
	ClipBytes  int           // Size of each synthetic clip payload
	Duplicates int           // Extra resubmissions of the first clip to exercise dedupe
	LogFile    string        // Log file for probe output
	Verbose    bool          // Enable verbose logging
}

// Attributes mirrors the JSON attributes part of POST /analyze.
type Attributes struct {
	HeightCM     float64 `json:"height_cm"`
	DominantFoot string  `json:"dominant_foot"`
	Position     string  `json:"position"`
	Age          float64 `json:"age"`
	Pace         float64 `json:"pace"`
	Dribbling    float64 `json:"dribbling"`
	Passing      float64 `json:"passing"`
	Shooting     float64 `json:"shooting"`
}

// Metrics mirrors the biomechanical metrics block in responses.
type Metrics struct {
	KneeFlex    int `json:"knee_flex"`
	BodyLean    int `json:"body_lean"`
	SprintTempo int `json:"sprint_tempo"`
	Touches     int `json:"touches"`
}

// Match mirrors one similar-player entry in responses.
type Match struct {
	Name       string  `json:"name"`
	Position   string  `json:"position"`
	Club       string  `json:"club"`
	Similarity float64 `json:"similarity"`
}

// AnalyzeResponse mirrors the POST /analyze response body.
type AnalyzeResponse struct {
	SessionID      string   `json:"session_id"`
	Metrics        Metrics  `json:"metrics"`
	Suggestions    []string `json:"suggestions"`
	SimilarPlayers []Match  `json:"similar_players"`
}

// SessionResponse mirrors the GET /sessions/{id} response body.
type SessionResponse struct {
	ID             string     `json:"id"`
	CreatedAt      string     `json:"created_at"`
	Attributes     Attributes `json:"attrs"`
	Metrics        Metrics    `json:"metrics"`
	SimilarPlayers []Match    `json:"similar_players"`
}

// Clip is one synthetic upload: a fake video payload plus attributes.
type Clip struct {
	Attributes Attributes
	Video      []byte
}

// Stats holds probe statistics.
type Stats struct {
	ClipsGenerated    int
	ClipsSubmitted    int
	ClipsSuccessful   int
	ClipsFailed       int
	ResponsesInvalid  int
	SessionsVerified  int
	SessionMismatches int
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
}
