// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Defaults come from New; Load layers an optional YAML file and env vars.
// - External errors are wrapped via this package's error helpers.
package config

import (
	"runtime"
)

// Default upload cap: phone clips are tens of MB; anything above this is
// rejected before analysis.
const defaultMaxUploadBytes = 200 << 20

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// SessionDir is the directory session records are persisted to.
	SessionDir string `koanf:"session_dir"`

	// MediaDir is the directory retained clips are written to.
	MediaDir string `koanf:"media_dir"`

	// RosterPath points at a YAML roster dataset. Empty selects the
	// embedded default roster.
	RosterPath string `koanf:"roster_path"`

	// TopN is how many similar players an analysis returns.
	TopN int `koanf:"top_n"`

	// MaxUploadBytes caps the size of the multipart request body.
	MaxUploadBytes int64 `koanf:"max_upload_bytes"`

	// MediaQueueSize bounds the in-memory media retention queue.
	MediaQueueSize int `koanf:"media_queue_size"`

	// MediaWorkerCount sets the number of media retention workers.
	MediaWorkerCount int `koanf:"media_worker_count"`

	// DedupeSize bounds the upload digest cache.
	DedupeSize int `koanf:"dedupe_size"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":9080",
		SessionDir:       "./data/sessions",
		MediaDir:         "./data/media",
		RosterPath:       "",
		TopN:             5,
		MaxUploadBytes:   defaultMaxUploadBytes,
		MediaQueueSize:   1024,
		MediaWorkerCount: runtime.NumCPU(),
		DedupeSize:       50_000,
	}
}
