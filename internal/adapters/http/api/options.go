// Package api declares HTTP contracts and route registration helpers.
package api

// Option configures API handlers.
type Option func(*AnalyzeHandler)

// WithMaxUploadBytes caps the accepted request body size for POST /analyze.
func WithMaxUploadBytes(n int64) Option {
	return func(h *AnalyzeHandler) {
		if n > 0 {
			h.maxUploadBytes = n
		}
	}
}
