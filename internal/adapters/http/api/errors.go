package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrBadRequest        = errors.New("bad request")
	ErrMissingAttributes = errors.New("missing attributes field")
	ErrMissingVideo      = errors.New("missing video file")
	ErrAnalyze           = errors.New("analysis failed")
)
