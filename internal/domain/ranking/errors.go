package ranking

import "errors"

// Sentinel kinds for ranking errors.
var (
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
)
