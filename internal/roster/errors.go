package roster

import "errors"

// Sentinel kinds for roster loading errors.
var (
	ErrLoad           = errors.New("roster load failed")
	ErrInvalidDataset = errors.New("invalid roster dataset")
)
