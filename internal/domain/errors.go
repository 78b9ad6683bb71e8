package domain

import "errors"

// ErrInvalidConfiguration marks a caller contract violation: non-positive
// horizon or repetition counts, or structurally missing required fields.
// It always fires before any computation starts; the engines never
// partially run.
var ErrInvalidConfiguration = errors.New("invalid configuration")
