package domain

import "errors"

// ErrRecordCorrupted marks a persisted progress document that failed to
// decode. Structural gaps short of this (missing maps, stale level) are
// self-healed by the store instead of surfaced.
var ErrRecordCorrupted = errors.New("progress record failed to decode")
