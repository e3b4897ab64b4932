package errors

import "errors"

var ErrOutOfRange = errors.New("index out of range")
var ErrInvalidCount = errors.New("count cannot be negative")
var ErrAllocatorMismatch = errors.New("allocators do not compare equal")
var ErrStatsAlreadyInitialized = errors.New("stats already initialized")
var ErrArenaExhausted = errors.New("arena block limit reached")
var ErrInvariant = errors.New("deque invariant violated")
var ErrDiverged = errors.New("deque diverged from reference")
