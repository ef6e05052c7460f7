package scope

import "errors"

// ErrAllocFailed mirrors the ABI's ALLOC_FAILED result code. Go's allocator
// does not return nil on out-of-memory, so WithLabels returns this only
// when LabelSet.Set rejects a label during application, which happens for
// a nil key. Bound violations return ErrInvalidArgument instead.
var ErrAllocFailed = errors.New("scope: allocation failed")

// ErrChildAlreadyExisted is a non-fatal diagnostic: Propagate succeeded,
// but the child id already had an entry, which was released to make room
// for the parent's.
var ErrChildAlreadyExisted = errors.New("scope: child already existed")

// ErrInvalidArgument is returned when a WithLabels call violates the
// foreign-boundary bounds: at most MaxLabels pairs, keys at most
// MaxKeyLen bytes, values at most MaxValueLen bytes.
var ErrInvalidArgument = errors.New("scope: invalid argument")

// Limits enforced at the WithLabels boundary. These bound per-call stack
// usage on the foreign-language side of the original ABI; Go has no
// corresponding stack-usage concern, but the limits are part of the
// contract callers rely on, not an implementation detail, so they are
// enforced here too.
const (
	MaxLabels   = 10
	MaxKeyLen   = 16
	MaxValueLen = 48
)
