package refcount

import (
	"sync/atomic"

	"github.com/kolkov/customlabels/internal/labelstore/labelset"
)

// Set pairs a LabelSet with the number of AsyncMap entries pointing at it.
// A Set is owned by a single goroutine's AsyncMap; refs is only ever
// touched by that goroutine, so a plain atomic.Uint64 (rather than a mutex)
// is enough to make it safe to read from tests and diagnostics concurrently
// without requiring every reader to be the owning goroutine.
type Set struct {
	LabelSet *labelset.LabelSet
	refs     atomic.Uint64
}

// New wraps ls in a Set with a single reference.
func New(ls *labelset.LabelSet) *Set {
	s := &Set{LabelSet: ls}
	s.refs.Store(1)
	return s
}

// Refs returns the current reference count.
func (s *Set) Refs() uint64 {
	return s.refs.Load()
}

// Shared reports whether more than one AsyncMap entry points at s; callers
// must clone before mutating a shared Set in place.
func (s *Set) Shared() bool {
	return s.refs.Load() > 1
}

// Incref records one more AsyncMap entry pointing at s.
func (s *Set) Incref() {
	s.refs.Add(1)
}

// Unref records one fewer AsyncMap entry pointing at s. When the count
// reaches zero, it frees the underlying LabelSet and returns true.
func (s *Set) Unref() (freed bool, err error) {
	if s == nil {
		return false, nil
	}
	if s.refs.Add(^uint64(0)) != 0 {
		return false, nil
	}
	if err := s.LabelSet.Free(); err != nil {
		return false, err
	}
	return true, nil
}
