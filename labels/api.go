package labels

import (
	"github.com/kolkov/customlabels/internal/labelstore/current"
	"github.com/kolkov/customlabels/internal/labelstore/labelset"
	"github.com/kolkov/customlabels/internal/labelstore/scope"
)

// Label is a key/value pair applied by WithLabels.
type Label struct {
	Key   string
	Value string
}

// Set is an independent, growable collection of labels. The zero value is
// not usable; construct with NewSet.
type Set struct {
	inner *labelset.LabelSet
}

// NewSet returns an empty Set with room for capacity labels before its
// first internal growth.
func NewSet(capacity int) *Set {
	return &Set{inner: labelset.New(capacity)}
}

func wrap(ls *labelset.LabelSet) *Set {
	if ls == nil {
		return nil
	}
	return &Set{inner: ls}
}

// Get returns the value for key and whether it was present.
func (s *Set) Get(key string) (string, bool) {
	lbl, ok := s.inner.Get(labelset.ByteString(key))
	if !ok {
		return "", false
	}
	return string(lbl.Value), true
}

// Set inserts or replaces the value for key, returning the prior value (if
// any). The empty string is accepted as a key like any other.
func (s *Set) Set(key, value string) (prior string, hadPrior bool, err error) {
	old, err := s.inner.Set(labelset.ByteString(key), labelset.ByteString(value))
	if err != nil {
		return "", false, err
	}
	if old == nil {
		return "", false, nil
	}
	return string(old), true, nil
}

// Delete removes key, if present. A no-op otherwise.
func (s *Set) Delete(key string) {
	s.inner.Delete(labelset.ByteString(key))
}

// Count returns the number of live labels in s.
func (s *Set) Count() int {
	return s.inner.Count()
}

// Clone returns an independent deep copy of s.
func (s *Set) Clone() *Set {
	return wrap(s.inner.Clone())
}

// String renders s as "{k1: v1, k2: v2}".
func (s *Set) String() string {
	return s.inner.String()
}

// Install makes s the calling goroutine's current label set, returning the
// set it replaces (nil if none was installed).
//
// Install, Current and Clear return a new *Set handle on the underlying
// label set, so a returned handle is not pointer-equal to the *Set that was
// passed to Install, even though both refer to the same labels.
func Install(s *Set) *Set {
	var ls *labelset.LabelSet
	if s != nil {
		ls = s.inner
	}
	return wrap(current.Replace(ls))
}

// Current returns the calling goroutine's installed Set, or nil.
func Current() *Set {
	return wrap(current.Current())
}

// Clear uninstalls the calling goroutine's current Set, returning it.
func Clear() *Set {
	return wrap(current.Clear())
}

// Propagate copies parentID's label set into childID's slot, sharing
// storage copy-on-write, when the parent has a non-empty entry. It is a
// no-op if the parent has no entry, or an empty one.
//
// If childID already had an entry, that entry is released and
// ErrChildAlreadyExisted is returned; propagation itself still succeeds.
func Propagate(parentID, childID uint64) error {
	return scope.Propagate(parentID, childID)
}

// Destroy releases asyncID's entry, freeing the underlying label set once
// no other async id shares it.
func Destroy(asyncID uint64) error {
	return scope.Destroy(asyncID)
}

// WithLabels runs fn with pairs applied on top of asyncID's inherited label
// set, installed as the calling goroutine's current set for fn's dynamic
// extent, then restores the set (and the caller's previously installed
// current set) before returning.
//
// len(pairs) must not exceed MaxLabels; each key at most MaxKeyLen bytes,
// each value at most MaxValueLen bytes.
func WithLabels[T any](asyncID uint64, pairs []Label, fn func() (T, error)) (T, error) {
	internal := make([]labelset.Label, len(pairs))
	for i, p := range pairs {
		internal[i] = labelset.Label{Key: labelset.ByteString(p.Key), Value: labelset.ByteString(p.Value)}
	}
	return scope.WithLabels(asyncID, internal, fn)
}

// Bounds enforced at the WithLabels boundary.
const (
	MaxLabels   = scope.MaxLabels
	MaxKeyLen   = scope.MaxKeyLen
	MaxValueLen = scope.MaxValueLen
)

// Errors returned by Propagate, Destroy, and WithLabels.
var (
	ErrChildAlreadyExisted = scope.ErrChildAlreadyExisted
	ErrInvalidArgument     = scope.ErrInvalidArgument
	ErrAllocFailed         = scope.ErrAllocFailed
)
