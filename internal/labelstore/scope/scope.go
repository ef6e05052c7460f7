package scope

import (
	"fmt"
	"sync"

	"github.com/kolkov/customlabels/internal/labelstore/asyncmap"
	"github.com/kolkov/customlabels/internal/labelstore/current"
	"github.com/kolkov/customlabels/internal/labelstore/goid"
	"github.com/kolkov/customlabels/internal/labelstore/labelset"
	"github.com/kolkov/customlabels/internal/labelstore/refcount"
	"github.com/kolkov/customlabels/internal/labelstore/stats"
)

// registry holds one asyncmap.Map per goroutine, keyed by goroutine id and
// lazily populated on first use.
var registry sync.Map // map[int64]*asyncmap.Map

func ownMap() *asyncmap.Map {
	gid := goid.Current()
	if v, ok := registry.Load(gid); ok {
		return v.(*asyncmap.Map)
	}
	m := asyncmap.New()
	actual, _ := registry.LoadOrStore(gid, m)
	return actual.(*asyncmap.Map)
}

// Propagate copies the parent async id's entry into the child's slot, if
// the parent has a non-empty entry. If the child already had an entry, that
// entry is released and ErrChildAlreadyExisted is returned; the propagation
// itself still succeeds.
func Propagate(parentID, childID uint64) error {
	m := ownMap()
	parent, ok := m.Get(parentID)
	if !ok || parent.LabelSet.Count() == 0 {
		return nil
	}
	parent.Incref()
	prior := m.Insert(childID, parent)
	if prior == nil {
		return nil
	}
	if _, err := prior.Unref(); err != nil {
		return fmt.Errorf("scope: propagate: releasing prior child entry: %w", err)
	}
	stats.ChildAlreadyExisted.Inc()
	return ErrChildAlreadyExisted
}

// Destroy removes async id's entry and releases its reference. When that
// was the last reference, the underlying LabelSet is freed.
func Destroy(asyncID uint64) error {
	m := ownMap()
	rc := m.Delete(asyncID)
	if rc == nil {
		return nil
	}
	if _, err := rc.Unref(); err != nil {
		return fmt.Errorf("scope: destroy: %w", err)
	}
	return nil
}

// reify implements the copy-on-write materialization step: the returned
// Set is safe to mutate in place because it is either newly created or
// known to have exactly one reference.
func reify(m *asyncmap.Map, asyncID uint64, hint int) *refcount.Set {
	existing, ok := m.Get(asyncID)
	if !ok {
		rc := refcount.New(labelset.New(hint))
		m.Insert(asyncID, rc)
		return rc
	}
	if !existing.Shared() {
		return existing
	}
	cloned := refcount.New(existing.LabelSet.Clone())
	m.Insert(asyncID, cloned)
	// existing is shared (refs > 1), so Unref leaves at least one reference
	// and never reaches the Free precondition check; it cannot fail here.
	existing.Unref()
	return cloned
}

type appliedLabel struct {
	key        labelset.ByteString
	priorValue labelset.ByteString
	priorOK    bool
}

// WithLabels runs fn with N additional labels applied to async id's label
// set, then restores the set to its pre-call state before returning. If fn
// panics, the restoration still runs before the panic continues to
// propagate.
func WithLabels[T any](asyncID uint64, pairs []labelset.Label, fn func() (T, error)) (T, error) {
	var zero T
	if len(pairs) > MaxLabels {
		return zero, fmt.Errorf("%w: %d labels exceeds limit of %d", ErrInvalidArgument, len(pairs), MaxLabels)
	}
	for _, p := range pairs {
		if len(p.Key) > MaxKeyLen {
			return zero, fmt.Errorf("%w: key %q exceeds %d bytes", ErrInvalidArgument, p.Key, MaxKeyLen)
		}
		if len(p.Value) > MaxValueLen {
			return zero, fmt.Errorf("%w: value for key %q exceeds %d bytes", ErrInvalidArgument, p.Key, MaxValueLen)
		}
	}

	m := ownMap()
	rc := reify(m, asyncID, len(pairs))

	applied := make([]appliedLabel, 0, len(pairs))
	unwind := func() {
		for i := len(applied) - 1; i >= 0; i-- {
			a := applied[i]
			if a.priorOK {
				rc.LabelSet.Set(a.key, a.priorValue)
			} else {
				rc.LabelSet.Delete(a.key)
			}
		}
	}

	for _, p := range pairs {
		var priorVal labelset.ByteString
		prior, priorOK := rc.LabelSet.Get(p.Key)
		if priorOK {
			priorVal = prior.Value
		}
		if _, err := rc.LabelSet.Set(p.Key, p.Value); err != nil {
			unwind()
			return zero, fmt.Errorf("%w: %v", ErrAllocFailed, err)
		}
		applied = append(applied, appliedLabel{key: p.Key, priorValue: priorVal, priorOK: priorOK})
	}

	old := current.Replace(rc.LabelSet)
	defer func() {
		current.Replace(old)
		unwind()
	}()

	return fn()
}
