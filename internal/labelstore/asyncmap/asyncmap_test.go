package asyncmap

import (
	"testing"

	"github.com/kolkov/customlabels/internal/labelstore/labelset"
	"github.com/kolkov/customlabels/internal/labelstore/refcount"
)

func newSet() *refcount.Set {
	return refcount.New(labelset.New(2))
}

func TestInsertGet(t *testing.T) {
	m := New()
	s := newSet()
	if prior := m.Insert(1, s); prior != nil {
		t.Fatalf("Insert on empty map returned %v, want nil", prior)
	}
	got, ok := m.Get(1)
	if !ok || got != s {
		t.Fatalf("Get(1) = (%v, %v), want (%v, true)", got, ok, s)
	}
	if _, ok := m.Get(2); ok {
		t.Fatal("Get(2) found an entry that was never inserted")
	}
}

func TestInsertReplacesReturnsPrior(t *testing.T) {
	m := New()
	a, b := newSet(), newSet()
	m.Insert(1, a)
	prior := m.Insert(1, b)
	if prior != a {
		t.Fatalf("Insert replace returned %v, want %v", prior, a)
	}
	got, _ := m.Get(1)
	if got != b {
		t.Fatal("Get did not return replacement value")
	}
	if m.Size() != 1 {
		t.Fatalf("Size() = %d, want 1 (replace must not grow size)", m.Size())
	}
}

func TestDeleteAbsentIsNoop(t *testing.T) {
	m := New()
	if got := m.Delete(42); got != nil {
		t.Fatalf("Delete on absent key returned %v, want nil", got)
	}
}

func TestSizeEqualsOccupiedCount(t *testing.T) {
	m := New()
	const n = 500
	for i := uint64(0); i < n; i++ {
		m.Insert(i, newSet())
		if m.Size() != int(i)+1 {
			t.Fatalf("after inserting %d keys, Size() = %d", i+1, m.Size())
		}
	}
	for i := uint64(0); i < n; i++ {
		if _, ok := m.Get(i); !ok {
			t.Fatalf("key %d missing after %d insertions", i, n)
		}
	}
	for i := uint64(0); i < n; i += 2 {
		if removed := m.Delete(i); removed == nil {
			t.Fatalf("Delete(%d) returned nil, want a value", i)
		}
	}
	if m.Size() != n/2 {
		t.Fatalf("Size() after deleting half the keys = %d, want %d", m.Size(), n/2)
	}
	for i := uint64(1); i < n; i += 2 {
		if _, ok := m.Get(i); !ok {
			t.Fatalf("surviving key %d lost after deletions", i)
		}
	}
	for i := uint64(0); i < n; i += 2 {
		if _, ok := m.Get(i); ok {
			t.Fatalf("deleted key %d still present", i)
		}
	}
}

func TestCapacityStaysPowerOfTwo(t *testing.T) {
	m := New()
	for i := uint64(0); i < 1000; i++ {
		m.Insert(i, newSet())
	}
	cap := m.Capacity()
	if cap&(cap-1) != 0 {
		t.Fatalf("Capacity() = %d, not a power of two", cap)
	}
}

func TestLoadFactorBound(t *testing.T) {
	m := New()
	for i := uint64(0); i < 2000; i++ {
		m.Insert(i, newSet())
		if m.Size()*5 >= m.Capacity()*3 {
			t.Fatalf("load factor exceeded bound: size=%d capacity=%d", m.Size(), m.Capacity())
		}
	}
}

// TestProbeChainInvariant inserts and deletes a workload designed to force
// collisions, then checks that every live key is still reachable by a
// forward linear probe from its ideal bucket, the invariant backward-shift
// deletion exists to preserve.
func TestProbeChainInvariant(t *testing.T) {
	m := New()
	keys := make([]uint64, 0, 300)
	for i := uint64(0); i < 300; i++ {
		m.Insert(i, newSet())
		keys = append(keys, i)
	}
	for i := 0; i < len(keys); i += 3 {
		m.Delete(keys[i])
	}
	for i, k := range keys {
		if i%3 == 0 {
			continue
		}
		if _, ok := m.Get(k); !ok {
			t.Fatalf("key %d unreachable after backward-shift deletions", k)
		}
	}
}
