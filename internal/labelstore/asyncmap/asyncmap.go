package asyncmap

import (
	"sync/atomic"

	"github.com/kolkov/customlabels/internal/labelstore/refcount"
	"github.com/kolkov/customlabels/internal/labelstore/stats"
)

const initialCapacity = 8 // must stay a power of two

type bucket struct {
	key   uint64
	value *refcount.Set // nil means empty
}

// tableState is the bucket array and its capacity, published together so a
// reader never observes one without the other. This stands in for the
// ABI's single paired (buckets_ptr, log2_capacity) store: Go has no 16-byte
// atomic store, but swapping a pointer to a struct whose slice carries both
// the array and its length gives the same "all or nothing" visibility for
// the pair. Insert and Delete still write individual buckets of the
// published array in place; only rehash swaps in a new tableState.
type tableState struct {
	buckets []bucket
}

// Map is a per-goroutine open-addressed table from async id to
// *refcount.Set, owned and mutated by exactly one goroutine.
type Map struct {
	state atomic.Pointer[tableState]
	size  int
}

// New returns an empty, lazily-nothing AsyncMap (the initial bucket array
// is allocated immediately; the ABI's "lazily allocated on first use" is
// satisfied one level up, by not constructing a Map at all until a
// goroutine's first Propagate, Destroy or WithLabels call).
func New() *Map {
	m := &Map{}
	m.state.Store(&tableState{buckets: make([]bucket, initialCapacity)})
	return m
}

// Size returns the number of occupied buckets.
func (m *Map) Size() int {
	return m.size
}

// Capacity returns the current bucket array length, always a power of two.
func (m *Map) Capacity() int {
	return len(m.state.Load().buckets)
}

func probeStart(key uint64, capacity int) int {
	return int(mix(key) & uint64(capacity-1))
}

// Get returns the value stored for key, or (nil, false) if absent.
func (m *Map) Get(key uint64) (*refcount.Set, bool) {
	st := m.state.Load()
	cap := len(st.buckets)
	idx := probeStart(key, cap)
	for i := 0; i < cap; i++ {
		b := &st.buckets[(idx+i)%cap]
		if b.value == nil {
			return nil, false
		}
		if b.key == key {
			return b.value, true
		}
	}
	return nil, false
}

// Insert stores value under key, rehashing first if one more entry would
// bring the load factor to 3/5 or above. Returns the prior value (nil if key was previously absent).
func (m *Map) Insert(key uint64, value *refcount.Set) *refcount.Set {
	if (m.size+1)*5 >= len(m.state.Load().buckets)*3 {
		m.rehash()
	}
	st := m.state.Load()
	cap := len(st.buckets)
	idx := probeStart(key, cap)
	for i := 0; i < cap; i++ {
		pos := (idx + i) % cap
		b := &st.buckets[pos]
		if b.value == nil {
			b.key = key
			b.value = value
			m.size++
			stats.AsyncMapSize.Set(float64(m.size))
			return nil
		}
		if b.key == key {
			prior := b.value
			b.value = value
			return prior
		}
	}
	// Unreachable: the rehash above guarantees room for one more entry.
	panic("asyncmap: probe exhausted capacity after rehash")
}

// Delete removes key's entry, if any, using backward-shift compaction to
// preserve the probe-chain invariant without tombstones. Returns the
// removed value, or nil if key was absent.
func (m *Map) Delete(key uint64) *refcount.Set {
	st := m.state.Load()
	cap := len(st.buckets)
	idx := probeStart(key, cap)
	victim := -1
	for i := 0; i < cap; i++ {
		pos := (idx + i) % cap
		b := &st.buckets[pos]
		if b.value == nil {
			return nil
		}
		if b.key == key {
			victim = pos
			break
		}
	}
	if victim < 0 {
		return nil
	}
	removed := st.buckets[victim].value
	st.buckets[victim] = bucket{}
	m.size--
	stats.AsyncMapSize.Set(float64(m.size))

	empty := victim
	pos := victim
	for {
		pos = (pos + 1) % cap
		b := st.buckets[pos]
		if b.value == nil {
			return removed
		}
		ideal := probeStart(b.key, cap)
		// Does the probe path from ideal to pos cross (or land on) empty?
		if crosses(ideal, pos, empty, cap) {
			st.buckets[empty] = b
			st.buckets[pos] = bucket{}
			empty = pos
		}
	}
}

// crosses reports whether walking forward (mod cap) from ideal to pos
// passes through or lands on target.
func crosses(ideal, pos, target, cap int) bool {
	distToTarget := (target - ideal + cap) % cap
	distToPos := (pos - ideal + cap) % cap
	return distToTarget <= distToPos
}

// rehash doubles capacity and reinserts every live entry, then publishes
// the new table with a single atomic store.
func (m *Map) rehash() {
	old := m.state.Load()
	newCap := len(old.buckets) * 2
	next := &tableState{buckets: make([]bucket, newCap)}
	for _, b := range old.buckets {
		if b.value == nil {
			continue
		}
		idx := probeStart(b.key, newCap)
		for i := 0; i < newCap; i++ {
			pos := (idx + i) % newCap
			if next.buckets[pos].value == nil {
				next.buckets[pos] = b
				break
			}
		}
	}
	m.state.Store(next)
	stats.AsyncMapRehashes.Inc()
}
