package current

import (
	"sync"
	"sync/atomic"

	"github.com/kolkov/customlabels/internal/labelstore/goid"
	"github.com/kolkov/customlabels/internal/labelstore/labelset"
)

// numSlots is the size of the fixed fast-path array. Far smaller than
// CASBasedShadow's 65536 memory-address slots: this array is indexed by
// concurrently-active goroutine count, not distinct memory addresses, and
// real programs rarely run more than a few thousand goroutines that ever
// touch the label store.
const numSlots = 4096

// maxProbe bounds the linear probe, matching CASBasedShadow's choice of 8.
const maxProbe = 8

type cell struct {
	gid atomic.Int64 // 0 means unclaimed.
	ls  atomic.Pointer[labelset.LabelSet]
}

var table [numSlots]cell

// overflow absorbs goroutines whose hashed slot and its probe chain are all
// claimed by other goroutines. This should essentially never happen in
// practice (it requires maxProbe+1 distinct goroutines to collide on the
// same hash bucket), but correctness, unlike CASBasedShadow's advisory
// tracking, cannot tolerate silently dropping a goroutine's CurrentSet.
var overflow sync.Map // map[int64]*cell

// fastHash spreads goroutine ids across the array using the same
// golden-ratio multiplicative hash CASBasedShadow uses for addresses.
func fastHash(gid int64) uint64 {
	const goldenRatio = 0x9E3779B97F4A7C15
	return (uint64(gid) * goldenRatio) >> 48 // top 16 bits, masked below
}

func cellFor(gid int64) *cell {
	if v, ok := overflow.Load(gid); ok {
		return v.(*cell)
	}
	start := fastHash(gid) % numSlots
	for i := uint64(0); i < maxProbe; i++ {
		idx := (start + i) % numSlots
		c := &table[idx]
		g := c.gid.Load()
		if g == gid {
			return c
		}
		if g == 0 && c.gid.CompareAndSwap(0, gid) {
			return c
		}
	}
	// Probe chain exhausted: fall back to the overflow map, shared by
	// whichever goroutines lost the race for this hash bucket.
	newCell := &cell{}
	newCell.gid.Store(gid)
	actual, _ := overflow.LoadOrStore(gid, newCell)
	return actual.(*cell)
}

// Replace installs ls as the calling goroutine's CurrentSet, returning the
// previously installed set (nil if none). Ownership of the returned pointer
// transfers to the caller.
//
// Ordering: ls is marked installed before the swap, so by the time a reader
// can observe the new pointer, ls is already willing to use the
// barrier-respecting mutation protocol; old is marked no-longer-installed
// only after the swap publishes, so the caller's continued use of old (say,
// to restore a prior scope) cannot be mistaken by LabelSet for installed
// use after another goroutine's Replace call, because CurrentSet entries
// are never shared across goroutines.
//
// A self-replace (ls already the installed set, as happens when WithLabels
// recurses on the same async id and reify hands back the same LabelSet)
// must leave Installed() alone: old and ls are the same pointer in that
// case, and unconditionally clearing old's flag would mark a still-installed
// set as uninstalled.
func Replace(ls *labelset.LabelSet) *labelset.LabelSet {
	gid := goid.Current()
	c := cellFor(gid)
	if ls != nil {
		ls.MarkInstalled(true)
	}
	old := c.ls.Swap(ls)
	if old != nil && old != ls {
		old.MarkInstalled(false)
	}
	return old
}

// Current returns the calling goroutine's installed LabelSet, or nil if
// none is installed.
func Current() *labelset.LabelSet {
	gid := goid.Current()
	c := cellFor(gid)
	return c.ls.Load()
}

// Clear installs nil as the calling goroutine's CurrentSet, returning the
// set that was previously installed.
func Clear() *labelset.LabelSet {
	return Replace(nil)
}
