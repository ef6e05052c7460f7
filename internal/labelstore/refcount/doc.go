// Package refcount implements RefCountedSet, the value type AsyncMap
// entries point at: a LabelSet shared by however many async ids currently
// propagate from the same ancestor, released once the last one lets go.
//
// Grounded on original_source/js/addon2.cpp's labelset_rc: a (LabelSet,
// refs) pair with a single unref operation that frees the LabelSet once
// refs reaches zero. Go's garbage collector makes "free" a precondition
// check (labelset.LabelSet.Free) rather than an allocator call, but the
// refcount itself still has to be explicit: Propagate raises it to share a
// LabelSet, and it is what decides whether a WithLabels call may mutate a
// LabelSet in place or must clone it first (copy-on-write).
package refcount
