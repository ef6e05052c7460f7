// Package asyncmap implements AsyncMap: a per-goroutine table from async
// task id to a reference-counted label set.
//
// The structure mirrors internal/race/shadowmem's CASBasedShadow in spirit
// (fixed hash table, linear probing, atomic publish) but the table here
// resizes, so it cannot reuse a fixed [N]atomic.Pointer array: instead the
// whole bucket array and its capacity are published together behind one
// atomic.Pointer, much as labelset.LabelSet publishes its storage array
// behind one. This is the Go rendering of the ABI's single-paired-store
// requirement for (buckets, log2_capacity): a struct whose bucket slice
// carries both, swapped in with one atomic.Pointer.Store.
//
// AsyncMap is owned by exactly one goroutine and is not itself safe for
// concurrent writers (matching the "owning thread" requirement). Insert and
// Delete (including its backward shifts) write buckets of the published
// array in place with ordinary stores; only a rehash builds a new array and
// swaps it in.
package asyncmap
