// Package current implements CurrentSet: the per-goroutine pointer a
// sampling reader dereferences to find the LabelSet it should walk.
//
// The design follows a CAS-based shadow-memory pattern: a fixed-size array
// of atomic.Pointer slots, indexed by a multiplicative hash of the owning
// goroutine's id, with a short linear probe on collision. The difference
// from a memory-address shadow map is what is keyed (goroutine id instead of
// a memory address) and what is stored (a *labelset.LabelSet instead of a
// shadow variable state); the lock-free, reader-never-blocks structure is
// the same. A small overflow map (mirroring that pattern's sync.Map-based
// fallback) absorbs the rare case where all probed slots for a goroutine are
// already claimed by others.
//
// Entries are never reclaimed when a goroutine exits: Go exposes no
// goroutine-exit hook to run cleanup from, so this is an accepted
// simplification rather than an oversight.
package current
