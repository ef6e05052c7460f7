// Package scope implements the three operations the host runtime drives an
// async task's lifecycle with: Propagate, Destroy, and WithLabels.
//
// Each goroutine owns exactly one asyncmap.Map, lazily allocated on its
// first use, the same "lazily allocated on first use, owned solely by its
// creating thread" lifecycle the AsyncMap component documents. The
// per-goroutine registry of these maps is a sync.Map keyed by goroutine id,
// grounded on internal/race/shadowmem's ShadowMemory: a registry, not a
// hot-path structure, so the simpler sync.Map design fits better here than
// the CAS array current uses for CurrentSet installs.
//
// Propagate, Destroy and WithLabels are themselves grounded on
// original_source/js/addon2.cpp's propagate/destroy/with_labels functions,
// adapted from a single global hashmap plus mutex (the Node addon runs
// single-threaded JS on one thread) to one AsyncMap per goroutine (no
// mutex needed: each goroutine only ever touches its own map).
package scope
