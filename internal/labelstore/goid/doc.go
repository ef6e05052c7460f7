// Package goid identifies the calling goroutine.
//
// Go exposes no OS-thread-local storage to user code, and goroutines are not
// pinned to OS threads, so this package provides the substitute this module
// builds "thread-local" state on top of: a stable per-goroutine integer
// handle, good for the lifetime of the goroutine.
//
// This mirrors the approach internal/race/api's goid_*.go files take for the
// same problem (tagging per-goroutine race-detector state): a disabled,
// version-pinned assembly fast path alongside a portable runtime.Stack
// parsing fallback that is the one actually in effect. That split is
// preserved here: goid_fast.go documents the faster technique and why it is
// gated off, goid_generic.go is what Current() actually calls.
package goid
