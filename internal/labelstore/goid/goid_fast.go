// Fast goroutine-id extraction via direct access to the runtime.g struct.
//
// This reads the g pointer out of the goroutine's TLS slot and dereferences
// the goid field at a hardcoded byte offset computed from the running Go
// version's runtime/runtime2.go. It is roughly three orders of magnitude faster than
// parsing runtime.Stack's output, but the offset is not part of any Go
// compatibility guarantee, and silently reading garbage past a wrong offset
// produces bogus goroutine ids rather than a compile or runtime error.
//
// This file is gated behind a build tag that never matches on purpose
// ("disabled_customlabels_fastgoid" is not a real build context), so the
// safe runtime.Stack-based path in goid_generic.go is always what actually
// runs. Re-enabling this requires verifying goidOffset against the exact Go
// toolchain version in use; see tools/calc_goid_offset.go.

//go:build amd64 && disabled_customlabels_fastgoid

package goid

import "unsafe"

// goidOffset is the byte offset of the goid field within runtime.g on
// amd64, Go 1.24/1.25. Re-verify before re-enabling this file.
const goidOffset = 152

//go:noescape
func getg() uintptr

//go:nosplit
//go:nocheckptr
func currentFast() int64 {
	g := getg()
	if g == 0 {
		return Current()
	}
	return int64(*(*uint64)(unsafe.Pointer(g + goidOffset)))
}
