package goid

import "runtime"

// Current returns the current goroutine's runtime id.
//
// This is the portable implementation: it parses the first line of
// runtime.Stack's output ("goroutine 123 [running]:"). It is the active
// path on every platform and Go version this module supports; see
// goid_fast.go for why the faster, offset-dependent alternative is kept
// disabled rather than wired in.
//
// Performance: dominated by runtime.Stack, on the order of a microsecond.
// Current is called three times per labels.WithLabels invocation and once
// per Propagate/Destroy/Install/Current/Clear invocation, not on every
// label access, so this cost does not sit on the LabelSet hot path.
func Current() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	return parseGID(buf[:n])
}

// parseGID extracts the numeric id from a "goroutine 123 [running]:..."
// prefix. Returns 0 if the expected prefix is not present.
func parseGID(buf []byte) int64 {
	const prefix = "goroutine "
	if len(buf) < len(prefix) || string(buf[:len(prefix)]) != prefix {
		return 0
	}
	var gid int64
	for i := len(prefix); i < len(buf); i++ {
		c := buf[i]
		if c < '0' || c > '9' {
			break
		}
		gid = gid*10 + int64(c-'0')
	}
	return gid
}
