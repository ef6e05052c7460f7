// Package labelset implements the signal-safe labeled vector sampled by an
// external profiler.
//
// A LabelSet owns a contiguous array of (key, value) byte-string pairs.
// Every mutation that can be observed by a concurrent reader (push,
// swap-delete, grow) follows a publish-before-use, retire-after-unpublish
// discipline, so that a reader sampling storage/count at any point sees
// either the pre-mutation or post-mutation live set, never a torn one.
//
// Go has no raw compiler-reordering barrier exposed to user code, so this
// package uses sync/atomic's acquire/release-ordered loads and stores in
// its place. Each stored label is published as a whole through a single
// atomic.Pointer swap, which is strictly stronger than publishing its key
// and value fields separately: no reader can ever observe a label with a
// valid key and a stale or missing value.
package labelset
