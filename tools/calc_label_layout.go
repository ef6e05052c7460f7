//go:build ignore
// +build ignore

// This tool prints the size and field offsets a reader needs to know to
// parse this module's ABI-visible structs directly out of process memory,
// rather than through the Go API. Run with: go run tools/calc_label_layout.go
package main

import (
	"fmt"
	"sync/atomic"
	"unsafe"
)

// labelSlot mirrors labelset.slot's layout: one atomic.Pointer[Label].
type labelSlot struct {
	label atomic.Pointer[struct {
		Key   []byte
		Value []byte
	}]
}

// currentSetCell mirrors the per-goroutine cell current.cell uses to bind
// a goroutine id to its installed LabelSet.
type currentSetCell struct {
	gid atomic.Int64
	ls  unsafe.Pointer
}

// bucket mirrors asyncmap.bucket's layout: (key uint64, value pointer).
type bucket struct {
	key   uint64
	value unsafe.Pointer
}

func main() {
	var slot labelSlot
	var cell currentSetCell
	var b bucket

	fmt.Println("labelset.slot:")
	fmt.Printf("  size=%d align=%d\n", unsafe.Sizeof(slot), unsafe.Alignof(slot))

	fmt.Println("current.cell:")
	fmt.Printf("  size=%d align=%d gid_offset=%d ls_offset=%d\n",
		unsafe.Sizeof(cell), unsafe.Alignof(cell), unsafe.Offsetof(cell.gid), unsafe.Offsetof(cell.ls))

	fmt.Println("asyncmap.bucket:")
	fmt.Printf("  size=%d align=%d key_offset=%d value_offset=%d\n",
		unsafe.Sizeof(b), unsafe.Alignof(b), unsafe.Offsetof(b.key), unsafe.Offsetof(b.value))
}
