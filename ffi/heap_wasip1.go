//go:build wasip1

package ffi

import (
	"unsafe"

	"github.com/lotus-sim/lotus-script-go/errors"
)

// Heap is the guest's own linear memory. Regions are backed by Go slices pinned in a live
// table until deallocated; the Go collector does not move objects, so addresses stay valid.
var Heap = &heap{live: make(map[uint32][]uint64)}

type heap struct {
	live map[uint32][]uint64
}

// Allocate reserves size bytes at 8-byte alignment. Backing the region with uint64 words
// guarantees the alignment. Sizes that cannot be rounded up in 32 bits abort.
func (h *heap) Allocate(size uint32) uint32 {
	n, ok := alignUp(size)
	if !ok {
		panic(errors.AllocationFailed(errors.PhaseRuntime, size))
	}
	words := make([]uint64, n/8)
	ptr := uint32(uintptr(unsafe.Pointer(unsafe.SliceData(words))))
	h.live[ptr] = words
	return ptr
}

// Deallocate unpins the region. The size is not checked.
func (h *heap) Deallocate(ptr, size uint32) {
	delete(h.live, ptr)
}

func (h *heap) Read(ptr, size uint32) ([]byte, bool) {
	if size == 0 {
		return nil, true
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(uintptr(ptr))), size), true
}

//go:wasmexport allocate
func allocate(size uint32) uint32 {
	return Heap.Allocate(size)
}

//go:wasmexport deallocate
func deallocate(ptr, size uint32) {
	Heap.Deallocate(ptr, size)
}
