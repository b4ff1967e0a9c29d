package ffi

import (
	"math"
	"sort"

	lotus "github.com/lotus-sim/lotus-script-go"
	"github.com/lotus-sim/lotus-script-go/errors"
)

// PageSize is the wasm linear memory page size.
const PageSize = 64 * 1024

// LinearMemory simulates a 32-bit wasm linear memory with an 8-byte aligned first-fit
// allocator. It lets guest code and the reference host run the full protocol natively.
//
// Address 0 is never handed out so the empty handle stays distinguishable. Like the guest
// allocator it keeps no record of live sizes: Deallocate trusts its caller.
type LinearMemory struct {
	data     []byte
	free     []span
	next     uint32
	maxPages uint32
	inUse    uint32
}

type span struct {
	ptr  uint32
	size uint32
}

// NewLinearMemory creates a memory of initialPages that may grow up to maxPages.
// maxPages of 0 means the full 4GiB address space.
func NewLinearMemory(initialPages, maxPages uint32) *LinearMemory {
	if initialPages == 0 {
		initialPages = 1
	}
	if maxPages == 0 {
		maxPages = 65536
	}
	return &LinearMemory{
		data:     make([]byte, uint64(initialPages)*PageSize),
		next:     lotus.Align,
		maxPages: maxPages,
	}
}

// alignUp rounds size up to the allocation alignment. ok is false when the rounded size
// does not fit in 32 bits.
func alignUp(size uint32) (n uint32, ok bool) {
	if size == 0 {
		return lotus.Align, true
	}
	if size > math.MaxUint32-(lotus.Align-1) {
		return 0, false
	}
	return (size + lotus.Align - 1) &^ (lotus.Align - 1), true
}

// Allocate reserves size bytes. It panics when the memory cannot grow far enough.
func (m *LinearMemory) Allocate(size uint32) uint32 {
	n, ok := alignUp(size)
	if !ok {
		panic(errors.AllocationFailed(errors.PhaseHost, size))
	}

	for i, s := range m.free {
		if s.size < n {
			continue
		}
		ptr := s.ptr
		if s.size == n {
			m.free = append(m.free[:i], m.free[i+1:]...)
		} else {
			m.free[i] = span{ptr: s.ptr + n, size: s.size - n}
		}
		m.inUse += n
		return ptr
	}

	end := uint64(m.next) + uint64(n)
	if end > uint64(len(m.data)) {
		if !m.grow(end) {
			panic(errors.AllocationFailed(errors.PhaseHost, size))
		}
	}
	ptr := m.next
	m.next = uint32(end)
	m.inUse += n
	return ptr
}

func (m *LinearMemory) grow(need uint64) bool {
	limit := uint64(m.maxPages) * PageSize
	if need > limit {
		return false
	}
	size := uint64(len(m.data))
	for size < need {
		size *= 2
	}
	if size > limit {
		size = limit
	}
	grown := make([]byte, size)
	copy(grown, m.data)
	m.data = grown
	return true
}

// Deallocate returns a region to the free list, merging it with adjacent free regions.
func (m *LinearMemory) Deallocate(ptr, size uint32) {
	n, ok := alignUp(size)
	if !ok {
		return
	}
	m.inUse -= n

	i := sort.Search(len(m.free), func(i int) bool { return m.free[i].ptr > ptr })
	m.free = append(m.free, span{})
	copy(m.free[i+1:], m.free[i:])
	m.free[i] = span{ptr: ptr, size: n}

	if i+1 < len(m.free) && m.free[i].ptr+m.free[i].size == m.free[i+1].ptr {
		m.free[i].size += m.free[i+1].size
		m.free = append(m.free[:i+1], m.free[i+2:]...)
	}
	if i > 0 && m.free[i-1].ptr+m.free[i-1].size == m.free[i].ptr {
		m.free[i-1].size += m.free[i].size
		m.free = append(m.free[:i], m.free[i+1:]...)
	}
}

// Read returns a view of [ptr, ptr+size).
func (m *LinearMemory) Read(ptr, size uint32) ([]byte, bool) {
	end := uint64(ptr) + uint64(size)
	if end > uint64(len(m.data)) {
		return nil, false
	}
	return m.data[ptr:end:end], true
}

// Write copies data to ptr.
func (m *LinearMemory) Write(ptr uint32, data []byte) bool {
	dst, ok := m.Read(ptr, uint32(len(data)))
	if !ok {
		return false
	}
	copy(dst, data)
	return true
}

// Size returns the current memory size in bytes.
func (m *LinearMemory) Size() uint32 {
	if uint64(len(m.data)) > uint64(^uint32(0)) {
		return ^uint32(0)
	}
	return uint32(len(m.data))
}

// InUse returns the number of bytes currently allocated, rounded to the alignment.
func (m *LinearMemory) InUse() uint32 {
	return m.inUse
}
