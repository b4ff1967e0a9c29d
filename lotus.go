package lotus

// Align is the fixed alignment of every allocation crossing the boundary.
const Align = 8

// Allocator reserves and releases regions of linear memory.
//
// Allocate aborts (panics) when the region cannot be reserved; there is no recoverable
// out-of-memory path. Deallocate must receive the exact address and size returned by and
// passed to Allocate; a mismatched size is undefined behavior and is not checked.
type Allocator interface {
	Allocate(size uint32) uint32
	Deallocate(ptr, size uint32)
}

// Memory is a linear memory shared across the guest/host boundary.
type Memory interface {
	Allocator

	// Read returns a view of size bytes at ptr. The view aliases the memory and is only
	// valid until the region is deallocated. ok is false when the region is out of range.
	Read(ptr, size uint32) (view []byte, ok bool)
}
