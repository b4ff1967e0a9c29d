package ffi

import "encoding/binary"

// Handle packs a 32-bit address and a 32-bit byte length into one 64-bit value.
// Both halves are stored big-endian with the address in the high 32 bits.
type Handle uint64

// Pack builds the handle for the region [ptr, ptr+size).
func Pack(ptr, size uint32) Handle {
	var packed [8]byte
	binary.BigEndian.PutUint32(packed[:4], ptr)
	binary.BigEndian.PutUint32(packed[4:], size)
	return Handle(binary.BigEndian.Uint64(packed[:]))
}

// Unpack returns the address and length encoded in h.
func (h Handle) Unpack() (ptr, size uint32) {
	var packed [8]byte
	binary.BigEndian.PutUint64(packed[:], uint64(h))
	return binary.BigEndian.Uint32(packed[:4]), binary.BigEndian.Uint32(packed[4:])
}

// Ptr returns the address half.
func (h Handle) Ptr() uint32 {
	ptr, _ := h.Unpack()
	return ptr
}

// Len returns the length half.
func (h Handle) Len() uint32 {
	_, size := h.Unpack()
	return size
}

// IsEmpty reports whether the handle describes no bytes.
func (h Handle) IsEmpty() bool {
	return h.Len() == 0
}
