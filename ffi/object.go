package ffi

import (
	lotus "github.com/lotus-sim/lotus-script-go"
	"github.com/lotus-sim/lotus-script-go/errors"
)

// Ownership tags who frees an Object's backing memory.
type Ownership uint8

const (
	// Owned buffers were allocated for the value they hold.
	Owned Ownership = iota
	// Borrowed buffers are a view over memory described by a handle.
	Borrowed
)

func (o Ownership) String() string {
	if o == Owned {
		return "owned"
	}
	return "borrowed"
}

// Object is a codec buffer in linear memory. Objects are created per call and consumed
// immediately; they are not meant to be stored.
type Object struct {
	mem      lotus.Memory
	ptr      uint32
	size     uint32
	own      Ownership
	released bool
}

// Encode serializes v into a freshly allocated, owned buffer in mem.
// Serialization failure panics: values handed to the codec are SDK-defined shapes.
func Encode(mem lotus.Memory, v any) *Object {
	data, err := Marshal(v)
	if err != nil {
		panic(errors.EncodeFailed(errors.PhaseEncode, typeNameOf(v), err))
	}
	return Copy(mem, data)
}

// Copy places raw bytes into a freshly allocated, owned buffer in mem.
func Copy(mem lotus.Memory, data []byte) *Object {
	size := uint32(len(data))
	ptr := mem.Allocate(size)
	if size > 0 {
		dst, ok := mem.Read(ptr, size)
		if !ok {
			panic(errors.AllocationFailed(errors.PhaseEncode, size))
		}
		copy(dst, data)
	}
	return &Object{mem: mem, ptr: ptr, size: size, own: Owned}
}

// View reconstructs a borrowed buffer over the region described by h.
// The view must not be used after the owner releases the memory.
func View(mem lotus.Memory, h Handle) *Object {
	ptr, size := h.Unpack()
	return &Object{mem: mem, ptr: ptr, size: size, own: Borrowed}
}

// Decode deserializes the buffer into a T. A buffer that does not decode is a protocol
// defect between version-matched sides and aborts.
func Decode[T any](o *Object) T {
	var v T
	data, ok := o.mem.Read(o.ptr, o.size)
	if !ok {
		panic(errors.New(errors.PhaseDecode, errors.KindOutOfBounds).
			GoType(typeName[T]()).
			Detail("handle [%d, +%d) outside linear memory", o.ptr, o.size).
			Build())
	}
	if err := Unmarshal(data, &v); err != nil {
		panic(errors.DecodeFailed(errors.PhaseDecode, typeName[T](), err))
	}
	return v
}

// Consume decodes a host-allocated buffer and then reclaims it. This is the convention for
// every handle a host import returns into guest memory.
func Consume[T any](mem lotus.Memory, h Handle) T {
	o := View(mem, h)
	defer o.Reclaim()
	return Decode[T](o)
}

// Handle packs the buffer's current address and length. Ownership is unchanged.
func (o *Object) Handle() Handle {
	return Pack(o.ptr, o.size)
}

// Forget packs the buffer and leaks it. Whoever receives the handle owns the memory and
// must eventually deallocate it with the same address and length.
func (o *Object) Forget() Handle {
	o.released = true
	return o.Handle()
}

// Bytes returns a view of the buffer contents.
func (o *Object) Bytes() []byte {
	data, _ := o.mem.Read(o.ptr, o.size)
	return data
}

// Len returns the buffer length in bytes.
func (o *Object) Len() uint32 {
	return o.size
}

// Ownership returns the buffer's ownership tag.
func (o *Object) Ownership() Ownership {
	return o.own
}

// Release frees an owned buffer. For a borrowed view it does nothing: the other side
// frees the memory. Release is idempotent.
func (o *Object) Release() {
	if o.released {
		return
	}
	o.released = true
	if o.own == Owned {
		o.mem.Deallocate(o.ptr, o.size)
	}
}

// Reclaim frees the memory behind a borrowed view whose ownership was handed to this side.
// On an owned buffer it behaves like Release.
func (o *Object) Reclaim() {
	if o.released {
		return
	}
	o.released = true
	if o.ptr == 0 && o.size == 0 {
		return
	}
	o.mem.Deallocate(o.ptr, o.size)
}
