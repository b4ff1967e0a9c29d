// Package ffi moves typed values across the guest/host boundary.
//
// A value is encoded with MessagePack (struct fields as named maps, so reordering fields
// stays compatible) into a buffer in linear memory. The buffer's address and length are
// packed into a single 64-bit Handle, the only thing passed to or returned from a host call.
//
// Buffers carry an ownership tag:
//
//	Owned     the buffer was allocated for this value; Release frees it
//	Borrowed  a window over memory described by a handle; Release does nothing,
//	          Reclaim frees it when the call-site convention hands ownership over
//
// Decode failures are fatal. The codec is only used for shapes shared by both sides of a
// version-matched boundary, so a mismatch is a protocol defect and Decode panics with a
// decode-phase *errors.Error instead of returning it.
package ffi
