// Package geom holds the small vector types exchanged with the host. On the wire every
// vector is a plain tuple of its components.
package geom

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Vec2 is a 2D float vector.
type Vec2 struct {
	X, Y float32
}

// UVec2 is a 2D unsigned vector, used for pixel positions.
type UVec2 struct {
	X, Y uint32
}

// Vec3 is a 3D float vector.
type Vec3 struct {
	X, Y, Z float32
}

var (
	_ msgpack.CustomEncoder = Vec2{}
	_ msgpack.CustomDecoder = (*Vec2)(nil)
	_ msgpack.CustomEncoder = UVec2{}
	_ msgpack.CustomDecoder = (*UVec2)(nil)
	_ msgpack.CustomEncoder = Vec3{}
	_ msgpack.CustomDecoder = (*Vec3)(nil)
)

func (v Vec2) EncodeMsgpack(enc *msgpack.Encoder) error {
	return encodeFloats(enc, v.X, v.Y)
}

func (v *Vec2) DecodeMsgpack(dec *msgpack.Decoder) error {
	return decodeFloats(dec, &v.X, &v.Y)
}

func (v UVec2) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeArrayLen(2); err != nil {
		return err
	}
	if err := enc.EncodeUint(uint64(v.X)); err != nil {
		return err
	}
	return enc.EncodeUint(uint64(v.Y))
}

func (v *UVec2) DecodeMsgpack(dec *msgpack.Decoder) error {
	if err := expectLen(dec, 2); err != nil {
		return err
	}
	var err error
	if v.X, err = dec.DecodeUint32(); err != nil {
		return err
	}
	v.Y, err = dec.DecodeUint32()
	return err
}

func (v Vec3) EncodeMsgpack(enc *msgpack.Encoder) error {
	return encodeFloats(enc, v.X, v.Y, v.Z)
}

func (v *Vec3) DecodeMsgpack(dec *msgpack.Decoder) error {
	return decodeFloats(dec, &v.X, &v.Y, &v.Z)
}

func encodeFloats(enc *msgpack.Encoder, vs ...float32) error {
	if err := enc.EncodeArrayLen(len(vs)); err != nil {
		return err
	}
	for _, v := range vs {
		if err := enc.EncodeFloat32(v); err != nil {
			return err
		}
	}
	return nil
}

func decodeFloats(dec *msgpack.Decoder, dst ...*float32) error {
	if err := expectLen(dec, len(dst)); err != nil {
		return err
	}
	for _, d := range dst {
		v, err := dec.DecodeFloat32()
		if err != nil {
			return err
		}
		*d = v
	}
	return nil
}

func expectLen(dec *msgpack.Decoder, want int) error {
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return err
	}
	if n != want {
		return fmt.Errorf("geom: tuple of %d elements, want %d", n, want)
	}
	return nil
}
