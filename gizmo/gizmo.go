// Package gizmo draws debug shapes in the world for the current frame.
package gizmo

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/lotus-sim/lotus-script-go/ffi"
	"github.com/lotus-sim/lotus-script-go/geom"
	"github.com/lotus-sim/lotus-script-go/sys"
)

// Color is a linear float RGBA color in [0, 1].
type Color struct {
	R float32 `json:"r"`
	G float32 `json:"g"`
	B float32 `json:"b"`
	A float32 `json:"a"`
}

var (
	White  = Color{1, 1, 1, 1}
	Red    = Color{1, 0, 0, 1}
	Green  = Color{0, 1, 0, 1}
	Blue   = Color{0, 0, 1, 1}
	Yellow = Color{1, 1, 0, 1}
)

// Shape is a gizmo shape: WireCube, WireSphere or Arrow.
type Shape interface {
	shapeName() string
}

type WireCube struct {
	Center      geom.Vec3 `json:"center"`
	HalfExtents geom.Vec3 `json:"half_extents"`
}

type WireSphere struct {
	Center geom.Vec3 `json:"center"`
	Radius float32   `json:"radius"`
}

type Arrow struct {
	Start geom.Vec3 `json:"start"`
	End   geom.Vec3 `json:"end"`
}

func (WireCube) shapeName() string   { return "WireCube" }
func (WireSphere) shapeName() string { return "WireSphere" }
func (Arrow) shapeName() string      { return "Arrow" }

// Gizmo is a colored shape.
type Gizmo struct {
	Kind  Shape `json:"kind"`
	Color Color `json:"color"`
}

type wireGizmo struct {
	Kind  taggedShape `msgpack:"kind"`
	Color Color       `msgpack:"color"`
}

type taggedShape struct {
	Shape Shape
}

var (
	_ msgpack.CustomEncoder = Gizmo{}
	_ msgpack.CustomDecoder = (*Gizmo)(nil)
)

func (g Gizmo) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.Encode(wireGizmo{Kind: taggedShape{g.Kind}, Color: g.Color})
}

func (g *Gizmo) DecodeMsgpack(dec *msgpack.Decoder) error {
	var w wireGizmo
	if err := dec.Decode(&w); err != nil {
		return err
	}
	g.Kind, g.Color = w.Kind.Shape, w.Color
	return nil
}

func (t taggedShape) EncodeMsgpack(enc *msgpack.Encoder) error {
	if t.Shape == nil {
		return fmt.Errorf("gizmo: nil shape")
	}
	if err := enc.EncodeMapLen(1); err != nil {
		return err
	}
	if err := enc.EncodeString(t.Shape.shapeName()); err != nil {
		return err
	}
	return enc.Encode(t.Shape)
}

func (t *taggedShape) DecodeMsgpack(dec *msgpack.Decoder) error {
	n, err := dec.DecodeMapLen()
	if err != nil {
		return err
	}
	if n != 1 {
		return fmt.Errorf("gizmo: shape map with %d entries", n)
	}
	name, err := dec.DecodeString()
	if err != nil {
		return err
	}
	switch name {
	case "WireCube":
		var s WireCube
		err = dec.Decode(&s)
		t.Shape = s
	case "WireSphere":
		var s WireSphere
		err = dec.Decode(&s)
		t.Shape = s
	case "Arrow":
		var s Arrow
		err = dec.Decode(&s)
		t.Shape = s
	default:
		return fmt.Errorf("gizmo: unknown shape %q", name)
	}
	return err
}

// Draw draws the gizmo for the current frame.
func (g Gizmo) Draw() {
	obj := ffi.Encode(sys.Memory(), g)
	defer obj.Release()
	sys.Imports().Draw(obj.Handle())
}
