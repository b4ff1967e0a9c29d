package graphics

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/lotus-sim/lotus-script-go/content"
	"github.com/lotus-sim/lotus-script-go/geom"
)

// Action is a drawing command queued on a texture.
type Action interface {
	actionName() string
}

// Clear fills the whole texture.
type Clear struct {
	Color Color
}

// DrawPixel sets one pixel.
type DrawPixel struct {
	Pos   geom.UVec2 `json:"pos"`
	Color Color      `json:"color"`
}

// DrawPixels sets a batch of pixels.
type DrawPixels []DrawPixel

// DrawRect fills the rectangle from Start to End, both inclusive.
type DrawRect struct {
	Start geom.UVec2 `json:"start"`
	End   geom.UVec2 `json:"end"`
	Color Color      `json:"color"`
}

// DrawText renders text with a bitmap font. A nil FullColor keeps the font's own colors.
type DrawText struct {
	Font          content.ID `json:"font"`
	Text          string     `json:"text"`
	TopLeft       geom.UVec2 `json:"top_left"`
	LetterSpacing uint32     `json:"letter_spacing"`
	FullColor     *Color     `json:"full_color"`
}

func (Clear) actionName() string      { return "Clear" }
func (DrawPixels) actionName() string { return "DrawPixels" }
func (DrawRect) actionName() string   { return "DrawRect" }
func (DrawText) actionName() string   { return "DrawText" }

// Tagged carries an Action in its externally tagged wire form {"Variant": body}.
type Tagged struct {
	Action Action
}

var (
	_ msgpack.CustomEncoder = Tagged{}
	_ msgpack.CustomDecoder = (*Tagged)(nil)
)

func (t Tagged) EncodeMsgpack(enc *msgpack.Encoder) error {
	if t.Action == nil {
		return fmt.Errorf("graphics: nil action")
	}
	if err := enc.EncodeMapLen(1); err != nil {
		return err
	}
	if err := enc.EncodeString(t.Action.actionName()); err != nil {
		return err
	}
	switch a := t.Action.(type) {
	case Clear:
		return enc.Encode(a.Color)
	case DrawPixels:
		return enc.Encode([]DrawPixel(a))
	default:
		return enc.Encode(a)
	}
}

func (t *Tagged) DecodeMsgpack(dec *msgpack.Decoder) error {
	n, err := dec.DecodeMapLen()
	if err != nil {
		return err
	}
	if n != 1 {
		return fmt.Errorf("graphics: action map with %d entries", n)
	}
	name, err := dec.DecodeString()
	if err != nil {
		return err
	}

	switch name {
	case "Clear":
		var c Color
		err = dec.Decode(&c)
		t.Action = Clear{Color: c}
	case "DrawPixels":
		var px []DrawPixel
		err = dec.Decode(&px)
		t.Action = DrawPixels(px)
	case "DrawRect":
		var r DrawRect
		err = dec.Decode(&r)
		t.Action = r
	case "DrawText":
		var d DrawText
		err = dec.Decode(&d)
		t.Action = d
	default:
		return fmt.Errorf("graphics: unknown action %q", name)
	}
	return err
}
