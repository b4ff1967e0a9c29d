package graphics

import (
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/lotus-sim/lotus-script-go/content"
	"github.com/lotus-sim/lotus-script-go/ffi"
	"github.com/lotus-sim/lotus-script-go/geom"
)

func TestColor_Uint32(t *testing.T) {
	c := RGBA(0x12, 0x34, 0x56, 0x78)
	if got := c.Uint32(); got != 0x12345678 {
		t.Fatalf("Uint32 = %#x", got)
	}
	if back := ColorFromUint32(0x12345678); back != c {
		t.Fatalf("ColorFromUint32 = %+v", back)
	}
	if Red.A != 255 {
		t.Fatalf("RGB must be opaque, got alpha %d", Red.A)
	}
}

func TestTagged_RoundTrip(t *testing.T) {
	yellow := Yellow
	actions := []Action{
		Clear{Color: Blue},
		DrawPixels{{Pos: geom.UVec2{X: 1, Y: 2}, Color: Red}, {Pos: geom.UVec2{X: 3}, Color: Green}},
		DrawRect{Start: geom.UVec2{X: 1, Y: 1}, End: geom.UVec2{X: 5, Y: 9}, Color: White},
		DrawText{Font: content.New(1000, 3), Text: "Linie 5", TopLeft: geom.UVec2{X: 2, Y: 2}, LetterSpacing: 1, FullColor: &yellow},
		DrawText{Font: content.New(1000, 3), Text: "keep colors"},
	}

	for _, a := range actions {
		t.Run(a.actionName(), func(t *testing.T) {
			data, err := ffi.Marshal(Tagged{Action: a})
			if err != nil {
				t.Fatal(err)
			}

			var generic map[string]any
			if err := msgpack.Unmarshal(data, &generic); err != nil {
				t.Fatal(err)
			}
			if _, ok := generic[a.actionName()]; !ok || len(generic) != 1 {
				t.Fatalf("wire form = %v, want single %q entry", generic, a.actionName())
			}

			var back Tagged
			if err := ffi.Unmarshal(data, &back); err != nil {
				t.Fatal(err)
			}
			switch want := a.(type) {
			case DrawText:
				got := back.Action.(DrawText)
				if got.Font != want.Font || got.Text != want.Text || got.TopLeft != want.TopLeft {
					t.Fatalf("DrawText = %+v, want %+v", got, want)
				}
				if (got.FullColor == nil) != (want.FullColor == nil) {
					t.Fatalf("FullColor = %v, want %v", got.FullColor, want.FullColor)
				}
				if got.FullColor != nil && *got.FullColor != *want.FullColor {
					t.Fatalf("FullColor = %+v", *got.FullColor)
				}
			case DrawPixels:
				got := back.Action.(DrawPixels)
				if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
					t.Fatalf("DrawPixels = %+v", got)
				}
			default:
				if back.Action != a {
					t.Fatalf("decoded %+v, want %+v", back.Action, a)
				}
			}
		})
	}
}

func TestTagged_Errors(t *testing.T) {
	if _, err := ffi.Marshal(Tagged{}); err == nil {
		t.Fatal("nil action must not encode")
	}

	data, err := msgpack.Marshal(map[string]any{"Blur": 1})
	if err != nil {
		t.Fatal(err)
	}
	var back Tagged
	if err := ffi.Unmarshal(data, &back); err == nil {
		t.Fatal("unknown action must not decode")
	}
}
