package gizmo

import (
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/lotus-sim/lotus-script-go/ffi"
	"github.com/lotus-sim/lotus-script-go/geom"
)

func TestGizmo_WireForm(t *testing.T) {
	shapes := []Shape{
		WireCube{Center: geom.Vec3{X: 1, Y: 2, Z: 3}, HalfExtents: geom.Vec3{X: 0.5, Y: 0.5, Z: 0.5}},
		WireSphere{Center: geom.Vec3{Z: -1}, Radius: 4},
		Arrow{Start: geom.Vec3{}, End: geom.Vec3{Y: 10}},
	}
	for _, s := range shapes {
		t.Run(s.shapeName(), func(t *testing.T) {
			g := Gizmo{Kind: s, Color: Green}
			data, err := ffi.Marshal(g)
			if err != nil {
				t.Fatal(err)
			}

			var generic map[string]any
			if err := msgpack.Unmarshal(data, &generic); err != nil {
				t.Fatal(err)
			}
			kind, ok := generic["kind"].(map[string]any)
			if !ok {
				t.Fatalf("kind = %T, want map", generic["kind"])
			}
			if _, ok := kind[s.shapeName()]; !ok {
				t.Fatalf("kind = %v, want %q entry", kind, s.shapeName())
			}
			if _, ok := generic["color"].(map[string]any)["g"]; !ok {
				t.Fatalf("color = %v, want named channels", generic["color"])
			}

			var back Gizmo
			if err := ffi.Unmarshal(data, &back); err != nil {
				t.Fatal(err)
			}
			if back != g {
				t.Fatalf("decoded %+v, want %+v", back, g)
			}
		})
	}
}

func TestGizmo_NilShape(t *testing.T) {
	if _, err := ffi.Marshal(Gizmo{Color: White}); err == nil {
		t.Fatal("gizmo without shape must not encode")
	}
}
