package host

import (
	"github.com/lotus-sim/lotus-script-go/graphics"
)

// texture is the host side of a script texture: an RGBA pixel buffer plus the actions
// queued since the last flush.
type texture struct {
	pixels  []uint32
	pending []graphics.Action
	width   uint32
	height  uint32
}

func newTexture(opts graphics.CreateOptions) *texture {
	t := &texture{
		width:  opts.Width,
		height: opts.Height,
		pixels: make([]uint32, int(opts.Width)*int(opts.Height)),
	}
	for i := range t.pixels {
		o := i * 4
		if o+3 >= len(opts.Data) {
			break
		}
		t.pixels[i] = graphics.RGBA(opts.Data[o], opts.Data[o+1], opts.Data[o+2], opts.Data[o+3]).Uint32()
	}
	return t
}

// Drop releases the pixel buffer when the texture leaves its slot's table.
func (t *texture) Drop() {
	t.pixels = nil
	t.pending = nil
	t.width, t.height = 0, 0
}

func (t *texture) pixel(x, y uint32) uint32 {
	if x >= t.width || y >= t.height {
		return 0
	}
	return t.pixels[y*t.width+x]
}

func (t *texture) set(x, y uint32, c graphics.Color) {
	if x >= t.width || y >= t.height {
		return
	}
	t.pixels[y*t.width+x] = c.Uint32()
}

// flush applies pending actions in order. It stops at a text action whose font has not
// streamed in yet and reports whether everything was applied.
func (t *texture) flush(e *Engine) bool {
	for len(t.pending) > 0 {
		a := t.pending[0]
		if dt, ok := a.(graphics.DrawText); ok {
			if _, loaded := e.loadedFont(dt.Font); !loaded {
				return false
			}
		}
		t.apply(a)
		t.pending = t.pending[1:]
	}
	return true
}

func (t *texture) apply(a graphics.Action) {
	switch a := a.(type) {
	case graphics.Clear:
		v := a.Color.Uint32()
		for i := range t.pixels {
			t.pixels[i] = v
		}
	case graphics.DrawPixels:
		for _, p := range a {
			t.set(p.Pos.X, p.Pos.Y, p.Color)
		}
	case graphics.DrawRect:
		for y := a.Start.Y; y <= a.End.Y && y < t.height; y++ {
			for x := a.Start.X; x <= a.End.X && x < t.width; x++ {
				t.set(x, y, a.Color)
			}
		}
	case graphics.DrawText:
		// glyph rasterization is left to the real engine
	}
}
