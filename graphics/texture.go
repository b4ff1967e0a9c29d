package graphics

import (
	"math"

	"github.com/lotus-sim/lotus-script-go/content"
	"github.com/lotus-sim/lotus-script-go/ffi"
	"github.com/lotus-sim/lotus-script-go/geom"
	"github.com/lotus-sim/lotus-script-go/resource"
	"github.com/lotus-sim/lotus-script-go/sys"
)

// CreateOptions sizes a new texture. Data, when set, holds RGBA8 pixels row by row.
type CreateOptions struct {
	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`
	Data   []byte `json:"data"`
}

const forgotten = math.MaxUint32

// Texture is a script texture owned by the engine. Actions are queued and applied by the
// engine asynchronously; Flush polls until they are.
type Texture struct {
	id    uint32
	state resource.State
}

// NewTexture asks the engine for a new texture.
func NewTexture(opts CreateOptions) *Texture {
	obj := ffi.Encode(sys.Memory(), opts)
	defer obj.Release()
	return &Texture{id: sys.Imports().Create(obj.Handle()), state: resource.Ready}
}

// ID returns the engine's texture number.
func (t *Texture) ID() uint32 { return t.id }

// State reports whether queued actions are applied (Ready), pending (Requested), or the
// texture was disposed (Unavailable).
func (t *Texture) State() resource.State { return t.state }

// AddAction queues a drawing action.
func (t *Texture) AddAction(a Action) {
	if t.state == resource.Unavailable {
		return
	}
	obj := ffi.Encode(sys.Memory(), Tagged{Action: a})
	defer obj.Release()
	sys.Imports().AddAction(t.id, obj.Handle())
	t.state = resource.Requested
}

// Clear fills the texture with c.
func (t *Texture) Clear(c Color) {
	t.AddAction(Clear{Color: c})
}

// DrawRect fills a rectangle.
func (t *Texture) DrawRect(start, end geom.UVec2, c Color) {
	t.AddAction(DrawRect{Start: start, End: end, Color: c})
}

// DrawPixels sets individual pixels.
func (t *Texture) DrawPixels(pixels ...DrawPixel) {
	t.AddAction(DrawPixels(pixels))
}

// DrawText renders text at topLeft.
func (t *Texture) DrawText(font content.ID, text string, topLeft geom.UVec2, letterSpacing uint32, fullColor *Color) {
	t.AddAction(DrawText{
		Font:          font,
		Text:          text,
		TopLeft:       topLeft,
		LetterSpacing: letterSpacing,
		FullColor:     fullColor,
	})
}

// ReadPixel returns the color at (x, y) as of the last applied flush.
func (t *Texture) ReadPixel(x, y uint32) Color {
	return ColorFromUint32(sys.Imports().GetPixel(t.id, x, y))
}

// ApplyTo shows the texture on every game texture slot called name. Call once per slot.
func (t *Texture) ApplyTo(name string) {
	obj := ffi.Encode(sys.Memory(), name)
	defer obj.Release()
	sys.Imports().ApplyTo(t.id, obj.Handle())
}

// Flush asks the engine to apply queued actions now. It returns false while assets used
// by the actions are still streaming in; call it again on a later tick.
func (t *Texture) Flush() bool {
	switch t.state {
	case resource.Ready:
		return true
	case resource.Unavailable:
		return false
	}
	if sys.Imports().FlushActions(t.id) == 1 {
		t.state = resource.Ready
	}
	return t.state == resource.Ready
}

// Dispose frees the engine texture.
func (t *Texture) Dispose() {
	if t.state == resource.Unavailable {
		return
	}
	if t.id != forgotten {
		sys.Imports().Dispose(t.id)
	}
	t.state = resource.Unavailable
}

// Forget detaches the Go value from the engine texture, which then lives until the
// script is unloaded.
func (t *Texture) Forget() {
	t.id = forgotten
	t.state = resource.Unavailable
}
