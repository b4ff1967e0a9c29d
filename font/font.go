// Package font loads bitmap fonts and measures text with them.
package font

import (
	"github.com/lotus-sim/lotus-script-go/content"
	"github.com/lotus-sim/lotus-script-go/ffi"
	"github.com/lotus-sim/lotus-script-go/resource"
	"github.com/lotus-sim/lotus-script-go/sys"
)

// Letter locates one glyph in the font bitmap.
type Letter struct {
	Character string `json:"character"`
	Start     uint32 `json:"start"`
	Width     uint32 `json:"width"`
}

// Properties describes a loaded bitmap font. Letters is keyed by the glyph's character.
type Properties struct {
	HorizontalDistance int32             `json:"horizontal_distance"`
	VerticalSize       int32             `json:"vertical_size"`
	Letters            map[string]Letter `json:"letters"`
}

// BitmapFont is a font the engine streams in on first use.
type BitmapFont struct {
	id   content.ID
	poll *resource.Poll[Properties]
}

// Load starts loading the font. The font is Requested until Poll reports Ready.
func Load(id content.ID) *BitmapFont {
	f := &BitmapFont{id: id}
	f.poll = resource.NewPoll(f.fetch)
	return f
}

// TryLoad polls once and returns the font if it is already loaded.
func TryLoad(id content.ID) (*BitmapFont, bool) {
	f := Load(id)
	if f.Poll() != resource.Ready {
		return nil, false
	}
	return f, true
}

func (f *BitmapFont) fetch() (Properties, bool) {
	mem := sys.Memory()
	obj := ffi.Encode(mem, f.id)
	defer obj.Release()

	h := sys.Imports().BitmapFontProperties(obj.Handle())
	if h == 0 {
		return Properties{}, false
	}
	return ffi.Consume[Properties](mem, h), true
}

// ID returns the font's content id.
func (f *BitmapFont) ID() content.ID { return f.id }

// Poll asks the engine again while the font is loading.
func (f *BitmapFont) Poll() resource.State {
	return f.poll.Poll()
}

// Properties returns the font metrics once loaded.
func (f *BitmapFont) Properties() (Properties, bool) {
	return f.poll.Value()
}

// TextLen returns the rendered width of text in pixels. ok is false while the font is
// not loaded; a font the engine unloaded again becomes Unavailable.
func (f *BitmapFont) TextLen(text string, letterSpacing int32) (width uint32, ok bool) {
	if f.Poll() != resource.Ready {
		return 0, false
	}

	mem := sys.Memory()
	scope := ffi.NewScope()
	defer scope.Release()

	n := sys.Imports().TextLen(scope.Encode(mem, f.id), scope.Encode(mem, text), letterSpacing)
	if n < 0 {
		f.poll.Fail()
		return 0, false
	}
	return uint32(n), true
}
