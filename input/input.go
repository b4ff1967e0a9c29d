// Package input reads raw pointer input.
package input

import (
	"github.com/lotus-sim/lotus-script-go/ffi"
	"github.com/lotus-sim/lotus-script-go/geom"
	"github.com/lotus-sim/lotus-script-go/sys"
)

// MouseDelta returns the mouse movement since the last frame.
func MouseDelta() geom.Vec2 {
	return ffi.Consume[geom.Vec2](sys.Memory(), sys.Imports().MouseDelta())
}
