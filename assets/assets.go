// Package assets asks the engine to stream in content ahead of use.
package assets

import (
	"github.com/lotus-sim/lotus-script-go/content"
	"github.com/lotus-sim/lotus-script-go/ffi"
	"github.com/lotus-sim/lotus-script-go/sys"
)

// Preload starts loading id and keeps it resident until the script is unloaded.
func Preload(id content.ID) {
	obj := ffi.Encode(sys.Memory(), id)
	defer obj.Release()
	sys.Imports().Preload(obj.Handle())
}
