package sys

import (
	"testing"

	"github.com/lotus-sim/lotus-script-go/errors"
	"github.com/lotus-sim/lotus-script-go/ffi"
)

func TestUnbound_Panics(t *testing.T) {
	restore := Bind(nil, nil)
	defer restore()

	defer func() {
		err, ok := recover().(*errors.Error)
		if !ok || err.Kind != errors.KindNotInitialized {
			t.Fatalf("want not_initialized panic, got %v", err)
		}
	}()
	Memory()
}

func TestBind_Restore(t *testing.T) {
	outer := ffi.NewLinearMemory(1, 0)
	restoreOuter := Bind(outer, nil)
	defer restoreOuter()

	inner := ffi.NewLinearMemory(1, 0)
	restore := Bind(inner, nil)
	if Memory() != inner {
		t.Fatal("Bind did not switch memory")
	}
	restore()
	if Memory() != outer {
		t.Fatal("restore did not bring back previous memory")
	}
}
