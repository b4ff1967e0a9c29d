// Package clock reads simulation time.
package clock

import (
	"time"

	"github.com/lotus-sim/lotus-script-go/sys"
)

// Delta returns the duration of the current tick in seconds.
func Delta() float32 {
	return float32(sys.Imports().DeltaF64())
}

// DeltaF64 returns the duration of the current tick in seconds.
func DeltaF64() float64 {
	return sys.Imports().DeltaF64()
}

// TicksAlive returns the number of ticks since the script was loaded.
func TicksAlive() uint64 {
	return sys.Imports().TicksAlive()
}

// GameTime returns the in-game wall clock.
func GameTime() time.Time {
	return time.UnixMicro(sys.Imports().GameTime()).UTC()
}
