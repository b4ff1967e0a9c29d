// Package random draws numbers from the engine's per-script generator.
package random

import (
	"fmt"

	"github.com/lotus-sim/lotus-script-go/sys"
)

// Seed reseeds the generator deterministically.
func Seed(seed uint64) {
	sys.Imports().Seed(seed)
}

// RandomSeed reseeds the generator from entropy.
func RandomSeed() {
	sys.Imports().RandomSeed()
}

// Float64 returns a number in [0, 1).
func Float64() float64 {
	return sys.Imports().F64()
}

// Uint64 returns a number in [min, max]. It panics when min > max.
func Uint64(min, max uint64) uint64 {
	if min > max {
		panic(fmt.Sprintf("random: min %d greater than max %d", min, max))
	}
	return sys.Imports().U64(min, max)
}

// Uint64N returns a number in [0, n). It panics when n is 0.
func Uint64N(n uint64) uint64 {
	if n == 0 {
		panic("random: empty range")
	}
	return Uint64(0, n-1)
}
