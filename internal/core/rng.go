package core

import (
	"math/rand"
	"time"
)

// RandomSource is the randomness every generation step draws from.
// *math/rand.Rand satisfies it; tests inject a seeded one.
type RandomSource interface {
	Intn(n int) int
	Float64() float64
	Shuffle(n int, swap func(i, j int))
}

// RuntimeConfig carries per-run settings for interactive surfaces.
type RuntimeConfig struct {
	ScreenW int   // Screen width in characters
	ScreenH int   // Screen height in characters
	Seed    int64 // RNG seed; 0 means derive one from the clock
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		Seed:    0,
	}
}

// NewRand returns a seeded source. A zero seed is replaced by the current time
// and the effective seed is returned so it can be recorded.
func NewRand(seed int64) (*rand.Rand, int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)), seed
}
