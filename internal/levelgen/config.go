package levelgen

import (
	"fmt"
	"strconv"
	"strings"
)

// Header carries the descriptive fields written to the document environment.
type Header struct {
	LevelName string
	Author    string
	Skybox    string
}

// Params are the tunables of the generator.
type Params struct {
	MinSize         int     // Smallest accepted grid size
	MaxSize         int     // Largest accepted grid size
	MaxAttempts     int     // Whole-level retries before giving up
	GateAttempts    int     // Door draws and plate draws per gate search
	LoopProbability float64 // Chance of opening an extra maze wall (0-1)
}

// DefaultParams returns sensible defaults for generation.
func DefaultParams() Params {
	return Params{
		MinSize:         7,
		MaxSize:         41,
		MaxAttempts:     50,
		GateAttempts:    40,
		LoopProbability: 0.1,
	}
}

// withDefaults fills zero fields from DefaultParams. A zero LoopProbability
// is kept unless every field is zero.
func (p Params) withDefaults() Params {
	d := DefaultParams()
	if p == (Params{}) {
		return d
	}
	if p.MaxSize <= 0 {
		p.MaxSize = d.MaxSize
	}
	if p.MinSize <= 0 {
		p.MinSize = d.MinSize
	}
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = d.MaxAttempts
	}
	if p.GateAttempts <= 0 {
		p.GateAttempts = d.GateAttempts
	}
	return p
}

// LevelConfig is everything one generation needs.
type LevelConfig struct {
	Size     int
	Features FeatureFlags
	Header   Header
	Params   Params
}

// EffectiveSize returns the grid size actually used: odd when a maze is requested.
func (c LevelConfig) EffectiveSize() int {
	if c.Features.Has(FeatureMaze) && c.Size%2 == 0 {
		return c.Size + 1
	}
	return c.Size
}

// Validate checks the configuration. Every error wraps ErrInvalidConfig.
func (c LevelConfig) Validate() error {
	p := c.Params.withDefaults()
	switch {
	case p.MinSize < 7:
		return fmt.Errorf("levelgen: min size %d below 7: %w", p.MinSize, ErrInvalidConfig)
	case c.Size < p.MinSize:
		return fmt.Errorf("levelgen: size %d below minimum %d: %w", c.Size, p.MinSize, ErrInvalidConfig)
	case c.Size > p.MaxSize:
		return fmt.Errorf("levelgen: size %d above maximum %d: %w", c.Size, p.MaxSize, ErrInvalidConfig)
	case p.LoopProbability < 0 || p.LoopProbability > 1:
		return fmt.Errorf("levelgen: loop probability %v outside [0,1]: %w", p.LoopProbability, ErrInvalidConfig)
	case c.Features.Has(FeaturePath) && !(c.Features.Has(FeatureSpawn) && c.Features.Has(FeatureGoal)):
		return fmt.Errorf("levelgen: path needs both spawn and goal: %w", ErrInvalidConfig)
	}
	return nil
}

// ParseSize reads a size typed by the user. Non-numeric text falls back to
// min and values below min are raised to it; ok is false when the text could
// not be read at all.
func ParseSize(text string, min int) (size int, ok bool) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return min, false
	}
	if n < min {
		return min, true
	}
	return n, true
}
