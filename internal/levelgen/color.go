package levelgen

import (
	"github.com/vovakirdan/levelforge/internal/core"
	"github.com/vovakirdan/levelforge/internal/level"
)

// ColorMode is the coloring policy derived from the feature flags.
type ColorMode uint8

const (
	ColorClassic ColorMode = iota
	ColorBomb
	ColorNoir
	ColorBombNoir
)

// String returns the string representation of a color mode.
func (m ColorMode) String() string {
	switch m {
	case ColorClassic:
		return "classic"
	case ColorBomb:
		return "bomb"
	case ColorNoir:
		return "noir"
	case ColorBombNoir:
		return "bomb-noir"
	default:
		return "unknown"
	}
}

// ColorMode returns the coloring policy for these flags.
func (ff FeatureFlags) ColorMode() ColorMode {
	bomb, noir := ff.Has(FeatureColorBomb), ff.Has(FeatureBlackAndWhite)
	switch {
	case bomb && noir:
		return ColorBombNoir
	case bomb:
		return ColorBomb
	case noir:
		return ColorNoir
	default:
		return ColorClassic
	}
}

// painter hands out colors for each element role.
type painter struct {
	mode ColorMode
	rng  core.RandomSource
}

func (p painter) pick(classic, noir string) string {
	switch p.mode {
	case ColorBombNoir:
		if p.rng.Intn(2) == 0 {
			return level.Black
		}
		return level.White
	case ColorBomb:
		return level.Palette[p.rng.Intn(len(level.Palette))]
	case ColorNoir:
		return noir
	default:
		return classic
	}
}

func (p painter) wall() string  { return p.pick(level.Black, level.Black) }
func (p painter) floor() string { return p.pick(level.LightOrange, level.Black) }
func (p painter) path() string  { return p.pick(level.Purple, level.White) }

func (p painter) door(a Axis) string {
	if a == AxisVertical {
		return p.pick(level.Red, level.White)
	}
	return p.pick(level.Turquoise, level.White)
}
