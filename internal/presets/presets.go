// Package presets registers the built-in level recipes.
package presets

import (
	"github.com/vovakirdan/levelforge/internal/levelgen"
	"github.com/vovakirdan/levelforge/internal/registry"
)

// Preset is a fixed feature set with a preferred size.
type Preset struct {
	id          string
	title       string
	features    levelgen.FeatureFlags
	defaultSize int
}

// ID returns the preset identifier.
func (p Preset) ID() string { return p.id }

// Title returns the display name.
func (p Preset) Title() string { return p.title }

// Features returns the enabled features.
func (p Preset) Features() levelgen.FeatureFlags { return p.features }

// Configure builds a configuration; size 0 selects the preset default.
func (p Preset) Configure(size int) levelgen.LevelConfig {
	if size <= 0 {
		size = p.defaultSize
	}
	return levelgen.LevelConfig{Size: size, Features: p.features}
}

var base = levelgen.Flags(levelgen.FeatureGoal, levelgen.FeatureSpawn)

// Builtin lists the built-in presets in display order.
var Builtin = []Preset{
	{"open", "Open field", base, 9},
	{"path", "Marked path", base.With(levelgen.FeaturePath), 9},
	{"maze", "Maze", base.With(levelgen.FeatureMaze), 11},
	{"maze-path", "Maze with marked path", base.With(levelgen.FeatureMaze, levelgen.FeaturePath), 11},
	{"gated", "Single gate", base.With(levelgen.FeatureHorizontalGate, levelgen.FeaturePath), 9},
	{"double-gated", "Two gates", base.With(levelgen.FeatureHorizontalGate, levelgen.FeatureVerticalGate, levelgen.FeaturePath), 11},
	{"gated-maze", "Gated maze", base.With(levelgen.FeatureMaze, levelgen.FeatureHorizontalGate), 13},
	{"color-bomb", "Color bomb", base.With(levelgen.FeaturePath, levelgen.FeatureColorBomb), 9},
	{"noir", "Black and white maze", base.With(levelgen.FeatureMaze, levelgen.FeaturePath, levelgen.FeatureBlackAndWhite), 11},
}

func init() {
	for _, p := range Builtin {
		p := p
		registry.Register(p.id, func() registry.Preset { return p })
	}
}
