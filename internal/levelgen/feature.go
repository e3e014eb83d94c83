package levelgen

import (
	"fmt"
	"strings"
)

// Feature is one toggleable level ingredient. The order matches the marker
// catalogue of the scanning client.
type Feature uint8

const (
	FeatureGoal Feature = iota
	FeatureSpawn
	FeatureMaze
	FeatureHorizontalGate
	FeatureVerticalGate
	FeaturePath
	FeatureColorBomb
	FeatureBlackAndWhite
	FeatureCount // Sentinel value for iteration
)

// String returns the short name used on the command line.
func (f Feature) String() string {
	switch f {
	case FeatureGoal:
		return "goal"
	case FeatureSpawn:
		return "spawn"
	case FeatureMaze:
		return "maze"
	case FeatureHorizontalGate:
		return "hgate"
	case FeatureVerticalGate:
		return "vgate"
	case FeaturePath:
		return "path"
	case FeatureColorBomb:
		return "colorbomb"
	case FeatureBlackAndWhite:
		return "bw"
	default:
		return "unknown"
	}
}

// Title returns a human readable label.
func (f Feature) Title() string {
	switch f {
	case FeatureGoal:
		return "Goal flag"
	case FeatureSpawn:
		return "Spawn point"
	case FeatureMaze:
		return "Maze"
	case FeatureHorizontalGate:
		return "Horizontal gate"
	case FeatureVerticalGate:
		return "Vertical gate"
	case FeaturePath:
		return "Path"
	case FeatureColorBomb:
		return "Color bomb"
	case FeatureBlackAndWhite:
		return "Black & white"
	default:
		return "Unknown"
	}
}

// AllFeatures returns the catalogue in marker order.
func AllFeatures() []Feature {
	out := make([]Feature, 0, FeatureCount)
	for f := FeatureGoal; f < FeatureCount; f++ {
		out = append(out, f)
	}
	return out
}

// ParseFeature converts a short name to a Feature.
func ParseFeature(name string) (Feature, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, f := range AllFeatures() {
		if f.String() == name {
			return f, true
		}
	}
	return 0, false
}

// FeatureFlags is a set of enabled features.
type FeatureFlags uint16

// Flags builds a set from individual features.
func Flags(fs ...Feature) FeatureFlags {
	var out FeatureFlags
	for _, f := range fs {
		out |= 1 << f
	}
	return out
}

// Has reports whether a feature is enabled.
func (ff FeatureFlags) Has(f Feature) bool {
	return ff&(1<<f) != 0
}

// With returns a copy with the given features enabled.
func (ff FeatureFlags) With(fs ...Feature) FeatureFlags {
	return ff | Flags(fs...)
}

// Toggle flips one feature.
func (ff FeatureFlags) Toggle(f Feature) FeatureFlags {
	return ff ^ (1 << f)
}

// List returns the enabled features in catalogue order.
func (ff FeatureFlags) List() []Feature {
	var out []Feature
	for _, f := range AllFeatures() {
		if ff.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

// AnyGate reports whether either gate is enabled.
func (ff FeatureFlags) AnyGate() bool {
	return ff.Has(FeatureHorizontalGate) || ff.Has(FeatureVerticalGate)
}

// String renders the set as a comma separated list of short names.
func (ff FeatureFlags) String() string {
	names := make([]string, 0, FeatureCount)
	for _, f := range ff.List() {
		names = append(names, f.String())
	}
	return strings.Join(names, ",")
}

// ParseFeatures parses a comma separated list like "goal,spawn,path".
// Empty entries are ignored; unknown names are an error.
func ParseFeatures(s string) (FeatureFlags, error) {
	var out FeatureFlags
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		f, ok := ParseFeature(part)
		if !ok {
			return 0, fmt.Errorf("levelgen: unknown feature %q: %w", strings.TrimSpace(part), ErrInvalidConfig)
		}
		out = out.With(f)
	}
	return out, nil
}

// ParseFeaturesLenient is ParseFeatures that skips unknown names and
// returns them so the caller can warn.
func ParseFeaturesLenient(s string) (FeatureFlags, []string) {
	var out FeatureFlags
	var unknown []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if f, ok := ParseFeature(part); ok {
			out = out.With(f)
		} else {
			unknown = append(unknown, part)
		}
	}
	return out, unknown
}
