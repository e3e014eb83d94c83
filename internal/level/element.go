// Package level holds the structured model of a generated level and the
// codec that turns it into the JSON document consumed by the game client.
package level

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/levelforge/internal/core"
)

// Kind is the closed set of placeable element types.
type Kind uint8

const (
	KindBlock Kind = iota
	KindDoor
	KindPlate
	KindStraightPath
	KindCornerPath
	KindFlag
	KindSpawnpoint
	KindCount // Sentinel value for iteration
)

// String returns the string representation of a kind.
func (k Kind) String() string {
	switch k {
	case KindBlock:
		return "block"
	case KindDoor:
		return "door"
	case KindPlate:
		return "plate"
	case KindStraightPath:
		return "straight-path"
	case KindCornerPath:
		return "corner-path"
	case KindFlag:
		return "flag"
	case KindSpawnpoint:
		return "spawnpoint"
	default:
		return "unknown"
	}
}

// Prefix returns the name prefix the game client expects for this kind.
func (k Kind) Prefix() string {
	switch k {
	case KindBlock:
		return "Full Block"
	case KindDoor:
		return "Lifting Door"
	case KindPlate:
		return "Pressure Plate"
	case KindStraightPath:
		return "Straight Path"
	case KindCornerPath:
		return "Corner Path"
	case KindFlag:
		return "Flag"
	case KindSpawnpoint:
		return "Spawnpoint"
	default:
		return ""
	}
}

// IsPath reports whether the kind is a path piece.
func (k Kind) IsPath() bool {
	return k == KindStraightPath || k == KindCornerPath
}

// Colored reports whether elements of this kind carry a color option.
func (k Kind) Colored() bool {
	switch k {
	case KindPlate, KindFlag, KindSpawnpoint:
		return false
	default:
		return true
	}
}

// AllKinds returns every kind in declaration order.
func AllKinds() []Kind {
	out := make([]Kind, 0, KindCount)
	for k := KindBlock; k < KindCount; k++ {
		out = append(out, k)
	}
	return out
}

// ParseName splits an element name like "Full Block 12" into its kind and index.
func ParseName(name string) (Kind, int, error) {
	for _, k := range AllKinds() {
		rest, ok := strings.CutPrefix(name, k.Prefix()+" ")
		if !ok {
			continue
		}
		var idx int
		if _, err := fmt.Sscanf(rest, "%d", &idx); err != nil {
			return 0, 0, fmt.Errorf("element name %q: bad index: %w", name, err)
		}
		return k, idx, nil
	}
	return 0, 0, fmt.Errorf("element name %q: unknown kind", name)
}

// Yaw values are the four quarter turns around the vertical axis, in degrees.
const (
	Yaw0   = 0
	Yaw90  = 90
	Yaw180 = 180
	Yaw270 = 270
)

// Yaws lists the legal yaw values.
var Yaws = [4]int{Yaw0, Yaw90, Yaw180, Yaw270}

// Height of an element above the board. Floor tiles sit at 0, everything else at 1.
const (
	HeightFloor = 0
	HeightBoard = 1
)

// Element is one placed object of a level.
type Element struct {
	Kind   Kind
	Index  int       // Name counter; shared by blocks and paths, by doors and plates
	Cell   core.Cell // Board position; Y maps to the exported Z axis
	Height int
	Yaw    int
	Color  string // Palette name; empty for kinds without a color option
	Door   int    // Door index a plate toggles
}

// Name returns the legacy element name.
func (e Element) Name() string {
	return fmt.Sprintf("%s %d", e.Kind.Prefix(), e.Index)
}

// Structural reports whether the element occupies its cell on the board layer.
func (e Element) Structural() bool {
	return e.Height == HeightBoard && !e.Kind.IsPath()
}
