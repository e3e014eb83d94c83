package levelgen

import (
	"fmt"

	"github.com/vovakirdan/levelforge/internal/core"
	"github.com/vovakirdan/levelforge/internal/level"
)

// Axis is the direction a gate's wall runs.
type Axis uint8

const (
	AxisHorizontal Axis = iota
	AxisVertical
)

// String returns the string representation of an axis.
func (a Axis) String() string {
	switch a {
	case AxisHorizontal:
		return "horizontal"
	case AxisVertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// Yaw returns the door rotation for this axis.
func (a Axis) Yaw() int {
	if a == AxisVertical {
		return level.Yaw90
	}
	return level.Yaw0
}

// flanks returns the two neighbors along the gate wall and the two across it.
func (a Axis) flanks(door core.Cell) (along, across [2]core.Cell) {
	if a == AxisHorizontal {
		return [2]core.Cell{door.Add(1, 0), door.Add(-1, 0)}, [2]core.Cell{door.Add(0, 1), door.Add(0, -1)}
	}
	return [2]core.Cell{door.Add(0, 1), door.Add(0, -1)}, [2]core.Cell{door.Add(1, 0), door.Add(-1, 0)}
}

// Gate is a lifting door and the pressure plate that opens it.
type Gate struct {
	Door  core.Cell
	Plate core.Cell
	Axis  Axis
}

// GateSearch describes one gate placement problem inside an already
// populated grid.
type GateSearch struct {
	Size     int
	Axis     Axis
	Origin   core.Cell  // Where the player starts; plates must be reachable from here
	Spawn    *core.Cell // Optional; may not flank the door
	Flag     *core.Cell // Optional; may not flank the door
	Other    *Gate      // Gate placed earlier, if any
	Attempts int        // Ceiling on door draws and on plate draws per door
}

// SolveGate finds a door and plate satisfying the placement rules and
// reserves both. It returns ErrNoSolution when the draws run out.
func SolveGate(pool *PositionPool, s GateSearch, rng core.RandomSource) (Gate, error) {
	inner := interior(s.Size)
	doors := pool.FreeIn(inner)

	for draw := 0; draw < s.Attempts && len(doors) > 0; draw++ {
		door := takeRandom(&doors, rng)
		if !s.doorFits(pool, door) {
			continue
		}

		passable := func(c core.Cell) bool {
			return inner.Contains(c) && c != door && pool.IsFree(c)
		}
		reach := reachableSet(s.Origin, passable)

		plates := pool.FreeIn(inner)
		for pdraw := 0; pdraw < s.Attempts && len(plates) > 0; pdraw++ {
			plate := takeRandom(&plates, rng)
			if plate == door || !reach.Has(plate) {
				continue
			}
			pool.Reserve(door)
			pool.Reserve(plate)
			return Gate{Door: door, Plate: plate, Axis: s.Axis}, nil
		}
	}
	return Gate{}, fmt.Errorf("levelgen: %s gate: %w", s.Axis, ErrNoSolution)
}

func (s GateSearch) doorFits(pool *PositionPool, door core.Cell) bool {
	if !pool.IsFree(door) {
		return false
	}
	// Keep off the ring next to the border.
	if door.X <= 1 || door.Y <= 1 || door.X >= s.Size-2 || door.Y >= s.Size-2 {
		return false
	}
	if s.Other != nil && door.Adjacent(s.Other.Door) {
		return false
	}

	along, across := s.Axis.flanks(door)
	for _, c := range along {
		if pool.IsFree(c) || s.isAnchor(c) {
			return false
		}
	}
	for _, c := range across {
		if !pool.IsFree(c) {
			return false
		}
	}
	return true
}

func (s GateSearch) isAnchor(c core.Cell) bool {
	return (s.Spawn != nil && *s.Spawn == c) ||
		(s.Flag != nil && *s.Flag == c) ||
		(s.Other != nil && s.Other.Door == c)
}

// takeRandom removes and returns a random element, sampling without replacement.
func takeRandom(cells *[]core.Cell, rng core.RandomSource) core.Cell {
	list := *cells
	i := rng.Intn(len(list))
	c := list[i]
	last := len(list) - 1
	list[i] = list[last]
	*cells = list[:last]
	return c
}
