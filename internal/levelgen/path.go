package levelgen

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/levelforge/internal/core"
	"github.com/vovakirdan/levelforge/internal/level"
)

// PathRouter finds simple walkable routes between waypoints.
type PathRouter struct {
	Size    int
	Pool    *PositionPool
	Reserve bool // Claim routed cells so later segments avoid them
	Rng     core.RandomSource
}

type routeFrame struct {
	cell  core.Cell
	moves []core.Cell
	next  int
}

// Route returns a contiguous cell sequence from start to end inclusive, or
// nil when none exists. Reserved cells other than start and end are walls,
// and a cell visited once stays closed for the rest of the call, so the
// search touches each cell at most once.
func (r *PathRouter) Route(start, end core.Cell) []core.Cell {
	inner := interior(r.Size)
	visited := mapset.New[core.Cell]()
	open := func(c core.Cell) bool {
		if !inner.Contains(c) || visited.Has(c) {
			return false
		}
		return c == start || c == end || r.Pool.IsFree(c)
	}
	if !open(start) {
		return nil
	}

	var path []core.Cell
	var stack []*routeFrame
	enter := func(c core.Cell) bool {
		visited.Put(c)
		path = append(path, c)
		if c == end {
			return true
		}
		stack = append(stack, &routeFrame{cell: c, moves: r.orderMoves(c, end)})
		return false
	}

	if enter(start) {
		return path
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.next >= len(top.moves) {
			stack = stack[:len(stack)-1]
			path = path[:len(path)-1]
			continue
		}
		next := top.moves[top.next]
		top.next++
		if !open(next) {
			continue
		}
		if enter(next) {
			if r.Reserve {
				for _, c := range path {
					if c != start && c != end {
						r.Pool.Reserve(c)
					}
				}
			}
			return path
		}
	}
	return nil
}

// orderMoves shuffles the four neighbors and puts the ones that do not move
// away from the target first.
func (r *PathRouter) orderMoves(c, target core.Cell) []core.Cell {
	dirs := core.Dirs
	r.Rng.Shuffle(len(dirs), func(i, j int) {
		dirs[i], dirs[j] = dirs[j], dirs[i]
	})

	dist := c.Manhattan(target)
	greedy := make([]core.Cell, 0, 4)
	var detour []core.Cell
	for _, d := range dirs {
		n := c.Step(d)
		if n.Manhattan(target) <= dist {
			greedy = append(greedy, n)
		} else {
			detour = append(detour, n)
		}
	}
	return append(greedy, detour...)
}

// RouteChain routes through every waypoint in order and joins the segments,
// dropping the repeated joint cell at the start of each later segment.
func (r *PathRouter) RouteChain(waypoints []core.Cell) ([]core.Cell, error) {
	if len(waypoints) < 2 {
		return nil, fmt.Errorf("levelgen: path needs two waypoints, got %d: %w", len(waypoints), ErrNoSolution)
	}
	var out []core.Cell
	for i := 0; i < len(waypoints)-1; i++ {
		seg := r.Route(waypoints[i], waypoints[i+1])
		if len(seg) == 0 {
			return nil, fmt.Errorf("levelgen: no route %v -> %v: %w", waypoints[i], waypoints[i+1], ErrNoSolution)
		}
		if i > 0 {
			seg = seg[1:]
		}
		out = append(out, seg...)
	}
	return out, nil
}

// PathPiece is one rendered tile of a path.
type PathPiece struct {
	Cell core.Cell
	Kind level.Kind
	Yaw  int
}

// PathPieces turns a routed cell sequence into straight and corner tiles.
func PathPieces(path []core.Cell) []PathPiece {
	if len(path) < 2 {
		return nil
	}
	out := make([]PathPiece, 0, len(path))
	last := len(path) - 1
	for i, pos := range path {
		switch i {
		case 0:
			out = append(out, PathPiece{pos, level.KindStraightPath, straightYaw(pos, path[1])})
		case last:
			out = append(out, PathPiece{pos, level.KindStraightPath, straightYaw(pos, path[i-1])})
		default:
			prev, next := path[i-1], path[i+1]
			if prev.X != next.X && prev.Y != next.Y {
				out = append(out, PathPiece{pos, level.KindCornerPath, cornerYaw(prev, pos, next)})
			} else {
				out = append(out, PathPiece{pos, level.KindStraightPath, straightYaw(pos, next)})
			}
		}
	}
	return out
}

// straightYaw lays a straight tile along x when the neighbor differs in x.
func straightYaw(pos, neighbor core.Cell) int {
	if neighbor.X != pos.X {
		return level.Yaw270
	}
	return level.Yaw0
}

// cornerYaw picks the corner rotation from the diagonal between the
// predecessor and successor and whether the turn leaves along y.
func cornerYaw(prev, pos, next core.Cell) int {
	dx, dy := core.Sign(next.X-prev.X), core.Sign(next.Y-prev.Y)
	switch {
	case dx > 0 && dy > 0:
		if pos.Y+1 == next.Y {
			return level.Yaw180
		}
		return level.Yaw0
	case dx > 0 && dy < 0:
		if pos.Y-1 == next.Y {
			return level.Yaw90
		}
		return level.Yaw270
	case dx < 0 && dy > 0:
		if pos.Y+1 == next.Y {
			return level.Yaw270
		}
		return level.Yaw90
	case dx < 0 && dy < 0:
		if pos.Y-1 == next.Y {
			return level.Yaw0
		}
		return level.Yaw180
	}
	return level.Yaw0
}
