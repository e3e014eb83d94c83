package levelgen

import (
	"fmt"

	"github.com/vovakirdan/levelforge/internal/core"
)

// MazeOrigin is the lattice cell carving starts from.
var MazeOrigin = core.C(1, 1)

// MazeGrid is a carved maze: true cells are open corridor, false are wall.
// The outer ring is always wall.
type MazeGrid struct {
	size int
	open [][]bool // indexed [y][x]
}

func newMazeGrid(size int) *MazeGrid {
	open := make([][]bool, size)
	for y := range open {
		open[y] = make([]bool, size)
	}
	return &MazeGrid{size: size, open: open}
}

// Size returns the side length of the grid.
func (m *MazeGrid) Size() int {
	return m.size
}

// InBounds reports whether c lies on the grid.
func (m *MazeGrid) InBounds(c core.Cell) bool {
	return c.X >= 0 && c.X < m.size && c.Y >= 0 && c.Y < m.size
}

// IsOpen reports whether c is an open corridor cell.
func (m *MazeGrid) IsOpen(c core.Cell) bool {
	return m.InBounds(c) && m.open[c.Y][c.X]
}

func (m *MazeGrid) isInterior(c core.Cell) bool {
	return c.X > 0 && c.X < m.size-1 && c.Y > 0 && c.Y < m.size-1
}

// SolidInterior returns the wall cells inside the border ring, column by column.
func (m *MazeGrid) SolidInterior() []core.Cell {
	var out []core.Cell
	for x := 1; x < m.size-1; x++ {
		for y := 1; y < m.size-1; y++ {
			if !m.open[y][x] {
				out = append(out, core.C(x, y))
			}
		}
	}
	return out
}

// OpenCells returns the open cells in row-major order.
func (m *MazeGrid) OpenCells() []core.Cell {
	var out []core.Cell
	for y := 0; y < m.size; y++ {
		for x := 0; x < m.size; x++ {
			if m.open[y][x] {
				out = append(out, core.C(x, y))
			}
		}
	}
	return out
}

// Equal reports whether two grids have identical layouts.
func (m *MazeGrid) Equal(other *MazeGrid) bool {
	if other == nil || m.size != other.size {
		return false
	}
	for y := range m.open {
		for x := range m.open[y] {
			if m.open[y][x] != other.open[y][x] {
				return false
			}
		}
	}
	return true
}

// FarthestReachable returns the open cell with the greatest BFS depth from
// from. Ties go to the cell discovered first.
func (m *MazeGrid) FarthestReachable(from core.Cell) core.Cell {
	best, bestDepth := from, -1
	floodFill(from, m.IsOpen, func(c core.Cell, depth int) bool {
		if depth > bestDepth {
			best, bestDepth = c, depth
		}
		return true
	})
	return best
}

// Reachable reports whether to can be reached from from over open cells.
func (m *MazeGrid) Reachable(from, to core.Cell) bool {
	if !m.IsOpen(to) {
		return false
	}
	return connected(from, to, m.IsOpen)
}

// carveFrame is one level of the explicit carving stack.
type carveFrame struct {
	cell core.Cell
	dirs [4]core.Dir
	next int
}

// CarveMaze builds a randomized depth-first spanning tree over the odd
// lattice of an odd-sized grid, then opens extra loops with probability loopP.
func CarveMaze(size int, start core.Cell, loopP float64, rng core.RandomSource) (*MazeGrid, error) {
	if size < 7 || size%2 == 0 {
		return nil, fmt.Errorf("levelgen: maze size %d must be odd and at least 7: %w", size, ErrInvalidConfig)
	}
	if start.X%2 == 0 || start.Y%2 == 0 || start.X <= 0 || start.Y <= 0 || start.X >= size-1 || start.Y >= size-1 {
		return nil, fmt.Errorf("levelgen: maze start %v is not a lattice cell: %w", start, ErrInvalidConfig)
	}

	m := newMazeGrid(size)
	m.open[start.Y][start.X] = true
	stack := []*carveFrame{newCarveFrame(start, rng)}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.next >= len(top.dirs) {
			stack = stack[:len(stack)-1]
			continue
		}
		d := top.dirs[top.next]
		top.next++

		mid := top.cell.Step(d)
		dst := mid.Step(d)
		if !m.isInterior(dst) || m.open[dst.Y][dst.X] || m.open[mid.Y][mid.X] {
			continue
		}
		m.open[mid.Y][mid.X] = true
		m.open[dst.Y][dst.X] = true
		stack = append(stack, newCarveFrame(dst, rng))
	}

	if loopP > 0 {
		m.braid(loopP, rng)
	}
	return m, nil
}

func newCarveFrame(c core.Cell, rng core.RandomSource) *carveFrame {
	f := &carveFrame{cell: c, dirs: core.Dirs}
	rng.Shuffle(len(f.dirs), func(i, j int) {
		f.dirs[i], f.dirs[j] = f.dirs[j], f.dirs[i]
	})
	return f
}

// braid opens interior walls that sit between exactly two open cells,
// turning the tree into a graph with a few cycles.
func (m *MazeGrid) braid(p float64, rng core.RandomSource) {
	for y := 1; y < m.size-1; y++ {
		for x := 1; x < m.size-1; x++ {
			if m.open[y][x] || (x%2 == 0 && y%2 == 0) {
				continue
			}
			c := core.C(x, y)
			open := 0
			for _, n := range c.Neighbors() {
				if m.IsOpen(n) {
					open++
				}
			}
			if open == 2 && rng.Float64() < p {
				m.open[y][x] = true
			}
		}
	}
}
