package levelgen

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/levelforge/internal/core"
)

// floodFill walks the cells reachable from start in breadth-first order.
// The start cell is always visited; other cells only when passable.
// visit returns false to stop early.
func floodFill(start core.Cell, passable func(core.Cell) bool, visit func(c core.Cell, depth int) bool) {
	type node struct {
		cell  core.Cell
		depth int
	}

	seen := mapset.New[core.Cell]()
	seen.Put(start)
	queue := []node{{start, 0}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if !visit(cur.cell, cur.depth) {
			return
		}

		for _, n := range cur.cell.Neighbors() {
			if seen.Has(n) || !passable(n) {
				continue
			}
			seen.Put(n)
			queue = append(queue, node{n, cur.depth + 1})
		}
	}
}

// reachableSet returns every cell floodFill reaches from start.
func reachableSet(start core.Cell, passable func(core.Cell) bool) mapset.Set[core.Cell] {
	out := mapset.New[core.Cell]()
	floodFill(start, passable, func(c core.Cell, _ int) bool {
		out.Put(c)
		return true
	})
	return out
}

// connected reports whether to is reachable from from.
func connected(from, to core.Cell, passable func(core.Cell) bool) bool {
	found := false
	floodFill(from, passable, func(c core.Cell, _ int) bool {
		if c == to {
			found = true
			return false
		}
		return true
	})
	return found
}

// interior returns the rectangle of non-border cells of an n x n grid.
func interior(n int) core.Rect {
	return core.Span(1, n-1, 1, n-1)
}
