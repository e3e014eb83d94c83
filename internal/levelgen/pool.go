package levelgen

import (
	"fmt"
	"sort"

	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/levelforge/internal/core"
)

// PositionPool tracks the cells already claimed by structural elements
// during one generation attempt.
type PositionPool struct {
	cells mapset.Set[core.Cell]
}

// NewPositionPool creates an empty pool.
func NewPositionPool() *PositionPool {
	return &PositionPool{cells: mapset.New[core.Cell]()}
}

// Reserve claims a cell. It returns false if the cell was already taken.
func (p *PositionPool) Reserve(c core.Cell) bool {
	if p.cells.Has(c) {
		return false
	}
	p.cells.Put(c)
	return true
}

// IsFree reports whether a cell is unclaimed.
func (p *PositionPool) IsFree(c core.Cell) bool {
	return !p.cells.Has(c)
}

// Clear releases every cell.
func (p *PositionPool) Clear() {
	p.cells = mapset.New[core.Cell]()
}

// Len returns the number of reserved cells.
func (p *PositionPool) Len() int {
	return p.cells.Size()
}

// Cells returns a row-major sorted snapshot of the reserved cells.
func (p *PositionPool) Cells() []core.Cell {
	out := make([]core.Cell, 0, p.cells.Size())
	p.cells.Each(func(c core.Cell) {
		out = append(out, c)
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// FreeIn returns the unclaimed cells of a rectangle in row-major order.
func (p *PositionPool) FreeIn(r core.Rect) []core.Cell {
	var out []core.Cell
	for _, c := range r.Cells() {
		if p.IsFree(c) {
			out = append(out, c)
		}
	}
	return out
}

// PlaceRandom picks a uniformly random free cell of r and reserves it.
// It fails with ErrNoSolution when r has no free cell.
func (p *PositionPool) PlaceRandom(r core.Rect, rng core.RandomSource) (core.Cell, error) {
	free := p.FreeIn(r)
	if len(free) == 0 {
		return core.Cell{}, fmt.Errorf("levelgen: no free cell in %+v: %w", r, ErrNoSolution)
	}
	c := free[rng.Intn(len(free))]
	p.Reserve(c)
	return c, nil
}
