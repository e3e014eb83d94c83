package core

// Rect is a half-open block of cells: [X, X+W) x [Y, Y+H).
type Rect struct {
	X, Y int // Top-left cell
	W, H int // Width and height in cells
}

// NewRect creates a new rectangle with the given origin and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Span creates a rectangle from half-open bounds [minX, maxX) x [minY, maxY).
// Inverted bounds produce an empty rectangle.
func Span(minX, maxX, minY, maxY int) Rect {
	return Rect{X: minX, Y: minY, W: Max(0, maxX-minX), H: Max(0, maxY-minY)}
}

// Right returns the exclusive right bound.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the exclusive bottom bound.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Empty reports whether the rectangle holds no cells.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains returns true if the cell lies inside the rectangle.
func (r Rect) Contains(c Cell) bool {
	return c.X >= r.X && c.X < r.Right() && c.Y >= r.Y && c.Y < r.Bottom()
}

// Cells returns every cell of the rectangle in row-major order.
func (r Rect) Cells() []Cell {
	if r.Empty() {
		return nil
	}
	out := make([]Cell, 0, r.W*r.H)
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			out = append(out, C(x, y))
		}
	}
	return out
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Sign returns -1, 0 or 1.
func Sign(x int) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
