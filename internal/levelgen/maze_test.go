package levelgen

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/vovakirdan/levelforge/internal/core"
)

func TestCarveMazeInvalid(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tests := []struct {
		name  string
		size  int
		start core.Cell
	}{
		{"even size", 8, MazeOrigin},
		{"too small", 5, MazeOrigin},
		{"even start", 9, core.C(2, 1)},
		{"start on border", 9, core.C(0, 1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, err := CarveMaze(tc.size, tc.start, 0, rng)
			if !errors.Is(err, ErrInvalidConfig) || m != nil {
				t.Errorf("CarveMaze(%d, %v) = %v, %v; expected ErrInvalidConfig", tc.size, tc.start, m, err)
			}
		})
	}
}

func TestCarveMazeSpanningTree(t *testing.T) {
	for _, size := range []int{7, 9, 15, 21} {
		for seed := int64(1); seed <= 5; seed++ {
			m, err := CarveMaze(size, MazeOrigin, 0, rand.New(rand.NewSource(seed)))
			if err != nil {
				t.Fatalf("CarveMaze(%d) failed: %v", size, err)
			}

			for i := 0; i < size; i++ {
				for _, c := range []core.Cell{core.C(i, 0), core.C(i, size-1), core.C(0, i), core.C(size-1, i)} {
					if m.IsOpen(c) {
						t.Fatalf("size %d seed %d: border cell %v is open", size, seed, c)
					}
				}
			}

			// Every lattice cell is carved and a perfect maze has exactly
			// lattice-1 passages between them.
			lattice := ((size - 1) / 2) * ((size - 1) / 2)
			if got := len(m.OpenCells()); got != 2*lattice-1 {
				t.Errorf("size %d seed %d: %d open cells, expected %d", size, seed, got, 2*lattice-1)
			}
			for y := 1; y < size-1; y += 2 {
				for x := 1; x < size-1; x += 2 {
					if !m.Reachable(MazeOrigin, core.C(x, y)) {
						t.Errorf("size %d seed %d: lattice cell (%d,%d) unreachable", size, seed, x, y)
					}
				}
			}
		}
	}
}

func TestCarveMazeLoops(t *testing.T) {
	perfect, _ := CarveMaze(21, MazeOrigin, 0, rand.New(rand.NewSource(3)))
	braided, _ := CarveMaze(21, MazeOrigin, 1, rand.New(rand.NewSource(3)))

	if len(braided.OpenCells()) <= len(perfect.OpenCells()) {
		t.Errorf("loop pass opened nothing: %d vs %d open cells", len(braided.OpenCells()), len(perfect.OpenCells()))
	}
	for _, c := range perfect.OpenCells() {
		if !braided.IsOpen(c) {
			t.Errorf("loop pass closed %v", c)
		}
	}
	for y := 0; y < 21; y += 2 {
		for x := 0; x < 21; x += 2 {
			if braided.IsOpen(core.C(x, y)) {
				t.Errorf("pillar (%d,%d) opened", x, y)
			}
		}
	}
}

func TestCarveMazeDeterministic(t *testing.T) {
	a, _ := CarveMaze(15, MazeOrigin, 0.2, rand.New(rand.NewSource(99)))
	b, _ := CarveMaze(15, MazeOrigin, 0.2, rand.New(rand.NewSource(99)))
	if !a.Equal(b) {
		t.Error("same seed produced different mazes")
	}
}

func TestFarthestReachable(t *testing.T) {
	// A single corridor along row 1.
	m := newMazeGrid(7)
	for x := 1; x <= 5; x++ {
		m.open[1][x] = true
	}

	if got := m.FarthestReachable(core.C(1, 1)); got != core.C(5, 1) {
		t.Errorf("FarthestReachable((1,1)) = %v, expected (5,1)", got)
	}
	if got := m.FarthestReachable(core.C(5, 1)); got != core.C(1, 1) {
		t.Errorf("FarthestReachable((5,1)) = %v, expected (1,1)", got)
	}
	if m.Reachable(core.C(1, 1), core.C(1, 3)) {
		t.Error("Reachable() into a wall should be false")
	}
}
