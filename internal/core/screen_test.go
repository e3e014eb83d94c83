package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Errorf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, 'X', "Red")
	if g := s.GetGlyph(5, 5); g.Rune != 'X' || g.Color != "Red" {
		t.Errorf("GetGlyph(5, 5) = %+v, expected X/Red", g)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
	if s.Get(100, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenDrawTextAndString(t *testing.T) {
	s := NewScreen(5, 2)
	s.DrawText(1, 0, "abcdef")
	s.DrawText(0, 1, "█▓")

	lines := strings.Split(s.String(), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0] != " abcd" {
		t.Errorf("line 0 = %q, expected %q", lines[0], " abcd")
	}
	if s.Row(1) != "█▓   " {
		t.Errorf("Row(1) = %q, expected %q", s.Row(1), "█▓   ")
	}
}
