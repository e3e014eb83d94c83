package level

import (
	"github.com/vovakirdan/levelforge/internal/core"
)

// Environment is the document header.
type Environment struct {
	Skybox     string
	LevelName  string
	UserName   string
	DevMinutes int
	DevSeconds int
	DevBlocks  int
}

// Document is a complete level: header plus the three element lists.
type Document struct {
	Environment Environment
	Spawnpoints []Element
	Flags       []Element
	Level       []Element
}

// NewDocument creates an empty document with the given header.
func NewDocument(env Environment) *Document {
	return &Document{
		Environment: env,
		Spawnpoints: []Element{},
		Flags:       []Element{},
		Level:       []Element{},
	}
}

// Add appends an element to the list its kind belongs to.
func (d *Document) Add(e Element) {
	switch e.Kind {
	case KindSpawnpoint:
		d.Spawnpoints = append(d.Spawnpoints, e)
	case KindFlag:
		d.Flags = append(d.Flags, e)
	default:
		d.Level = append(d.Level, e)
	}
}

// Elements returns every element: spawnpoints, flags, then level order.
func (d *Document) Elements() []Element {
	out := make([]Element, 0, len(d.Spawnpoints)+len(d.Flags)+len(d.Level))
	out = append(out, d.Spawnpoints...)
	out = append(out, d.Flags...)
	out = append(out, d.Level...)
	return out
}

// Count returns the number of elements of a kind.
func (d *Document) Count(k Kind) int {
	n := 0
	for _, e := range d.Elements() {
		if e.Kind == k {
			n++
		}
	}
	return n
}

// Counts returns element counts keyed by kind.
func (d *Document) Counts() map[Kind]int {
	out := make(map[Kind]int, KindCount)
	for _, e := range d.Elements() {
		out[e.Kind]++
	}
	return out
}

// Find returns the elements of a kind in document order.
func (d *Document) Find(k Kind) []Element {
	var out []Element
	for _, e := range d.Elements() {
		if e.Kind == k {
			out = append(out, e)
		}
	}
	return out
}

// Size infers the grid size from the outermost element.
func (d *Document) Size() int {
	size := 0
	for _, e := range d.Elements() {
		size = core.Max(size, core.Max(e.Cell.X, e.Cell.Y)+1)
	}
	return size
}

// Doors returns a lookup from cell to door element.
func (d *Document) Doors() map[core.Cell]Element {
	out := make(map[core.Cell]Element)
	for _, e := range d.Level {
		if e.Kind == KindDoor {
			out[e.Cell] = e
		}
	}
	return out
}
