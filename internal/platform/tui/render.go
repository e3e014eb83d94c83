package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/levelforge/internal/core"
	"github.com/vovakirdan/levelforge/internal/level"
)

// Preview glyphs for a top-down view of a level.
const (
	glyphWall   = '█'
	glyphFloor  = '·'
	glyphPlate  = 'o'
	glyphFlag   = 'F'
	glyphDoorH  = '='
	glyphDoorV  = '‖'
	glyphStripH = '─'
	glyphStripV = '│'
)

// cornerGlyphs maps a corner piece's yaw to the turn it draws.
var cornerGlyphs = map[int]rune{
	level.Yaw0:   '└',
	level.Yaw90:  '┘',
	level.Yaw180: '┐',
	level.Yaw270: '┌',
}

// spawnGlyphs shows the facing of the spawnpoint.
var spawnGlyphs = map[int]rune{
	level.Yaw0:   '^',
	level.Yaw90:  '>',
	level.Yaw180: 'v',
	level.Yaw270: '<',
}

// Colors used for kinds that carry no palette color.
const (
	plateColor = level.Gray
	flagColor  = level.Yellow
	spawnColor = level.Green
)

// drawOrder is the layering of kinds; later kinds cover earlier ones.
var drawOrder = []level.Kind{
	level.KindBlock,
	level.KindStraightPath,
	level.KindCornerPath,
	level.KindDoor,
	level.KindPlate,
	level.KindSpawnpoint,
	level.KindFlag,
}

// PreviewScreen draws a document into a screen buffer, one cell per character.
func PreviewScreen(doc *level.Document) *core.Screen {
	size := doc.Size()
	s := core.NewScreen(size, size)

	byKind := make(map[level.Kind][]level.Element)
	for _, e := range doc.Elements() {
		byKind[e.Kind] = append(byKind[e.Kind], e)
	}

	for _, k := range drawOrder {
		elems := byKind[k]
		if k == level.KindBlock {
			// Floor first so walls at board height always win.
			for _, e := range elems {
				if e.Height == level.HeightFloor {
					s.SetColored(e.Cell.X, e.Cell.Y, glyphFloor, e.Color)
				}
			}
		}
		for _, e := range elems {
			if k == level.KindBlock && e.Height == level.HeightFloor {
				continue
			}
			r, color := elementGlyph(e)
			s.SetColored(e.Cell.X, e.Cell.Y, r, color)
		}
	}
	return s
}

func elementGlyph(e level.Element) (rune, string) {
	switch e.Kind {
	case level.KindBlock:
		return glyphWall, e.Color
	case level.KindDoor:
		if e.Yaw == level.Yaw90 || e.Yaw == level.Yaw270 {
			return glyphDoorV, e.Color
		}
		return glyphDoorH, e.Color
	case level.KindPlate:
		return glyphPlate, plateColor
	case level.KindStraightPath:
		if e.Yaw == level.Yaw90 || e.Yaw == level.Yaw270 {
			return glyphStripH, e.Color
		}
		return glyphStripV, e.Color
	case level.KindCornerPath:
		return cornerGlyphs[e.Yaw], e.Color
	case level.KindFlag:
		return glyphFlag, flagColor
	case level.KindSpawnpoint:
		return spawnGlyphs[e.Yaw], spawnColor
	}
	return '?', ""
}

// styleCache holds one lipgloss style per palette color name.
var styleCache = map[string]lipgloss.Style{
	"": lipgloss.NewStyle(),
}

func styleFor(color string) lipgloss.Style {
	if st, ok := styleCache[color]; ok {
		return st
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(level.Hex(color)))
}

func init() {
	for _, name := range level.Palette {
		styleCache[name] = lipgloss.NewStyle().Foreground(lipgloss.Color(level.Hex(name)))
	}
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetGlyph(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				g := s.GetGlyph(x, y)
				if g.Color != startColor {
					break
				}
				run.WriteRune(g.Rune)
				x++
			}

			sb.WriteString(styleFor(startColor).Render(run.String()))
		}
	}
	return sb.String()
}

// RenderPreview returns the styled top-down map of a document.
func RenderPreview(doc *level.Document) string {
	return RenderScreen(PreviewScreen(doc))
}
