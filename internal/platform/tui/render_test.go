package tui

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/vovakirdan/levelforge/internal/core"
	"github.com/vovakirdan/levelforge/internal/level"
	"github.com/vovakirdan/levelforge/internal/levelgen"
)

func TestPreviewScreenGlyphs(t *testing.T) {
	doc := level.NewDocument(level.Environment{})
	for x := 0; x < 3; x++ {
		doc.Add(level.Element{Kind: level.KindBlock, Cell: core.C(x, 0), Height: level.HeightBoard, Color: level.Black})
		doc.Add(level.Element{Kind: level.KindBlock, Cell: core.C(x, 1), Height: level.HeightFloor, Color: level.LightOrange})
	}
	doc.Add(level.Element{Kind: level.KindDoor, Cell: core.C(0, 2), Height: level.HeightBoard, Yaw: level.Yaw0, Color: level.Turquoise})
	doc.Add(level.Element{Kind: level.KindDoor, Cell: core.C(1, 2), Height: level.HeightBoard, Yaw: level.Yaw90, Color: level.Red})
	doc.Add(level.Element{Kind: level.KindPlate, Cell: core.C(2, 2), Height: level.HeightBoard})
	doc.Add(level.Element{Kind: level.KindStraightPath, Cell: core.C(0, 1), Yaw: level.Yaw270, Color: level.Purple})
	doc.Add(level.Element{Kind: level.KindCornerPath, Cell: core.C(1, 1), Yaw: level.Yaw180, Color: level.Purple})
	doc.Add(level.Element{Kind: level.KindSpawnpoint, Cell: core.C(0, 3), Height: level.HeightBoard, Yaw: level.Yaw90})
	doc.Add(level.Element{Kind: level.KindFlag, Cell: core.C(1, 3), Height: level.HeightBoard})

	s := PreviewScreen(doc)
	want := []string{
		"███",
		"─┐·",
		"=‖o",
		">F ",
	}
	if s.Height() != 4 || s.Width() != 4 {
		t.Fatalf("screen is %dx%d, expected 4x4", s.Width(), s.Height())
	}
	for y, row := range want {
		if got := strings.TrimRight(s.Row(y), " "); got != strings.TrimRight(row, " ") {
			t.Errorf("row %d = %q, expected %q", y, got, row)
		}
	}

	if g := s.GetGlyph(1, 2); g.Color != level.Red {
		t.Errorf("vertical door color = %q, expected %q", g.Color, level.Red)
	}
	if g := s.GetGlyph(1, 3); g.Color != flagColor {
		t.Errorf("flag color = %q, expected %q", g.Color, flagColor)
	}
}

func TestCornerGlyphs(t *testing.T) {
	for yaw, want := range map[int]rune{level.Yaw0: '└', level.Yaw90: '┘', level.Yaw180: '┐', level.Yaw270: '┌'} {
		r, _ := elementGlyph(level.Element{Kind: level.KindCornerPath, Yaw: yaw})
		if r != want {
			t.Errorf("corner yaw %d = %q, expected %q", yaw, r, want)
		}
	}
}

func TestPreviewGeneratedLevel(t *testing.T) {
	cfg := levelgen.LevelConfig{
		Size:     9,
		Features: levelgen.Flags(levelgen.FeatureGoal, levelgen.FeatureSpawn, levelgen.FeaturePath),
	}
	res, err := levelgen.GenerateWithRetries(cfg, rand.New(rand.NewSource(5)), 50)
	if err != nil {
		t.Fatalf("GenerateWithRetries() failed: %v", err)
	}

	s := PreviewScreen(res.Document)
	if s.Width() != 9 || s.Height() != 9 {
		t.Fatalf("screen is %dx%d, expected 9x9", s.Width(), s.Height())
	}
	for i := 0; i < 9; i++ {
		for _, c := range []core.Cell{core.C(i, 0), core.C(i, 8), core.C(0, i), core.C(8, i)} {
			if r := s.Get(c.X, c.Y); r != glyphWall {
				t.Errorf("border cell %v = %q, expected wall", c, r)
			}
		}
	}

	text := s.String()
	if strings.Count(text, string(glyphFlag)) != 1 {
		t.Error("expected exactly one flag glyph")
	}
	if got := s.Get(res.Flag.X, res.Flag.Y); got != glyphFlag {
		t.Errorf("flag cell shows %q", got)
	}
	if r := s.Get(res.Spawn.X, res.Spawn.Y); !strings.ContainsRune("^>v<", r) {
		t.Errorf("spawn cell shows %q", r)
	}

	if out := RenderPreview(res.Document); !strings.Contains(out, string(glyphFlag)) {
		t.Error("RenderPreview() output lost the flag")
	}
}
