package levelgen

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"github.com/vovakirdan/levelforge/internal/core"
	"github.com/vovakirdan/levelforge/internal/level"
)

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func mustGenerate(t *testing.T, cfg LevelConfig, seed int64) *Result {
	t.Helper()
	res, err := GenerateWithRetries(cfg, newRand(seed), 200)
	if err != nil {
		t.Fatalf("GenerateWithRetries(%s, size %d, seed %d) failed: %v", cfg.Features, cfg.Size, seed, err)
	}
	return res
}

// wallCells returns the cells holding a board-level block.
func wallCells(doc *level.Document) map[core.Cell]bool {
	out := make(map[core.Cell]bool)
	for _, e := range doc.Level {
		if e.Kind == level.KindBlock && e.Height == level.HeightBoard {
			out[e.Cell] = true
		}
	}
	return out
}

func checkInvariants(t *testing.T, res *Result) {
	t.Helper()
	doc := res.Document
	n := res.Size

	seen := make(map[core.Cell]level.Element)
	for _, e := range doc.Elements() {
		if !e.Structural() {
			continue
		}
		if prev, dup := seen[e.Cell]; dup {
			t.Fatalf("%s and %s share cell %v", prev.Name(), e.Name(), e.Cell)
		}
		seen[e.Cell] = e
	}

	occupied := make(map[core.Cell]bool)
	for _, c := range res.Occupied {
		if occupied[c] {
			t.Fatalf("cell %v reserved twice", c)
		}
		occupied[c] = true
	}

	// Border ring plus one floor tile per interior cell.
	floors := 0
	for _, e := range doc.Level {
		if e.Kind == level.KindBlock && e.Height == level.HeightFloor {
			floors++
		}
	}
	if floors != (n-2)*(n-2) {
		t.Errorf("%d floor tiles, expected %d", floors, (n-2)*(n-2))
	}

	if len(res.Path) > 0 {
		for i := 1; i < len(res.Path); i++ {
			if !res.Path[i].Adjacent(res.Path[i-1]) {
				t.Fatalf("path breaks between %v and %v", res.Path[i-1], res.Path[i])
			}
		}
		if res.Path[0] != *res.Spawn || res.Path[len(res.Path)-1] != *res.Flag {
			t.Errorf("path runs %v -> %v, expected spawn %v -> flag %v",
				res.Path[0], res.Path[len(res.Path)-1], *res.Spawn, *res.Flag)
		}
		if !(res.Maze != nil && len(res.Gates) > 0) {
			visited := make(map[core.Cell]bool)
			for _, c := range res.Path {
				if visited[c] {
					t.Fatalf("path repeats %v", c)
				}
				visited[c] = true
			}
		}
		pieces := doc.Count(level.KindStraightPath) + doc.Count(level.KindCornerPath)
		if pieces != len(res.Path) {
			t.Errorf("%d path pieces for %d path cells", pieces, len(res.Path))
		}
	}

	if res.Maze != nil && res.Spawn != nil && res.Flag != nil {
		if !res.Maze.Reachable(*res.Spawn, *res.Flag) {
			t.Errorf("flag %v unreachable from spawn %v in maze", *res.Flag, *res.Spawn)
		}
	}

	if res.Spawn != nil {
		walls := wallCells(doc)
		for _, g := range res.Gates {
			door := g.Door
			passable := func(c core.Cell) bool {
				return interior(n).Contains(c) && !walls[c] && c != door
			}
			if !connected(*res.Spawn, g.Plate, passable) {
				t.Errorf("%s plate %v unreachable from spawn %v with its door %v closed",
					g.Axis, g.Plate, *res.Spawn, g.Door)
			}
		}
	}
	if len(res.Gates) == 2 && res.Gates[0].Door.Adjacent(res.Gates[1].Door) {
		t.Errorf("doors %v and %v are adjacent", res.Gates[0].Door, res.Gates[1].Door)
	}
}

func TestGenerateProperties(t *testing.T) {
	base := Flags(FeatureGoal, FeatureSpawn)
	tests := []struct {
		name     string
		size     int
		features FeatureFlags
	}{
		{"empty board", 7, 0},
		{"spawn and goal", 7, base},
		{"path", 7, base.With(FeaturePath)},
		{"path large", 15, base.With(FeaturePath)},
		{"maze", 9, base.With(FeatureMaze)},
		{"maze path", 11, base.With(FeatureMaze, FeaturePath)},
		{"horizontal gate", 9, base.With(FeatureHorizontalGate)},
		{"vertical gate", 9, base.With(FeatureVerticalGate)},
		{"both gates", 9, base.With(FeatureHorizontalGate, FeatureVerticalGate)},
		{"both gates path", 11, base.With(FeatureHorizontalGate, FeatureVerticalGate, FeaturePath)},
		{"gated maze", 11, base.With(FeatureMaze, FeatureHorizontalGate)},
		{"double gated maze path", 13, base.With(FeatureMaze, FeatureHorizontalGate, FeatureVerticalGate, FeaturePath)},
		{"color bomb", 9, base.With(FeaturePath, FeatureColorBomb)},
		{"noir", 9, base.With(FeaturePath, FeatureBlackAndWhite)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for seed := int64(1); seed <= 10; seed++ {
				res := mustGenerate(t, LevelConfig{Size: tc.size, Features: tc.features}, seed)
				checkInvariants(t, res)
			}
		})
	}
}

func TestGenerateSmallPathLevel(t *testing.T) {
	cfg := LevelConfig{Size: 7, Features: Flags(FeatureSpawn, FeatureGoal, FeaturePath)}
	res := mustGenerate(t, cfg, 7)
	doc := res.Document

	if len(doc.Spawnpoints) != 1 || len(doc.Flags) != 1 {
		t.Fatalf("%d spawnpoints and %d flags, expected 1 and 1", len(doc.Spawnpoints), len(doc.Flags))
	}

	walls := 0
	for _, e := range doc.Level {
		if e.Kind == level.KindBlock && e.Height == level.HeightBoard {
			walls++
		}
	}
	if walls != 24 {
		t.Errorf("%d border walls, expected 24", walls)
	}
	if doc.Count(level.KindBlock)-walls != 25 {
		t.Errorf("%d floor tiles, expected 25", doc.Count(level.KindBlock)-walls)
	}
	if doc.Count(level.KindStraightPath)+doc.Count(level.KindCornerPath) < 3 {
		t.Error("expected path pieces from spawn through the waypoint to the flag")
	}
}

func TestGenerateMazeFlagIsFarthest(t *testing.T) {
	cfg := LevelConfig{Size: 9, Features: Flags(FeatureMaze, FeatureSpawn, FeatureGoal)}
	for seed := int64(1); seed <= 20; seed++ {
		res := mustGenerate(t, cfg, seed)
		want := res.Maze.FarthestReachable(*res.Spawn)
		if *res.Flag != want {
			t.Errorf("seed %d: flag %v, expected farthest cell %v", seed, *res.Flag, want)
		}
	}
}

func TestGenerateMazeWithoutSpawn(t *testing.T) {
	res := mustGenerate(t, LevelConfig{Size: 9, Features: Flags(FeatureMaze, FeatureGoal)}, 4)
	if res.Spawn != nil {
		t.Error("spawn placed without the spawn feature")
	}
	if want := res.Maze.FarthestReachable(MazeOrigin); *res.Flag != want {
		t.Errorf("flag %v, expected farthest cell from origin %v", *res.Flag, want)
	}
}

func TestGenerateWallGates(t *testing.T) {
	cfg := LevelConfig{Size: 9, Features: Flags(FeatureSpawn, FeatureGoal, FeatureHorizontalGate, FeatureVerticalGate)}
	for seed := int64(1); seed <= 30; seed++ {
		res := mustGenerate(t, cfg, seed)
		if len(res.Gates) != 2 {
			t.Fatalf("seed %d: %d gates, expected 2", seed, len(res.Gates))
		}
		h, v := res.Gates[0], res.Gates[1]
		if h.Axis != AxisHorizontal || v.Axis != AxisVertical {
			t.Fatalf("seed %d: gate order %s, %s", seed, h.Axis, v.Axis)
		}
		if v.Door.X <= h.Door.X || v.Door.Y <= h.Door.Y {
			t.Errorf("seed %d: vertical door %v not below-right of horizontal door %v", seed, v.Door, h.Door)
		}
		if res.Spawn.X <= v.Door.X || res.Spawn.Y <= h.Door.Y {
			t.Errorf("seed %d: spawn %v not in the bottom-right room", seed, *res.Spawn)
		}
		if res.Flag.X >= v.Door.X || res.Flag.Y >= h.Door.Y {
			t.Errorf("seed %d: flag %v not in the top-left room", seed, *res.Flag)
		}

		doors := res.Document.Find(level.KindDoor)
		if len(doors) != 2 || doors[0].Yaw != 0 || doors[1].Yaw != 90 {
			t.Errorf("seed %d: doors %+v", seed, doors)
		}
		plates := res.Document.Find(level.KindPlate)
		if len(plates) != 2 || plates[0].Door != 0 || plates[1].Door != 1 {
			t.Errorf("seed %d: plates %+v", seed, plates)
		}
	}
}

func TestGenerateColors(t *testing.T) {
	base := Flags(FeatureSpawn, FeatureGoal, FeaturePath, FeatureHorizontalGate)
	tests := []struct {
		name  string
		extra []Feature
		check func(t *testing.T, e level.Element)
	}{
		{"classic", nil, func(t *testing.T, e level.Element) {
			want := map[level.Kind]string{
				level.KindDoor:         level.Turquoise,
				level.KindStraightPath: level.Purple,
				level.KindCornerPath:   level.Purple,
			}
			if e.Kind == level.KindBlock {
				want[level.KindBlock] = level.Black
				if e.Height == level.HeightFloor {
					want[level.KindBlock] = level.LightOrange
				}
			}
			if w, ok := want[e.Kind]; ok && e.Color != w {
				t.Errorf("%s color %q, expected %q", e.Name(), e.Color, w)
			}
		}},
		{"noir", []Feature{FeatureBlackAndWhite}, func(t *testing.T, e level.Element) {
			want := level.Black
			if e.Kind == level.KindDoor || e.Kind.IsPath() {
				want = level.White
			}
			if e.Kind.Colored() && e.Color != want {
				t.Errorf("%s color %q, expected %q", e.Name(), e.Color, want)
			}
		}},
		{"bomb noir", []Feature{FeatureColorBomb, FeatureBlackAndWhite}, func(t *testing.T, e level.Element) {
			if e.Kind.Colored() && e.Color != level.Black && e.Color != level.White {
				t.Errorf("%s color %q, expected black or white", e.Name(), e.Color)
			}
		}},
		{"bomb", []Feature{FeatureColorBomb}, func(t *testing.T, e level.Element) {
			if e.Kind.Colored() && !level.IsPaletteColor(e.Color) {
				t.Errorf("%s color %q not in palette", e.Name(), e.Color)
			}
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := mustGenerate(t, LevelConfig{Size: 9, Features: base.With(tc.extra...)}, 11)
			for _, e := range res.Document.Elements() {
				if !e.Kind.Colored() && e.Color != "" {
					t.Errorf("%s carries color %q", e.Name(), e.Color)
				}
				tc.check(t, e)
			}
		})
	}
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := LevelConfig{
		Size:     13,
		Features: Flags(FeatureMaze, FeatureSpawn, FeatureGoal, FeaturePath, FeatureVerticalGate, FeatureColorBomb),
		Header:   Header{LevelName: "Seeded", Author: "tester", Skybox: "Night"},
	}
	a := mustGenerate(t, cfg, 42)
	b := mustGenerate(t, cfg, 42)

	if !a.Maze.Equal(b.Maze) {
		t.Error("same seed produced different mazes")
	}
	ea, err := level.Encode(a.Document)
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	eb, _ := level.Encode(b.Document)
	if !bytes.Equal(ea, eb) {
		t.Error("same seed produced different documents")
	}

	decoded, err := level.Decode(ea)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	again, _ := level.Encode(decoded)
	if !bytes.Equal(ea, again) {
		t.Error("encode/decode/encode is not byte-identical")
	}
	if decoded.Environment.LevelName != "Seeded" || decoded.Environment.UserName != "tester" {
		t.Errorf("header not preserved: %+v", decoded.Environment)
	}
}

func TestGenerateInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  LevelConfig
	}{
		{"below minimum", LevelConfig{Size: 6, Features: Flags(FeatureGoal)}},
		{"above maximum", LevelConfig{Size: 99, Features: Flags(FeatureGoal)}},
		{"path without spawn", LevelConfig{Size: 9, Features: Flags(FeatureGoal, FeaturePath)}},
		{"bad loop probability", LevelConfig{Size: 9, Params: Params{LoopProbability: 2}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Generate(tc.cfg, newRand(1))
			if !errors.Is(err, ErrInvalidConfig) || res != nil {
				t.Errorf("Generate() = %v, %v; expected nil, ErrInvalidConfig", res, err)
			}
			res, err = GenerateWithRetries(tc.cfg, newRand(1), 5)
			if !errors.Is(err, ErrInvalidConfig) || res != nil {
				t.Errorf("GenerateWithRetries() = %v, %v; expected nil, ErrInvalidConfig", res, err)
			}
		})
	}
}

func TestGenerateRetryExhaustion(t *testing.T) {
	cfg := LevelConfig{
		Size:     7,
		Features: Flags(FeatureMaze, FeatureHorizontalGate, FeatureVerticalGate),
		Params:   Params{GateAttempts: 1},
	}

	failures := 0
	for seed := int64(1); seed <= 200; seed++ {
		res, err := GenerateWithRetries(cfg, newRand(seed), 1)
		if err == nil {
			continue
		}
		failures++
		if res != nil {
			t.Errorf("seed %d: result returned alongside error", seed)
		}
		if !errors.Is(err, ErrGenerationFailed) || !errors.Is(err, ErrNoSolution) {
			t.Errorf("seed %d: error %v should wrap ErrGenerationFailed and ErrNoSolution", seed, err)
		}
	}
	if failures == 0 {
		t.Error("expected single-draw gate searches to fail at least once")
	}
}

func TestEffectiveSize(t *testing.T) {
	tests := []struct {
		size     int
		features FeatureFlags
		want     int
	}{
		{8, Flags(FeatureMaze), 9},
		{9, Flags(FeatureMaze), 9},
		{8, Flags(FeatureGoal), 8},
	}
	for _, tc := range tests {
		cfg := LevelConfig{Size: tc.size, Features: tc.features}
		if got := cfg.EffectiveSize(); got != tc.want {
			t.Errorf("EffectiveSize(%d, %s) = %d, expected %d", tc.size, tc.features, got, tc.want)
		}
	}
}
