package levelgen

import (
	"fmt"

	"github.com/vovakirdan/levelforge/internal/core"
	"github.com/vovakirdan/levelforge/internal/level"
)

// composer runs one generation attempt. It is discarded afterwards.
type composer struct {
	cfg    LevelConfig
	params Params
	size   int
	rng    core.RandomSource
	pool   *PositionPool
	paint  painter
	doc    *level.Document

	count     int // Shared by blocks and path pieces
	doorCount int // Shared by doors and their plates

	spawnArea core.Rect
	flagArea  core.Rect

	maze  *MazeGrid
	spawn *core.Cell
	flag  *core.Cell
	gates []Gate
	path  []core.Cell
}

func newComposer(cfg LevelConfig, rng core.RandomSource) *composer {
	size := cfg.EffectiveSize()
	return &composer{
		cfg:    cfg,
		params: cfg.Params.withDefaults(),
		size:   size,
		rng:    rng,
		pool:   NewPositionPool(),
		paint:  painter{mode: cfg.Features.ColorMode(), rng: rng},
		doc: level.NewDocument(level.Environment{
			Skybox:    cfg.Header.Skybox,
			LevelName: cfg.Header.LevelName,
			UserName:  cfg.Header.Author,
		}),
		spawnArea: interior(size),
		flagArea:  interior(size),
	}
}

func (c *composer) has(f Feature) bool {
	return c.cfg.Features.Has(f)
}

func (c *composer) compose() (*Result, error) {
	if c.has(FeatureMaze) {
		if err := c.carve(); err != nil {
			return nil, err
		}
	} else if err := c.placeWallGates(); err != nil {
		return nil, err
	}

	if c.has(FeatureSpawn) {
		if err := c.placeSpawn(); err != nil {
			return nil, err
		}
	}
	if c.has(FeatureGoal) {
		if err := c.placeFlag(); err != nil {
			return nil, err
		}
	}

	if c.has(FeatureMaze) {
		if err := c.solveMazeGates(); err != nil {
			return nil, err
		}
	}

	if c.has(FeaturePath) {
		if err := c.routePath(); err != nil {
			return nil, err
		}
	}

	c.fillBorderAndFloor()

	return &Result{
		Document: c.doc,
		Size:     c.size,
		Features: c.cfg.Features,
		Spawn:    c.spawn,
		Flag:     c.flag,
		Gates:    c.gates,
		Path:     c.path,
		Maze:     c.maze,
		Occupied: c.pool.Cells(),
	}, nil
}

func (c *composer) addBlock(cell core.Cell, height int, color string) {
	c.doc.Add(level.Element{
		Kind:   level.KindBlock,
		Index:  c.count,
		Cell:   cell,
		Height: height,
		Color:  color,
	})
	c.count++
}

func (c *composer) addGate(g Gate) {
	c.doc.Add(level.Element{
		Kind:   level.KindDoor,
		Index:  c.doorCount,
		Cell:   g.Door,
		Height: level.HeightBoard,
		Yaw:    g.Axis.Yaw(),
		Color:  c.paint.door(g.Axis),
	})
	c.doc.Add(level.Element{
		Kind:   level.KindPlate,
		Index:  c.doorCount,
		Door:   c.doorCount,
		Cell:   g.Plate,
		Height: level.HeightBoard,
	})
	c.doorCount++
	c.gates = append(c.gates, g)
}

// carve builds the maze and turns every interior wall into a block.
func (c *composer) carve() error {
	m, err := CarveMaze(c.size, MazeOrigin, c.params.LoopProbability, c.rng)
	if err != nil {
		return err
	}
	c.maze = m
	for _, cell := range m.SolidInterior() {
		c.pool.Reserve(cell)
		c.addBlock(cell, level.HeightBoard, c.paint.wall())
	}
	return nil
}

// placeWallGates lays gates on an open board: each door sits in a full wall
// line and the spawn and flag areas are split across the lines.
func (c *composer) placeWallGates() error {
	h, v := c.has(FeatureHorizontalGate), c.has(FeatureVerticalGate)
	if !h && !v {
		return nil
	}
	n := c.size
	var hGate, vGate Gate
	hGate.Axis, vGate.Axis = AxisHorizontal, AxisVertical

	place := func(dst *core.Cell, r core.Rect) error {
		cell, err := c.pool.PlaceRandom(r, c.rng)
		*dst = cell
		return err
	}

	if h && v {
		if err := place(&hGate.Door, core.Span(2, n-3, 2, n-3)); err != nil {
			return err
		}
		if err := place(&vGate.Door, core.Span(hGate.Door.X+1, n-2, hGate.Door.Y+1, n-2)); err != nil {
			return err
		}
		if err := place(&hGate.Plate, core.Span(1, vGate.Door.X, hGate.Door.Y+1, n-1)); err != nil {
			return err
		}
		if err := place(&vGate.Plate, core.Span(vGate.Door.X+1, n-1, hGate.Door.Y+1, n-1)); err != nil {
			return err
		}
	}

	if h {
		if !v {
			if err := place(&hGate.Door, core.Span(2, n-2, 2, n-2)); err != nil {
				return err
			}
			if err := place(&hGate.Plate, core.Span(1, n-1, hGate.Door.Y+1, n-1)); err != nil {
				return err
			}
		}
		c.addGate(hGate)
		for x := 1; x < n-1; x++ {
			cell := core.C(x, hGate.Door.Y)
			if x == hGate.Door.X {
				continue
			}
			c.pool.Reserve(cell)
			c.addBlock(cell, level.HeightBoard, c.paint.wall())
		}
		c.flagArea = core.Span(c.flagArea.X, c.flagArea.Right(), c.flagArea.Y, hGate.Door.Y)
		c.spawnArea = core.Span(c.spawnArea.X, c.spawnArea.Right(), hGate.Door.Y+1, c.spawnArea.Bottom())
	}

	if v {
		if !h {
			if err := place(&vGate.Door, core.Span(2, n-2, 2, n-2)); err != nil {
				return err
			}
			if err := place(&vGate.Plate, core.Span(vGate.Door.X+1, n-1, 1, n-1)); err != nil {
				return err
			}
		}
		c.addGate(vGate)
		for y := 1; y < n-1; y++ {
			cell := core.C(vGate.Door.X, y)
			if y == vGate.Door.Y || !c.pool.IsFree(cell) {
				continue
			}
			c.pool.Reserve(cell)
			c.addBlock(cell, level.HeightBoard, c.paint.wall())
		}
		c.flagArea = core.Span(c.flagArea.X, vGate.Door.X, c.flagArea.Y, c.flagArea.Bottom())
		c.spawnArea = core.Span(vGate.Door.X+1, c.spawnArea.Right(), c.spawnArea.Y, c.spawnArea.Bottom())
	}
	return nil
}

func (c *composer) placeSpawn() error {
	cell, err := c.pool.PlaceRandom(c.spawnArea, c.rng)
	if err != nil {
		return err
	}
	c.spawn = &cell
	c.doc.Add(level.Element{
		Kind:   level.KindSpawnpoint,
		Cell:   cell,
		Height: level.HeightBoard,
		Yaw:    level.Yaws[c.rng.Intn(len(level.Yaws))],
	})
	return nil
}

func (c *composer) placeFlag() error {
	var cell core.Cell
	if c.maze != nil {
		from := MazeOrigin
		if c.spawn != nil {
			from = *c.spawn
		}
		cell = c.maze.FarthestReachable(from)
		if !c.pool.Reserve(cell) {
			return fmt.Errorf("levelgen: farthest cell %v already taken: %w", cell, ErrNoSolution)
		}
	} else {
		var err error
		if cell, err = c.pool.PlaceRandom(c.flagArea, c.rng); err != nil {
			return err
		}
	}
	c.flag = &cell
	c.doc.Add(level.Element{
		Kind:   level.KindFlag,
		Cell:   cell,
		Height: level.HeightBoard,
	})
	return nil
}

// origin is the cell gate plates must be reachable from.
func (c *composer) origin() core.Cell {
	if c.spawn != nil {
		return *c.spawn
	}
	return MazeOrigin
}

func (c *composer) solveMazeGates() error {
	var first *Gate
	for _, axis := range []Axis{AxisHorizontal, AxisVertical} {
		f := FeatureHorizontalGate
		if axis == AxisVertical {
			f = FeatureVerticalGate
		}
		if !c.has(f) {
			continue
		}
		g, err := SolveGate(c.pool, GateSearch{
			Size:     c.size,
			Axis:     axis,
			Origin:   c.origin(),
			Spawn:    c.spawn,
			Flag:     c.flag,
			Other:    first,
			Attempts: c.params.GateAttempts,
		}, c.rng)
		if err != nil {
			return err
		}
		c.addGate(g)
		first = &g
	}
	return nil
}

// waypoints lists the stops a path must visit: spawn, then every gate's plate
// and door with the vertical gate first, then the flag.
func (c *composer) waypoints() ([]core.Cell, error) {
	stops := []core.Cell{*c.spawn}
	var h, v *Gate
	for i := range c.gates {
		if c.gates[i].Axis == AxisHorizontal {
			h = &c.gates[i]
		} else {
			v = &c.gates[i]
		}
	}
	switch {
	case h != nil || v != nil:
		if v != nil {
			stops = append(stops, v.Plate, v.Door)
		}
		if h != nil {
			stops = append(stops, h.Plate, h.Door)
		}
	case c.maze == nil:
		mid, err := c.pool.PlaceRandom(interior(c.size), c.rng)
		if err != nil {
			return nil, err
		}
		stops = append(stops, mid)
	}
	return append(stops, *c.flag), nil
}

func (c *composer) routePath() error {
	if c.spawn == nil || c.flag == nil {
		return fmt.Errorf("levelgen: path needs both spawn and goal: %w", ErrInvalidConfig)
	}
	stops, err := c.waypoints()
	if err != nil {
		return err
	}
	router := &PathRouter{
		Size:    c.size,
		Pool:    c.pool,
		Reserve: !(c.maze != nil && len(c.gates) > 0),
		Rng:     c.rng,
	}
	path, err := router.RouteChain(stops)
	if err != nil {
		return err
	}
	c.path = path
	for _, p := range PathPieces(path) {
		c.doc.Add(level.Element{
			Kind:   p.Kind,
			Index:  c.count,
			Cell:   p.Cell,
			Height: level.HeightBoard,
			Yaw:    p.Yaw,
			Color:  c.paint.path(),
		})
		c.count++
	}
	return nil
}

// fillBorderAndFloor lays the outer wall ring and a floor tile under every
// interior cell.
func (c *composer) fillBorderAndFloor() {
	inner := interior(c.size)
	for x := 0; x < c.size; x++ {
		for y := 0; y < c.size; y++ {
			cell := core.C(x, y)
			if inner.Contains(cell) {
				c.addBlock(cell, level.HeightFloor, c.paint.floor())
				continue
			}
			c.addBlock(cell, level.HeightBoard, c.paint.wall())
		}
	}
}
