// Package levelgen generates solvable grid levels: an optional carved maze,
// gated doors with their pressure plates, a spawn, a goal and a walkable
// path between them.
package levelgen

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/levelforge/internal/core"
	"github.com/vovakirdan/levelforge/internal/level"
)

// Result is a generated level together with the layout facts that produced it.
type Result struct {
	Document *level.Document
	Size     int
	Features FeatureFlags
	Spawn    *core.Cell // nil when no spawn was requested
	Flag     *core.Cell // nil when no goal was requested
	Gates    []Gate
	Path     []core.Cell
	Maze     *MazeGrid // nil without the maze feature
	Occupied []core.Cell
	Attempts int
}

// Generator runs generation attempts with a retry budget.
type Generator struct {
	MaxAttempts int
	Logger      *log.Logger
}

// NewGenerator creates a generator that logs to logger. A nil logger discards output.
func NewGenerator(maxAttempts int, logger *log.Logger) *Generator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Generator{MaxAttempts: maxAttempts, Logger: logger}
}

// Generate performs a single attempt. ErrNoSolution means the attempt hit a
// dead end and may be retried with the same source.
func Generate(cfg LevelConfig, rng core.RandomSource) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	res, err := newComposer(cfg, rng).compose()
	if err != nil {
		return nil, err
	}
	res.Attempts = 1
	return res, nil
}

// GenerateWithRetries repeats Generate until it succeeds, a fatal error
// occurs, or maxAttempts attempts have failed.
func GenerateWithRetries(cfg LevelConfig, rng core.RandomSource, maxAttempts int) (*Result, error) {
	return NewGenerator(maxAttempts, nil).Generate(cfg, rng)
}

// Generate runs attempts until one succeeds.
func (g *Generator) Generate(cfg LevelConfig, rng core.RandomSource) (*Result, error) {
	logger := g.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	attempts := g.MaxAttempts
	if attempts <= 0 {
		attempts = cfg.Params.withDefaults().MaxAttempts
	}

	var last error
	for i := 1; i <= attempts; i++ {
		res, err := Generate(cfg, rng)
		if err == nil {
			res.Attempts = i
			logger.Debug("level generated", "size", res.Size, "features", cfg.Features.String(), "attempts", i)
			return res, nil
		}
		if !errors.Is(err, ErrNoSolution) {
			return nil, err
		}
		logger.Debug("attempt failed", "attempt", i, "err", err)
		last = err
	}

	logger.Warn("giving up", "attempts", attempts, "features", cfg.Features.String(), "err", last)
	return nil, fmt.Errorf("levelgen: %w after %d attempts: %w", ErrGenerationFailed, attempts, last)
}
