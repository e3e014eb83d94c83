package levelgen

import "errors"

var (
	// ErrNoSolution marks a recoverable dead end; the whole attempt is retried.
	ErrNoSolution = errors.New("no solution")
	// ErrInvalidConfig marks a configuration that can never produce a level.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrGenerationFailed is returned once every attempt has hit ErrNoSolution.
	ErrGenerationFailed = errors.New("generation failed")
)
