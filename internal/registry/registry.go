// Package registry provides a global registry for level presets.
// Presets register themselves in init() functions, allowing the CLI, the
// builder and the HTTP API to discover them without hardcoded lists.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/levelforge/internal/levelgen"
)

// Preset is a named recipe for a level configuration.
type Preset interface {
	// ID returns a unique identifier for this preset (e.g., "maze", "gated").
	// Used for CLI flags and API requests.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Features returns the feature set the preset enables.
	Features() levelgen.FeatureFlags

	// Configure builds a level configuration of the given size.
	// A size of zero selects the preset's own default.
	Configure(size int) levelgen.LevelConfig
}

// PresetInfo contains metadata about a registered preset.
type PresetInfo struct {
	ID       string
	Title    string
	Features levelgen.FeatureFlags
}

// Factory is a function that creates a new instance of a preset.
type Factory func() Preset

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]PresetInfo)
	mu        sync.RWMutex
)

// Register adds a preset factory to the registry.
// Typically called from an init() function.
// Panics if a preset with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: preset %q already registered", id))
	}

	factories[id] = f

	// Get metadata by creating a temporary instance
	p := f()
	infos[id] = PresetInfo{ID: id, Title: p.Title(), Features: p.Features()}
}

// List returns information about all registered presets, sorted by ID.
func List() []PresetInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PresetInfo, 0, len(factories))
	for id := range factories {
		result = append(result, infos[id])
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a preset by its ID.
// Returns an error if the preset ID is not registered.
func Create(id string) (Preset, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown preset %q", id)
	}

	return f(), nil
}

// Exists checks if a preset with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
