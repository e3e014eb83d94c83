package tui

import (
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/levelforge/internal/level"
	"github.com/vovakirdan/levelforge/internal/levelgen"
	"github.com/vovakirdan/levelforge/internal/storage"
)

func TestArchiveBrowse(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "levels.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	cfg := levelgen.LevelConfig{Size: 9, Features: levelgen.Flags(levelgen.FeatureGoal, levelgen.FeatureSpawn)}
	res, err := levelgen.GenerateWithRetries(cfg, rand.New(rand.NewSource(2)), 20)
	if err != nil {
		t.Fatalf("GenerateWithRetries() failed: %v", err)
	}
	data, err := level.Encode(res.Document)
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	id, err := store.SaveLevel(storage.LevelRecord{Seed: 2, Size: 9, Features: cfg.Features.String(), Document: data})
	if err != nil {
		t.Fatalf("SaveLevel() failed: %v", err)
	}

	m := NewArchiveModel(store, 120, 30)
	sel := m.Selected()
	if sel == nil || sel.ID != id {
		t.Fatalf("Selected() = %+v", sel)
	}
	if !strings.Contains(m.View(), "LEVEL ARCHIVE") {
		t.Error("view is missing the title")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	m = next.(ArchiveModel)
	if m.Selected() != nil {
		t.Error("level still listed after delete")
	}
	if !strings.Contains(m.View(), "No levels saved yet") {
		t.Error("empty archive message missing")
	}
}

func TestArchiveWithoutStore(t *testing.T) {
	m := NewArchiveModel(nil, 80, 24)
	if m.Selected() != nil {
		t.Error("Selected() should be nil without a store")
	}
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if !next.(ArchiveModel).IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
}
