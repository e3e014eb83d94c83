package registry

import (
	"testing"

	"github.com/vovakirdan/levelforge/internal/levelgen"
)

type stubPreset struct{ id string }

func (s stubPreset) ID() string    { return s.id }
func (s stubPreset) Title() string { return "Stub " + s.id }
func (s stubPreset) Features() levelgen.FeatureFlags {
	return levelgen.Flags(levelgen.FeatureGoal)
}
func (s stubPreset) Configure(size int) levelgen.LevelConfig {
	return levelgen.LevelConfig{Size: size, Features: s.Features()}
}

func TestRegisterCreate(t *testing.T) {
	Register("zz-stub", func() Preset { return stubPreset{"zz-stub"} })

	if !Exists("zz-stub") {
		t.Fatal("Exists() = false after Register()")
	}
	p, err := Create("zz-stub")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if p.Configure(9).Size != 9 {
		t.Error("Configure() did not pass the size through")
	}

	found := false
	for _, info := range List() {
		if info.ID == "zz-stub" {
			found = true
			if info.Title != "Stub zz-stub" || info.Features != levelgen.Flags(levelgen.FeatureGoal) {
				t.Errorf("info = %+v", info)
			}
		}
	}
	if !found {
		t.Error("List() is missing the registered preset")
	}

	if _, err := Create("missing"); err == nil {
		t.Error("Create() of an unknown preset should fail")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz-dup", func() Preset { return stubPreset{"zz-dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register() should panic")
		}
	}()
	Register("zz-dup", func() Preset { return stubPreset{"zz-dup"} })
}
