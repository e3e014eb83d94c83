package levelgen

import (
	"errors"
	"testing"
)

func TestParseFeatures(t *testing.T) {
	tests := []struct {
		input   string
		want    FeatureFlags
		wantErr bool
	}{
		{"goal,spawn,path", Flags(FeatureGoal, FeatureSpawn, FeaturePath), false},
		{" maze , hgate,vgate ", Flags(FeatureMaze, FeatureHorizontalGate, FeatureVerticalGate), false},
		{"BW,colorbomb", Flags(FeatureBlackAndWhite, FeatureColorBomb), false},
		{"", 0, false},
		{"goal,,spawn", Flags(FeatureGoal, FeatureSpawn), false},
		{"goal,lava", 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseFeatures(tc.input)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("ParseFeatures(%q) error = %v, expected ErrInvalidConfig", tc.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFeatures(%q) failed: %v", tc.input, err)
			}
			if got != tc.want {
				t.Errorf("ParseFeatures(%q) = %s, expected %s", tc.input, got, tc.want)
			}
		})
	}
}

func TestParseFeaturesLenient(t *testing.T) {
	got, unknown := ParseFeaturesLenient("goal,lava,spawn,ice")
	if got != Flags(FeatureGoal, FeatureSpawn) {
		t.Errorf("flags = %s, expected goal,spawn", got)
	}
	if len(unknown) != 2 || unknown[0] != "lava" || unknown[1] != "ice" {
		t.Errorf("unknown = %v, expected [lava ice]", unknown)
	}
}

func TestFeatureFlagsString(t *testing.T) {
	ff := Flags(FeaturePath, FeatureGoal, FeatureMaze)
	if ff.String() != "goal,maze,path" {
		t.Errorf("String() = %q, expected catalogue order", ff.String())
	}
	if ff.Toggle(FeatureMaze).Has(FeatureMaze) {
		t.Error("Toggle() should clear an enabled feature")
	}

	for _, f := range AllFeatures() {
		back, ok := ParseFeature(f.String())
		if !ok || back != f {
			t.Errorf("ParseFeature(%q) = %v, %v", f.String(), back, ok)
		}
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		text   string
		size   int
		parsed bool
	}{
		{"11", 11, true},
		{" 9 ", 9, true},
		{"3", 7, true},
		{"big", 7, false},
		{"", 7, false},
	}
	for _, tc := range tests {
		size, ok := ParseSize(tc.text, 7)
		if size != tc.size || ok != tc.parsed {
			t.Errorf("ParseSize(%q) = %d, %v; expected %d, %v", tc.text, size, ok, tc.size, tc.parsed)
		}
	}
}
