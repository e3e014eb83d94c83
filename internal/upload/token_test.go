package upload

import (
	"math/rand"
	"testing"
)

func TestObfuscateReveal(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, token := range []string{"", "abc", "ghp_AbC123xyz", "ñandú"} {
		obf := Obfuscate(token, rng)
		if len([]rune(obf)) != len([]rune(token))+1 {
			t.Errorf("Obfuscate(%q) = %q: wrong length", token, obf)
		}
		got, err := Reveal(obf)
		if err != nil {
			t.Fatalf("Reveal(%q) failed: %v", obf, err)
		}
		if got != token {
			t.Errorf("Reveal(Obfuscate(%q)) = %q", token, got)
		}
	}
}

func TestObfuscateShift(t *testing.T) {
	obf := Obfuscate("abc", rand.New(rand.NewSource(1)))
	if obf[:3] != "def" {
		t.Errorf("Obfuscate(abc) = %q, expected def prefix", obf)
	}
}

func TestRevealErrors(t *testing.T) {
	if _, err := Reveal(""); err == nil {
		t.Error("Reveal(\"\") should fail")
	}
	if _, err := Reveal("defx"); err == nil {
		t.Error("Reveal without trailing digit should fail")
	}
}
