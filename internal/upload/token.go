package upload

import (
	"fmt"
	"math/rand"
	"strings"
)

const tokenShift = 3

// Obfuscate shifts every rune of token forward and appends one random digit,
// so the stored value is not a usable credential by itself.
func Obfuscate(token string, rng *rand.Rand) string {
	var b strings.Builder
	b.Grow(len(token) + 1)
	for _, r := range token {
		b.WriteRune(r + tokenShift)
	}
	b.WriteByte(byte('0' + rng.Intn(10)))
	return b.String()
}

// Reveal reverses Obfuscate.
func Reveal(obfuscated string) (string, error) {
	runes := []rune(obfuscated)
	if len(runes) == 0 {
		return "", fmt.Errorf("upload: empty obfuscated token")
	}
	last := runes[len(runes)-1]
	if last < '0' || last > '9' {
		return "", fmt.Errorf("upload: obfuscated token has no trailing digit")
	}
	runes = runes[:len(runes)-1]
	for i, r := range runes {
		runes[i] = r - tokenShift
	}
	return string(runes), nil
}
