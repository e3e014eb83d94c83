package level

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/levelforge/internal/core"
)

// wireDocument is the JSON layout consumed by the game client.
type wireDocument struct {
	Environment wireEnvironment `json:"environment"`
	Spawnpoints []wireElement   `json:"spawnpoints"`
	Flags       []wireElement   `json:"flags"`
	Level       []wireElement   `json:"level"`
}

type wireEnvironment struct {
	Skybox     string `json:"skybox"`
	LevelName  string `json:"level_name"`
	UserName   string `json:"user_name"`
	DevMinutes int    `json:"dev_minutes"`
	DevSeconds int    `json:"dev_seconds"`
	DevBlocks  int    `json:"dev_blocks"`
}

type wireElement struct {
	Name     string              `json:"name"`
	Position string              `json:"position"`
	Rotation string              `json:"rotation"`
	Options  []map[string]string `json:"options"`
}

const (
	optColor   = "Color"
	optTimed   = "Timed"
	optSeconds = "Seconds for win"
	optToggle  = "Toggle"
)

// Encode renders a document as indented JSON.
func Encode(d *Document) ([]byte, error) {
	wd := wireDocument{
		Environment: wireEnvironment(d.Environment),
		Spawnpoints: encodeList(d.Spawnpoints),
		Flags:       encodeList(d.Flags),
		Level:       encodeList(d.Level),
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(wd); err != nil {
		return nil, fmt.Errorf("level: encode: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Decode parses a JSON document back into the structured model.
func Decode(data []byte) (*Document, error) {
	var wd wireDocument
	if err := json.Unmarshal(data, &wd); err != nil {
		return nil, fmt.Errorf("level: decode: %w", err)
	}

	d := NewDocument(Environment(wd.Environment))
	for _, list := range [][]wireElement{wd.Spawnpoints, wd.Flags, wd.Level} {
		for _, we := range list {
			e, err := decodeElement(we)
			if err != nil {
				return nil, fmt.Errorf("level: decode: %w", err)
			}
			d.Add(e)
		}
	}
	return d, nil
}

func encodeList(els []Element) []wireElement {
	out := make([]wireElement, 0, len(els))
	for _, e := range els {
		out = append(out, encodeElement(e))
	}
	return out
}

func encodeElement(e Element) wireElement {
	return wireElement{
		Name:     e.Name(),
		Position: FormatPosition(e.Cell, e.Height),
		Rotation: FormatRotation(e.Yaw),
		Options:  encodeOptions(e),
	}
}

func encodeOptions(e Element) []map[string]string {
	switch e.Kind {
	case KindFlag:
		return []map[string]string{{optTimed: "False"}, {optSeconds: "0"}}
	case KindPlate:
		return []map[string]string{{fmt.Sprintf("%s %d", KindDoor.Prefix(), e.Door): optToggle}}
	case KindSpawnpoint:
		return []map[string]string{}
	default:
		return []map[string]string{{optColor: e.Color}}
	}
}

func decodeElement(we wireElement) (Element, error) {
	kind, idx, err := ParseName(we.Name)
	if err != nil {
		return Element{}, err
	}
	cell, height, err := ParsePosition(we.Position)
	if err != nil {
		return Element{}, fmt.Errorf("%s: %w", we.Name, err)
	}
	yaw, err := ParseRotation(we.Rotation)
	if err != nil {
		return Element{}, fmt.Errorf("%s: %w", we.Name, err)
	}

	e := Element{Kind: kind, Index: idx, Cell: cell, Height: height, Yaw: yaw}
	for _, opt := range we.Options {
		for k, v := range opt {
			switch {
			case k == optColor:
				e.Color = v
			case kind == KindPlate && strings.HasPrefix(k, KindDoor.Prefix()+" "):
				_, door, err := ParseName(k)
				if err != nil {
					return Element{}, fmt.Errorf("%s: %w", we.Name, err)
				}
				e.Door = door
			}
		}
	}
	return e, nil
}

// FormatPosition renders a board cell as the client's "(x, height, z)" vector.
func FormatPosition(c core.Cell, height int) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", float64(c.X), float64(height), float64(c.Y))
}

// ParsePosition reads a "(x, height, z)" vector back into a cell and height.
func ParsePosition(s string) (core.Cell, int, error) {
	v, err := parseVector(s, 3)
	if err != nil {
		return core.Cell{}, 0, fmt.Errorf("position: %w", err)
	}
	return core.C(round(v[0]), round(v[2])), round(v[1]), nil
}

// FormatRotation renders a yaw in degrees as an "(x, y, z, w)" quaternion.
func FormatRotation(yaw int) string {
	half := float64(yaw) * math.Pi / 360
	return fmt.Sprintf("(%.5f, %.5f, %.5f, %.5f)", 0.0, clean(math.Sin(half)), 0.0, clean(math.Cos(half)))
}

// ParseRotation reads a quaternion and snaps it to the nearest quarter-turn yaw.
func ParseRotation(s string) (int, error) {
	q, err := parseVector(s, 4)
	if err != nil {
		return 0, fmt.Errorf("rotation: %w", err)
	}
	deg := 2 * math.Atan2(q[1], q[3]) * 180 / math.Pi
	yaw := int(math.Round(deg/90)) * 90
	return ((yaw % 360) + 360) % 360, nil
}

func parseVector(s string, n int) ([]float64, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") {
		return nil, fmt.Errorf("malformed vector %q", s)
	}
	parts := strings.Split(s[1:len(s)-1], ",")
	if len(parts) != n {
		return nil, fmt.Errorf("vector %q: want %d components, got %d", s, n, len(parts))
	}
	out := make([]float64, n)
	for i, p := range parts {
		if _, err := fmt.Sscanf(strings.TrimSpace(p), "%g", &out[i]); err != nil {
			return nil, fmt.Errorf("vector %q: %w", s, err)
		}
	}
	return out, nil
}

func round(f float64) int {
	return int(math.Round(f))
}

// clean drops floating-point noise so zero never prints as "-0.00000".
func clean(f float64) float64 {
	if math.Abs(f) < 5e-6 {
		return 0
	}
	return f
}
