package level

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vovakirdan/levelforge/internal/core"
)

func sampleDocument() *Document {
	d := NewDocument(Environment{Skybox: "Sunset", LevelName: "Demo", UserName: "ana"})
	d.Add(Element{Kind: KindSpawnpoint, Cell: core.C(5, 5), Height: HeightBoard, Yaw: Yaw270})
	d.Add(Element{Kind: KindFlag, Cell: core.C(1, 1), Height: HeightBoard})
	d.Add(Element{Kind: KindDoor, Cell: core.C(3, 3), Height: HeightBoard, Yaw: Yaw90, Color: Red})
	d.Add(Element{Kind: KindPlate, Index: 0, Door: 0, Cell: core.C(4, 5), Height: HeightBoard})
	d.Add(Element{Kind: KindBlock, Index: 0, Cell: core.C(3, 1), Height: HeightBoard, Color: Black})
	d.Add(Element{Kind: KindStraightPath, Index: 1, Cell: core.C(5, 4), Height: HeightBoard, Yaw: Yaw0, Color: Purple})
	d.Add(Element{Kind: KindCornerPath, Index: 2, Cell: core.C(5, 3), Height: HeightBoard, Yaw: Yaw180, Color: Purple})
	d.Add(Element{Kind: KindBlock, Index: 3, Cell: core.C(0, 0), Height: HeightBoard, Color: Black})
	d.Add(Element{Kind: KindBlock, Index: 4, Cell: core.C(1, 1), Height: HeightFloor, Color: LightOrange})
	return d
}

func TestEncodeLayout(t *testing.T) {
	data, err := Encode(sampleDocument())
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	out := string(data)

	wantInOrder := []string{
		`"environment": {`,
		`"skybox": "Sunset"`,
		`"level_name": "Demo"`,
		`"user_name": "ana"`,
		`"dev_minutes": 0`,
		`"dev_seconds": 0`,
		`"dev_blocks": 0`,
		`"spawnpoints": [`,
		`"name": "Spawnpoint 0"`,
		`"rotation": "(0.00000, 0.70711, 0.00000, -0.70711)"`,
		`"options": []`,
		`"flags": [`,
		`"name": "Flag 0"`,
		`"Timed": "False"`,
		`"Seconds for win": "0"`,
		`"level": [`,
		`"name": "Lifting Door 0"`,
		`"position": "(3.00, 1.00, 3.00)"`,
		`"rotation": "(0.00000, 0.70711, 0.00000, 0.70711)"`,
		`"Color": "Red"`,
		`"name": "Pressure Plate 0"`,
		`"Lifting Door 0": "Toggle"`,
		`"name": "Full Block 0"`,
		`"name": "Straight Path 1"`,
		`"name": "Corner Path 2"`,
		`"rotation": "(0.00000, 1.00000, 0.00000, 0.00000)"`,
		`"position": "(1.00, 0.00, 1.00)"`,
	}
	pos := 0
	for _, w := range wantInOrder {
		i := strings.Index(out[pos:], w)
		if i < 0 {
			t.Fatalf("expected %s after offset %d in:\n%s", w, pos, out)
		}
		pos += i + len(w)
	}

	if !strings.HasPrefix(out, "{\n  \"environment\"") {
		t.Errorf("expected two-space indent, got prefix %q", out[:20])
	}
}

func TestRoundTrip(t *testing.T) {
	first, err := Encode(sampleDocument())
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}

	doc, err := Decode(first)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}

	second, err := Encode(doc)
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("round trip not byte-identical:\n%s\n---\n%s", first, second)
	}

	orig := sampleDocument()
	for _, k := range AllKinds() {
		if doc.Count(k) != orig.Count(k) {
			t.Errorf("Count(%v) = %d, expected %d", k, doc.Count(k), orig.Count(k))
		}
	}
	if doc.Environment != orig.Environment {
		t.Errorf("Environment = %+v, expected %+v", doc.Environment, orig.Environment)
	}

	plates := doc.Find(KindPlate)
	if len(plates) != 1 || plates[0].Door != 0 {
		t.Errorf("plate door reference not recovered: %+v", plates)
	}
	if sp := doc.Spawnpoints[0]; sp.Yaw != Yaw270 || sp.Cell != core.C(5, 5) {
		t.Errorf("spawnpoint = %+v, expected yaw 270 at (5,5)", sp)
	}
}

func TestParseName(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		index   int
		wantErr bool
	}{
		{"Full Block 12", KindBlock, 12, false},
		{"Lifting Door 1", KindDoor, 1, false},
		{"Pressure Plate 0", KindPlate, 0, false},
		{"Straight Path 7", KindStraightPath, 7, false},
		{"Corner Path 8", KindCornerPath, 8, false},
		{"Flag 0", KindFlag, 0, false},
		{"Spawnpoint 0", KindSpawnpoint, 0, false},
		{"Teleporter 1", 0, 0, true},
		{"Full Block x", 0, 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			kind, idx, err := ParseName(tc.name)
			if tc.wantErr {
				if err == nil {
					t.Errorf("ParseName(%q) should fail", tc.name)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseName(%q) failed: %v", tc.name, err)
			}
			if kind != tc.kind || idx != tc.index {
				t.Errorf("ParseName(%q) = %v %d, expected %v %d", tc.name, kind, idx, tc.kind, tc.index)
			}
		})
	}
}

func TestRotation(t *testing.T) {
	for _, yaw := range Yaws {
		got, err := ParseRotation(FormatRotation(yaw))
		if err != nil {
			t.Fatalf("ParseRotation(%d) failed: %v", yaw, err)
		}
		if got != yaw {
			t.Errorf("yaw %d came back as %d", yaw, got)
		}
	}

	if FormatRotation(0) != "(0.00000, 0.00000, 0.00000, 1.00000)" {
		t.Errorf("identity rotation = %s", FormatRotation(0))
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{`},
		{"unknown kind", `{"level":[{"name":"Rocket 1","position":"(1.00, 1.00, 1.00)","rotation":"(0, 0, 0, 1)","options":[]}]}`},
		{"bad position", `{"level":[{"name":"Full Block 1","position":"1,1,1","rotation":"(0, 0, 0, 1)","options":[]}]}`},
		{"short rotation", `{"level":[{"name":"Full Block 1","position":"(1.00, 1.00, 1.00)","rotation":"(0, 0, 1)","options":[]}]}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Decode([]byte(tc.data)); err == nil {
				t.Error("Decode() should fail")
			}
		})
	}
}

func TestInspect(t *testing.T) {
	data, err := Encode(sampleDocument())
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}

	s, err := Inspect(data)
	if err != nil {
		t.Fatalf("Inspect() failed: %v", err)
	}
	if s.LevelName != "Demo" || s.UserName != "ana" || s.Skybox != "Sunset" {
		t.Errorf("header = %+v", s)
	}
	if s.Counts[KindBlock] != 3 || s.Counts[KindFlag] != 1 || s.Counts[KindSpawnpoint] != 1 {
		t.Errorf("Counts = %v", s.Counts)
	}
	if s.Total() != 9 {
		t.Errorf("Total() = %d, expected 9", s.Total())
	}
	if s.Size != 6 {
		t.Errorf("Size = %d, expected 6", s.Size)
	}

	if _, err := Inspect([]byte("{nope")); err != ErrInvalidJSON {
		t.Errorf("Inspect(invalid) error = %v, expected ErrInvalidJSON", err)
	}
}
