package level

import (
	"errors"

	"github.com/tidwall/gjson"
)

// Summary is a cheap view of a stored document that skips full decoding.
type Summary struct {
	LevelName string
	UserName  string
	Skybox    string
	Size      int
	Counts    map[Kind]int
}

// Total returns the number of elements across all lists.
func (s Summary) Total() int {
	n := 0
	for _, c := range s.Counts {
		n += c
	}
	return n
}

// ErrInvalidJSON is returned by Inspect for malformed input.
var ErrInvalidJSON = errors.New("level: invalid json")

// Inspect reads the header and element counts of an encoded document.
func Inspect(data []byte) (Summary, error) {
	if !gjson.ValidBytes(data) {
		return Summary{}, ErrInvalidJSON
	}

	header := gjson.GetManyBytes(data,
		"environment.level_name",
		"environment.user_name",
		"environment.skybox",
	)
	s := Summary{
		LevelName: header[0].String(),
		UserName:  header[1].String(),
		Skybox:    header[2].String(),
		Counts:    make(map[Kind]int),
	}

	for _, list := range []string{"spawnpoints", "flags", "level"} {
		gjson.GetBytes(data, list).ForEach(func(_, el gjson.Result) bool {
			if kind, _, err := ParseName(el.Get("name").String()); err == nil {
				s.Counts[kind]++
			}
			if cell, _, err := ParsePosition(el.Get("position").String()); err == nil {
				s.Size = max(s.Size, cell.X+1, cell.Y+1)
			}
			return true
		})
	}
	return s, nil
}
