package level

// Color names understood by the game client.
const (
	White       = "White"
	LightRed    = "Light Red"
	Red         = "Red"
	Orange      = "Orange"
	LightOrange = "Light Orange"
	Yellow      = "Yellow"
	Green       = "Green"
	LightGreen  = "Light Green"
	Turquoise   = "Turquoise"
	LightBlue   = "Light Blue"
	Blue        = "Blue"
	Purple      = "Purple"
	Pink        = "Pink"
	Brown       = "Brown"
	Gray        = "Gray"
	Black       = "Black"
)

// Palette is the full set of color names in client order.
var Palette = []string{
	White, LightRed, Red, Orange, LightOrange, Yellow, Green, LightGreen,
	Turquoise, LightBlue, Blue, Purple, Pink, Brown, Gray, Black,
}

// paletteHex maps color names to terminal hex colors for previews.
var paletteHex = map[string]string{
	White:       "#FFFFFF",
	LightRed:    "#FF7F7F",
	Red:         "#E53935",
	Orange:      "#FB8C00",
	LightOrange: "#FFCC80",
	Yellow:      "#FDD835",
	Green:       "#43A047",
	LightGreen:  "#AED581",
	Turquoise:   "#26C6DA",
	LightBlue:   "#81D4FA",
	Blue:        "#1E88E5",
	Purple:      "#8E24AA",
	Pink:        "#F48FB1",
	Brown:       "#795548",
	Gray:        "#9E9E9E",
	Black:       "#212121",
}

// IsPaletteColor reports whether name is a known color.
func IsPaletteColor(name string) bool {
	_, ok := paletteHex[name]
	return ok
}

// Hex returns the preview color for a palette name, or gray for unknown names.
func Hex(name string) string {
	if h, ok := paletteHex[name]; ok {
		return h
	}
	return paletteHex[Gray]
}
