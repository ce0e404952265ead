package core

// Color is the foreground of a screen cell.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorDarkGray

	numColors
)

// ansi256 holds the xterm-256 index of every color; "" is the terminal default.
var ansi256 = [numColors]string{
	ColorRed:          "1",
	ColorGreen:        "2",
	ColorYellow:       "3",
	ColorBlue:         "4",
	ColorCyan:         "6",
	ColorWhite:        "7",
	ColorBrightRed:    "9",
	ColorBrightGreen:  "10",
	ColorBrightYellow: "11",
	ColorBrightWhite:  "15",
	ColorOrange:       "208",
	ColorGray:         "245",
	ColorDarkGray:     "238",
}

// ANSI returns the xterm-256 color index, or "" for the terminal default
// and unknown colors.
func (c Color) ANSI() string {
	if c >= numColors {
		return ""
	}
	return ansi256[c]
}

// Colors lists the palette in declaration order.
func Colors() []Color {
	out := make([]Color, numColors)
	for i := range out {
		out[i] = Color(i)
	}
	return out
}
