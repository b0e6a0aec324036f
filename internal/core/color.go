package core

// Color represents a foreground color for a screen cell.
// Hosts map it to ANSI 256-color codes or RGBA values.
type Color uint8

// Predefined colors for runner elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorCyan
	ColorWhite
	ColorBrightYellow
	ColorBrightBlue
	ColorOrange
	ColorBrown
	ColorGray
)
