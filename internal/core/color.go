package core

// Color is a foreground color for a screen cell, mapped to an ANSI 256-color
// code by the platform renderer.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightYellow
	ColorBrightMagenta
	ColorOrange
	ColorGray
)
