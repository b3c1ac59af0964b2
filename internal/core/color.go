package core

// Color is the role of a screen cell. The terminal layer decides how each
// role looks.
type Color uint8

const (
	ColorDefault Color = iota
	ColorWall          // Board border and HUD separator
	ColorBody          // Snake segments behind the head
	ColorHead          // Snake head while alive
	ColorCrash         // Snake head after a losing collision
	ColorFood
	ColorStatus // Difficulty and phase label
)
