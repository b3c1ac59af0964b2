package core

import (
	"strings"
)

// Cell is one terminal column: a rune and its color role.
type Cell struct {
	Rune  rune
	Color Color
}

var blankCell = Cell{Rune: ' ', Color: ColorDefault}

// Screen is a fixed-size cell buffer the board is drawn into once per frame.
// Writes outside the buffer are dropped, so callers can draw without
// clipping.
type Screen struct {
	width  int
	height int
	cells  []Cell // Row-major
}

// NewScreen creates a blank screen of width x height cells.
func NewScreen(width, height int) *Screen {
	s := &Screen{}
	s.Resize(width, height)
	return s
}

// Width returns the screen width in columns.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in rows.
func (s *Screen) Height() int {
	return s.height
}

// Resize reallocates the buffer. The content is discarded; the next frame
// redraws everything.
func (s *Screen) Resize(width, height int) {
	s.width = max(width, 0)
	s.height = max(height, 0)
	s.cells = make([]Cell, s.width*s.height)
	s.Clear()
}

// Clear blanks every cell.
func (s *Screen) Clear() {
	for i := range s.cells {
		s.cells[i] = blankCell
	}
}

func (s *Screen) index(x, y int) (int, bool) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return 0, false
	}
	return y*s.width + x, true
}

// Put writes one cell.
func (s *Screen) Put(x, y int, r rune, c Color) {
	if i, ok := s.index(x, y); ok {
		s.cells[i] = Cell{Rune: r, Color: c}
	}
}

// Fill writes n copies of r starting at (x, y), left to right.
func (s *Screen) Fill(x, y, n int, r rune, c Color) {
	for i := 0; i < n; i++ {
		s.Put(x+i, y, r, c)
	}
}

// Cell returns the cell at (x, y), or a blank cell outside the buffer.
func (s *Screen) Cell(x, y int) Cell {
	if i, ok := s.index(x, y); ok {
		return s.cells[i]
	}
	return blankCell
}

// Text writes text starting at (x, y), one rune per column.
func (s *Screen) Text(x, y int, text string, c Color) {
	for _, r := range text {
		s.Put(x, y, r, c)
		x++
	}
}

// Box outlines r with box-drawing runes.
func (s *Screen) Box(r Rect, c Color) {
	right, bottom := r.Right()-1, r.Bottom()-1

	s.Fill(r.X+1, r.Y, r.W-2, '─', c)
	s.Fill(r.X+1, bottom, r.W-2, '─', c)
	for y := r.Y + 1; y < bottom; y++ {
		s.Put(r.X, y, '│', c)
		s.Put(right, y, '│', c)
	}

	s.Put(r.X, r.Y, '┌', c)
	s.Put(right, r.Y, '┐', c)
	s.Put(r.X, bottom, '└', c)
	s.Put(right, bottom, '┘', c)
}

// Row returns row y as plain text.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return ""
	}
	var sb strings.Builder
	for _, c := range s.cells[y*s.width : (y+1)*s.width] {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}

// String returns the buffer as plain text, rows joined by newlines.
func (s *Screen) String() string {
	rows := make([]string, s.height)
	for y := range rows {
		rows[y] = s.Row(y)
	}
	return strings.Join(rows, "\n")
}
