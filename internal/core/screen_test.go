package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(6, 3)

	if s.Width() != 6 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, want 6x3", s.Width(), s.Height())
	}
	if got := s.String(); got != "      \n      \n      " {
		t.Errorf("new screen = %q", got)
	}
}

func TestScreenPutOutOfBounds(t *testing.T) {
	s := NewScreen(4, 4)

	s.Put(-1, 0, 'X', ColorFood)
	s.Put(4, 0, 'X', ColorFood)
	s.Put(0, -1, 'X', ColorFood)
	s.Put(0, 4, 'X', ColorFood)

	if strings.ContainsRune(s.String(), 'X') {
		t.Errorf("out of bounds writes leaked: %q", s.String())
	}
	if c := s.Cell(10, 10); c != blankCell {
		t.Errorf("Cell outside = %+v, want blank", c)
	}
}

func TestScreenFillDrawsSnakeSegment(t *testing.T) {
	s := NewScreen(6, 1)
	s.Fill(2, 0, 2, '█', ColorHead)

	if s.Row(0) != "  ██  " {
		t.Errorf("Row(0) = %q", s.Row(0))
	}
	if s.Cell(3, 0).Color != ColorHead {
		t.Errorf("Cell(3,0) = %+v", s.Cell(3, 0))
	}
}

func TestScreenClearResetsColors(t *testing.T) {
	s := NewScreen(3, 1)
	s.Text(0, 0, "abc", ColorStatus)

	s.Clear()

	if s.Row(0) != "   " || s.Cell(1, 0).Color != ColorDefault {
		t.Errorf("after Clear: %q %+v", s.Row(0), s.Cell(1, 0))
	}
}

func TestScreenTextClipsAtEdge(t *testing.T) {
	s := NewScreen(8, 2)
	s.Text(5, 1, "Score", ColorDefault)

	if s.Row(1) != "     Sco" {
		t.Errorf("Row(1) = %q", s.Row(1))
	}
}

func TestScreenBox(t *testing.T) {
	s := NewScreen(6, 4)
	s.Box(NewRect(0, 0, 6, 4), ColorWall)

	want := "┌────┐\n│    │\n│    │\n└────┘"
	if got := s.String(); got != want {
		t.Errorf("Box:\n%s\nwant:\n%s", got, want)
	}
	if s.Cell(5, 3).Color != ColorWall {
		t.Error("box should carry its color")
	}
}

func TestScreenResizeClears(t *testing.T) {
	s := NewScreen(4, 2)
	s.Text(0, 0, "food", ColorFood)

	s.Resize(3, 3)

	if s.Width() != 3 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, want 3x3", s.Width(), s.Height())
	}
	if s.String() != "   \n   \n   " {
		t.Errorf("Resize should clear, got %q", s.String())
	}
}

func TestScreenRowOutOfRange(t *testing.T) {
	s := NewScreen(2, 2)
	if s.Row(5) != "" {
		t.Errorf("Row(5) = %q, want empty", s.Row(5))
	}
}
