package game

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// CellWidth is the number of terminal columns used per board cell.
// Two columns keep the board roughly square in a terminal font.
const CellWidth = 2

// hudHeight is the status line plus its separator.
const hudHeight = 2

// FrameSize returns the screen size needed to draw a board of n cells.
func FrameSize(n int) (w, h int) {
	return n*CellWidth + 2, n + 2 + hudHeight
}

// Render draws the HUD, the walled board, the snake and the food into dst.
// The board is centered horizontally; dst is cleared first.
func (s Snapshot) Render(dst *core.Screen) {
	dst.Clear()
	s.renderHUD(dst)

	frameW, _ := FrameSize(s.BoardSize)
	offX := max((dst.Width()-frameW)/2, 0)
	box := core.NewRect(offX, hudHeight, frameW, s.BoardSize+2)
	dst.Box(box, core.ColorWall)

	origin := func(p core.Position) (int, int) {
		return box.X + 1 + p.X*CellWidth, box.Y + 1 + p.Y
	}

	if s.HasFood {
		x, y := origin(s.Food)
		dst.Put(x, y, '●', core.ColorFood)
	}

	for i := len(s.Snake) - 1; i >= 0; i-- {
		color := core.ColorBody
		if i == 0 {
			color = core.ColorHead
			if s.Phase == PhaseGameOver && !s.Won {
				color = core.ColorCrash
			}
		}
		x, y := origin(s.Snake[i])
		dst.Fill(x, y, CellWidth, '█', color)
	}
}

func (s Snapshot) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" Snake  Score: %d  Length: %d", s.Score, len(s.Snake))
	dst.Text(0, 0, hud, core.ColorDefault)
	dst.Fill(0, 1, dst.Width(), '─', core.ColorWall)

	// Status sits in the separator: "─ Normal · PLAYING ─"
	status := s.Phase.String()
	if s.Phase == PhaseGameOver && s.Won {
		status = "BOARD CLEARED"
	}
	label := fmt.Sprintf(" %s · %s ", s.Difficulty.Label(), status)
	x := max((dst.Width()-len([]rune(label)))/2, 0)
	dst.Text(x, 1, label, core.ColorStatus)
}
