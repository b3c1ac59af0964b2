package game

import (
	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// Snapshot is a read-only copy of the engine state, safe to hand to
// renderers and spectators. Slices are never shared with the engine.
type Snapshot struct {
	Phase      Phase             `json:"phase"`
	Difficulty config.Difficulty `json:"difficulty"`
	BoardSize  int               `json:"boardSize"`
	Tick       uint64            `json:"tick"`
	Score      int               `json:"score"`
	FoodEaten  int               `json:"foodEaten"`
	Snake      []core.Position   `json:"snake"`
	Direction  core.Direction    `json:"direction"`
	Food       core.Position     `json:"food"`
	HasFood    bool              `json:"hasFood"`
	Won        bool              `json:"won"`
}

// Snapshot returns a deep copy of the current state.
func (e *Engine) Snapshot() Snapshot {
	snake := make([]core.Position, len(e.snake))
	copy(snake, e.snake)

	return Snapshot{
		Phase:      e.phase,
		Difficulty: e.difficulty,
		BoardSize:  e.board.W,
		Tick:       e.tick,
		Score:      e.score,
		FoodEaten:  e.foodEaten,
		Snake:      snake,
		Direction:  e.direction,
		Food:       e.food,
		HasFood:    e.hasFood,
		Won:        e.won,
	}
}

// Head returns the head segment, or false for an empty snake.
func (s Snapshot) Head() (core.Position, bool) {
	if len(s.Snake) == 0 {
		return core.Position{}, false
	}
	return s.Snake[0], true
}
