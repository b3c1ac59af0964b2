// Package game implements the snake engine: the authoritative session state
// and the deterministic operations that advance it. The engine knows nothing
// about timers, terminals or persistence; a driver calls Tick on its own
// schedule and forwards input as plain method calls.
package game

import (
	"math/rand"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// noFood marks the absence of food once the board is full.
var noFood = core.Position{X: -1, Y: -1}

// Engine owns one session's snake, food, direction, score and phase.
type Engine struct {
	table config.DifficultyTable
	rng   *rand.Rand

	difficulty config.Difficulty
	settings   config.Settings
	board      core.Rect

	phase     Phase
	tick      uint64
	score     int
	foodEaten int
	won       bool

	// Snake state
	snake     []core.Position // Head at index 0
	direction core.Direction  // Last applied direction
	nextDir   core.Direction  // Buffered direction for next move

	food    core.Position
	hasFood bool
}

// New creates an engine in READY. The seed drives food placement, so two
// engines with the same seed and the same calls produce the same sessions.
func New(table config.DifficultyTable, seed int64) *Engine {
	e := &Engine{
		table: table,
		rng:   rand.New(rand.NewSource(seed)),
	}
	e.difficulty = config.DifficultyNormal
	if s, err := table.Lookup(e.difficulty); err == nil {
		e.settings = s
	}
	e.layoutBoard()
	return e
}

// Start begins a new session at difficulty d. It is accepted only in READY
// or GAME_OVER and fully replaces the previous session's state.
func (e *Engine) Start(d config.Difficulty) bool {
	if !e.phase.CanStart() {
		return false
	}
	settings, err := e.table.Lookup(d)
	if err != nil {
		return false
	}

	e.difficulty = d
	e.settings = settings
	e.layoutBoard()
	e.spawnFood()
	e.phase = PhasePlaying
	return true
}

// layoutBoard resets the board to the starting configuration for the current
// settings: a three-segment snake with its head at the exact centre, body
// extending left, facing right.
func (e *Engine) layoutBoard() {
	e.board = core.Square(e.settings.BoardSize)
	e.tick = 0
	e.score = 0
	e.foodEaten = 0
	e.won = false

	head := e.board.Center()
	e.snake = []core.Position{
		head,
		{X: head.X - 1, Y: head.Y},
		{X: head.X - 2, Y: head.Y},
	}
	e.direction = core.DirRight
	e.nextDir = core.DirRight
	e.food = noFood
	e.hasFood = false
}

// SetDirection buffers a direction change for the next tick. It is rejected
// outside PLAYING and when d reverses the direction the snake is moving in.
// Between two ticks the last accepted call wins.
func (e *Engine) SetDirection(d core.Direction) bool {
	if e.phase != PhasePlaying || !d.Valid() {
		return false
	}
	if d == e.direction.Opposite() {
		return false
	}
	e.nextDir = d
	return true
}

// Pause moves PLAYING to PAUSED.
func (e *Engine) Pause() bool {
	if e.phase != PhasePlaying {
		return false
	}
	e.phase = PhasePaused
	return true
}

// Resume moves PAUSED back to PLAYING.
func (e *Engine) Resume() bool {
	if e.phase != PhasePaused {
		return false
	}
	e.phase = PhasePlaying
	return true
}

// TogglePause pauses a running session or resumes a paused one.
func (e *Engine) TogglePause() bool {
	if e.Pause() {
		return true
	}
	return e.Resume()
}

// Reset discards the session and returns to READY. It never records history;
// that is the caller's job at the GAME_OVER transition.
func (e *Engine) Reset() {
	e.layoutBoard()
	e.phase = PhaseReady
}

// Tick advances the session by one move. It is a no-op unless PLAYING.
func (e *Engine) Tick() {
	if e.phase != PhasePlaying || len(e.snake) == 0 {
		return
	}
	e.tick++

	e.direction = e.nextDir
	newHead := e.snake[0].Add(e.direction.Delta())

	// Collisions end the session before food is considered, and leave the
	// snake as it was before the move.
	if !e.board.Contains(newHead) || e.isSnakeAt(newHead) {
		e.phase = PhaseGameOver
		return
	}

	e.snake = append([]core.Position{newHead}, e.snake...)

	if e.hasFood && newHead == e.food {
		e.score += e.settings.ScoreMultiplier
		e.foodEaten++
		if !e.spawnFood() {
			// Nowhere left to put food: the snake filled the board.
			e.won = true
			e.phase = PhaseGameOver
		}
		return
	}

	e.snake = e.snake[:len(e.snake)-1]
}

// spawnFood places food at a random free cell and reports whether one existed.
func (e *Engine) spawnFood() bool {
	occupied := make(map[core.Position]bool, len(e.snake))
	for _, seg := range e.snake {
		occupied[seg] = true
	}

	emptyCells := make([]core.Position, 0, e.board.Area()-len(occupied))
	for y := 0; y < e.board.H; y++ {
		for x := 0; x < e.board.W; x++ {
			p := core.Position{X: x, Y: y}
			if !occupied[p] {
				emptyCells = append(emptyCells, p)
			}
		}
	}

	if len(emptyCells) == 0 {
		e.food = noFood
		e.hasFood = false
		return false
	}

	e.food = emptyCells[e.rng.Intn(len(emptyCells))]
	e.hasFood = true
	return true
}

// isSnakeAt checks if the snake occupies the given cell.
func (e *Engine) isSnakeAt(p core.Position) bool {
	for _, seg := range e.snake {
		if seg == p {
			return true
		}
	}
	return false
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// Score returns the current score.
func (e *Engine) Score() int {
	return e.score
}

// Difficulty returns the difficulty of the current (or last) session.
func (e *Engine) Difficulty() config.Difficulty {
	return e.difficulty
}

// Settings returns the settings fixed for the current session.
func (e *Engine) Settings() config.Settings {
	return e.settings
}
