package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Difficulty is a named configuration bundle selected when a session starts.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
)

// ErrUnknownDifficulty is returned when a name does not match any difficulty.
var ErrUnknownDifficulty = errors.New("unknown difficulty")

// MinBoardSize leaves room for the three-segment starting snake and a free
// cell for food.
const MinBoardSize = 5

// AllDifficulties returns the difficulties in menu order.
func AllDifficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyNormal, DifficultyHard}
}

// ParseDifficulty resolves a case-insensitive difficulty name.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return d, nil
	}
	return "", fmt.Errorf("%w: %q (want easy, normal or hard)", ErrUnknownDifficulty, s)
}

// Label returns the display name stored in history entries.
func (d Difficulty) Label() string {
	switch d {
	case DifficultyEasy:
		return "Easy"
	case DifficultyNormal:
		return "Normal"
	case DifficultyHard:
		return "Hard"
	default:
		return string(d)
	}
}

// Settings is the fixed bundle a difficulty maps to.
type Settings struct {
	TickIntervalMS  int `yaml:"tick_interval_ms"`
	ScoreMultiplier int `yaml:"score_multiplier"`
	BoardSize       int `yaml:"board_size"`
}

// TickInterval returns the scheduler period for the difficulty.
func (s Settings) TickInterval() time.Duration {
	return time.Duration(s.TickIntervalMS) * time.Millisecond
}

// Validate checks the settings are playable.
func (s Settings) Validate() error {
	if s.TickIntervalMS <= 0 {
		return fmt.Errorf("tick_interval_ms must be positive, got %d", s.TickIntervalMS)
	}
	if s.ScoreMultiplier < 1 {
		return fmt.Errorf("score_multiplier must be at least 1, got %d", s.ScoreMultiplier)
	}
	if s.BoardSize < MinBoardSize {
		return fmt.Errorf("board_size must be at least %d, got %d", MinBoardSize, s.BoardSize)
	}
	return nil
}

// DifficultyTable maps each difficulty to its settings.
type DifficultyTable map[Difficulty]Settings

// Lookup returns the settings for d.
func (t DifficultyTable) Lookup(d Difficulty) (Settings, error) {
	s, ok := t[d]
	if !ok {
		return Settings{}, fmt.Errorf("%w: %q", ErrUnknownDifficulty, d)
	}
	return s, nil
}
