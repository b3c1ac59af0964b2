// Package config provides YAML-based configuration loading for the snake
// game: the difficulty table and the history policy.
package config

import (
	"errors"
	"fmt"
)

// Config contains all configuration for the game and its history.
type Config struct {
	DefaultDifficulty Difficulty      `yaml:"default_difficulty"`
	Difficulties      DifficultyTable `yaml:"difficulties"`
	History           HistoryPolicy   `yaml:"history"`
}

// HistoryPolicy controls what the history keeps and where it is persisted.
type HistoryPolicy struct {
	Capacity         int    `yaml:"capacity"`           // Max entries kept, best first
	RecordZeroScores bool   `yaml:"record_zero_scores"` // Whether a 0-point game is recorded
	Backend          string `yaml:"backend"`            // "sqlite", "json" or "memory"
	Path             string `yaml:"path"`               // Backend location, ~ is expanded
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if _, ok := c.Difficulties[c.DefaultDifficulty]; !ok {
		return fmt.Errorf("%w: default_difficulty %q is not in the difficulty table", ErrInvalid, c.DefaultDifficulty)
	}
	for _, d := range AllDifficulties() {
		s, ok := c.Difficulties[d]
		if !ok {
			return fmt.Errorf("%w: difficulty %q is missing", ErrInvalid, d)
		}
		if err := s.Validate(); err != nil {
			return fmt.Errorf("%w: difficulty %q: %v", ErrInvalid, d, err)
		}
	}
	if c.History.Capacity < 1 {
		return fmt.Errorf("%w: history.capacity must be at least 1, got %d", ErrInvalid, c.History.Capacity)
	}
	return nil
}
