package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultConfig returns the built-in configuration. It mirrors the embedded
// defaults/snake.yaml and is used when that file cannot be parsed.
func DefaultConfig() Config {
	return Config{
		DefaultDifficulty: DifficultyNormal,
		Difficulties:      DefaultDifficultyTable(),
		History:           DefaultHistoryPolicy(),
	}
}

// DefaultDifficultyTable returns the built-in difficulty table.
// Normal reproduces the classic 20x20 board at 150ms per move.
func DefaultDifficultyTable() DifficultyTable {
	return DifficultyTable{
		DifficultyEasy: {
			TickIntervalMS:  200,
			ScoreMultiplier: 1,
			BoardSize:       15,
		},
		DifficultyNormal: {
			TickIntervalMS:  150,
			ScoreMultiplier: 2,
			BoardSize:       20,
		},
		DifficultyHard: {
			TickIntervalMS:  100,
			ScoreMultiplier: 3,
			BoardSize:       25,
		},
	}
}

// DefaultHistoryPolicy returns the built-in history policy.
func DefaultHistoryPolicy() HistoryPolicy {
	return HistoryPolicy{
		Capacity:         10,
		RecordZeroScores: false,
		Backend:          "sqlite",
		Path:             "~/.snake/history.db",
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
