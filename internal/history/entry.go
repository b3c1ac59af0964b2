// Package history keeps the ranked list of finished games and persists it
// through a pluggable Backend. The engine never sees this package; drivers
// call Service.RecordGameOver when a session reaches GAME_OVER.
package history

import (
	"time"
)

// Entry is one finished game as shown in the history list.
type Entry struct {
	ID         string    `json:"id"`
	Score      int       `json:"score"`
	Difficulty string    `json:"difficulty"` // Display label, e.g. "Normal"
	RecordedAt time.Time `json:"date"`
}

// DifficultyStats aggregates every journaled game for one difficulty.
type DifficultyStats struct {
	Difficulty string
	Games      int
	Best       int
	Total      int
	LastPlayed time.Time
}

// Average returns the mean score, or 0 when no games were played.
func (s DifficultyStats) Average() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Total) / float64(s.Games)
}
