package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/history"
)

// DifficultyView is the public shape of one difficulty.
type DifficultyView struct {
	Name            config.Difficulty `json:"name"`
	Label           string            `json:"label"`
	TickIntervalMS  int               `json:"tickIntervalMs"`
	ScoreMultiplier int               `json:"scoreMultiplier"`
	BoardSize       int               `json:"boardSize"`
}

// StatsView is the public shape of one journal aggregate.
type StatsView struct {
	Difficulty string    `json:"difficulty"`
	Games      int       `json:"games"`
	Best       int       `json:"best"`
	Average    float64   `json:"average"`
	LastPlayed time.Time `json:"lastPlayed"`
}

func handleHistory(svc *history.Service, logger *log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries := []history.Entry{}
		if svc != nil {
			entries = append(entries, svc.List()...)
		}
		writeJSON(w, logger, entries)
	}
}

func handleStats(svc *history.Service, logger *log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			http.Error(w, "history is disabled", http.StatusNotFound)
			return
		}
		stats, err := svc.Stats(r.Context())
		if errors.Is(err, history.ErrNoJournal) {
			http.Error(w, err.Error(), http.StatusNotImplemented)
			return
		}
		if err != nil {
			logger.Error("failed to load stats", "error", err)
			http.Error(w, "Failed to load stats", http.StatusInternalServerError)
			return
		}

		views := make([]StatsView, 0, len(stats))
		for _, st := range stats {
			views = append(views, StatsView{
				Difficulty: st.Difficulty,
				Games:      st.Games,
				Best:       st.Best,
				Average:    st.Average(),
				LastPlayed: st.LastPlayed,
			})
		}
		writeJSON(w, logger, views)
	}
}

func handleDifficulties(table config.DifficultyTable, logger *log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		views := make([]DifficultyView, 0, len(table))
		for _, d := range config.AllDifficulties() {
			s, err := table.Lookup(d)
			if err != nil {
				continue
			}
			views = append(views, DifficultyView{
				Name:            d,
				Label:           d.Label(),
				TickIntervalMS:  s.TickIntervalMS,
				ScoreMultiplier: s.ScoreMultiplier,
				BoardSize:       s.BoardSize,
			})
		}
		writeJSON(w, logger, views)
	}
}

func writeJSON(w http.ResponseWriter, logger *log.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

// logRequests logs every request at debug level.
func logRequests(logger *log.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("request", "method", r.Method, "path", r.URL.Path, "took", time.Since(start))
		})
	}
}
