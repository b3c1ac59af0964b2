package history

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-snake/internal/config"
)

// ErrNoJournal is returned by Stats when the backend keeps no journal.
var ErrNoJournal = errors.New("history: backend keeps no game journal")

// Service is the session-end handler shared by every driver. It owns the
// Store, mirrors changes to the Backend and is safe for concurrent use, so
// SSH sessions can share one instance.
type Service struct {
	mu      sync.Mutex
	store   *Store
	backend Backend
	logger  *log.Logger

	now   func() time.Time
	newID func() string
}

// NewService creates a service over backend. A nil logger discards output.
func NewService(policy config.HistoryPolicy, backend Backend, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Service{
		store:   NewStore(policy),
		backend: backend,
		logger:  logger,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Load replaces the in-memory list with the backend's. It fails open: a
// missing or unreadable history leaves an empty list and logs a warning.
func (s *Service) Load(ctx context.Context) {
	entries, err := s.backend.Load(ctx)
	if err != nil {
		s.logger.Warn("could not load history, starting empty", "error", err)
		entries = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Replace(entries)
	s.logger.Debug("history loaded", "entries", len(s.store.entries))
}

// RecordGameOver records a finished game. It returns the entry and whether
// it made the ranked list. Persistence failures are returned but the
// in-memory list keeps the entry.
func (s *Service) RecordGameOver(ctx context.Context, score int, d config.Difficulty) (Entry, bool, error) {
	e := Entry{
		ID:         s.newID(),
		Score:      score,
		Difficulty: d.Label(),
		RecordedAt: s.now(),
	}

	s.mu.Lock()
	changed := s.store.Record(e)
	snapshot := s.store.List()
	s.mu.Unlock()

	var errs []error
	if changed {
		if err := s.backend.Save(ctx, snapshot); err != nil {
			errs = append(errs, fmt.Errorf("history: save: %w", err))
		}
	}
	if j, ok := s.backend.(Journal); ok && s.store.accepts(e) {
		if err := j.Append(ctx, e); err != nil {
			errs = append(errs, fmt.Errorf("history: journal: %w", err))
		}
	}

	err := errors.Join(errs...)
	if err != nil {
		s.logger.Error("could not persist game", "score", score, "difficulty", d, "error", err)
	} else {
		s.logger.Info("game recorded", "score", score, "difficulty", d, "ranked", changed)
	}
	return e, changed, err
}

// List returns the ranked entries, best first.
func (s *Service) List() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.List()
}

// Best returns the top score, or 0 when the list is empty.
func (s *Service) Best() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Best()
}

// Clear empties the ranked list and persists the empty list. The journal
// is left untouched.
func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.store.Replace(nil)
	s.mu.Unlock()

	if err := s.backend.Save(ctx, nil); err != nil {
		return fmt.Errorf("history: clear: %w", err)
	}
	s.logger.Info("history cleared")
	return nil
}

// Stats returns per-difficulty aggregates from the backend journal.
func (s *Service) Stats(ctx context.Context) ([]DifficultyStats, error) {
	j, ok := s.backend.(Journal)
	if !ok {
		return nil, ErrNoJournal
	}
	return j.Stats(ctx)
}

// Close releases the backend.
func (s *Service) Close() error {
	return s.backend.Close()
}
