package history

import (
	"slices"

	"github.com/vovakirdan/tui-snake/internal/config"
)

// Store is the in-memory ranked list: descending by score, stable on ties,
// never longer than the policy capacity. It is not safe for concurrent use;
// Service guards it.
type Store struct {
	policy  config.HistoryPolicy
	entries []Entry
}

// NewStore creates an empty store. A capacity below 1 falls back to the
// built-in default.
func NewStore(policy config.HistoryPolicy) *Store {
	if policy.Capacity < 1 {
		policy.Capacity = config.DefaultHistoryPolicy().Capacity
	}
	return &Store{policy: policy}
}

// Capacity returns the maximum number of entries kept.
func (s *Store) Capacity() int {
	return s.policy.Capacity
}

// Record inserts e and reports whether the list changed. Zero scores are
// rejected unless the policy records them; an entry that ranks below a full
// list is dropped.
func (s *Store) Record(e Entry) bool {
	if !s.accepts(e) {
		return false
	}

	// Ties keep their order, so e goes after every entry scoring at least as much.
	pos := 0
	for pos < len(s.entries) && s.entries[pos].Score >= e.Score {
		pos++
	}
	if pos >= s.policy.Capacity {
		return false
	}

	s.entries = slices.Insert(s.entries, pos, e)
	if len(s.entries) > s.policy.Capacity {
		s.entries = s.entries[:s.policy.Capacity]
	}
	return true
}

// List returns a copy of the ranked entries.
func (s *Store) List() []Entry {
	return slices.Clone(s.entries)
}

// Replace swaps the list for entries loaded from a backend, normalising
// them to the store's ordering and policy.
func (s *Store) Replace(entries []Entry) {
	next := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if s.accepts(e) {
			next = append(next, e)
		}
	}
	sortEntries(next)
	if len(next) > s.policy.Capacity {
		next = next[:s.policy.Capacity]
	}
	s.entries = next
}

// Best returns the top score, or 0 for an empty list.
func (s *Store) Best() int {
	if len(s.entries) == 0 {
		return 0
	}
	return s.entries[0].Score
}

func (s *Store) accepts(e Entry) bool {
	if e.Score < 0 {
		return false
	}
	return e.Score > 0 || s.policy.RecordZeroScores
}

func sortEntries(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return b.Score - a.Score
	})
}
