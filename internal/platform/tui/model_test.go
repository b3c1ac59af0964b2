package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/game"
	"github.com/vovakirdan/tui-snake/internal/history"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

type recordingSink struct {
	sessions []string
	snaps    []game.Snapshot
}

func (s *recordingSink) Publish(session string, snap game.Snapshot) {
	s.sessions = append(s.sessions, session)
	s.snaps = append(s.snaps, snap)
}

var (
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
)

func newTestModel(t *testing.T) (Model, *history.Service, *recordingSink) {
	t.Helper()
	policy := config.DefaultHistoryPolicy()
	policy.RecordZeroScores = true
	svc := history.NewService(policy, storage.NewMemory(), nil)
	sink := &recordingSink{}

	m := NewModel(Options{
		Seed:    42,
		History: svc,
		Sink:    sink,
		Session: "tester",
	})
	return m, svc, sink
}

func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func TestStartSchedulesTicks(t *testing.T) {
	m, _, _ := newTestModel(t)

	m, cmd := step(t, m, keySpace)

	if m.Engine().Phase() != game.PhasePlaying {
		t.Fatalf("Phase = %s, want PLAYING", m.Engine().Phase())
	}
	if cmd == nil {
		t.Fatal("Starting should schedule a tick")
	}
	if !m.ticking || m.gen != 1 {
		t.Errorf("Scheduler state: ticking=%v gen=%d", m.ticking, m.gen)
	}
}

func TestTickAdvancesEngine(t *testing.T) {
	m, _, _ := newTestModel(t)
	m, _ = step(t, m, keySpace)

	m, cmd := step(t, m, TickMsg{Gen: m.gen})

	if got := m.Engine().Snapshot().Tick; got != 1 {
		t.Errorf("Tick = %d, want 1", got)
	}
	if cmd == nil {
		t.Error("A tick while playing should schedule the next one")
	}
}

func TestStaleTickDropped(t *testing.T) {
	m, _, _ := newTestModel(t)
	m, _ = step(t, m, keySpace)
	oldGen := m.gen

	m, _ = step(t, m, runeKey("p"))
	if m.Engine().Phase() != game.PhasePaused {
		t.Fatalf("Phase = %s, want PAUSED", m.Engine().Phase())
	}

	m, cmd := step(t, m, TickMsg{Gen: oldGen})
	if cmd != nil {
		t.Error("A stale tick must not reschedule")
	}
	if got := m.Engine().Snapshot().Tick; got != 0 {
		t.Errorf("Stale tick advanced the engine to tick %d", got)
	}

	m, cmd = step(t, m, runeKey("p"))
	if cmd == nil {
		t.Fatal("Resuming should restart the scheduler")
	}
	if m.gen == oldGen {
		t.Fatal("Resuming should use a new generation")
	}

	// The tick from before the pause is still stale after resuming.
	m, _ = step(t, m, TickMsg{Gen: oldGen})
	if got := m.Engine().Snapshot().Tick; got != 0 {
		t.Errorf("Old generation tick advanced the engine to tick %d", got)
	}

	m, _ = step(t, m, TickMsg{Gen: m.gen})
	if got := m.Engine().Snapshot().Tick; got != 1 {
		t.Errorf("Tick = %d, want 1", got)
	}
}

func TestDifficultySelection(t *testing.T) {
	m, _, _ := newTestModel(t)

	m, _ = step(t, m, runeKey("3"))
	m, _ = step(t, m, keySpace)
	if m.Engine().Difficulty() != config.DifficultyHard {
		t.Errorf("Difficulty = %s, want hard", m.Engine().Difficulty())
	}

	m, _ = step(t, m, runeKey("r"))
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Engine().Difficulty() != config.DifficultyEasy {
		t.Errorf("Difficulty = %s, want easy", m.Engine().Difficulty())
	}
}

func TestSteering(t *testing.T) {
	m, _, _ := newTestModel(t)
	m, _ = step(t, m, keySpace)

	m, _ = step(t, m, runeKey("s"))
	m, _ = step(t, m, TickMsg{Gen: m.gen})

	head, _ := m.Engine().Snapshot().Head()
	if head != (core.Position{X: 10, Y: 11}) {
		t.Errorf("Head = %v, want (10,11)", head)
	}
}

// runToWall ticks a fresh normal game into the right wall and returns the
// command produced by the final tick.
func runToWall(t *testing.T, m Model) (Model, tea.Cmd) {
	t.Helper()
	m, _ = step(t, m, keySpace)

	var cmd tea.Cmd
	for i := 0; i < 10; i++ {
		m, cmd = step(t, m, TickMsg{Gen: m.gen})
	}
	if m.Engine().Phase() != game.PhaseGameOver {
		t.Fatalf("Phase = %s, want GAME_OVER", m.Engine().Phase())
	}
	return m, cmd
}

func TestGameOverRecordsOnce(t *testing.T) {
	m, svc, _ := newTestModel(t)
	gen := m.gen

	m, cmd := runToWall(t, m)
	if cmd == nil {
		t.Fatal("Game over should produce a record command")
	}
	if m.ticking {
		t.Error("Scheduler should stop at game over")
	}

	msg := cmd()
	rec, ok := msg.(recordedMsg)
	if !ok {
		t.Fatalf("Record command returned %T", msg)
	}
	if rec.err != nil {
		t.Fatalf("RecordGameOver failed: %v", rec.err)
	}
	m, _ = step(t, m, msg)

	// Late ticks and idle keys must not record again.
	m, cmd = step(t, m, TickMsg{Gen: m.gen})
	if cmd != nil {
		t.Error("Tick after game over should be dropped")
	}
	m, _ = step(t, m, TickMsg{Gen: gen})
	m, _ = step(t, m, runeKey("p"))

	entries := svc.List()
	if len(entries) != 1 {
		t.Fatalf("Expected exactly one history entry, got %d", len(entries))
	}
	if entries[0].Difficulty != "Normal" {
		t.Errorf("Difficulty label = %q, want Normal", entries[0].Difficulty)
	}
	if m.lastEntry.ID != entries[0].ID || !m.lastRanked {
		t.Errorf("Model did not keep the recorded entry: %+v", m.lastEntry)
	}
}

func TestPlayAgainAfterGameOver(t *testing.T) {
	m, svc, _ := newTestModel(t)
	m, cmd := runToWall(t, m)
	m, _ = step(t, m, cmd())

	m, cmd = step(t, m, keySpace)
	if m.Engine().Phase() != game.PhasePlaying {
		t.Fatalf("Phase = %s, want PLAYING", m.Engine().Phase())
	}
	if cmd == nil {
		t.Error("Starting again should schedule ticks")
	}

	_, cmd = runToWallFromPlaying(t, m)
	if cmd == nil {
		t.Fatal("Second game over should be recorded too")
	}
	cmd()
	if got := len(svc.List()); got != 2 {
		t.Errorf("Expected 2 history entries, got %d", got)
	}
}

func TestResetNeverRecords(t *testing.T) {
	m, svc, _ := newTestModel(t)
	m, _ = step(t, m, keySpace)
	m, _ = step(t, m, TickMsg{Gen: m.gen})

	m, cmd := step(t, m, runeKey("r"))
	if cmd != nil {
		t.Error("Reset should not produce a command")
	}
	if m.Engine().Phase() != game.PhaseReady {
		t.Errorf("Phase = %s, want READY", m.Engine().Phase())
	}
	if m.ticking {
		t.Error("Reset should stop the scheduler")
	}
	if len(svc.List()) != 0 {
		t.Error("Reset must not record history")
	}
}

func TestSinkReceivesSnapshots(t *testing.T) {
	m, _, sink := newTestModel(t)

	m, _ = step(t, m, keySpace)
	m, _ = step(t, m, TickMsg{Gen: m.gen})

	if len(sink.snaps) < 2 {
		t.Fatalf("Expected snapshots for start and tick, got %d", len(sink.snaps))
	}
	last := sink.snaps[len(sink.snaps)-1]
	if last.Tick != 1 || last.Phase != game.PhasePlaying {
		t.Errorf("Last snapshot = %+v", last)
	}
	for _, s := range sink.sessions {
		if s != "tester" {
			t.Errorf("Snapshot published for session %q", s)
		}
	}
}

func TestHistoryModal(t *testing.T) {
	m, svc, _ := newTestModel(t)
	svc.RecordGameOver(context.Background(), 7, config.DifficultyEasy)

	m, _ = step(t, m, keySpace)
	m, _ = step(t, m, keyTab)

	if !m.showHistory {
		t.Fatal("Tab should open the history modal")
	}
	if m.Engine().Phase() != game.PhasePaused {
		t.Errorf("Opening history should pause, phase = %s", m.Engine().Phase())
	}
	if m.modal.Len() != 1 {
		t.Errorf("Modal shows %d entries, want 1", m.modal.Len())
	}
	if !strings.Contains(m.View(), "GAME HISTORY") {
		t.Error("View should show the modal")
	}

	// Steering keys go to the table, not the engine.
	m, _ = step(t, m, runeKey("s"))
	if m.Engine().Phase() != game.PhasePaused {
		t.Errorf("Phase = %s, want PAUSED", m.Engine().Phase())
	}

	m, _ = step(t, m, keyTab)
	if m.showHistory {
		t.Error("Tab should close the history modal")
	}
}

func TestQuit(t *testing.T) {
	m, _, _ := newTestModel(t)
	m, _ = step(t, m, keySpace)

	m, cmd := step(t, m, runeKey("q"))
	if cmd == nil {
		t.Fatal("Quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Quit should return tea.Quit")
	}
	if m.ticking {
		t.Error("Quit should stop the scheduler")
	}
	if m.View() != "" {
		t.Error("View should be empty after quitting")
	}
}

func TestViews(t *testing.T) {
	m, _, _ := newTestModel(t)

	view := m.View()
	for _, want := range []string{"S N A K E", "Easy", "Normal", "Hard", "No games recorded yet"} {
		if !strings.Contains(view, want) {
			t.Errorf("Welcome view is missing %q", want)
		}
	}

	m, _ = step(t, m, keySpace)
	if view := m.View(); !strings.Contains(view, "PLAYING") || !strings.Contains(view, "Score: 0") {
		t.Errorf("Board view is missing status:\n%s", view)
	}

	m, _ = step(t, m, runeKey("p"))
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("Paused view should say PAUSED")
	}

	m, _ = step(t, m, runeKey("p"))
	m, _ = runToWallFromPlaying(t, m)
	if !strings.Contains(m.View(), "GAME OVER") {
		t.Error("Game over view should say GAME OVER")
	}
}

func runToWallFromPlaying(t *testing.T, m Model) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for i := 0; i < 20 && m.Engine().Phase() == game.PhasePlaying; i++ {
		m, cmd = step(t, m, TickMsg{Gen: m.gen})
	}
	return m, cmd
}
