package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/game"
	"github.com/vovakirdan/tui-snake/internal/history"
	"github.com/vovakirdan/tui-snake/internal/spectate"
)

// Options configures a game session. History and Sink are optional.
type Options struct {
	Difficulties config.DifficultyTable
	Default      config.Difficulty
	Seed         int64
	History      *history.Service
	Sink         spectate.Sink
	Session      string // Spectator session name
	Logger       *log.Logger
}

// recordedMsg reports the outcome of RecordGameOver.
type recordedMsg struct {
	entry  history.Entry
	ranked bool
	err    error
}

// Model is the Bubble Tea model that drives one engine. It owns the tick
// scheduler: ticks run only while the engine is PLAYING and every stop bumps
// the generation so ticks already in flight are ignored.
type Model struct {
	engine *game.Engine
	opts   Options

	keyMapper *KeyMapper
	help      help.Model
	menu      DifficultyMenu
	screen    *core.Screen

	gen       uint64     // Scheduler generation
	ticking   bool       // Whether a tick chain is running for gen
	lastPhase game.Phase // Phase seen after the previous mutation

	showHistory bool
	modal       HistoryModal
	lastEntry   history.Entry
	lastRanked  bool

	width    int
	height   int
	quitting bool
}

// NewModel creates a model in READY.
func NewModel(opts Options) Model {
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.Difficulties == nil {
		opts.Difficulties = config.DefaultDifficultyTable()
	}
	if opts.Default == "" {
		opts.Default = config.DifficultyNormal
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	engine := game.New(opts.Difficulties, opts.Seed)
	w, h := game.FrameSize(engine.Settings().BoardSize)

	return Model{
		engine:    engine,
		opts:      opts,
		keyMapper: NewKeyMapper(),
		help:      help.New(),
		menu:      NewDifficultyMenu(opts.Difficulties, opts.Default),
		screen:    core.NewScreen(w, h),
		lastPhase: engine.Phase(),
	}
}

// Init publishes the initial snapshot.
func (m Model) Init() tea.Cmd {
	m.publish()
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.showHistory {
			m.openHistory()
		}
		return m, nil

	case TickMsg:
		return m.handleTick(msg)

	case recordedMsg:
		m.lastEntry = msg.entry
		m.lastRanked = msg.ranked
		if msg.err != nil {
			m.opts.Logger.Error("could not save game", "error", msg.err)
		}
		return m, nil
	}

	return m, nil
}

// handleTick advances the engine when the tick belongs to the running
// scheduler.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if !m.ticking || msg.Gen != m.gen {
		return m, nil
	}
	m.engine.Tick()

	cmd := m.sync()
	if m.engine.Phase() != game.PhasePlaying {
		return m, cmd
	}
	// Still playing: schedule the next move in the same generation.
	return m, tickCmd(m.engine.Settings().TickInterval(), m.gen)
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHistory {
		return m.handleHistoryKey(msg)
	}

	action := m.keyMapper.MapKey(msg)
	if action == core.ActionQuit {
		m.quitting = true
		m.stopTicking()
		return m, tea.Quit
	}
	if action == core.ActionHistory {
		m.openHistory()
		return m, nil
	}

	phase := m.engine.Phase()
	if phase.CanStart() {
		if d, ok := m.keyMapper.MapDifficulty(msg); ok {
			m.menu.Select(d)
			return m, nil
		}
	}

	switch action {
	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		if phase == game.PhaseReady {
			if action == core.ActionUp {
				m.menu.Up()
			} else if action == core.ActionDown {
				m.menu.Down()
			}
			return m, nil
		}
		dir, _ := action.Direction()
		m.engine.SetDirection(dir)

	case core.ActionConfirm:
		if phase.CanStart() {
			m.engine.Start(m.menu.Selected())
		} else {
			m.engine.TogglePause()
		}

	case core.ActionPause:
		m.engine.TogglePause()

	case core.ActionReset:
		m.engine.Reset()
		m.lastEntry = history.Entry{}
		m.lastRanked = false

	default:
		return m, nil
	}

	return m, m.sync()
}

func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKey(msg) {
	case core.ActionQuit:
		m.quitting = true
		m.stopTicking()
		return m, tea.Quit
	case core.ActionHistory, core.ActionPause:
		m.showHistory = false
		return m, nil
	}

	var cmd tea.Cmd
	m.modal, cmd = m.modal.Update(msg)
	return m, cmd
}

// openHistory shows the modal. A running session is paused first so the
// board does not move underneath it.
func (m *Model) openHistory() {
	if m.engine.Pause() {
		m.sync()
	}
	var entries []history.Entry
	if m.opts.History != nil {
		entries = m.opts.History.List()
	}
	m.modal = NewHistoryModal(entries, m.lastEntry.ID, m.height)
	m.showHistory = true
}

// sync runs after every engine mutation. It publishes the snapshot, starts
// or stops the scheduler to match the phase, and records the game on the
// PLAYING to GAME_OVER transition.
func (m *Model) sync() tea.Cmd {
	m.publish()

	phase := m.engine.Phase()
	prev := m.lastPhase
	m.lastPhase = phase

	if phase != game.PhasePlaying {
		m.stopTicking()
	}

	switch {
	case phase == game.PhasePlaying && !m.ticking:
		m.gen++
		m.ticking = true
		if w, h := game.FrameSize(m.engine.Settings().BoardSize); w != m.screen.Width() || h != m.screen.Height() {
			m.screen.Resize(w, h)
		}
		if prev.CanStart() {
			m.opts.Logger.Debug("session started", "difficulty", m.engine.Difficulty(), "session", m.opts.Session)
		}
		return tickCmd(m.engine.Settings().TickInterval(), m.gen)

	case phase == game.PhaseGameOver && prev == game.PhasePlaying:
		snap := m.engine.Snapshot()
		m.opts.Logger.Debug("session over", "score", snap.Score, "won", snap.Won, "session", m.opts.Session)
		return m.recordCmd(snap.Score, m.engine.Difficulty())
	}
	return nil
}

func (m *Model) stopTicking() {
	if m.ticking {
		m.ticking = false
		m.gen++
	}
}

func (m Model) publish() {
	if m.opts.Sink != nil {
		m.opts.Sink.Publish(m.opts.Session, m.engine.Snapshot())
	}
}

// recordCmd hands the finished game to the history service off the
// update loop.
func (m Model) recordCmd(score int, d config.Difficulty) tea.Cmd {
	svc := m.opts.History
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		e, ranked, err := svc.RecordGameOver(context.Background(), score, d)
		return recordedMsg{entry: e, ranked: ranked, err: err}
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHistory {
		return place(m.width, m.height, m.modal.View())
	}

	keys := m.keyMapper.Keys()
	snap := m.engine.Snapshot()
	if snap.Phase == game.PhaseReady {
		best := 0
		if m.opts.History != nil {
			best = m.opts.History.Best()
		}
		return place(m.width, m.height, m.menu.View(best, m.help, keys))
	}

	snap.Render(m.screen)

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")

	switch snap.Phase {
	case game.PhasePaused:
		b.WriteString(bannerStyle.Render("PAUSED"))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("space/p: resume  r: reset"))
	case game.PhaseGameOver:
		title := "GAME OVER"
		if snap.Won {
			title = "YOU WIN"
		}
		b.WriteString(bannerStyle.Render(fmt.Sprintf("%s  Score: %d", title, snap.Score)))
		b.WriteString("\n")
		if m.lastRanked {
			if m.lastEntry.Score > 0 && m.lastEntry.Score >= m.bestScore() {
				b.WriteString(accentStyle.Render("New high score!"))
			} else {
				b.WriteString(accentStyle.Render("Added to history"))
			}
			b.WriteString("\n")
		}
		b.WriteString(dimStyle.Render("space: play again  1/2/3: difficulty  r: menu"))
	default:
		b.WriteString(m.help.ShortHelpView(keys.ShortHelp()))
	}

	return place(m.width, m.height, b.String())
}

func (m Model) bestScore() int {
	if m.opts.History == nil {
		return 0
	}
	return m.opts.History.Best()
}

// Engine exposes the engine for inspection.
func (m Model) Engine() *game.Engine {
	return m.engine
}

// Run starts the Bubble Tea program with the given options.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
