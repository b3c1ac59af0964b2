package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/history"
)

// HistoryModal is the ranked-history overlay. It shows the entries it was
// given and never touches storage itself.
type HistoryModal struct {
	entries   []history.Entry
	highlight string // ID of the entry to mark, usually the last game
	table     table.Model
	height    int
}

// NewHistoryModal creates a modal over entries. highlight may be empty.
func NewHistoryModal(entries []history.Entry, highlight string, height int) HistoryModal {
	m := HistoryModal{entries: entries, highlight: highlight, height: height}
	m.table = m.createTable()
	return m
}

// createTable creates a new table with one row per entry.
func (m *HistoryModal) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 7},
		{Title: "Difficulty", Width: 10},
		{Title: "Date", Width: 17},
	}

	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		rank := fmt.Sprintf("#%d", i+1)
		if e.ID != "" && e.ID == m.highlight {
			rank = "*" + rank
		}
		rows[i] = table.Row{
			rank,
			fmt.Sprintf("%d", e.Score),
			e.Difficulty,
			e.RecordedAt.Local().Format("Jan 02 15:04"),
		}
	}

	tableHeight := len(rows) + 1
	if m.height > 0 {
		tableHeight = min(tableHeight, max(m.height-10, 3))
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(tableHeight),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// Update passes scrolling keys to the table.
func (m HistoryModal) Update(msg tea.Msg) (HistoryModal, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// Len returns the number of entries shown.
func (m HistoryModal) Len() int {
	return len(m.entries)
}

// View renders the modal.
func (m HistoryModal) View() string {
	var content string
	if len(m.entries) == 0 {
		content = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 2).
			Render("No games recorded yet.\nPlay a game to set a high score!")
	} else {
		content = m.table.View()
	}

	body := lipgloss.JoinVertical(lipgloss.Center,
		accentStyle.Render("GAME HISTORY"),
		"",
		content,
		"",
		dimStyle.Render("tab/esc: close  ↑↓: scroll"),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(1, 2).
		Render(body)
}

// RunHistory shows the modal as a standalone program until it is closed.
func RunHistory(entries []history.Entry) error {
	p := tea.NewProgram(historyProgram{modal: NewHistoryModal(entries, "", 0)}, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// historyProgram hosts a HistoryModal outside a game session.
type historyProgram struct {
	modal  HistoryModal
	width  int
	height int
}

func (p historyProgram) Init() tea.Cmd {
	return nil
}

func (p historyProgram) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "tab", "ctrl+c":
			return p, tea.Quit
		}
	case tea.WindowSizeMsg:
		p.width, p.height = msg.Width, msg.Height
		p.modal = NewHistoryModal(p.modal.entries, "", msg.Height)
		return p, nil
	}

	var cmd tea.Cmd
	p.modal, cmd = p.modal.Update(msg)
	return p, cmd
}

func (p historyProgram) View() string {
	return place(p.width, p.height, p.modal.View())
}
