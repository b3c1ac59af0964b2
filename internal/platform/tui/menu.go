package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/config"
)

// DifficultyMenu is the cursor over the difficulty list on the welcome screen.
type DifficultyMenu struct {
	items  []config.Difficulty
	table  config.DifficultyTable
	cursor int
}

// NewDifficultyMenu creates a menu with the cursor on initial.
func NewDifficultyMenu(table config.DifficultyTable, initial config.Difficulty) DifficultyMenu {
	m := DifficultyMenu{items: config.AllDifficulties(), table: table}
	m.Select(initial)
	return m
}

// Up moves the cursor up, stopping at the first item.
func (m *DifficultyMenu) Up() {
	if m.cursor > 0 {
		m.cursor--
	}
}

// Down moves the cursor down, stopping at the last item.
func (m *DifficultyMenu) Down() {
	if m.cursor < len(m.items)-1 {
		m.cursor++
	}
}

// Select moves the cursor to d. Unknown difficulties are ignored.
func (m *DifficultyMenu) Select(d config.Difficulty) {
	for i, item := range m.items {
		if item == d {
			m.cursor = i
			return
		}
	}
}

// Selected returns the difficulty under the cursor.
func (m DifficultyMenu) Selected() config.Difficulty {
	return m.items[m.cursor]
}

// View renders the welcome screen.
func (m DifficultyMenu) View(best int, h help.Model, keys KeyMap) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("S N A K E"))
	b.WriteString("\n\n")
	b.WriteString("Select difficulty:")
	b.WriteString("\n\n")

	for i, d := range m.items {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = accentStyle
		}

		line := fmt.Sprintf("%s%d. %-7s", cursor, i+1, d.Label())
		if s, err := m.table.Lookup(d); err == nil {
			line += dimStyle.Render(fmt.Sprintf("  %dx%d  %3dms  x%d",
				s.BoardSize, s.BoardSize, s.TickIntervalMS, s.ScoreMultiplier))
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if best > 0 {
		b.WriteString(fmt.Sprintf("Best score: %s", accentStyle.Render(fmt.Sprint(best))))
	} else {
		b.WriteString(dimStyle.Render("No games recorded yet"))
	}
	b.WriteString("\n\n")
	b.WriteString(h.ShortHelpView(keys.WelcomeHelp()))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(1, 3).
		Render(b.String())
}
