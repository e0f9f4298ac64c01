// Package history lists past battle records, newest first.
package history

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/capmaster/internal/game"
	"github.com/abhisek/capmaster/internal/progression"
	"github.com/abhisek/capmaster/internal/router"
	"github.com/abhisek/capmaster/internal/screen"
	"github.com/abhisek/capmaster/internal/subject"
	"github.com/abhisek/capmaster/internal/ui/components"
	"github.com/abhisek/capmaster/internal/ui/layout"
	"github.com/abhisek/capmaster/internal/ui/theme"
)

// Record rows rendered per page before scrolling kicks in.
const pageSize = 10

// HistoryScreen shows the battle log.
type HistoryScreen struct {
	records  []progression.BattleRecord
	selected int
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates the history screen from the current statistics snapshot.
// Records are stored oldest first; the view shows newest first.
func New(orch *game.Orchestrator) *HistoryScreen {
	history := orch.Stats().History
	records := make([]progression.BattleRecord, len(history))
	for i, r := range history {
		records[len(history)-1-i] = r
	}
	return &HistoryScreen{records: records}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return nil
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.records)-1 {
			s.selected++
		}
	case "esc", "q":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	panelWidth := components.PanelWidth(width)

	if len(s.records) == 0 {
		content := components.Panel("戰鬥紀錄",
			theme.Hint.Render("還沒有任何紀錄，開始第一場戰鬥吧！"), panelWidth)
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
	}

	start := 0
	if s.selected >= pageSize {
		start = s.selected - pageSize + 1
	}
	end := start + pageSize
	if end > len(s.records) {
		end = len(s.records)
	}

	var rows []string
	for i := start; i < end; i++ {
		rows = append(rows, s.renderRow(i, panelWidth-4))
	}

	if len(s.records) > pageSize {
		rows = append(rows, "", theme.Hint.Render(
			fmt.Sprintf("%d / %d", s.selected+1, len(s.records))))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, rows...)
	content := components.Panel("戰鬥紀錄", body, panelWidth)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *HistoryScreen) renderRow(i, width int) string {
	r := s.records[i]

	name := r.Subject
	if subj, err := subject.FromKey(r.Subject); err == nil {
		name = subj.Name()
	}

	line := fmt.Sprintf("%s  %s  %d/%d 題  +%d XP",
		r.Date.Format("Jan 02, 2006"), name, r.Score, r.TotalQuestions, r.XPGained)

	if i == s.selected {
		return lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			MaxWidth(width).
			Render("▸ " + line)
	}
	return lipgloss.NewStyle().
		Foreground(theme.Text).
		MaxWidth(width).
		Render("  " + line)
}

func (s *HistoryScreen) Title() string {
	return "Battle History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
