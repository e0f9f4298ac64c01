// Package result shows the outcome of a finished battle: score, XP
// gained, and the level-up banner when one happened.
package result

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/capmaster/internal/game"
	"github.com/abhisek/capmaster/internal/quiz"
	"github.com/abhisek/capmaster/internal/router"
	"github.com/abhisek/capmaster/internal/screen"
	"github.com/abhisek/capmaster/internal/subject"
	"github.com/abhisek/capmaster/internal/ui/components"
	"github.com/abhisek/capmaster/internal/ui/layout"
	"github.com/abhisek/capmaster/internal/ui/theme"
)

// A battle counts as a victory at this share of correct answers.
const victoryThreshold = 0.6

// ResultScreen shows a single battle result until the player returns to
// the dashboard.
type ResultScreen struct {
	orch      *game.Orchestrator
	result    *quiz.BattleResult
	leveledUp bool
	subject   subject.Subject
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// New creates a result screen for the given battle outcome.
func New(orch *game.Orchestrator, result *quiz.BattleResult, leveledUp bool, subj subject.Subject) *ResultScreen {
	return &ResultScreen{
		orch:      orch,
		result:    result,
		leveledUp: leveledUp,
		subject:   subj,
	}
}

func (s *ResultScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc", " ":
			s.orch.ReturnHome()
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *ResultScreen) View(width, height int) string {
	award := s.result.Award
	total := len(s.result.Questions)
	pct := 0.0
	if total > 0 {
		pct = float64(award.CorrectCount) / float64(total)
	}

	var headline string
	if pct >= victoryThreshold {
		headline = theme.Correct.Render("🏆 勝利！")
	} else {
		headline = theme.Body.Render("戰鬥結束")
	}

	stats := s.orch.Stats()
	panelWidth := components.PanelWidth(width)

	body := lipgloss.JoinVertical(lipgloss.Center,
		headline,
		"",
		theme.Body.Render(fmt.Sprintf("%s  •  答對 %d / %d 題", s.subject.Name(), award.CorrectCount, total)),
		theme.Body.Render(fmt.Sprintf("獲得 %d XP", award.XPGained)),
		"",
		theme.Hint.Render(fmt.Sprintf("Level %d  •  %d / %d XP", stats.Level, stats.XP, stats.XPToNextLevel)),
	)

	sections := []string{components.Panel("", body, panelWidth)}

	if review := s.renderReview(panelWidth); review != "" {
		sections = append(sections, components.Panel("題目回顧", review, panelWidth))
	}

	if s.leveledUp {
		banner := theme.Title.Render(fmt.Sprintf("⬆ LEVEL UP!  歡迎來到 Level %d", stats.Level))
		sections = append([]string{components.HighlightPanel(banner, panelWidth)}, sections...)
	}

	sections = append(sections, "", theme.Hint.Render("Press Enter to return to the dashboard"))

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// renderReview lists one line per question with the verdict and topic.
func (s *ResultScreen) renderReview(width int) string {
	var rows []string
	for i, q := range s.result.Questions {
		verdict := theme.Incorrect.Render("✗")
		if i < len(s.result.Answers) && s.result.Answers[i] == q.CorrectIndex {
			verdict = theme.Correct.Render("✓")
		}
		line := fmt.Sprintf("%s  %d. %s", verdict, i+1, q.Topic)
		rows = append(rows, lipgloss.NewStyle().MaxWidth(width-4).Render(line))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (s *ResultScreen) Title() string {
	return "Battle Result"
}

func (s *ResultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
