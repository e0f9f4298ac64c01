// Package home renders the dashboard: player summary, exam countdown,
// mastery bars, and the subject menu that launches battles.
package home

import (
	"context"
	"fmt"
	"image/color"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/capmaster/internal/game"
	"github.com/abhisek/capmaster/internal/router"
	"github.com/abhisek/capmaster/internal/screen"
	"github.com/abhisek/capmaster/internal/screens/battle"
	"github.com/abhisek/capmaster/internal/screens/history"
	"github.com/abhisek/capmaster/internal/subject"
	"github.com/abhisek/capmaster/internal/ui/components"
	"github.com/abhisek/capmaster/internal/ui/layout"
	"github.com/abhisek/capmaster/internal/ui/theme"
)

type logoutDoneMsg struct {
	err error
}

// HomeScreen is the dashboard.
type HomeScreen struct {
	orch      *game.Orchestrator
	nextLogin func() screen.Screen
	menu      components.Menu
	err       error
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the dashboard. nextLogin builds the sign-in screen used
// after logout; injected to avoid an import cycle with the login package.
func New(orch *game.Orchestrator, nextLogin func() screen.Screen) *HomeScreen {
	s := &HomeScreen{orch: orch, nextLogin: nextLogin}
	s.menu = components.NewMenu(s.menuItems())
	return s
}

func (s *HomeScreen) menuItems() []components.MenuItem {
	items := make([]components.MenuItem, 0, subject.Count+3)
	for _, subj := range subject.All {
		subj := subj
		items = append(items, components.MenuItem{
			Label: fmt.Sprintf("挑戰 %s", subj.Name()),
			Action: func() tea.Cmd {
				orch := s.orch
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: battle.New(orch, subj)}
				}
			},
		})
	}
	items = append(items,
		components.MenuItem{
			Label: "Battle History",
			Action: func() tea.Cmd {
				orch := s.orch
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: history.New(orch)}
				}
			},
		},
		components.MenuItem{
			Label: "Sign Out",
			Action: func() tea.Cmd {
				orch := s.orch
				return func() tea.Msg {
					return logoutDoneMsg{err: orch.Logout(context.Background())}
				}
			},
		},
		components.MenuItem{
			Label: "Exit",
			Action: func() tea.Cmd {
				return tea.Quit
			},
		},
	)
	return items
}

func (s *HomeScreen) Init() tea.Cmd {
	return nil
}

func (s *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case logoutDoneMsg:
		if msg.err != nil {
			s.err = msg.err
			return s, nil
		}
		next := s.nextLogin()
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }

	case tea.KeyMsg:
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *HomeScreen) View(width, height int) string {
	stats := s.orch.Stats()
	panelWidth := components.PanelWidth(width)
	compact := layout.IsCompactHeight(height + layout.HeaderHeight + layout.FooterHeight)

	greeting := "歡迎回來"
	if p := s.orch.Profile(); p != nil {
		greeting = fmt.Sprintf("歡迎回來，%s", p.Name)
	}

	levelLine := fmt.Sprintf("Level %d   •   %d / %d XP   •   🔥 %d day streak   •   %d wins",
		stats.Level, stats.XP, stats.XPToNextLevel, stats.Streak, stats.BattlesWon)
	levelBar := components.NewProgressBar("", float64(stats.XP)/float64(stats.XPToNextLevel), false, panelWidth-4)

	summary := lipgloss.JoinVertical(lipgloss.Left,
		theme.Body.Render(levelLine),
		"",
		levelBar.View(),
		"",
		theme.Hint.Render(examCountdownLine(time.Now())),
	)

	var sections []string
	sections = append(sections, components.Panel(greeting, summary, panelWidth))

	if !compact {
		var bars []string
		for _, subj := range subject.All {
			score := stats.Mastery[subj]
			bar := components.ProgressBar{
				Label:       subj.Name(),
				Percent:     float64(score) / 100,
				ShowPercent: true,
				Width:       panelWidth - 4,
				FillColor:   masteryColor(score),
			}
			bars = append(bars, bar.View())
		}
		mastery := lipgloss.JoinVertical(lipgloss.Left, bars...)
		sections = append(sections, components.Panel("科目熟練度", mastery, panelWidth))
	}

	sections = append(sections, s.menu.View())

	if s.err != nil {
		sections = append(sections, theme.Incorrect.Render("Sign-out failed: "+s.err.Error()))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// masteryColor tints a mastery bar by band.
func masteryColor(score int) color.Color {
	switch {
	case score < 40:
		return theme.Error
	case score < 70:
		return theme.Accent
	default:
		return theme.Success
	}
}

func (s *HomeScreen) Title() string {
	return "Dashboard"
}

func (s *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
