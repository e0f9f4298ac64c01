// Package login renders the sign-in splash. There is no credential
// exchange; signing in stores the stub profile and moves to the
// dashboard.
package login

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/capmaster/internal/game"
	"github.com/abhisek/capmaster/internal/router"
	"github.com/abhisek/capmaster/internal/screen"
	"github.com/abhisek/capmaster/internal/ui/layout"
	"github.com/abhisek/capmaster/internal/ui/theme"
)

const banner = `
 ██████╗ █████╗ ██████╗ ███╗   ███╗ █████╗ ███████╗████████╗███████╗██████╗
██╔════╝██╔══██╗██╔══██╗████╗ ████║██╔══██╗██╔════╝╚══██╔══╝██╔════╝██╔══██╗
██║     ███████║██████╔╝██╔████╔██║███████║███████╗   ██║   █████╗  ██████╔╝
██║     ██╔══██║██╔═══╝ ██║╚██╔╝██║██╔══██║╚════██║   ██║   ██╔══╝  ██╔══██╗
╚██████╗██║  ██║██║     ██║ ╚═╝ ██║██║  ██║███████║   ██║   ███████╗██║  ██║
 ╚═════╝╚═╝  ╚═╝╚═╝     ╚═╝     ╚═╝╚═╝  ╚═╝╚══════╝   ╚═╝   ╚══════╝╚═╝  ╚═╝
`

const (
	tickInterval = 100 * time.Millisecond
	taglineAt    = 500 * time.Millisecond
	promptAt     = 1200 * time.Millisecond
)

type tickMsg time.Time

type loginDoneMsg struct {
	err error
}

// LoginScreen is the entry screen shown when no profile is stored. The
// splash reveals in phases; sign-in is accepted once the prompt shows.
type LoginScreen struct {
	orch     *game.Orchestrator
	nextHome func() screen.Screen
	elapsed  time.Duration
	signing  bool
	err      error
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// New creates the login screen. nextHome builds the dashboard screen to
// replace this one after a successful sign-in; injected to keep the
// screen packages from importing each other.
func New(orch *game.Orchestrator, nextHome func() screen.Screen) *LoginScreen {
	return &LoginScreen{orch: orch, nextHome: nextHome}
}

func (s *LoginScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (s *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if s.elapsed < promptAt {
			s.elapsed += tickInterval
			return s, tick()
		}
		return s, nil

	case loginDoneMsg:
		s.signing = false
		if msg.err != nil {
			s.err = msg.err
			return s, nil
		}
		next := s.nextHome()
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }

	case tea.KeyMsg:
		if msg.String() == "enter" && !s.signing && s.elapsed >= promptAt {
			s.signing = true
			s.err = nil
			orch := s.orch
			return s, func() tea.Msg {
				return loginDoneMsg{err: orch.Login(context.Background())}
			}
		}
	}
	return s, nil
}

func (s *LoginScreen) View(width, height int) string {
	title := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render(banner)

	tagline := ""
	if s.elapsed >= taglineAt {
		tagline = theme.Subtitle.Render("會考模擬戰鬥，升級你的應考實力")
	}

	var action string
	switch {
	case s.elapsed < promptAt:
		action = ""
	case s.signing:
		action = theme.Hint.Render("Signing in...")
	case s.err != nil:
		action = theme.Incorrect.Render("Sign-in failed: "+s.err.Error()) + "\n" +
			theme.Hint.Render("Press Enter to retry")
	default:
		action = theme.ButtonActive.Render("  ▸ Press Enter to start ")
	}

	content := lipgloss.JoinVertical(lipgloss.Center, title, "", tagline, "", "", action)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *LoginScreen) Title() string {
	return "Welcome"
}

func (s *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Sign in"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
