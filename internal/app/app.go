// Package app hosts the root Bubble Tea model: the screen router, the
// shared frame (header, footer, min-size guard), and program startup.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/capmaster/internal/game"
	"github.com/abhisek/capmaster/internal/router"
	"github.com/abhisek/capmaster/internal/screen"
	"github.com/abhisek/capmaster/internal/screens/home"
	"github.com/abhisek/capmaster/internal/screens/login"
	"github.com/abhisek/capmaster/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	orch   *game.Orchestrator
	router *router.Router
	width  int
	height int
}

// newAppModel creates the root model. A stored profile skips the login
// screen and goes straight to the dashboard.
func newAppModel(orch *game.Orchestrator) AppModel {
	// The login and home screens each replace themselves with the
	// other, so both constructors take a factory instead of importing
	// the other package.
	var homeScreen func() screen.Screen
	loginScreen := func() screen.Screen { return login.New(orch, func() screen.Screen { return homeScreen() }) }
	homeScreen = func() screen.Screen { return home.New(orch, loginScreen) }

	initial := loginScreen()
	if orch.Profile() != nil {
		initial = homeScreen()
	}
	return AppModel{
		orch:   orch,
		router: router.New(initial),
	}
}

func (m AppModel) Init() tea.Cmd {
	active := m.router.Active()
	if active == nil {
		return nil
	}
	return active.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Esc is left to the screens: the battle screen turns it into
		// a quit confirmation rather than an unconditional pop.
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	stats := m.orch.Stats()
	header := layout.RenderHeader(title, layout.HeaderStats{
		Level:  stats.Level,
		XP:     stats.XP,
		Streak: stats.Streak,
	}, m.width)

	footerHints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if provider, ok := active.(screen.KeyHintProvider); ok {
		footerHints = provider.KeyHints()
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program. The orchestrator must already be
// bootstrapped.
func Run(orch *game.Orchestrator) error {
	p := tea.NewProgram(newAppModel(orch))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
