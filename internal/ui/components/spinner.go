package components

import (
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/capmaster/internal/ui/theme"
)

// Spinner wraps the bubbles spinner with the application palette and an
// optional status message shown next to it.
type Spinner struct {
	Message string
	model   spinner.Model
}

// NewSpinner creates a spinner for loading states.
func NewSpinner(message string) Spinner {
	m := spinner.New()
	m.Spinner = spinner.Dot
	m.Style = lipgloss.NewStyle().Foreground(theme.Primary)
	return Spinner{
		Message: message,
		model:   m,
	}
}

// Init starts the spinner ticking.
func (s Spinner) Init() tea.Cmd {
	return s.model.Tick
}

// Update advances the spinner animation.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	var cmd tea.Cmd
	s.model, cmd = s.model.Update(msg)
	return s, cmd
}

// View renders the spinner and its message.
func (s Spinner) View() string {
	if s.Message == "" {
		return s.model.View()
	}
	return s.model.View() + " " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(s.Message)
}
