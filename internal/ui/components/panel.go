package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/capmaster/internal/ui/theme"
)

// MaxPanelWidth caps panel content so wide terminals keep a readable column.
const MaxPanelWidth = 64

// PanelWidth returns the content width for dashboard panels.
func PanelWidth(termWidth int) int {
	w := termWidth - 8
	if w > MaxPanelWidth {
		w = MaxPanelWidth
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Panel renders a titled card used on the dashboard and result screens.
func Panel(title, body string, width int) string {
	var content string
	if title != "" {
		content = lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Render(title) + "\n\n"
	}
	content += body

	return lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(1, 2).
		Render(content)
}

// HighlightPanel renders a panel with an accent border, used for the
// level-up banner and victory callouts.
func HighlightPanel(body string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Accent).
		Padding(1, 2).
		Align(lipgloss.Center).
		Render(body)
}
