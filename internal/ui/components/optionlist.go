package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/capmaster/internal/ui/theme"
)

// OptionList renders the answer choices of a quiz question. It is
// presentation only: selection and reveal state live in the battle
// attempt, the list just draws whatever it is given.
type OptionList struct {
	Options      []string
	Cursor       int // highlighted option, -1 for none
	ChosenIndex  int // confirmed answer, -1 before confirmation
	CorrectIndex int
	Revealed     bool
	Width        int
}

var optionLabels = []string{"A", "B", "C", "D", "E", "F"}

// View renders the option list.
func (o OptionList) View() string {
	var b strings.Builder

	for i, opt := range o.Options {
		label := "?"
		if i < len(optionLabels) {
			label = optionLabels[i]
		}
		line := fmt.Sprintf("%s. %s", label, opt)

		var style lipgloss.Style
		prefix := "    "

		if o.Revealed {
			switch {
			case i == o.CorrectIndex:
				style = theme.Correct
				prefix = "  ✓ "
			case i == o.ChosenIndex:
				style = theme.Incorrect
				prefix = "  ✗ "
			default:
				style = lipgloss.NewStyle().Foreground(theme.TextDim)
			}
		} else if i == o.Cursor {
			style = theme.Selected
			prefix = "  ▸ "
		} else {
			style = theme.Unselected
		}

		rendered := style.Render(prefix + line)
		if o.Width > 0 {
			rendered = lipgloss.NewStyle().MaxWidth(o.Width).Render(rendered)
		}
		b.WriteString(rendered)
		if i < len(o.Options)-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}
