package battle

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/capmaster/internal/quiz"
	"github.com/abhisek/capmaster/internal/ui/components"
	"github.com/abhisek/capmaster/internal/ui/theme"
)

func (s *BattleScreen) View(width, height int) string {
	if s.confirmQuit {
		return s.renderQuitConfirm(width, height)
	}

	switch s.phase {
	case phasePreparing:
		return s.renderLoading(width, height)
	case phaseError:
		return s.renderError(width, height)
	case phaseFinishing:
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("結算中..."))
	default:
		return s.renderQuestion(width, height)
	}
}

func (s *BattleScreen) renderLoading(width, height int) string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		theme.Title.Render(s.subject.Name()+" 戰鬥準備中"),
		"",
		s.spinner.View(),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *BattleScreen) renderError(width, height int) string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		theme.Incorrect.Render("無法準備戰鬥"),
		"",
		theme.Body.Render(s.err.Error()),
		"",
		theme.Hint.Render("Press Enter to return to the dashboard"),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *BattleScreen) renderQuitConfirm(width, height int) string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		theme.Body.Render("確定要離開戰鬥嗎？"),
		"",
		theme.Hint.Render("進度將不會保存"),
		"",
		theme.Body.Render("[Y] 離開    [N] 繼續"),
	)
	panel := components.Panel("", body, 40)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, panel)
}

func (s *BattleScreen) renderQuestion(width, height int) string {
	attempt := s.orch.Attempt()
	if attempt == nil {
		return ""
	}

	q := attempt.Question()
	panelWidth := components.PanelWidth(width)

	progress := theme.Hint.Render(fmt.Sprintf("第 %d / %d 題  •  %s",
		attempt.Position()+1, attempt.Total(), q.Topic))

	question := theme.Body.Render(lipgloss.NewStyle().Width(panelWidth - 4).Render(q.Text))

	revealed := attempt.Phase() == quiz.PhaseRevealed
	chosen := -1
	if revealed {
		chosen = attempt.Selected()
	}
	options := components.OptionList{
		Options:      q.Options,
		Cursor:       s.cursor,
		ChosenIndex:  chosen,
		CorrectIndex: q.CorrectIndex,
		Revealed:     revealed,
		Width:        panelWidth - 4,
	}

	parts := []string{progress, "", question, "", options.View()}

	if revealed {
		if attempt.Selected() == q.CorrectIndex {
			parts = append(parts, "", theme.Correct.Render("答對了！"))
		} else {
			parts = append(parts, "", theme.Incorrect.Render("答錯了"))
		}
		if attempt.ExplanationShown() {
			expl := lipgloss.NewStyle().
				Width(panelWidth-4).
				Foreground(theme.TextDim).
				Render("解析："+q.Explanation)
			parts = append(parts, "", expl)
		}
	}

	body := lipgloss.JoinVertical(lipgloss.Left, parts...)
	panel := components.Panel("", body, panelWidth)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, panel)
}
