// Package battle drives one quiz battle: the preparing spinner, the
// question/answer loop, and the hand-off to the result screen.
package battle

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/capmaster/internal/game"
	"github.com/abhisek/capmaster/internal/quiz"
	"github.com/abhisek/capmaster/internal/router"
	"github.com/abhisek/capmaster/internal/screen"
	"github.com/abhisek/capmaster/internal/screens/result"
	"github.com/abhisek/capmaster/internal/subject"
	"github.com/abhisek/capmaster/internal/ui/components"
	"github.com/abhisek/capmaster/internal/ui/layout"
)

type phase int

const (
	phasePreparing phase = iota
	phaseQuestion
	phaseError
	phaseFinishing
)

// BattleScreen runs one battle for a single subject.
type BattleScreen struct {
	orch    *game.Orchestrator
	subject subject.Subject

	phase       phase
	spinner     components.Spinner
	cursor      int
	confirmQuit bool
	err         error
}

var _ screen.Screen = (*BattleScreen)(nil)
var _ screen.KeyHintProvider = (*BattleScreen)(nil)

// New creates a battle screen. The battle itself starts in Init.
func New(orch *game.Orchestrator, subj subject.Subject) *BattleScreen {
	return &BattleScreen{
		orch:    orch,
		subject: subj,
		spinner: components.NewSpinner("出題中，請稍候..."),
	}
}

func (s *BattleScreen) Init() tea.Cmd {
	orch := s.orch
	subj := s.subject
	start := func() tea.Msg {
		return battleReadyMsg{err: orch.StartBattle(context.Background(), subj)}
	}
	return tea.Batch(s.spinner.Init(), start)
}

func (s *BattleScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case battleReadyMsg:
		if msg.err != nil {
			s.phase = phaseError
			s.err = msg.err
			return s, nil
		}
		s.phase = phaseQuestion
		s.cursor = 0
		return s, nil

	case battleDoneMsg:
		if msg.err != nil {
			s.phase = phaseError
			s.err = msg.err
			return s, nil
		}
		next := result.New(s.orch, msg.result, msg.leveledUp, s.subject)
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.phase == phasePreparing {
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *BattleScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.confirmQuit {
		return s.handleQuitConfirmKey(msg)
	}

	switch s.phase {
	case phaseError:
		switch msg.String() {
		case "enter", "esc":
			s.orch.ReturnHome()
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil

	case phaseQuestion:
		return s.handleQuestionKey(msg)

	default:
		// Preparing and finishing ignore input apart from quit confirm.
		if msg.String() == "esc" && s.phase == phasePreparing {
			s.confirmQuit = true
		}
		return s, nil
	}
}

func (s *BattleScreen) handleQuestionKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	attempt := s.orch.Attempt()
	if attempt == nil {
		return s, nil
	}
	q := attempt.Question()

	if attempt.Phase() == quiz.PhaseRevealed {
		switch msg.String() {
		case "e":
			attempt.ToggleExplanation()
		case "enter", " ":
			done, err := attempt.Advance()
			if err != nil {
				return s, nil
			}
			if done {
				s.phase = phaseFinishing
				orch := s.orch
				return s, func() tea.Msg {
					res, leveledUp, err := orch.CompleteBattle(context.Background())
					return battleDoneMsg{result: res, leveledUp: leveledUp, err: err}
				}
			}
			s.cursor = 0
		case "esc":
			s.confirmQuit = true
		}
		return s, nil
	}

	switch msg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
			_ = attempt.SelectOption(s.cursor)
		}
	case "down", "j":
		if s.cursor < len(q.Options)-1 {
			s.cursor++
			_ = attempt.SelectOption(s.cursor)
		}
	case "1", "2", "3", "4":
		idx := int(msg.String()[0] - '1')
		if idx < len(q.Options) {
			s.cursor = idx
			_ = attempt.SelectOption(idx)
		}
	case "enter":
		if err := attempt.SelectOption(s.cursor); err != nil {
			return s, nil
		}
		_, _ = attempt.Confirm()
	case "esc":
		s.confirmQuit = true
	}
	return s, nil
}

func (s *BattleScreen) handleQuitConfirmKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		s.orch.ReturnHome()
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "n", "N", "esc":
		s.confirmQuit = false
	}
	return s, nil
}

func (s *BattleScreen) Title() string {
	return s.subject.Name() + " 戰鬥"
}

func (s *BattleScreen) KeyHints() []layout.KeyHint {
	if s.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave battle"},
			{Key: "N", Description: "Keep playing"},
		}
	}
	switch s.phase {
	case phaseQuestion:
		attempt := s.orch.Attempt()
		if attempt != nil && attempt.Phase() == quiz.PhaseRevealed {
			return []layout.KeyHint{
				{Key: "Enter", Description: "Next"},
				{Key: "E", Description: "Explanation"},
				{Key: "Esc", Description: "Leave"},
			}
		}
		return []layout.KeyHint{
			{Key: "1-4/↑↓", Description: "Choose"},
			{Key: "Enter", Description: "Confirm"},
			{Key: "Esc", Description: "Leave"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Esc", Description: "Leave"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
}
