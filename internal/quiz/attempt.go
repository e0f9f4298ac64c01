package quiz

import (
	"errors"
	"fmt"
)

var (
	// ErrNoQuestions is returned when an attempt would start empty.
	ErrNoQuestions = errors.New("quiz: attempt needs at least one question")

	// ErrInvalidQuestion is returned when a question cannot be answered
	// (no options, or a correct index outside them).
	ErrInvalidQuestion = errors.New("quiz: question has no valid correct option")

	// ErrInvalidTransition is returned for operations that are illegal in
	// the attempt's current phase. These indicate an orchestration bug,
	// not a user mistake.
	ErrInvalidTransition = errors.New("quiz: invalid transition")
)

// Phase is the attempt's position in the answer cycle for the current
// question.
type Phase int

const (
	// PhaseAwaitingSelection means no answer has been confirmed yet for
	// the current question.
	PhaseAwaitingSelection Phase = iota

	// PhaseRevealed means the answer was confirmed and correctness shown.
	PhaseRevealed

	// PhaseFinished means every question has been answered and advanced past.
	PhaseFinished
)

const noSelection = -1

// Attempt drives one battle through its questions. It is created with a
// fixed non-empty question list and destroyed when the orchestrator
// returns to the dashboard. Not safe for concurrent use; the app has a
// single active battle.
type Attempt struct {
	questions []Question
	pos       int
	selected  int
	phase     Phase
	answers   []int
	showExpl  bool
}

// NewAttempt starts a battle over the given questions. The list must be
// non-empty and every question must carry a valid correct index.
func NewAttempt(questions []Question) (*Attempt, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	for i, q := range questions {
		if !q.valid() {
			return nil, fmt.Errorf("question %d (%s): %w", i, q.ID, ErrInvalidQuestion)
		}
	}
	qs := make([]Question, len(questions))
	copy(qs, questions)
	return &Attempt{
		questions: qs,
		selected:  noSelection,
		answers:   make([]int, 0, len(qs)),
	}, nil
}

// Phase returns the current phase.
func (a *Attempt) Phase() Phase { return a.phase }

// Position returns the zero-based index of the current question.
func (a *Attempt) Position() int { return a.pos }

// Total returns the number of questions in the battle.
func (a *Attempt) Total() int { return len(a.questions) }

// Question returns the current question.
func (a *Attempt) Question() Question { return a.questions[a.pos] }

// Questions returns the full question list in battle order.
func (a *Attempt) Questions() []Question {
	qs := make([]Question, len(a.questions))
	copy(qs, a.questions)
	return qs
}

// Selected returns the pending option index, or -1 when none is selected.
func (a *Attempt) Selected() int { return a.selected }

// SelectOption records a pending selection for the current question.
// It is a no-op once the answer is revealed. An out-of-range index is
// rejected.
func (a *Attempt) SelectOption(index int) error {
	if a.phase != PhaseAwaitingSelection {
		return nil
	}
	if index < 0 || index >= len(a.questions[a.pos].Options) {
		return fmt.Errorf("option %d out of range: %w", index, ErrInvalidTransition)
	}
	a.selected = index
	return nil
}

// Confirm commits the pending selection: the answer is appended, the
// question is revealed, and correctness is returned so the caller can
// fire its feedback cue. The explanation auto-shows on a wrong answer.
func (a *Attempt) Confirm() (correct bool, err error) {
	if a.phase != PhaseAwaitingSelection {
		return false, fmt.Errorf("confirm while revealed: %w", ErrInvalidTransition)
	}
	if a.selected == noSelection {
		return false, fmt.Errorf("confirm without selection: %w", ErrInvalidTransition)
	}
	a.answers = append(a.answers, a.selected)
	correct = a.selected == a.questions[a.pos].CorrectIndex
	a.phase = PhaseRevealed
	a.showExpl = !correct
	return correct, nil
}

// Advance moves to the next question, or finishes the attempt if the
// current question was the last. It reports whether the attempt is done.
func (a *Attempt) Advance() (done bool, err error) {
	if a.phase != PhaseRevealed {
		return false, fmt.Errorf("advance before reveal: %w", ErrInvalidTransition)
	}
	if a.pos == len(a.questions)-1 {
		a.phase = PhaseFinished
		return true, nil
	}
	a.pos++
	a.selected = noSelection
	a.showExpl = false
	a.phase = PhaseAwaitingSelection
	return false, nil
}

// ExplanationShown reports whether the explanation panel is open for the
// current question.
func (a *Attempt) ExplanationShown() bool { return a.showExpl }

// ToggleExplanation flips the explanation panel. Only meaningful after
// reveal; ignored otherwise.
func (a *Attempt) ToggleExplanation() {
	if a.phase == PhaseRevealed {
		a.showExpl = !a.showExpl
	}
}

// Result snapshots the finished attempt: the question list, the parallel
// answers list, and the computed award.
func (a *Attempt) Result() (*BattleResult, error) {
	if a.phase != PhaseFinished {
		return nil, fmt.Errorf("result before finish: %w", ErrInvalidTransition)
	}
	answers := make([]int, len(a.answers))
	copy(answers, a.answers)
	return &BattleResult{
		Questions: a.Questions(),
		Answers:   answers,
		Award:     ComputeAward(a.questions, a.answers),
	}, nil
}
