package battle

import (
	"github.com/abhisek/capmaster/internal/quiz"
)

// battleReadyMsg is delivered when preparation finishes: the questions
// are fetched and the pacing floor has elapsed.
type battleReadyMsg struct {
	err error
}

// battleDoneMsg is delivered after the finished attempt has been folded
// into the statistics and saved.
type battleDoneMsg struct {
	result    *quiz.BattleResult
	leveledUp bool
	err       error
}
