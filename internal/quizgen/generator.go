// Package quizgen produces battle quizzes through an LLM provider, with
// validation and a canned fallback bank so a battle can always start.
package quizgen

import (
	"context"

	"github.com/abhisek/capmaster/internal/quiz"
	"github.com/abhisek/capmaster/internal/subject"
)

// Generator produces the question set for one battle.
type Generator interface {
	// Generate returns a full battle's worth of validated questions for
	// the given input context.
	Generate(ctx context.Context, input GenerateInput) ([]quiz.Question, error)
}

// GenerateInput describes the battle being prepared.
type GenerateInput struct {
	// Subject the player picked on the dashboard.
	Subject subject.Subject

	// Level is the player's current level, used to band difficulty.
	Level int
}
