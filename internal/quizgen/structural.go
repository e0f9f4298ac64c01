package quizgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/capmaster/internal/quiz"
)

// StructuralValidator checks that required fields are present and within
// length limits.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *quiz.Question, _ GenerateInput) *ValidationError {
	if strings.TrimSpace(q.Text) == "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "question text is empty",
			Retryable: true,
		}
	}
	if len(q.Text) > 600 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "question text exceeds 600 characters",
			Retryable: true,
		}
	}
	if strings.TrimSpace(q.Explanation) == "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "explanation is empty",
			Retryable: true,
		}
	}
	if len(q.Explanation) > 1200 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "explanation exceeds 1200 characters",
			Retryable: true,
		}
	}
	return nil
}

// AnswerKeyValidator checks the option list and the correct index.
type AnswerKeyValidator struct{}

func (v *AnswerKeyValidator) Name() string { return "answer-key" }

func (v *AnswerKeyValidator) Validate(q *quiz.Question, _ GenerateInput) *ValidationError {
	if len(q.Options) != 4 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("must have exactly 4 options, got %d", len(q.Options)),
			Retryable: true,
		}
	}

	seen := make(map[string]bool, 4)
	for i, opt := range q.Options {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("option %d is empty", i+1),
				Retryable: true,
			}
		}
		key := strings.ToLower(opt)
		if seen[key] {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("duplicate option %q", opt),
				Retryable: true,
			}
		}
		seen[key] = true
	}

	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("correct_index %d out of range", q.CorrectIndex),
			Retryable: true,
		}
	}
	return nil
}
