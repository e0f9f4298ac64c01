package quizgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an exam coach creating practice questions for Taiwan's Comprehensive Assessment Program (國中教育會考).

Rules:
- Generate multiple choice questions appropriate for the given subject, topics, and difficulty.
- Write questions in Traditional Chinese. For the English subject, the question stem and options may be in English.
- Every question has exactly 4 options with exactly one correct answer. Distractors should reflect common student mistakes, not random values.
- Keep the question stem self-contained. No references to images, tables, or passages that are not included.
- The explanation must justify the correct option in two or three sentences, suitable for a junior high student.
- Tag each question with one of the listed topics.
- Do not repeat a question within the set.`

// difficultyFor bands the player's level into a prompt difficulty label.
func difficultyFor(level int) string {
	switch {
	case level > 5:
		return "Hard"
	case level > 2:
		return "Medium"
	default:
		return "Easy"
	}
}

// buildUserMessage constructs the user message from the battle input.
func buildUserMessage(input GenerateInput, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Subject: %s (%s)\n", input.Subject.Name(), input.Subject.Key())
	fmt.Fprintf(&b, "Topics: %s\n", strings.Join(input.Subject.Topics(), ", "))
	fmt.Fprintf(&b, "Difficulty: %s\n", difficultyFor(input.Level))
	fmt.Fprintf(&b, "Question count: %d\n", cfg.QuestionsPerBattle)

	return b.String()
}
