package quizgen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators is the ordered list run on every generated question.
	// The first failure stops the pipeline.
	Validators []Validator

	// QuestionsPerBattle is how many questions one battle asks.
	QuestionsPerBattle int

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns the standard validator chain and recommended
// defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&AnswerKeyValidator{},
		},
		QuestionsPerBattle: 3,
		MaxTokens:          2048,
		Temperature:        0.7,
	}
}
