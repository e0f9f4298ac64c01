package quizgen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/abhisek/capmaster/internal/llm"
	"github.com/abhisek/capmaster/internal/quiz"
)

// LLMGenerator implements Generator on top of an llm.Provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates an LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// quizOutput is the raw LLM response before validation.
type quizOutput struct {
	Questions []questionOutput `json:"questions"`
}

type questionOutput struct {
	Text         string   `json:"text"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation"`
	Topic        string   `json:"topic"`
}

// Generate produces one validated battle quiz.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) ([]quiz.Question, error) {
	if !input.Subject.Valid() {
		return nil, fmt.Errorf("quizgen: invalid subject %d", int(input.Subject))
	}

	ctx = llm.WithPurpose(ctx, "quiz_generation")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input, g.config)},
		},
		Schema:      QuizSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw quizOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}
	if len(raw.Questions) == 0 {
		return nil, fmt.Errorf("quizgen: LLM returned no questions")
	}
	if len(raw.Questions) > g.config.QuestionsPerBattle {
		raw.Questions = raw.Questions[:g.config.QuestionsPerBattle]
	}

	out := make([]quiz.Question, 0, len(raw.Questions))
	for _, rq := range raw.Questions {
		q := quiz.Question{
			ID:           uuid.New().String(),
			Text:         rq.Text,
			Options:      rq.Options,
			CorrectIndex: rq.CorrectIndex,
			Explanation:  rq.Explanation,
			Topic:        rq.Topic,
		}
		if q.Topic == "" {
			q.Topic = input.Subject.Name()
		}

		for _, v := range g.config.Validators {
			if verr := v.Validate(&q, input); verr != nil {
				return nil, verr
			}
		}
		out = append(out, q)
	}

	return out, nil
}
