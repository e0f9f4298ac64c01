package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/abhisek/capmaster/internal/llm"
	"github.com/abhisek/capmaster/internal/subject"
)

const validQuizJSON = `{
	"questions": [
		{"text": "2x = 8, x?", "options": ["2", "3", "4", "5"], "correct_index": 2, "explanation": "divide both sides by 2", "topic": "代數"},
		{"text": "3 + 4?", "options": ["6", "7", "8", "9"], "correct_index": 1, "explanation": "basic addition", "topic": "數與量"},
		{"text": "10 / 2?", "options": ["2", "4", "5", "10"], "correct_index": 2, "explanation": "basic division", "topic": "數與量"}
	]
}`

func TestLLMGeneratorProducesQuestions(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(validQuizJSON)})
	g := New(mock, DefaultConfig())

	qs, err := g.Generate(context.Background(), GenerateInput{Subject: subject.Math, Level: 3})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(qs) != 3 {
		t.Fatalf("got %d questions, want 3", len(qs))
	}
	for i, q := range qs {
		if q.ID == "" {
			t.Errorf("question %d has no ID", i)
		}
		if len(q.Options) != 4 {
			t.Errorf("question %d has %d options", i, len(q.Options))
		}
	}
	if qs[0].CorrectIndex != 2 || qs[0].Topic != "代數" {
		t.Errorf("question 0 = %+v", qs[0])
	}

	// The request must carry the schema and the subject prompt.
	if mock.CallCount() != 1 {
		t.Fatalf("call count = %d", mock.CallCount())
	}
	req := mock.Calls[0]
	if req.Schema != QuizSchema {
		t.Error("request did not carry the quiz schema")
	}
}

func TestLLMGeneratorRejectsBadPayloads(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"empty question list", `{"questions": []}`},
		{"not json", `oops`},
		{"three options", `{"questions": [{"text": "?", "options": ["a", "b", "c"], "correct_index": 0, "explanation": "e", "topic": "t"}]}`},
		{"index out of range", `{"questions": [{"text": "?", "options": ["a", "b", "c", "d"], "correct_index": 7, "explanation": "e", "topic": "t"}]}`},
		{"duplicate options", `{"questions": [{"text": "?", "options": ["a", "a", "c", "d"], "correct_index": 0, "explanation": "e", "topic": "t"}]}`},
		{"empty explanation", `{"questions": [{"text": "?", "options": ["a", "b", "c", "d"], "correct_index": 0, "explanation": " ", "topic": "t"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(tt.payload)})
			g := New(mock, DefaultConfig())
			if _, err := g.Generate(context.Background(), GenerateInput{Subject: subject.Math, Level: 3}); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLLMGeneratorTruncatesExtraQuestions(t *testing.T) {
	payload := `{"questions": [
		{"text": "q1", "options": ["a", "b", "c", "d"], "correct_index": 0, "explanation": "e", "topic": "t"},
		{"text": "q2", "options": ["a", "b", "c", "d"], "correct_index": 1, "explanation": "e", "topic": "t"},
		{"text": "q3", "options": ["a", "b", "c", "d"], "correct_index": 2, "explanation": "e", "topic": "t"},
		{"text": "q4", "options": ["a", "b", "c", "d"], "correct_index": 3, "explanation": "e", "topic": "t"}
	]}`
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(payload)})
	g := New(mock, DefaultConfig())

	qs, err := g.Generate(context.Background(), GenerateInput{Subject: subject.English, Level: 1})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(qs) != 3 {
		t.Errorf("got %d questions, want 3", len(qs))
	}
}

func TestDifficultyBanding(t *testing.T) {
	tests := []struct {
		level int
		want  string
	}{
		{1, "Easy"},
		{2, "Easy"},
		{3, "Medium"},
		{5, "Medium"},
		{6, "Hard"},
		{10, "Hard"},
	}
	for _, tt := range tests {
		if got := difficultyFor(tt.level); got != tt.want {
			t.Errorf("difficultyFor(%d) = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestFallbackServesOnProviderFailure(t *testing.T) {
	mock := llm.NewMockProvider() // empty queue: always fails
	g := WithFallback(New(mock, DefaultConfig()))

	qs, err := g.Generate(context.Background(), GenerateInput{Subject: subject.Science, Level: 4})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(qs) != 3 {
		t.Fatalf("fallback served %d questions, want 3", len(qs))
	}
	for i, q := range qs {
		if q.ID == "" {
			t.Errorf("fallback question %d has no ID", i)
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			t.Errorf("fallback question %d has bad correct index", i)
		}
	}
}

func TestFallbackPassesThroughSuccess(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(validQuizJSON)})
	g := WithFallback(New(mock, DefaultConfig()))

	qs, err := g.Generate(context.Background(), GenerateInput{Subject: subject.Math, Level: 3})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if qs[0].Text != "2x = 8, x?" {
		t.Errorf("fallback replaced a successful generation: %+v", qs[0])
	}
}

func TestFallbackRespectsCancellation(t *testing.T) {
	mock := llm.NewMockProvider()
	g := WithFallback(New(mock, DefaultConfig()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Generate(ctx, GenerateInput{Subject: subject.Math, Level: 3})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}

func TestFallbackBankCoversAllSubjects(t *testing.T) {
	for _, s := range subject.All {
		qs := FallbackQuestions(s)
		if len(qs) != 3 {
			t.Errorf("subject %s has %d fallback questions, want 3", s.Key(), len(qs))
		}
		for i, q := range qs {
			if len(q.Options) != 4 {
				t.Errorf("%s fallback %d has %d options", s.Key(), i, len(q.Options))
			}
			if q.Explanation == "" {
				t.Errorf("%s fallback %d has no explanation", s.Key(), i)
			}
		}
	}
}
