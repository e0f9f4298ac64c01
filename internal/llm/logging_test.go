package llm

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/abhisek/capmaster/internal/store"
)

// memLog is an in-memory store.RequestLog for tests.
type memLog struct {
	records []store.LLMRequestRecord
}

func (l *memLog) Append(_ context.Context, rec store.LLMRequestRecord) error {
	l.records = append(l.records, rec)
	return nil
}

func (l *memLog) Recent(_ context.Context, limit int) ([]store.LLMRequestRecord, error) {
	return l.records, nil
}

func TestLoggingRecordsSuccess(t *testing.T) {
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{}`),
		Usage:   Usage{InputTokens: 10, OutputTokens: 20, TotalTokens: 30},
	})
	log := &memLog{}
	p := WithLogging(mock, "mock", log)

	ctx := WithPurpose(context.Background(), "quiz_generation")
	if _, err := p.Generate(ctx, Request{}); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(log.records) != 1 {
		t.Fatalf("logged %d records, want 1", len(log.records))
	}
	rec := log.records[0]
	if !rec.Success || rec.Purpose != "quiz_generation" {
		t.Errorf("record = %+v", rec)
	}
	if rec.InputTokens != 10 || rec.OutputTokens != 20 {
		t.Errorf("token counts = %d/%d, want 10/20", rec.InputTokens, rec.OutputTokens)
	}
}

func TestLoggingRecordsFailure(t *testing.T) {
	mock := NewMockProvider() // empty queue fails
	log := &memLog{}
	p := WithLogging(mock, "mock", log)

	if _, err := p.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected an error")
	}

	if len(log.records) != 1 {
		t.Fatalf("logged %d records, want 1", len(log.records))
	}
	rec := log.records[0]
	if rec.Success || rec.ErrorMessage == "" {
		t.Errorf("record = %+v, want a failure with message", rec)
	}
	if rec.Purpose != "unknown" {
		t.Errorf("purpose = %q, want unknown fallback", rec.Purpose)
	}
}
