package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// LLMRequestRecord captures one LLM API call for local diagnostics.
type LLMRequestRecord struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	CreatedAt    time.Time
}

// RequestLog appends and reads LLM request records.
type RequestLog interface {
	Append(ctx context.Context, rec LLMRequestRecord) error
	Recent(ctx context.Context, limit int) ([]LLMRequestRecord, error)
}

// RequestLog returns a RequestLog backed by this store.
func (s *Store) RequestLog() RequestLog {
	return &requestLog{db: s.db}
}

type requestLog struct {
	db *sql.DB
}

func (l *requestLog) Append(ctx context.Context, rec LLMRequestRecord) error {
	created := rec.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO llm_requests
		 (provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Provider, rec.Model, rec.Purpose,
		rec.InputTokens, rec.OutputTokens, rec.LatencyMs,
		boolToInt(rec.Success), rec.ErrorMessage,
		created.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("append llm request: %w", err)
	}
	return nil
}

func (l *requestLog) Recent(ctx context.Context, limit int) ([]LLMRequestRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := l.db.QueryContext(ctx,
		`SELECT provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message, created_at
		 FROM llm_requests ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query llm requests: %w", err)
	}
	defer rows.Close()

	var out []LLMRequestRecord
	for rows.Next() {
		var rec LLMRequestRecord
		var success int
		var created string
		if err := rows.Scan(&rec.Provider, &rec.Model, &rec.Purpose,
			&rec.InputTokens, &rec.OutputTokens, &rec.LatencyMs,
			&success, &rec.ErrorMessage, &created); err != nil {
			return nil, fmt.Errorf("scan llm request: %w", err)
		}
		rec.Success = success != 0
		if t, err := time.Parse(time.RFC3339, created); err == nil {
			rec.CreatedAt = t
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
