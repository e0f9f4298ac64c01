package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func quizSchema() *Schema {
	return &Schema{
		Name:        "test-quiz",
		Description: "a quiz payload",
		Definition: map[string]any{
			"type":     "object",
			"required": []any{"questions"},
			"properties": map[string]any{
				"questions": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type":     "object",
						"required": []any{"text", "options", "correct_index"},
						"properties": map[string]any{
							"text":          map[string]any{"type": "string"},
							"options":       map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
							"correct_index": map[string]any{"type": "integer"},
						},
					},
				},
			},
		},
	}
}

func TestValidateResponseAcceptsConformingJSON(t *testing.T) {
	raw := json.RawMessage(`{"questions":[{"text":"1+1?","options":["1","2"],"correct_index":1}]}`)
	if err := validateResponse(quizSchema(), raw); err != nil {
		t.Errorf("validateResponse: %v", err)
	}
}

func TestValidateResponseRejectsBadPayloads(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `not json at all`},
		{"missing required field", `{"questions":[{"text":"?"}]}`},
		{"wrong type", `{"questions":"nope"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(quizSchema(), json.RawMessage(tt.raw))
			var invResp *ErrInvalidResponse
			if !errors.As(err, &invResp) {
				t.Errorf("got %v, want ErrInvalidResponse", err)
			}
		})
	}
}

func TestValidateResponseNilSchemaIsNoop(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`garbage`)); err != nil {
		t.Errorf("nil schema should skip validation, got %v", err)
	}
}
