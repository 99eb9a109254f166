package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func selectionSchema() *Schema {
	return &Schema{
		Name:        "test-selection",
		Description: "A ranked list of question IDs",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question_ids": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
				"count": map[string]any{"type": "integer", "minimum": 0},
				"mode":  map[string]any{"type": "string", "enum": []any{"ratio", "flat"}},
			},
			"required": []any{"question_ids"},
		},
	}
}

func TestValidateResponse_Valid(t *testing.T) {
	raw := json.RawMessage(`{"question_ids":["q-1","q-2"],"count":2,"mode":"ratio"}`)
	got, err := validateResponse(selectionSchema(), raw)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if string(got) != string(raw) {
		t.Fatalf("expected content unchanged, got %s", got)
	}
}

func TestValidateResponse_StripsFence(t *testing.T) {
	raw := json.RawMessage("```json\n{\"question_ids\":[\"q-1\"]}\n```")
	got, err := validateResponse(selectionSchema(), raw)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if string(got) != `{"question_ids":["q-1"]}` {
		t.Fatalf("unexpected content: %s", got)
	}
}

func TestValidateResponse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"missing required", `{"count":1}`},
		{"wrong item type", `{"question_ids":[1,2]}`},
		{"bad enum", `{"question_ids":[],"mode":"random"}`},
		{"negative count", `{"question_ids":[],"count":-1}`},
		{"malformed", `{not json}`},
		{"empty", ``},
		{"free text", `q-1, q-2`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := validateResponse(selectionSchema(), json.RawMessage(tt.raw))
			var invErr *ErrInvalidResponse
			if !errors.As(err, &invErr) {
				t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
			}
			if string(invErr.Content) != tt.raw {
				t.Fatalf("expected original content to be kept, got %q", invErr.Content)
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	raw := json.RawMessage("q-1, q-2")
	got, err := validateResponse(nil, raw)
	if err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
	if string(got) != "q-1, q-2" {
		t.Fatalf("expected raw passthrough, got %s", got)
	}
}

func TestStripFence(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"q-1,q-2", "q-1,q-2"},
		{"  q-1  ", "q-1"},
		{"```\nq-1,q-2\n```", "q-1,q-2"},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```text\nq-1\n```\n", "q-1"},
	}
	for _, tt := range tests {
		if got := StripFence(tt.in); got != tt.want {
			t.Errorf("StripFence(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
