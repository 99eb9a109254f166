package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpenRouterProvider(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		p, err := NewOpenRouterProvider(CompatibleConfig{
			APIKey: "sk-or-test",
			Model:  "google/gemini-2.0-flash-exp",
		})
		require.NoError(t, err)
		assert.Equal(t, "google/gemini-2.0-flash-exp", p.ModelID())
		assert.False(t, p.strictSchema)
	})

	t.Run("empty API key", func(t *testing.T) {
		_, err := NewOpenRouterProvider(CompatibleConfig{Model: "google/gemini-2.0-flash-exp"})
		require.Error(t, err)
	})

	t.Run("empty model", func(t *testing.T) {
		_, err := NewOpenRouterProvider(CompatibleConfig{APIKey: "sk-or-test"})
		require.Error(t, err)
	})
}

func TestNewDashScopeProvider_ResolvesQwenAlias(t *testing.T) {
	p, err := NewDashScopeProvider(CompatibleConfig{APIKey: "sk-ds", Model: "qwen3"})
	require.NoError(t, err)
	assert.Equal(t, "qwen3-235b-a22b", p.ModelID())

	p, err = NewDashScopeProvider(CompatibleConfig{APIKey: "sk-ds", Model: "qwen-max"})
	require.NoError(t, err)
	assert.Equal(t, "qwen-max", p.ModelID(), "unknown names pass through")
}

func TestCompatibleProvider_UsesJSONObjectMode(t *testing.T) {
	var gotFormat map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		gotFormat, _ = body["response_format"].(map[string]any)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":    "chatcmpl-test",
			"model": "qwen-plus",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": "```json\n{\"question_ids\":[\"q1\"]}\n```"},
				"finish_reason": "stop",
			}},
			"usage": map[string]any{"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15},
		})
	}))
	t.Cleanup(server.Close)

	p, err := NewDashScopeProvider(CompatibleConfig{APIKey: "sk-ds", Model: "qwen", BaseURL: server.URL + "/v1"})
	require.NoError(t, err)

	resp, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "pick one, reply in json"}},
		Schema:   testSchemaIDs(),
	})
	require.NoError(t, err)
	assert.Equal(t, "json_object", gotFormat["type"])
	assert.JSONEq(t, `{"question_ids":["q1"]}`, string(resp.Content))
}

func testSchemaIDs() *Schema {
	return &Schema{
		Name: "test-ids",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question_ids": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			},
			"required": []any{"question_ids"},
		},
	}
}
