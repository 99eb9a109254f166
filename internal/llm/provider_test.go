package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"question_ids":["q-1"]}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		TextResponse("q-2, q-3"),
	)

	resp1, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "first"}}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"question_ids":["q-1"]}`, string(resp1.Content))
	assert.Equal(t, 10, resp1.Usage.InputTokens)
	assert.Equal(t, "end", resp1.StopReason)

	resp2, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "second"}}})
	require.NoError(t, err)
	assert.Equal(t, "q-2, q-3", resp2.Text())
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})

	var unavail *ErrProviderUnavailable
	assert.True(t, errors.As(err, &unavail), "got %T", err)
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockProvider(TextResponse("q-1"))

	req := Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
	}
	_, _ = mock.Generate(context.Background(), req)

	require.Equal(t, 1, mock.CallCount())
	assert.Equal(t, "sys", mock.Calls[0].System)
}

func TestMockProvider_DelayHonorsContext(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage("q-1"), Delay: time.Second})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := mock.Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestResponse_Text(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"free text", "  q-1, q-2\n", "q-1, q-2"},
		{"json string", `"q-1,q-2"`, "q-1,q-2"},
		{"json object", `{"question_ids":[]}`, `{"question_ids":[]}`},
		{"broken quote", `"q-1`, `"q-1`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Response{Content: json.RawMessage(tt.content)}
			assert.Equal(t, tt.want, r.Text())
		})
	}

	var nilResp *Response
	assert.Empty(t, nilResp.Text())
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, PurposeUnknown, PurposeFrom(ctx))

	ctx = WithPurpose(ctx, PurposeQuestionSelect)
	assert.Equal(t, "question-select", PurposeFrom(ctx))
}

func TestIsTransient(t *testing.T) {
	assert.True(t, IsTransient(&ErrRateLimit{}))
	assert.True(t, IsTransient(&ErrProviderUnavailable{}))
	assert.False(t, IsTransient(&ErrInvalidResponse{Err: errors.New("bad")}))
	assert.False(t, IsTransient(context.Canceled))
}

func TestConfig_Validate(t *testing.T) {
	withProvider := func(mut func(*Config)) Config {
		cfg := DefaultConfig()
		mut(&cfg)
		return cfg
	}

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic without key", withProvider(func(c *Config) { c.Provider = "anthropic" }), true},
		{"anthropic with key", withProvider(func(c *Config) { c.Provider = "anthropic"; c.Anthropic.APIKey = "sk-test" }), false},
		{"openai without key", withProvider(func(c *Config) { c.Provider = "openai" }), true},
		{"openai with key", withProvider(func(c *Config) { c.Provider = "openai"; c.OpenAI.APIKey = "sk-test" }), false},
		{"dashscope with key", withProvider(func(c *Config) { c.Provider = "dashscope"; c.DashScope.APIKey = "sk-ds" }), false},
		{"openrouter without key", withProvider(func(c *Config) { c.Provider = "openrouter" }), true},
		{"mock needs no key", withProvider(func(c *Config) { c.Provider = "mock" }), false},
		{"unknown provider", withProvider(func(c *Config) { c.Provider = "unknown" }), true},
		{"zero attempts", withProvider(func(c *Config) { c.Provider = "mock"; c.Retry.MaxAttempts = 0 }), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDiscoverConfig(t *testing.T) {
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY", "DASHSCOPE_API_KEY"} {
		t.Setenv(k, "")
	}

	_, ok := DiscoverConfig()
	assert.False(t, ok)

	t.Setenv("DASHSCOPE_API_KEY", "sk-ds")
	cfg, ok := DiscoverConfig()
	require.True(t, ok)
	assert.Equal(t, "dashscope", cfg.Provider)
	assert.True(t, cfg.HasKey())

	t.Setenv("OPENAI_API_KEY", "sk-oa")
	cfg, ok = DiscoverConfig()
	require.True(t, ok)
	assert.Equal(t, "openai", cfg.Provider, "openai outranks dashscope")
}

func TestNewProvider_Mock(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "mock"
	cfg.Retry.InitialWait = time.Millisecond
	cfg.Retry.MaxWait = time.Millisecond

	p, err := NewProvider(context.Background(), cfg, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())

	_, err = p.Generate(context.Background(), Request{})
	assert.True(t, IsTransient(err))
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("qwen-plus")
	require.NotNil(t, c)
	assert.InDelta(t, 0.4+1.2, c.Cost(1_000_000, 1_000_000), 1e-9)
	assert.Nil(t, LookupCost("no-such-model"))
}
