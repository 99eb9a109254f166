package selection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/examgen/internal/llm"
)

var (
	// ErrEmptyReply means the oracle answered with nothing usable.
	ErrEmptyReply = errors.New("oracle reply is empty")

	// ErrNoValidIDs means the reply named no known candidate.
	ErrNoValidIDs = errors.New("oracle reply names no known question")
)

// Oracle ranks candidates and replies with the chosen IDs as free text.
type Oracle interface {
	Rank(ctx context.Context, p Prompt) (string, error)
}

// OracleFunc adapts a function to the Oracle interface.
type OracleFunc func(ctx context.Context, p Prompt) (string, error)

func (f OracleFunc) Rank(ctx context.Context, p Prompt) (string, error) {
	return f(ctx, p)
}

// OracleConfig controls the LLM request made by LLMOracle.
type OracleConfig struct {
	// MaxTokens is the token budget for the reply.
	MaxTokens int

	// Temperature controls randomness (0.0-1.0).
	Temperature float64

	// Structured asks for a JSON reply validated against
	// SelectionSchema instead of a comma-separated list.
	Structured bool
}

// DefaultOracleConfig returns the recommended oracle settings.
func DefaultOracleConfig() OracleConfig {
	return OracleConfig{
		MaxTokens:   512,
		Temperature: 0.2,
	}
}

// LLMOracle implements Oracle on top of an LLM provider.
type LLMOracle struct {
	provider llm.Provider
	config   OracleConfig
}

// NewLLMOracle creates an Oracle backed by provider.
func NewLLMOracle(provider llm.Provider, cfg OracleConfig) *LLMOracle {
	return &LLMOracle{provider: provider, config: cfg}
}

// selectionOutput is the structured reply.
type selectionOutput struct {
	QuestionIDs []string `json:"question_ids"`
}

// Rank asks the model to pick p.Count candidates. The returned text is a
// comma-separated ID list, ready for ParseIDs.
func (o *LLMOracle) Rank(ctx context.Context, p Prompt) (string, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeQuestionSelect)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: p.Render() + "\n" + o.replyInstruction(p.Count)},
		},
		MaxTokens:   o.config.MaxTokens,
		Temperature: o.config.Temperature,
	}
	if o.config.Structured {
		req.Schema = SelectionSchema
	}

	resp, err := o.provider.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("rank questions: %w", err)
	}

	if o.config.Structured {
		var out selectionOutput
		if err := json.Unmarshal(resp.Content, &out); err != nil {
			return "", fmt.Errorf("parse selection reply: %w", err)
		}
		if len(out.QuestionIDs) == 0 {
			return "", ErrEmptyReply
		}
		return strings.Join(out.QuestionIDs, ","), nil
	}

	text := llm.StripFence(resp.Text())
	if text == "" {
		return "", ErrEmptyReply
	}
	return text, nil
}

func (o *LLMOracle) replyInstruction(count int) string {
	if o.config.Structured {
		return fmt.Sprintf("Reply with a JSON object whose \"question_ids\" array holds the %d chosen IDs, best first.", count)
	}
	return fmt.Sprintf("Reply with the %d chosen IDs only, best first, separated by commas. No other text.", count)
}
