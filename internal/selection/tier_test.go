package selection

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierSelector_ShortCircuits(t *testing.T) {
	oracle := &firstN{}
	s := NewTierSelector(oracle, Options{})
	pool := makePool(3, 0, 0)
	ctx := context.Background()

	assert.Empty(t, s.Select(ctx, pool, 0, SelectContext{}))
	assert.Empty(t, s.Select(ctx, pool, -1, SelectContext{}))
	assert.Empty(t, s.Select(ctx, nil, 3, SelectContext{}))
	assert.Equal(t, idsOf(pool), idsOf(s.Select(ctx, pool, 3, SelectContext{})))
	assert.Equal(t, idsOf(pool), idsOf(s.Select(ctx, pool, 5, SelectContext{})))
	assert.Zero(t, oracle.calls.Load(), "small batches never reach the oracle")
}

func TestTierSelector_OracleOrderKept(t *testing.T) {
	oracle := OracleFunc(func(_ context.Context, p Prompt) (string, error) {
		assert.Equal(t, 2, p.Count)
		assert.Equal(t, TierMedium, p.Tier)
		assert.Equal(t, "easy 50%, medium 30%, hard 20%", p.SchemeDescription)
		assert.Equal(t, []string{"kp-m1"}, p.KnowledgePoints)
		return "m4, unknown, m2, m1", nil
	})
	s := NewTierSelector(oracle, Options{})

	got := s.Select(context.Background(), makePool(0, 5, 0), 2, SelectContext{
		Type:              SingleChoice,
		Tier:              TierMedium,
		SchemeDescription: StandardScheme.Description(),
		KnowledgePoints:   []string{"kp-m1"},
	})
	assert.Equal(t, []string{"m4", "m2"}, idsOf(got), "capped at required, oracle order")
}

func TestTierSelector_PartialReplyNotPadded(t *testing.T) {
	s := NewTierSelector(OracleFunc(func(context.Context, Prompt) (string, error) {
		return "e2", nil
	}), Options{})

	got := s.Select(context.Background(), makePool(6, 0, 0), 4, SelectContext{Tier: TierEasy})
	assert.Equal(t, []string{"e2"}, idsOf(got))
}

func TestTierSelector_RandomFallback(t *testing.T) {
	pool := makePool(10, 0, 0)

	tests := []struct {
		name    string
		oracle  Oracle
		outcome string
	}{
		{"oracle error", failingOracle(errOracleDown), "error"},
		{"empty reply", OracleFunc(func(context.Context, Prompt) (string, error) { return "  \n", nil }), "empty"},
		{"no valid ids", OracleFunc(func(context.Context, Prompt) (string, error) { return "x1, x2", nil }), "no_valid_ids"},
		{"no oracle", nil, "skipped"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := newCountingRecorder()
			s := NewTierSelector(tt.oracle, Options{Recorder: rec})

			got := s.Select(context.Background(), pool, 4, SelectContext{Tier: TierEasy})

			require.Len(t, got, 4, "exactly required when the batch is large enough")
			assert.Subset(t, idsOf(pool), idsOf(got))
			assert.Len(t, uniq(idsOf(got)), 4, "no duplicates")
			assert.Equal(t, 1, rec.outcomes[tt.outcome])
			assert.Equal(t, 1, rec.fallbacks["tier"])
		})
	}
}

func TestTierSelector_TimeoutCountsAsFailure(t *testing.T) {
	slow := OracleFunc(func(ctx context.Context, _ Prompt) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	rec := newCountingRecorder()
	s := NewTierSelector(slow, Options{OracleTimeout: 10 * time.Millisecond, Recorder: rec})

	got := s.Select(context.Background(), makePool(0, 0, 8), 3, SelectContext{Tier: TierHard})
	assert.Len(t, got, 3)
	assert.Equal(t, 1, rec.outcomes["timeout"])
}

func TestTierSelector_CanceledContextSkipsOracle(t *testing.T) {
	oracle := &firstN{}
	s := NewTierSelector(oracle, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := s.Select(ctx, makePool(5, 0, 0), 2, SelectContext{})
	assert.Len(t, got, 2)
	assert.Zero(t, oracle.calls.Load())
}

func TestTierSelector_DoesNotMutateInput(t *testing.T) {
	pool := makePool(10, 0, 0)
	before := idsOf(pool)

	s := NewTierSelector(nil, Options{})
	for range 5 {
		s.Select(context.Background(), pool, 3, SelectContext{})
	}
	assert.Equal(t, before, idsOf(pool))
}

func uniq(ss []string) map[string]bool {
	m := make(map[string]bool, len(ss))
	for _, s := range ss {
		m[s] = true
	}
	return m
}
