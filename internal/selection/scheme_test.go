package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupScheme(t *testing.T) {
	s, err := LookupScheme("")
	require.NoError(t, err)
	assert.Equal(t, "standard", s.Name)

	for _, name := range SchemeNames() {
		s, err := LookupScheme(name)
		require.NoError(t, err, name)
		assert.NoError(t, s.Validate(), name)
	}

	_, err = LookupScheme("impossible")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "balanced, challenge, four-tier, standard")
}

func TestLookupScheme_ReturnsCopy(t *testing.T) {
	s, err := LookupScheme("standard")
	require.NoError(t, err)
	s.Tiers[0].Ratio = 0.9

	again, err := LookupScheme("standard")
	require.NoError(t, err)
	assert.Equal(t, 0.5, again.Tiers[0].Ratio)
	assert.Equal(t, 0.5, StandardScheme.Tiers[0].Ratio)
}

func TestScheme_Validate(t *testing.T) {
	tests := []struct {
		name   string
		scheme Scheme
		errMsg string
	}{
		{"empty", Scheme{Name: "x"}, "no tiers"},
		{"duplicate tier", Scheme{Name: "x", Tiers: []TierRatio{{TierEasy, 0.5}, {TierEasy, 0.5}}}, "twice"},
		{"negative", Scheme{Name: "x", Tiers: []TierRatio{{TierEasy, 1.2}, {TierHard, -0.2}}}, "negative"},
		{"short sum", Scheme{Name: "x", Tiers: []TierRatio{{TierEasy, 0.5}, {TierHard, 0.4}}}, "sum to 0.9000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.scheme.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	assert.NoError(t, BalancedScheme.Validate(), "thirds sum within tolerance")
}

func TestScheme_Description(t *testing.T) {
	assert.Equal(t, "easy 50%, medium 30%, hard 20%", StandardScheme.Description())
	assert.Equal(t, "easy 40%, medium 30%, hard 20%, very-hard 10%", FourTierScheme.Description())
}

func TestScheme_Has(t *testing.T) {
	assert.True(t, StandardScheme.Has(TierHard))
	assert.False(t, StandardScheme.Has(TierVeryHard))
	assert.True(t, FourTierScheme.Has(TierVeryHard))
}

func TestParseQuestionType(t *testing.T) {
	qt, err := ParseQuestionType("Single-Choice")
	require.NoError(t, err)
	assert.Equal(t, SingleChoice, qt)

	qt, err = ParseQuestionType("5")
	require.NoError(t, err)
	assert.Equal(t, FillInBlank, qt)

	_, err = ParseQuestionType("9")
	assert.Error(t, err)
	_, err = ParseQuestionType("essay")
	assert.Error(t, err)

	assert.Equal(t, "type-9", QuestionType(9).String())
	assert.Equal(t, "level-7", Tier(7).String())
}

func TestQuestionType_Text(t *testing.T) {
	var qt QuestionType
	require.NoError(t, qt.UnmarshalText([]byte("true-false")))
	assert.Equal(t, TrueFalse, qt)
	require.NoError(t, qt.UnmarshalText([]byte("2")))
	assert.Equal(t, MultiChoice, qt)
	assert.Error(t, qt.UnmarshalText([]byte("essay")))

	b, err := ShortAnswer.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "short-answer", string(b))
	assert.False(t, QuestionType(0).Valid())
}
