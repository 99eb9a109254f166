package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartition(t *testing.T) {
	pool := []Candidate{
		{ID: "a", Level: TierEasy},
		{ID: "b", Level: TierHard},
		{ID: "c", Level: TierEasy},
		{ID: "d", Level: TierVeryHard},
		{ID: "e", Level: 0},
	}

	parts := Partition(pool, StandardScheme)

	assert.Len(t, parts, 3, "one key per scheme tier")
	assert.Equal(t, []string{"a", "c"}, idsOf(parts[TierEasy]), "input order kept")
	assert.Equal(t, []string{"b"}, idsOf(parts[TierHard]))

	medium, ok := parts[TierMedium]
	assert.True(t, ok)
	assert.NotNil(t, medium)
	assert.Empty(t, medium)

	_, ok = parts[TierVeryHard]
	assert.False(t, ok, "out-of-scheme levels are dropped")
}

func TestPartition_UnionEqualsInSchemeInput(t *testing.T) {
	pool := makePool(4, 3, 2)
	pool = append(pool, Candidate{ID: "x1", Level: TierVeryHard})

	parts := Partition(pool, StandardScheme)

	var got []string
	for _, tr := range StandardScheme.Tiers {
		got = append(got, idsOf(parts[tr.Tier])...)
	}
	assert.ElementsMatch(t, idsOf(pool[:9]), got)

	parts = Partition(pool, FourTierScheme)
	assert.Equal(t, []string{"x1"}, idsOf(parts[TierVeryHard]))
}

func TestPartition_Empty(t *testing.T) {
	parts := Partition(nil, FourTierScheme)
	assert.Len(t, parts, 4)
	for tier, group := range parts {
		assert.Empty(t, group, "tier %s", tier)
	}
}
