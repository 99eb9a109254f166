package selection

import (
	"testing"
)

func TestPlan_StandardScheme(t *testing.T) {
	tests := []struct {
		total int
		want  []int
	}{
		{10, []int{5, 3, 2}},
		{7, []int{4, 2, 1}},
		{1, []int{1, 0, 0}},
		{3, []int{2, 1, 0}},
		{0, []int{0, 0, 0}},
		{-5, []int{0, 0, 0}},
	}

	for _, tt := range tests {
		plan := Plan(StandardScheme, tt.total)
		if len(plan) != 3 {
			t.Fatalf("Plan(%d) has %d tiers, want 3", tt.total, len(plan))
		}
		for i, tc := range plan {
			if tc.Tier != StandardScheme.Tiers[i].Tier {
				t.Errorf("Plan(%d)[%d].Tier = %s, want %s", tt.total, i, tc.Tier, StandardScheme.Tiers[i].Tier)
			}
			if tc.Count != tt.want[i] {
				t.Errorf("Plan(%d)[%d].Count = %d, want %d", tt.total, i, tc.Count, tt.want[i])
			}
		}
	}
}

func TestPlan_SumAlwaysMatchesTotal(t *testing.T) {
	for _, name := range SchemeNames() {
		s, err := LookupScheme(name)
		if err != nil {
			t.Fatal(err)
		}
		for n := 0; n <= 200; n++ {
			plan := Plan(s, n)
			if plan.Total() != n {
				t.Fatalf("%s: Plan(%d).Total() = %d", name, n, plan.Total())
			}
			for _, tc := range plan {
				if tc.Count < 0 {
					t.Fatalf("%s: Plan(%d) has negative count %+v", name, n, tc)
				}
			}
		}
	}
}

func TestPlan_DriftedSchemeClamps(t *testing.T) {
	drifted := Scheme{Name: "drifted", Tiers: []TierRatio{{TierEasy, 0.7}, {TierMedium, 0.6}, {TierHard, 0.2}}}

	plan := Plan(drifted, 10)
	if plan.Total() != 10 {
		t.Fatalf("Total() = %d, want 10", plan.Total())
	}
	if plan.Count(TierEasy) != 7 || plan.Count(TierMedium) != 3 || plan.Count(TierHard) != 0 {
		t.Fatalf("unexpected plan %+v", plan)
	}
}

func TestPlan_UnderweightSchemeLastTierAbsorbs(t *testing.T) {
	light := Scheme{Name: "light", Tiers: []TierRatio{{TierEasy, 0.2}, {TierMedium, 0.2}, {TierHard, 0.2}}}

	plan := Plan(light, 10)
	if plan.Count(TierHard) != 6 {
		t.Fatalf("last tier = %d, want 6", plan.Count(TierHard))
	}
}

func TestTierPlan_CountUnknownTier(t *testing.T) {
	plan := Plan(StandardScheme, 10)
	if plan.Count(TierVeryHard) != 0 {
		t.Fatalf("Count(very-hard) = %d, want 0", plan.Count(TierVeryHard))
	}
}
