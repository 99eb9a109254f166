package selection

import "math"

// TierCount is the number of questions planned for one tier.
type TierCount struct {
	Tier  Tier
	Count int
}

// TierPlan is a per-tier allocation in scheme order.
type TierPlan []TierCount

// Total returns the sum of all counts.
func (p TierPlan) Total() int {
	var n int
	for _, tc := range p {
		n += tc.Count
	}
	return n
}

// Count returns the planned count for t, or 0 if t is not planned.
func (p TierPlan) Count(t Tier) int {
	for _, tc := range p {
		if tc.Tier == t {
			return tc.Count
		}
	}
	return 0
}

// Plan splits total across the scheme's tiers. Every tier but the last
// gets round-half-up(total*ratio); the last takes the remainder, so the
// plan always sums to total. Counts never go negative, even for schemes
// whose ratios drift above 1. A non-positive total yields all zeros.
func Plan(s Scheme, total int) TierPlan {
	plan := make(TierPlan, len(s.Tiers))
	if total < 0 {
		total = 0
	}

	remaining := total
	for i, tr := range s.Tiers {
		if i == len(s.Tiers)-1 {
			plan[i] = TierCount{Tier: tr.Tier, Count: remaining}
			break
		}
		n := int(math.Floor(float64(total)*tr.Ratio + 0.5))
		n = max(0, min(n, remaining))
		remaining -= n
		plan[i] = TierCount{Tier: tr.Tier, Count: n}
	}
	return plan
}
