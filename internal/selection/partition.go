package selection

// Partition groups candidates by difficulty level. The result has exactly
// one entry per scheme tier, empty when no candidate has that level.
// Candidates whose level is not in the scheme are left out. Input order
// is kept within each tier.
func Partition(candidates []Candidate, s Scheme) map[Tier][]Candidate {
	parts := make(map[Tier][]Candidate, len(s.Tiers))
	for _, tr := range s.Tiers {
		parts[tr.Tier] = []Candidate{}
	}
	for _, c := range candidates {
		if group, ok := parts[c.Level]; ok {
			parts[c.Level] = append(group, c)
		}
	}
	return parts
}
