package selection

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// TierRatio is the share of a paper allotted to one tier.
type TierRatio struct {
	Tier  Tier
	Ratio float64
}

// Scheme is an ordered difficulty distribution. Ratios sum to 1.0.
type Scheme struct {
	Name  string
	Tiers []TierRatio
}

// Built-in schemes.
var (
	StandardScheme = Scheme{
		Name:  "standard",
		Tiers: []TierRatio{{TierEasy, 0.5}, {TierMedium, 0.3}, {TierHard, 0.2}},
	}
	BalancedScheme = Scheme{
		Name:  "balanced",
		Tiers: []TierRatio{{TierEasy, 1.0 / 3}, {TierMedium, 1.0 / 3}, {TierHard, 1.0 / 3}},
	}
	ChallengeScheme = Scheme{
		Name:  "challenge",
		Tiers: []TierRatio{{TierEasy, 0.2}, {TierMedium, 0.4}, {TierHard, 0.4}},
	}
	FourTierScheme = Scheme{
		Name:  "four-tier",
		Tiers: []TierRatio{{TierEasy, 0.4}, {TierMedium, 0.3}, {TierHard, 0.2}, {TierVeryHard, 0.1}},
	}
)

var schemes = map[string]Scheme{
	StandardScheme.Name:  StandardScheme,
	BalancedScheme.Name:  BalancedScheme,
	ChallengeScheme.Name: ChallengeScheme,
	FourTierScheme.Name:  FourTierScheme,
}

// LookupScheme returns the built-in scheme with the given name. An empty
// name selects the standard scheme.
func LookupScheme(name string) (Scheme, error) {
	if name == "" {
		return StandardScheme.clone(), nil
	}
	s, ok := schemes[name]
	if !ok {
		return Scheme{}, fmt.Errorf("unknown difficulty scheme %q (known: %s)", name, strings.Join(SchemeNames(), ", "))
	}
	return s.clone(), nil
}

// SchemeNames lists the built-in scheme names, sorted.
func SchemeNames() []string {
	names := make([]string, 0, len(schemes))
	for name := range schemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks that the scheme is non-empty, has distinct tiers and
// non-negative ratios summing to 1.
func (s Scheme) Validate() error {
	if len(s.Tiers) == 0 {
		return fmt.Errorf("scheme %q has no tiers", s.Name)
	}
	seen := make(map[Tier]bool, len(s.Tiers))
	var sum float64
	for _, tr := range s.Tiers {
		if seen[tr.Tier] {
			return fmt.Errorf("scheme %q lists tier %d twice", s.Name, tr.Tier)
		}
		seen[tr.Tier] = true
		if tr.Ratio < 0 {
			return fmt.Errorf("scheme %q has negative ratio for tier %d", s.Name, tr.Tier)
		}
		sum += tr.Ratio
	}
	if math.Abs(sum-1) > 1e-6 {
		return fmt.Errorf("scheme %q ratios sum to %.4f, want 1", s.Name, sum)
	}
	return nil
}

// Has reports whether t is one of the scheme's tiers.
func (s Scheme) Has(t Tier) bool {
	for _, tr := range s.Tiers {
		if tr.Tier == t {
			return true
		}
	}
	return false
}

// Description renders the distribution for humans and prompts,
// e.g. "easy 50%, medium 30%, hard 20%".
func (s Scheme) Description() string {
	parts := make([]string, len(s.Tiers))
	for i, tr := range s.Tiers {
		parts[i] = fmt.Sprintf("%s %.0f%%", tr.Tier, tr.Ratio*100)
	}
	return strings.Join(parts, ", ")
}

func (s Scheme) clone() Scheme {
	tiers := make([]TierRatio, len(s.Tiers))
	copy(tiers, s.Tiers)
	return Scheme{Name: s.Name, Tiers: tiers}
}
