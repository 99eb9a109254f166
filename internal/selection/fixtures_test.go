package selection

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// makePool builds single-choice candidates: e1..eN easy, m1..mN medium,
// h1..hN hard.
func makePool(easy, medium, hard int) []Candidate {
	var pool []Candidate
	add := func(prefix string, n int, level Tier) {
		for i := 1; i <= n; i++ {
			pool = append(pool, Candidate{
				ID:              fmt.Sprintf("%s%d", prefix, i),
				Level:           level,
				Type:            SingleChoice,
				Stem:            fmt.Sprintf("%s question %d", level, i),
				KnowledgePoints: []string{fmt.Sprintf("kp-%s%d", prefix, i%3)},
			})
		}
	}
	add("e", easy, TierEasy)
	add("m", medium, TierMedium)
	add("h", hard, TierHard)
	return pool
}

func idsOf(cs []Candidate) []string {
	ids := make([]string, len(cs))
	for i, c := range cs {
		ids[i] = c.ID
	}
	return ids
}

func countLevels(cs []Candidate) map[Tier]int {
	counts := make(map[Tier]int)
	for _, c := range cs {
		counts[c.Level]++
	}
	return counts
}

// firstN picks the first Count candidates of every prompt and counts calls.
type firstN struct {
	calls atomic.Int32
}

func (o *firstN) Rank(_ context.Context, p Prompt) (string, error) {
	o.calls.Add(1)
	ids := idsOf(p.Candidates[:min(p.Count, len(p.Candidates))])
	return strings.Join(ids, ", "), nil
}

func failingOracle(err error) OracleFunc {
	return func(context.Context, Prompt) (string, error) { return "", err }
}

var errOracleDown = errors.New("oracle down")

// fakeRepo serves candidates from memory.
type fakeRepo struct {
	mu          sync.Mutex
	pool        []Candidate
	err         error
	panicWith   string
	randomCalls int
}

func (f *fakeRepo) filter(t QuestionType, excludes, points []string) []Candidate {
	var out []Candidate
	for _, c := range f.pool {
		if c.Type != t || slices.Contains(excludes, c.ID) {
			continue
		}
		if len(points) > 0 && !slices.ContainsFunc(c.KnowledgePoints, func(kp string) bool {
			return slices.Contains(points, kp)
		}) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (f *fakeRepo) ListByType(_ context.Context, _ string, t QuestionType, excludes []string) ([]Candidate, error) {
	if f.panicWith != "" {
		panic(f.panicWith)
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.filter(t, excludes, nil), nil
}

func (f *fakeRepo) ListByTypeAndKnowledgePoints(_ context.Context, _ string, t QuestionType, excludes, points []string) ([]Candidate, error) {
	if f.panicWith != "" {
		panic(f.panicWith)
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.filter(t, excludes, points), nil
}

func (f *fakeRepo) ListRandom(_ context.Context, _ string, t QuestionType, excludes []string, size int) ([]Candidate, error) {
	f.mu.Lock()
	f.randomCalls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return sample(f.filter(t, excludes, nil), size), nil
}

// countingRecorder records every measurement.
type countingRecorder struct {
	mu        sync.Mutex
	finished  []string
	outcomes  map[string]int
	fallbacks map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{outcomes: map[string]int{}, fallbacks: map[string]int{}}
}

func (r *countingRecorder) SelectionFinished(strategy string, _ time.Duration, _ int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finished = append(r.finished, strategy)
}

func (r *countingRecorder) OracleCall(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes[outcome]++
}

func (r *countingRecorder) RandomFallback(scope string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallbacks[scope]++
}
