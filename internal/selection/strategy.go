package selection

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Strategy names reported in Result.Strategy.
const (
	StrategyNone             = "none"
	StrategyFetch            = "fetch"
	StrategySufficient       = "sufficient"
	StrategyRatio            = "ratio"
	StrategyFlatOracle       = "flat-oracle"
	StrategyFlatRandom       = "flat-random"
	StrategyRepositoryRandom = "repository-random"
)

// Strategy is one stage of the selection cascade. Attempt reports false
// to hand over to the next stage.
type Strategy interface {
	Name() string
	Attempt(ctx context.Context, r *run) ([]Candidate, bool)
}

// run is the state shared by the strategies of one SelectQuestions call.
type run struct {
	req    Request
	pool   []Candidate
	scheme Scheme
	log    *zap.Logger
	rec    Recorder
}

func (r *run) selectContext(t Tier) SelectContext {
	sc := SelectContext{
		Type:            r.req.Type,
		Tier:            t,
		KnowledgePoints: r.req.KnowledgePoints,
	}
	if r.req.EnforceRatio {
		sc.SchemeDescription = r.scheme.Description()
	}
	return sc
}

// ratioStrategy fills each scheme tier with its planned share.
type ratioStrategy struct {
	engine *Engine
}

func (ratioStrategy) Name() string { return StrategyRatio }

func (s ratioStrategy) Attempt(ctx context.Context, r *run) ([]Candidate, bool) {
	plan := Plan(r.scheme, r.req.Size)
	parts := Partition(r.pool, r.scheme)
	picks := make([][]Candidate, len(plan))

	fill := func(ctx context.Context, i int) (err error) {
		tc := plan[i]
		defer func() {
			if p := recover(); p != nil {
				err = fmt.Errorf("tier %s: panic: %v", tc.Tier, p)
			}
		}()

		r.log.Debug("tier started",
			zap.Stringer("tier", tc.Tier),
			zap.Int("required", tc.Count),
			zap.Int("candidates", len(parts[tc.Tier])))
		picks[i] = s.engine.selector.Select(ctx, parts[tc.Tier], tc.Count, r.selectContext(tc.Tier))
		if len(picks[i]) < tc.Count {
			r.log.Info("tier short",
				zap.Stringer("tier", tc.Tier),
				zap.Int("required", tc.Count),
				zap.Int("picked", len(picks[i])))
		}
		return nil
	}

	var err error
	if s.engine.opts.ParallelTiers {
		g, gctx := errgroup.WithContext(ctx)
		for i := range plan {
			g.Go(func() error { return fill(gctx, i) })
		}
		err = g.Wait()
	} else {
		for i := range plan {
			if err = fill(ctx, i); err != nil {
				break
			}
		}
	}
	if err != nil {
		r.log.Error("ratio selection aborted", zap.Error(err))
		return nil, false
	}

	var out []Candidate
	for _, p := range picks {
		out = append(out, p...)
	}
	// A pool with no in-scheme levels picks nothing; leave it to the flat
	// stages.
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}

// flatOracleStrategy asks the oracle once over the whole pool and gives
// up if the oracle cannot answer.
type flatOracleStrategy struct {
	selector *TierSelector
}

func (flatOracleStrategy) Name() string { return StrategyFlatOracle }

func (s flatOracleStrategy) Attempt(ctx context.Context, r *run) ([]Candidate, bool) {
	picked, err := s.selector.rank(ctx, r.pool, r.req.Size, r.selectContext(0))
	r.rec.OracleCall(oracleOutcome(err))
	if err != nil {
		r.log.Warn("oracle failed", zap.String("scope", "flat"), zap.Error(err))
		return nil, false
	}
	return picked, true
}

// flatRandomStrategy samples the pool in process.
type flatRandomStrategy struct{}

func (flatRandomStrategy) Name() string { return StrategyFlatRandom }

func (flatRandomStrategy) Attempt(_ context.Context, r *run) ([]Candidate, bool) {
	if len(r.pool) == 0 {
		return nil, false
	}
	r.log.Info("random fallback engaged", zap.String("scope", "flat"))
	r.rec.RandomFallback("flat")
	return sample(r.pool, r.req.Size), true
}

// repositoryRandomStrategy asks the repository for a random sample. It
// only runs when every pool-based stage failed, which with a non-empty
// pool means an earlier stage panicked.
type repositoryRandomStrategy struct {
	repo Repository
}

func (repositoryRandomStrategy) Name() string { return StrategyRepositoryRandom }

func (s repositoryRandomStrategy) Attempt(ctx context.Context, r *run) ([]Candidate, bool) {
	picked, err := s.repo.ListRandom(ctx, r.req.RepoID, r.req.Type, r.req.Excludes, r.req.Size)
	if err != nil {
		r.log.Error("repository random failed", zap.Error(err))
		return nil, false
	}
	return picked, true
}
