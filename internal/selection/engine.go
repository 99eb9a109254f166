package selection

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Options configures an Engine.
type Options struct {
	// Scheme is the difficulty distribution used when a request enforces
	// ratios. Defaults to StandardScheme.
	Scheme Scheme

	// OracleTimeout bounds each oracle call. A timeout counts as an
	// oracle failure. Zero means no extra deadline.
	OracleTimeout time.Duration

	// ParallelTiers fills the tiers of a ratio selection concurrently.
	ParallelTiers bool

	// StemLimit caps the content shown to the oracle for questions
	// without a stem. Defaults to DefaultStemLimit.
	StemLimit int

	Logger   *zap.Logger
	Recorder Recorder
}

// DefaultOptions returns the recommended engine settings.
func DefaultOptions() Options {
	return Options{
		Scheme:        StandardScheme,
		OracleTimeout: 30 * time.Second,
		StemLimit:     DefaultStemLimit,
	}
}

func (o Options) withDefaults() Options {
	if len(o.Scheme.Tiers) == 0 {
		o.Scheme = StandardScheme
	}
	if o.StemLimit <= 0 {
		o.StemLimit = DefaultStemLimit
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Recorder == nil {
		o.Recorder = nopRecorder{}
	}
	return o
}

// Engine assembles difficulty-balanced question sets. It holds no
// per-request state and is safe for concurrent use.
type Engine struct {
	repo     Repository
	selector *TierSelector
	opts     Options
	log      *zap.Logger

	ratioCascade []Strategy
	flatCascade  []Strategy
}

// NewEngine creates an Engine. oracle may be nil, in which case every
// pick is random.
func NewEngine(repo Repository, oracle Oracle, opts Options) (*Engine, error) {
	if repo == nil {
		return nil, fmt.Errorf("selection engine needs a repository")
	}
	opts = opts.withDefaults()
	if err := opts.Scheme.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		repo:     repo,
		selector: NewTierSelector(oracle, opts),
		opts:     opts,
		log:      opts.Logger.Named("selection"),
	}

	flatOracle := flatOracleStrategy{selector: e.selector}
	fallbacks := []Strategy{flatRandomStrategy{}, repositoryRandomStrategy{repo: repo}}

	e.ratioCascade = append([]Strategy{ratioStrategy{engine: e}, flatOracle}, fallbacks...)
	e.flatCascade = append([]Strategy{flatOracle}, fallbacks...)
	return e, nil
}

// Scheme returns the engine's difficulty scheme.
func (e *Engine) Scheme() Scheme {
	return e.opts.Scheme.clone()
}

// SelectQuestions picks req.Size questions. It never fails: fetch
// errors and an empty pool yield an empty Result, oracle trouble falls
// back to random sampling, and a short pool yields a short Result.
func (e *Engine) SelectQuestions(ctx context.Context, req Request) Result {
	start := time.Now()
	log := e.log.With(
		zap.String("run_id", uuid.NewString()),
		zap.String("repo_id", req.RepoID),
		zap.Stringer("type", req.Type),
		zap.Int("size", req.Size),
		zap.Bool("enforce_ratio", req.EnforceRatio),
		zap.Int("knowledge_points", len(req.KnowledgePoints)))
	log.Info("selection started")

	res := e.selectQuestions(ctx, req, log)
	if len(res.Candidates) > req.Size {
		res.Candidates = res.Candidates[:max(req.Size, 0)]
	}
	if res.Candidates == nil {
		res.Candidates = []Candidate{}
	}

	elapsed := time.Since(start)
	e.opts.Recorder.SelectionFinished(res.Strategy, elapsed, len(res.Candidates))
	log.Info("selection finished",
		zap.String("strategy", res.Strategy),
		zap.Int("selected", len(res.Candidates)),
		zap.Duration("elapsed", elapsed))
	return res
}

func (e *Engine) selectQuestions(ctx context.Context, req Request, log *zap.Logger) Result {
	if req.Size <= 0 {
		return Result{Strategy: StrategyNone}
	}

	pool, err := e.fetch(ctx, req)
	if err != nil {
		log.Error("pool fetch failed", zap.Error(err))
		return Result{Strategy: StrategyFetch}
	}
	log.Info("pool fetched", zap.Int("pool", len(pool)))
	if len(pool) == 0 {
		return Result{Strategy: StrategyFetch}
	}

	if len(pool) <= req.Size {
		log.Info("pool sufficient", zap.Int("pool", len(pool)))
		return Result{Candidates: pool, Strategy: StrategySufficient}
	}

	cascade := e.flatCascade
	if req.EnforceRatio {
		cascade = e.ratioCascade
	}

	r := &run{req: req, pool: pool, scheme: e.opts.Scheme, log: log, rec: e.opts.Recorder}
	for _, s := range cascade {
		picked, ok := attempt(ctx, s, r)
		if ok {
			return Result{Candidates: picked, Strategy: s.Name()}
		}
	}

	log.Error("every strategy failed")
	return Result{Strategy: StrategyNone}
}

// fetch loads the candidate pool. A panicking repository is reported as
// an error.
func (e *Engine) fetch(ctx context.Context, req Request) (pool []Candidate, err error) {
	defer func() {
		if p := recover(); p != nil {
			pool, err = nil, fmt.Errorf("repository panicked: %v", p)
		}
	}()

	if len(req.KnowledgePoints) > 0 {
		return e.repo.ListByTypeAndKnowledgePoints(ctx, req.RepoID, req.Type, req.Excludes, req.KnowledgePoints)
	}
	return e.repo.ListByType(ctx, req.RepoID, req.Type, req.Excludes)
}

// attempt runs one strategy, turning a panic into a failed attempt.
func attempt(ctx context.Context, s Strategy, r *run) (picked []Candidate, ok bool) {
	defer func() {
		if p := recover(); p != nil {
			r.log.Error("strategy panicked",
				zap.String("strategy", s.Name()),
				zap.Any("panic", p))
			picked, ok = nil, false
		}
	}()

	picked, ok = s.Attempt(ctx, r)
	if !ok {
		r.log.Warn("strategy failed", zap.String("strategy", s.Name()))
	}
	return picked, ok
}
