package selection

import (
	"context"
	"errors"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/examgen/internal/llm"
)

var errNoOracle = errors.New("no oracle configured")

// SelectContext carries the paper-level facts shown to the oracle.
type SelectContext struct {
	Type QuestionType

	// Tier is the level being filled. Zero for a flat, mixed-level pick.
	Tier Tier

	SchemeDescription string
	KnowledgePoints   []string
}

// TierSelector picks a fixed number of questions from one batch of
// candidates, asking the oracle first and sampling at random when the
// oracle cannot help.
type TierSelector struct {
	oracle    Oracle
	timeout   time.Duration
	stemLimit int
	log       *zap.Logger
	recorder  Recorder
}

// NewTierSelector creates a TierSelector. A nil oracle makes every pick
// random. Only the oracle timeout, stem limit, logger and recorder of
// opts are used.
func NewTierSelector(oracle Oracle, opts Options) *TierSelector {
	opts = opts.withDefaults()
	return &TierSelector{
		oracle:    oracle,
		timeout:   opts.OracleTimeout,
		stemLimit: opts.StemLimit,
		log:       opts.Logger.Named("tier"),
		recorder:  opts.Recorder,
	}
}

// Select returns up to required candidates. It never fails:
//   - required <= 0 or no candidates: empty
//   - no more candidates than required: all of them, no oracle call
//   - oracle reply naming at least one candidate: those, in reply order,
//     capped at required and not padded
//   - anything else: a uniform random sample of required candidates
func (s *TierSelector) Select(ctx context.Context, candidates []Candidate, required int, sc SelectContext) []Candidate {
	if required <= 0 || len(candidates) == 0 {
		return []Candidate{}
	}
	if len(candidates) <= required {
		return slices.Clone(candidates)
	}

	picked, err := s.rank(ctx, candidates, required, sc)
	s.recorder.OracleCall(oracleOutcome(err))
	if err == nil {
		return picked
	}

	scope := "flat"
	if sc.Tier > 0 {
		scope = "tier"
	}
	s.log.Warn("random fallback engaged",
		zap.String("scope", scope),
		zap.Stringer("tier", sc.Tier),
		zap.Int("required", required),
		zap.Int("candidates", len(candidates)),
		zap.Error(err))
	s.recorder.RandomFallback(scope)

	return sample(candidates, required)
}

// rank asks the oracle for required candidates. Any reply naming at least
// one known candidate is a success.
func (s *TierSelector) rank(ctx context.Context, candidates []Candidate, required int, sc SelectContext) ([]Candidate, error) {
	if s.oracle == nil {
		return nil, errNoOracle
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	raw, err := s.oracle.Rank(ctx, Prompt{
		Type:              sc.Type,
		Count:             required,
		Tier:              sc.Tier,
		SchemeDescription: sc.SchemeDescription,
		KnowledgePoints:   sc.KnowledgePoints,
		Candidates:        candidates,
		StemLimit:         s.stemLimit,
	})
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(raw) == "" {
		return nil, ErrEmptyReply
	}

	index := make(map[string]Candidate, len(candidates))
	for _, c := range candidates {
		if _, dup := index[c.ID]; !dup {
			index[c.ID] = c
		}
	}

	ids := ParseIDs(raw, index)
	if len(ids) == 0 {
		return nil, ErrNoValidIDs
	}
	if len(ids) > required {
		ids = ids[:required]
	}

	picked := make([]Candidate, len(ids))
	for i, id := range ids {
		picked[i] = index[id]
	}
	s.log.Debug("oracle pick accepted",
		zap.Stringer("tier", sc.Tier),
		zap.Int("required", required),
		zap.Int("picked", len(picked)))
	return picked, nil
}

// sample returns n candidates chosen uniformly at random, without
// modifying the input.
func sample(candidates []Candidate, n int) []Candidate {
	out := slices.Clone(candidates)
	rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out[:min(n, len(out))]
}

func oracleOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, errNoOracle):
		return "skipped"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, ErrEmptyReply):
		return "empty"
	case errors.Is(err, ErrNoValidIDs):
		return "no_valid_ids"
	case llm.IsTransient(err):
		return "unavailable"
	default:
		return "error"
	}
}
