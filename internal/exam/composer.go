// Package exam composes exam papers from per-type sections.
package exam

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/examgen/internal/selection"
)

// Selector picks questions for one section. *selection.Engine
// implements it.
type Selector interface {
	SelectQuestions(ctx context.Context, req selection.Request) selection.Result
}

// Composer builds papers section by section.
type Composer struct {
	selector Selector
	log      *zap.Logger
	now      func() time.Time
}

// NewComposer creates a Composer. A nil logger disables logging.
func NewComposer(selector Selector, log *zap.Logger) *Composer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Composer{selector: selector, log: log.Named("exam"), now: time.Now}
}

// Compose fills every section of spec in order. Questions picked for one
// section are excluded from all later ones, so a paper never repeats a
// question. A section the bank cannot fill comes back short; only an
// invalid spec is an error.
func (c *Composer) Compose(ctx context.Context, spec Spec) (*Paper, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	paper := &Paper{
		ID:        uuid.NewString(),
		Title:     spec.Title,
		CreatedAt: c.now().UTC(),
	}
	log := c.log.With(zap.String("paper_id", paper.ID))

	excludes := slices.Clone(spec.Excludes)
	for _, sec := range spec.Sections {
		res := c.selector.SelectQuestions(ctx, selection.Request{
			RepoID:          sec.RepoID,
			Type:            sec.Type,
			Excludes:        slices.Clone(excludes),
			Size:            sec.Count,
			KnowledgePoints: spec.KnowledgePoints,
			EnforceRatio:    spec.RatioEnforced(),
		})
		excludes = append(excludes, res.IDs()...)

		ps := PaperSection{Section: sec, Questions: res.Candidates, Strategy: res.Strategy}
		if ps.Short() > 0 {
			log.Warn("section short",
				zap.String("repo_id", sec.RepoID),
				zap.Stringer("type", sec.Type),
				zap.Int("count", sec.Count),
				zap.Int("selected", len(ps.Questions)))
		}
		paper.Sections = append(paper.Sections, ps)
	}

	log.Info("paper composed",
		zap.Int("sections", len(paper.Sections)),
		zap.Int("questions", paper.QuestionCount()),
		zap.Int("score", paper.TotalScore()))
	return paper, nil
}
