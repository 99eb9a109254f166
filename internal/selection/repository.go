package selection

import (
	"context"

	"github.com/abhisek/examgen/internal/store"
)

// Repository supplies candidate questions. Implementations must never
// return a question whose ID is in excludes.
type Repository interface {
	ListByType(ctx context.Context, repoID string, t QuestionType, excludes []string) ([]Candidate, error)

	// ListByTypeAndKnowledgePoints keeps questions tagged with at least
	// one of points.
	ListByTypeAndKnowledgePoints(ctx context.Context, repoID string, t QuestionType, excludes, points []string) ([]Candidate, error)

	// ListRandom returns up to size questions in random order.
	ListRandom(ctx context.Context, repoID string, t QuestionType, excludes []string, size int) ([]Candidate, error)
}

// StoreRepository adapts the SQLite question bank to Repository.
type StoreRepository struct {
	questions store.QuestionRepo
}

// NewStoreRepository wraps a store.QuestionRepo.
func NewStoreRepository(questions store.QuestionRepo) *StoreRepository {
	return &StoreRepository{questions: questions}
}

func (r *StoreRepository) ListByType(ctx context.Context, repoID string, t QuestionType, excludes []string) ([]Candidate, error) {
	qs, err := r.questions.ListByType(ctx, repoID, int(t), excludes)
	return toCandidates(qs), err
}

func (r *StoreRepository) ListByTypeAndKnowledgePoints(ctx context.Context, repoID string, t QuestionType, excludes, points []string) ([]Candidate, error) {
	qs, err := r.questions.ListByTypeAndKnowledgePoints(ctx, repoID, int(t), excludes, points)
	return toCandidates(qs), err
}

func (r *StoreRepository) ListRandom(ctx context.Context, repoID string, t QuestionType, excludes []string, size int) ([]Candidate, error) {
	qs, err := r.questions.ListRandom(ctx, repoID, int(t), excludes, size)
	return toCandidates(qs), err
}

func toCandidates(qs []store.Question) []Candidate {
	if qs == nil {
		return nil
	}
	out := make([]Candidate, len(qs))
	for i, q := range qs {
		out[i] = Candidate{
			ID:              q.ID,
			Level:           Tier(q.Level),
			Type:            QuestionType(q.Type),
			Stem:            q.Stem,
			Content:         q.Content,
			KnowledgePoints: q.KnowledgePoints,
		}
	}
	return out
}
