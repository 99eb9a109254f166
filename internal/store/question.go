package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"go.uber.org/zap"
)

const (
	tableQuestions       = "questions"
	tableKnowledgePoints = "question_knowledge_points"
)

var questionColumns = []string{"id", "repo_id", "qu_type", "level", "stem", "content", "created_at"}

// questionRepo implements QuestionRepo.
type questionRepo struct {
	drv *entsql.Driver
	log *zap.Logger
}

func (r *questionRepo) Upsert(ctx context.Context, qs ...Question) (err error) {
	if len(qs) == 0 {
		return nil
	}

	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin upsert: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	b := entsql.Dialect(dialect.SQLite)
	for _, q := range qs {
		if q.ID == "" {
			return fmt.Errorf("upsert question: empty id")
		}
		created := q.CreatedAt
		if created.IsZero() {
			created = time.Now().UTC()
		}

		query, args := b.Insert(tableQuestions).
			Columns(questionColumns...).
			Values(q.ID, q.RepoID, q.Type, q.Level, q.Stem, q.Content, created).
			OnConflict(
				entsql.ConflictColumns("id"),
				entsql.ResolveWith(func(u *entsql.UpdateSet) {
					u.SetExcluded("repo_id").
						SetExcluded("qu_type").
						SetExcluded("level").
						SetExcluded("stem").
						SetExcluded("content")
				}),
			).
			Query()
		if err = tx.Exec(ctx, query, args, nil); err != nil {
			return fmt.Errorf("upsert question %s: %w", q.ID, err)
		}

		query, args = b.Delete(tableKnowledgePoints).
			Where(entsql.EQ("question_id", q.ID)).
			Query()
		if err = tx.Exec(ctx, query, args, nil); err != nil {
			return fmt.Errorf("clear knowledge points of %s: %w", q.ID, err)
		}

		points := dedupe(q.KnowledgePoints)
		if len(points) == 0 {
			continue
		}
		ins := b.Insert(tableKnowledgePoints).Columns("question_id", "point", "position")
		for i, p := range points {
			ins.Values(q.ID, p, i)
		}
		query, args = ins.Query()
		if err = tx.Exec(ctx, query, args, nil); err != nil {
			return fmt.Errorf("save knowledge points of %s: %w", q.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert: %w", err)
	}
	r.log.Debug("questions upserted", zap.Int("count", len(qs)))
	return nil
}

func (r *questionRepo) ListByType(ctx context.Context, repoID string, quType int, excludes []string) ([]Question, error) {
	sel, t := r.baseSelect(repoID, quType, excludes)
	return r.list(ctx, sel.OrderBy(t.C("created_at"), t.C("id")))
}

func (r *questionRepo) ListByTypeAndKnowledgePoints(ctx context.Context, repoID string, quType int, excludes, points []string) ([]Question, error) {
	if len(points) == 0 {
		return r.ListByType(ctx, repoID, quType, excludes)
	}

	kp := entsql.Table(tableKnowledgePoints)
	tagged := entsql.Dialect(dialect.SQLite).
		Select(kp.C("question_id")).
		From(kp).
		Where(inList(kp.C("point"), points))

	sel, t := r.baseSelect(repoID, quType, excludes)
	sel.Where(entsql.In(t.C("id"), tagged))
	return r.list(ctx, sel.OrderBy(t.C("created_at"), t.C("id")))
}

func (r *questionRepo) ListRandom(ctx context.Context, repoID string, quType int, excludes []string, size int) ([]Question, error) {
	if size <= 0 {
		return nil, nil
	}
	sel, _ := r.baseSelect(repoID, quType, excludes)
	sel.OrderExpr(entsql.Expr("RANDOM()")).Limit(size)
	return r.list(ctx, sel)
}

func (r *questionRepo) KnowledgePoints(ctx context.Context, repoID string, quType int) ([]string, error) {
	q := entsql.Table(tableQuestions)
	kp := entsql.Table(tableKnowledgePoints)

	preds := []*entsql.Predicate{
		entsql.EQ(kp.C("position"), 0),
		entsql.EQ(q.C("repo_id"), repoID),
	}
	if quType > 0 {
		preds = append(preds, entsql.EQ(q.C("qu_type"), quType))
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Select(kp.C("point")).
		Distinct().
		From(kp).
		Join(q).On(kp.C("question_id"), q.C("id")).
		Where(entsql.And(preds...)).
		OrderBy(kp.C("point")).
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query knowledge points: %w", err)
	}
	defer rows.Close()

	var points []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scan knowledge point: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

func (r *questionRepo) CountByType(ctx context.Context, repoID string) (map[int]int, error) {
	t := entsql.Table(tableQuestions)
	query, args := entsql.Dialect(dialect.SQLite).
		Select(t.C("qu_type"), entsql.Count("*")).
		From(t).
		Where(entsql.EQ(t.C("repo_id"), repoID)).
		GroupBy(t.C("qu_type")).
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("count questions: %w", err)
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var quType, n int
		if err := rows.Scan(&quType, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[quType] = n
	}
	return counts, rows.Err()
}

// baseSelect builds the repo/type/excludes query shared by the list methods.
func (r *questionRepo) baseSelect(repoID string, quType int, excludes []string) (*entsql.Selector, *entsql.SelectTable) {
	t := entsql.Table(tableQuestions)
	preds := []*entsql.Predicate{
		entsql.EQ(t.C("repo_id"), repoID),
		entsql.EQ(t.C("qu_type"), quType),
	}
	if len(excludes) > 0 {
		preds = append(preds, entsql.Not(inList(t.C("id"), excludes)))
	}
	sel := entsql.Dialect(dialect.SQLite).
		Select(qualify(t, questionColumns)...).
		From(t).
		Where(entsql.And(preds...))
	return sel, t
}

// list runs sel and attaches knowledge points to the result.
func (r *questionRepo) list(ctx context.Context, sel *entsql.Selector) ([]Question, error) {
	query, args := sel.Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}

	var qs []Question
	for rows.Next() {
		var q Question
		if err := rows.Scan(&q.ID, &q.RepoID, &q.Type, &q.Level, &q.Stem, &q.Content, &q.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan question: %w", err)
		}
		qs = append(qs, q)
	}
	err := rows.Err()
	// The pool has a single connection, so release it before the next query.
	rows.Close()
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}

	if err := r.attachKnowledgePoints(ctx, qs); err != nil {
		return nil, err
	}
	return qs, nil
}

func (r *questionRepo) attachKnowledgePoints(ctx context.Context, qs []Question) error {
	if len(qs) == 0 {
		return nil
	}

	byID := make(map[string]int, len(qs))
	ids := make([]string, len(qs))
	for i, q := range qs {
		byID[q.ID] = i
		ids[i] = q.ID
	}

	kp := entsql.Table(tableKnowledgePoints)
	query, args := entsql.Dialect(dialect.SQLite).
		Select(kp.C("question_id"), kp.C("point")).
		From(kp).
		Where(inList(kp.C("question_id"), ids)).
		OrderBy(kp.C("question_id"), kp.C("position")).
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return fmt.Errorf("query knowledge points: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, point string
		if err := rows.Scan(&id, &point); err != nil {
			return fmt.Errorf("scan knowledge point: %w", err)
		}
		if i, ok := byID[id]; ok {
			qs[i].KnowledgePoints = append(qs[i].KnowledgePoints, point)
		}
	}
	return rows.Err()
}

// inList matches col against vals bound as a single JSON array argument,
// so long id lists stay clear of SQLite's bound-variable limit.
func inList(col string, vals []string) *entsql.Predicate {
	arr, _ := json.Marshal(vals)
	return entsql.P(func(b *entsql.Builder) {
		b.Ident(col).WriteString(" IN (SELECT value FROM json_each(").Arg(string(arr)).WriteString("))")
	})
}

// dedupe drops blank and repeated entries, keeping first-seen order.
func dedupe(ss []string) []string {
	seen := make(map[string]bool, len(ss))
	var out []string
	for _, s := range ss {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
