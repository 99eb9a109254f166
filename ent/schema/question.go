package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Question is one entry of a question bank.
type Question struct {
	ent.Schema
}

func (Question) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			NotEmpty().
			Immutable().
			Comment("Bank-assigned question ID"),
		field.String("repo_id").
			NotEmpty().
			Comment("Repository (question bank) the question belongs to"),
		field.Int("qu_type").
			Positive().
			Comment("1 single choice, 2 multi choice, 3 true/false, 4 short answer, 5 fill in the blank"),
		field.Int("level").
			Positive().
			Comment("Difficulty level, 1 is easiest"),
		field.Text("stem").
			Default("").
			Comment("Short question text"),
		field.Text("content").
			Default("").
			Comment("Full question text, shown when the stem is empty"),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
	}
}

func (Question) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("repo_id", "qu_type"),
	}
}
