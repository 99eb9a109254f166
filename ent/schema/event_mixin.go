package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
	"entgo.io/ent/schema/mixin"
)

// CallLogMixin orders append-only log rows. The sequence comes from the
// store's global counter, so rows from concurrent writers still sort in
// commit order.
type CallLogMixin struct {
	mixin.Schema
}

func (CallLogMixin) Fields() []ent.Field {
	return []ent.Field{
		field.Int64("sequence").
			Unique().
			Immutable().
			Comment("Global sequence number, assigned at append"),
		field.Time("timestamp").
			Default(func() time.Time { return time.Now().UTC() }).
			Immutable().
			Comment("UTC time the call finished"),
	}
}

// Indexes covers the time-window queries of the llm listing commands.
// sequence needs none beyond its unique constraint.
func (CallLogMixin) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("timestamp"),
	}
}
