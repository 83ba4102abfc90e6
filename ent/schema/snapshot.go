package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// ProgressSnapshot stores the learner's progress record. The newest row
// is the current state; older rows are kept for a short history.
type ProgressSnapshot struct {
	ent.Schema
}

func (ProgressSnapshot) Annotations() []schema.Annotation {
	return []schema.Annotation{entsql.Annotation{Table: "progress_snapshots"}}
}

func (ProgressSnapshot) Fields() []ent.Field {
	return []ent.Field{
		field.Int64("sequence").
			Comment("Global sequence number when the snapshot was written"),
		field.Time("timestamp").
			Default(time.Now).
			Comment("When the snapshot was taken"),
		field.Int("total_points").
			Default(0).
			Comment("Copy of the record's total for quick queries"),
		field.JSON("data", map[string]any{}).
			Comment("Full progress record as JSON"),
	}
}

func (ProgressSnapshot) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("timestamp"),
		index.Fields("sequence"),
	}
}
