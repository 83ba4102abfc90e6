package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AttemptEvent records one submission inside a lesson activity.
type AttemptEvent struct {
	ent.Schema
}

func (AttemptEvent) Annotations() []schema.Annotation {
	return []schema.Annotation{entsql.Annotation{Table: "attempt_events"}}
}

func (AttemptEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AttemptEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("Links to LessonEvent"),
		field.Int("lesson"),
		field.String("activity").
			Comment("warmup, store or angle"),
		field.String("prompt").
			Comment("What was asked"),
		field.String("expected").
			Comment("The accepted answer"),
		field.String("given").
			Comment("What the learner submitted"),
		field.Bool("correct"),
		field.Int("awarded").
			Default(0),
	}
}

func (AttemptEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("activity"),
		index.Fields("correct"),
	}
}
