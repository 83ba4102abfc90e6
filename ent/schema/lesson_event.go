package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// LessonEvent records a lesson session starting, finishing or being
// abandoned.
type LessonEvent struct {
	ent.Schema
}

func (LessonEvent) Annotations() []schema.Annotation {
	return []schema.Annotation{entsql.Annotation{Table: "lesson_events"}}
}

func (LessonEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (LessonEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").NotEmpty(),
		field.Int("lesson"),
		field.String("title").Default(""),
		field.String("action").
			Comment("start, complete or abandon"),
		field.Int("points").
			Default(0).
			Comment("Points earned, or given up on abandon"),
		field.Int("total_points").
			Default(0).
			Comment("Learner total after the event"),
	}
}

func (LessonEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("lesson"),
	}
}
