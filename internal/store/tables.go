package store

import (
	"fmt"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	entschema "github.com/abhisek/mathjourney/ent/schema"
)

// Table names, as annotated in ent/schema.
const (
	snapshotsTable   = "progress_snapshots"
	lessonEvents     = "lesson_events"
	attemptEvents    = "attempt_events"
	llmRequestEvents = "llm_request_events"
)

// Tables converts the ent schema definitions into migration tables. Each
// table gets an auto-increment id primary key followed by the mixin and
// schema fields in declaration order.
func Tables() ([]*schema.Table, error) {
	defs := []ent.Interface{
		entschema.ProgressSnapshot{},
		entschema.LessonEvent{},
		entschema.AttemptEvent{},
		entschema.LLMRequestEvent{},
	}

	tables := make([]*schema.Table, 0, len(defs))
	for _, d := range defs {
		t, err := tableFor(d)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}

func tableFor(s ent.Interface) (*schema.Table, error) {
	name := tableName(s)
	if name == "" {
		return nil, fmt.Errorf("schema %T has no table annotation", s)
	}

	var fields []ent.Field
	var indexes []ent.Index
	for _, m := range s.Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	fields = append(fields, s.Fields()...)
	indexes = append(indexes, s.Indexes()...)

	t := schema.NewTable(name).
		AddPrimary(&schema.Column{Name: "id", Type: field.TypeInt, Increment: true})

	for _, f := range fields {
		d := f.Descriptor()
		if d.Err != nil {
			return nil, fmt.Errorf("%s.%s: %w", name, d.Name, d.Err)
		}
		col := &schema.Column{
			Name:     d.Name,
			Type:     d.Info.Type,
			Size:     int64(d.Size),
			Unique:   d.Unique,
			Nullable: d.Optional,
		}
		if scalarDefault(d.Default) {
			col.Default = d.Default
		}
		t.AddColumn(col)
	}

	for _, idx := range indexes {
		d := idx.Descriptor()
		t.AddIndex(name+"_"+strings.Join(d.Fields, "_"), d.Unique, d.Fields)
	}
	return t, nil
}

func tableName(s ent.Interface) string {
	for _, a := range s.Annotations() {
		switch a := a.(type) {
		case entsql.Annotation:
			return a.Table
		case *entsql.Annotation:
			return a.Table
		}
	}
	return ""
}

// scalarDefault reports whether v can be written as a column default.
// Function defaults such as time.Now are applied on insert instead.
func scalarDefault(v any) bool {
	switch v.(type) {
	case string, bool, int, int64, float64:
		return true
	}
	return false
}
