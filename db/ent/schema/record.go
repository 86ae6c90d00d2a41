package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"

	"github.com/inkform/inkform/internal/entity"
)

// Record is one upload/extraction result. The implicit int id is the
// internal identity; task_id is the external handle.
type Record struct{ ent.Schema }

func (Record) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "records"},
	}
}

func (Record) Fields() []ent.Field {
	return []ent.Field{
		field.String("task_id").NotEmpty().Unique().Immutable(),
		// Stored serialized as text; the store treats it as opaque.
		field.JSON("raw_json", entity.FieldDoc{}),
		field.Time("created_at").Default(time.Now).Immutable(),
		field.Time("updated_at").Default(time.Now).UpdateDefault(time.Now),
	}
}

func (Record) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("created_at"),
	}
}
