// Code generated by ent, DO NOT EDIT.

package ent

import (
	"time"

	"github.com/inkform/inkform/db/ent/schema"
	"github.com/inkform/inkform/gen/ent/record"
)

// The init function reads all schema descriptors with runtime code
// (default values, validators, hooks and policies) and stitches it
// to their package variables.
func init() {
	recordFields := schema.Record{}.Fields()
	_ = recordFields
	// recordDescTaskID is the schema descriptor for task_id field.
	recordDescTaskID := recordFields[0].Descriptor()
	// record.TaskIDValidator is a validator for the "task_id" field. It is called by the builders before save.
	record.TaskIDValidator = recordDescTaskID.Validators[0].(func(string) error)
	// recordDescCreatedAt is the schema descriptor for created_at field.
	recordDescCreatedAt := recordFields[2].Descriptor()
	// record.DefaultCreatedAt holds the default value on creation for the created_at field.
	record.DefaultCreatedAt = recordDescCreatedAt.Default.(func() time.Time)
	// recordDescUpdatedAt is the schema descriptor for updated_at field.
	recordDescUpdatedAt := recordFields[3].Descriptor()
	// record.DefaultUpdatedAt holds the default value on creation for the updated_at field.
	record.DefaultUpdatedAt = recordDescUpdatedAt.Default.(func() time.Time)
	// record.UpdateDefaultUpdatedAt holds the default value on update for the updated_at field.
	record.UpdateDefaultUpdatedAt = recordDescUpdatedAt.UpdateDefault.(func() time.Time)
}
