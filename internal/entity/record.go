package entity

import "time"

// Field is one recognized or synthesized label/value pair from a form.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// FieldDoc is the document shape every extraction produces and the store
// persists verbatim: {"fields": [{"label": ..., "value": ...}, ...]}.
// Degraded results use the same shape with synthetic fields.
type FieldDoc struct {
	Fields []Field `json:"fields"`
}

// Record pairs a task id with its extracted field document.
type Record struct {
	ID        int       `json:"id"`
	TaskID    string    `json:"task_id"`
	RawJSON   FieldDoc  `json:"raw_json"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
