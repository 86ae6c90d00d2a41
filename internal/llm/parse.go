package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/inkform/inkform/internal/entity"
)

// Excerpt limits for degraded documents, so callers always get a bounded,
// human-inspectable trace of what the model actually said.
const (
	rawExcerptLimit   = 500
	parseExcerptLimit = 300
)

// ParseFields extracts a field document from free model text: the substring
// between the first '{' and the last '}' is parsed as JSON, then gated
// against the fields-document schema. Every failure mode degrades to a
// synthetic field document; this function never returns an error.
func ParseFields(text string) Outcome {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return Degrade(ReasonNoJSON,
			entity.Field{Label: "Raw AI Response", Value: truncate(text, rawExcerptLimit)},
			entity.Field{Label: "Note", Value: "AI did not return valid JSON. Showing raw response."},
		)
	}

	jsonStr := text[start : end+1]
	var probe map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &probe); err != nil {
		return Degrade(ReasonParseError,
			entity.Field{Label: "JSON Parse Error", Value: err.Error()},
			entity.Field{Label: "Raw Response", Value: truncate(text, parseExcerptLimit)},
		)
	}

	if err := ValidateJSONAgainstSchema(BuildFieldsJSONSchema(), []byte(jsonStr)); err != nil {
		return Degrade(ReasonMissingFields,
			entity.Field{Label: "Parsing Error", Value: "JSON structure is invalid"},
		)
	}

	return OK(coerceFieldDoc(probe))
}

// coerceFieldDoc converts a schema-validated generic document into a
// FieldDoc, stringifying non-string labels and values.
func coerceFieldDoc(m map[string]any) entity.FieldDoc {
	items, _ := m["fields"].([]any)
	fields := make([]entity.Field, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		fields = append(fields, entity.Field{
			Label: stringify(obj["label"]),
			Value: stringify(obj["value"]),
		})
	}
	return entity.FieldDoc{Fields: fields}
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

// truncate limits s to n characters, never splitting a multi-byte rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
