package llm

import "testing"

func TestValidateFieldsSchema(t *testing.T) {
	schema := BuildFieldsJSONSchema()

	valid := [][]byte{
		[]byte(`{"fields":[]}`),
		[]byte(`{"fields":[{"label":"Name","value":"Ada"}]}`),
		[]byte(`{"fields":[{"label":"Amount","value":42}]}`), // untyped values pass
	}
	for _, data := range valid {
		if err := ValidateJSONAgainstSchema(schema, data); err != nil {
			t.Errorf("%s: unexpected error %v", data, err)
		}
	}

	invalid := [][]byte{
		[]byte(`{}`),                     // fields missing
		[]byte(`{"fields":"oops"}`),      // not an array
		[]byte(`{"fields":{"label":1}}`), // object, not array
		[]byte(`[]`),                     // not an object
	}
	for _, data := range invalid {
		if err := ValidateJSONAgainstSchema(schema, data); err == nil {
			t.Errorf("%s: expected validation error", data)
		}
	}
}
