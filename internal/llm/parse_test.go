package llm

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestParseFieldsValid(t *testing.T) {
	text := `Sure! Here is the JSON: {"fields":[{"label":"Name","value":"Jon"},{"label":"Date","value":"5/1"}]} Hope that helps.`
	out := ParseFields(text)
	if out.Degraded {
		t.Fatalf("unexpected degraded outcome: %s", out.Reason)
	}
	if len(out.Doc.Fields) != 2 {
		t.Fatalf("fields: got %d, want 2", len(out.Doc.Fields))
	}
	if out.Doc.Fields[0].Label != "Name" || out.Doc.Fields[0].Value != "Jon" {
		t.Errorf("first field: got %+v", out.Doc.Fields[0])
	}
}

func TestParseFieldsCoercesNonStringValues(t *testing.T) {
	text := `{"fields":[{"label":"Amount","value":42},{"label":"Checked","value":true},{"label":"Blank","value":null}]}`
	out := ParseFields(text)
	if out.Degraded {
		t.Fatalf("unexpected degraded outcome: %s", out.Reason)
	}
	want := []string{"42", "true", ""}
	for i, w := range want {
		if out.Doc.Fields[i].Value != w {
			t.Errorf("field %d value: got %q, want %q", i, out.Doc.Fields[i].Value, w)
		}
	}
}

func TestParseFieldsNoBraces(t *testing.T) {
	text := strings.Repeat("x", 600)
	out := ParseFields(text)
	if !out.Degraded || out.Reason != ReasonNoJSON {
		t.Fatalf("reason: got %q, want %q", out.Reason, ReasonNoJSON)
	}
	if out.Doc.Fields[0].Label != "Raw AI Response" {
		t.Errorf("label: got %q", out.Doc.Fields[0].Label)
	}
	if len(out.Doc.Fields[0].Value) != 500 {
		t.Errorf("excerpt length: got %d, want 500", len(out.Doc.Fields[0].Value))
	}
}

func TestParseFieldsInvalidJSON(t *testing.T) {
	text := "{" + strings.Repeat("a", 400) + "}"
	out := ParseFields(text)
	if !out.Degraded || out.Reason != ReasonParseError {
		t.Fatalf("reason: got %q, want %q", out.Reason, ReasonParseError)
	}
	if out.Doc.Fields[0].Label != "JSON Parse Error" {
		t.Errorf("label: got %q", out.Doc.Fields[0].Label)
	}
	if len(out.Doc.Fields[1].Value) != 300 {
		t.Errorf("excerpt length: got %d, want 300", len(out.Doc.Fields[1].Value))
	}
}

// A multi-byte response must never be cut mid-rune; the excerpt would
// otherwise carry invalid UTF-8 into the JSON response body.
func TestParseFieldsExcerptKeepsRuneBoundary(t *testing.T) {
	text := strings.Repeat("é", 600)
	out := ParseFields(text)
	if !out.Degraded || out.Reason != ReasonNoJSON {
		t.Fatalf("reason: got %q, want %q", out.Reason, ReasonNoJSON)
	}
	excerpt := out.Doc.Fields[0].Value
	if !utf8.ValidString(excerpt) {
		t.Fatal("excerpt is not valid UTF-8")
	}
	if n := utf8.RuneCountInString(excerpt); n != 500 {
		t.Errorf("excerpt runes: got %d, want 500", n)
	}
}

func TestParseFieldsMissingFieldsKey(t *testing.T) {
	out := ParseFields(`{"data":[1,2,3]}`)
	if !out.Degraded || out.Reason != ReasonMissingFields {
		t.Fatalf("reason: got %q, want %q", out.Reason, ReasonMissingFields)
	}
	if out.Doc.Fields[0].Label != "Parsing Error" {
		t.Errorf("label: got %q", out.Doc.Fields[0].Label)
	}
}

func TestParseFieldsNotAList(t *testing.T) {
	out := ParseFields(`{"fields":{"label":"x"}}`)
	if !out.Degraded || out.Reason != ReasonMissingFields {
		t.Fatalf("reason: got %q, want %q", out.Reason, ReasonMissingFields)
	}
}

func TestParseFieldsEmptyList(t *testing.T) {
	out := ParseFields(`{"fields":[]}`)
	if out.Degraded {
		t.Fatalf("unexpected degraded outcome: %s", out.Reason)
	}
	if len(out.Doc.Fields) != 0 {
		t.Errorf("fields: got %d, want 0", len(out.Doc.Fields))
	}
}
