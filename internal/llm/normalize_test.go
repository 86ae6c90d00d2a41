package llm

import "testing"

func TestNormalizeChatCompletionString(t *testing.T) {
	raw := []byte(`{"choices":[{"message":{"content":"{\"fields\":[]}"}}]}`)
	got := NormalizeResponseText(raw)
	if got != `{"fields":[]}` {
		t.Errorf("got %q", got)
	}
}

func TestNormalizeChatCompletionParts(t *testing.T) {
	raw := []byte(`{"choices":[{"message":{"content":[{"type":"text","text":"hello"},{"type":"text","text":"world"}]}}]}`)
	got := NormalizeResponseText(raw)
	if got != "hello world" {
		t.Errorf("got %q", got)
	}
}

func TestNormalizeGenerationList(t *testing.T) {
	raw := []byte(`[{"generated_text":"from a list"}]`)
	if got := NormalizeResponseText(raw); got != "from a list" {
		t.Errorf("got %q", got)
	}
}

func TestNormalizeGenerationListMissingKey(t *testing.T) {
	raw := []byte(`[{"other":"x"}]`)
	if got := NormalizeResponseText(raw); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestNormalizeGenerationObject(t *testing.T) {
	raw := []byte(`{"generated_text":"from a dict"}`)
	if got := NormalizeResponseText(raw); got != "from a dict" {
		t.Errorf("got %q", got)
	}
}

func TestNormalizeUnknownObjectStringified(t *testing.T) {
	raw := []byte(`{"unexpected":"shape"}`)
	if got := NormalizeResponseText(raw); got != `{"unexpected":"shape"}` {
		t.Errorf("got %q", got)
	}
}

func TestNormalizeNonJSONFallback(t *testing.T) {
	raw := []byte("plain text, not json")
	if got := NormalizeResponseText(raw); got != "plain text, not json" {
		t.Errorf("got %q", got)
	}
}

// Chat-completion shape wins over the generation decoders.
func TestNormalizePrecedence(t *testing.T) {
	raw := []byte(`{"choices":[{"message":{"content":"chat"}}],"generated_text":"gen"}`)
	if got := NormalizeResponseText(raw); got != "chat" {
		t.Errorf("got %q, want chat-completion content", got)
	}
}
