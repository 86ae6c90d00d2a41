package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// The upstream payload is not contractually guaranteed: depending on the
// route it may be a chat-completion object, a raw generation list, or a
// bare generation object. Each known shape gets its own decoder; anything
// else falls back to the stringified body. Precedence is fixed:
// chat-completion > generation list > generation object > raw string.

// NormalizeResponseText reduces a raw response body to a single text string.
func NormalizeResponseText(raw []byte) string {
	if s, ok := decodeChatCompletion(raw); ok {
		return s
	}
	if s, ok := decodeGenerationList(raw); ok {
		return s
	}
	if s, ok := decodeGenerationObject(raw); ok {
		return s
	}
	return string(raw)
}

// decodeChatCompletion handles {"choices": [{"message": {"content": ...}}]}.
// Content may be a plain string or a list of typed parts whose text is joined.
func decodeChatCompletion(raw []byte) (string, bool) {
	var cc struct {
		Choices []struct {
			Message struct {
				Content json.RawMessage `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil || len(cc.Choices) == 0 {
		return "", false
	}
	content := cc.Choices[0].Message.Content

	var s string
	if err := json.Unmarshal(content, &s); err == nil {
		return s, true
	}

	var parts []any
	if err := json.Unmarshal(content, &parts); err != nil {
		return "", false
	}
	joined := make([]string, 0, len(parts))
	for _, p := range parts {
		if m, ok := p.(map[string]any); ok {
			text, _ := m["text"].(string)
			joined = append(joined, text)
		} else {
			joined = append(joined, fmt.Sprint(p))
		}
	}
	return strings.Join(joined, " "), true
}

// decodeGenerationList handles [{"generated_text": "..."}].
func decodeGenerationList(raw []byte) (string, bool) {
	var list []map[string]any
	if err := json.Unmarshal(raw, &list); err != nil || len(list) == 0 {
		return "", false
	}
	text, _ := list[0]["generated_text"].(string)
	return text, true
}

// decodeGenerationObject handles {"generated_text": "..."}; any other JSON
// object is reduced to its serialized form.
func decodeGenerationObject(raw []byte) (string, bool) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return "", false
	}
	if text, ok := m["generated_text"].(string); ok {
		return text, true
	}
	return string(raw), true
}
