package llm

import (
	"bytes"
	"encoding/json"
	"strings"
)

// ExtractJSON returns the first JSON object or array in model output.
// Markdown code fences around the value are ignored.
func ExtractJSON(text string) (json.RawMessage, error) {
	text = stripFence(strings.TrimSpace(text))

	for i := 0; i < len(text); i++ {
		if text[i] != '{' && text[i] != '[' {
			continue
		}
		var raw json.RawMessage
		dec := json.NewDecoder(strings.NewReader(text[i:]))
		if err := dec.Decode(&raw); err == nil {
			return raw, nil
		}
	}
	return nil, ErrNoJSON
}

// DecodeJSON extracts the first JSON value from text into v
func DecodeJSON(text string, v interface{}) error {
	raw, err := ExtractJSON(text)
	if err != nil {
		return err
	}
	return json.NewDecoder(bytes.NewReader(raw)).Decode(v)
}

func stripFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	body := strings.TrimPrefix(text, "```json")
	body = strings.TrimPrefix(body, "```")
	if end := strings.Index(body, "```"); end >= 0 {
		body = body[:end]
	}
	return strings.TrimSpace(body)
}
