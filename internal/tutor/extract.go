package tutor

import (
	"encoding/json"
	"strings"
)

const fenceOpen = "```json"
const fence = "```"

// ExtractJSON locates the JSON payload in a model reply. A ```json fence
// wins; the payload is the text between the marker and the next closing
// fence. Without a fence the payload runs from the first '[' to the last
// ']' inclusive. ok is false when neither strategy finds anything.
func ExtractJSON(text string) (string, bool) {
	if start := strings.Index(text, fenceOpen); start >= 0 {
		rest := text[start+len(fenceOpen):]
		if end := strings.Index(rest, fence); end >= 0 {
			payload := strings.TrimSpace(rest[:end])
			return payload, payload != ""
		}
	}

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end < start {
		return "", false
	}
	return text[start : end+1], true
}

// DecodeJSON extracts and parses the payload of a model reply. A payload
// that fails to parse is treated the same as no payload.
func DecodeJSON[T any](text string) (T, bool) {
	var v T
	payload, ok := ExtractJSON(text)
	if !ok {
		return v, false
	}
	if err := json.Unmarshal([]byte(payload), &v); err != nil {
		var zero T
		return zero, false
	}
	return v, true
}
