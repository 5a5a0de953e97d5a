package llm

import "strings"

// CleanJSONBlock removes markdown code block wrappers from JSON responses.
// Models still wrap JSON in ```json fences occasionally even with a JSON
// response MIME type set.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Drop a language identifier on the fence line, e.g. "json".
		if idx := strings.Index(text, "\n"); idx >= 0 && !strings.ContainsAny(text[:idx], " {[") {
			text = text[idx+1:]
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	return strings.TrimSpace(text)
}
