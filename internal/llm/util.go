// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import "strings"

// StripFences removes markdown code block wrappers from a generated document.
// Models often wrap LaTeX output in ```latex ... ``` blocks even when
// instructed not to.
func StripFences(text string) string {
	text = strings.TrimSpace(text)

	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	// Skip a language identifier on the first line (latex, tex, text).
	if idx := strings.Index(text, "\n"); idx >= 0 {
		firstLine := strings.TrimSpace(text[:idx])
		if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "\\") {
			text = text[idx+1:]
		}
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
