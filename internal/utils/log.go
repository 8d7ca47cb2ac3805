package utils

import "strings"

// TruncateForLog flattens s to a single line and keeps at most limit runes,
// marking the cut with "...". Prompts and model replies go through it before
// they reach a log field.
func TruncateForLog(s string, limit int) string {
	if limit <= 0 {
		return ""
	}

	flat := strings.Join(strings.Fields(s), " ")
	runes := []rune(flat)
	if len(runes) <= limit {
		return flat
	}
	return string(runes[:limit]) + "..."
}
