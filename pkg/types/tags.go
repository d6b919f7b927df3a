package types

import (
	"encoding/json"
	"strings"
)

// ParseCustomerTags turns the free-text tag column into a clean slice.
// The column historically held either a JSON array or a comma list; JSON
// wins when it parses, and any failure falls back silently to the
// comma-split result.
func ParseCustomerTags(raw string) []string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}

	var parsed []string
	if err := json.Unmarshal([]byte(trimmed), &parsed); err == nil {
		return cleanTags(parsed)
	}

	return cleanTags(strings.Split(trimmed, ","))
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if t := strings.TrimSpace(tag); t != "" {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
