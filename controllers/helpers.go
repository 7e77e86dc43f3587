package controllers

import (
	"strings"
)

// isDuplicateKeyError reports whether err is a unique-constraint violation.
// String matching keeps this portable across PostgreSQL and the sqlite
// driver used in tests.
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique")
}

// splitNames parses a comma-separated name list, trimming whitespace and
// dropping empty segments.
func splitNames(names string) []string {
	parts := strings.Split(names, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
