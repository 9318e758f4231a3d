package service

import "strings"

// MatchesSearch reports whether any of the given fields contains the query,
// case-insensitively. An empty query matches everything, so callers can run
// every list through the same path.
func MatchesSearch(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
