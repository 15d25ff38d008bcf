package shared

import (
	"net/url"
	"strings"

	"golang.org/x/text/cases"
)

// ListFilters are the in-memory filters applied to fetched collections.
type ListFilters struct {
	Search string
	Status string
}

// ParseListFilters reads the search term and status filter from the query.
func ParseListFilters(q url.Values) ListFilters {
	status := strings.ToLower(strings.TrimSpace(q.Get(StatusParam)))
	switch status {
	case StatusActive, StatusInactive:
	default:
		status = StatusAll
	}
	return ListFilters{Search: strings.TrimSpace(q.Get(SearchParam)), Status: status}
}

// AllowsActive reports whether a record with the given active flag passes Status.
func (f ListFilters) AllowsActive(active bool) bool {
	switch f.Status {
	case StatusActive:
		return active
	case StatusInactive:
		return !active
	default:
		return true
	}
}

// Matches reports whether term is a case-insensitive substring of any field.
// An empty term matches everything.
func Matches(term string, fields ...string) bool {
	term = strings.TrimSpace(term)
	if term == "" {
		return true
	}
	fold := cases.Fold()
	needle := fold.String(term)
	for _, field := range fields {
		if field == "" {
			continue
		}
		if strings.Contains(fold.String(field), needle) {
			return true
		}
	}
	return false
}

// Filter keeps the items whose search fields match term.
func Filter[T any](items []T, term string, fields func(T) []string) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if Matches(term, fields(item)...) {
			out = append(out, item)
		}
	}
	return out
}

// SafeReturn accepts only local absolute paths as redirect targets.
func SafeReturn(target, fallback string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.Contains(target, "\\") {
		return fallback
	}
	return target
}
