package reports

import (
	"net/url"
	"strings"
)

// FilterState holds the selected value of every filter on a report page. It is
// rebuilt from the query string on each request.
type FilterState map[string]string

// DefaultState returns the initial state for fields: selects start at "all" and
// every other input is empty.
func DefaultState(fields []Field) FilterState {
	state := make(FilterState, len(fields))
	for _, f := range fields {
		if f.Kind == KindSelect {
			state[f.Key] = All
			continue
		}
		state[f.Key] = ""
	}
	return state
}

// ParseFilterState reads the values for fields from query. Unknown keys are
// ignored and static selects fall back to "all" when given a value they do not
// offer.
func ParseFilterState(fields []Field, query url.Values) FilterState {
	state := DefaultState(fields)
	for _, f := range fields {
		raw := strings.TrimSpace(query.Get(f.Key))
		if raw == "" {
			continue
		}
		if !f.Allows(raw) {
			continue
		}
		state[f.Key] = raw
	}
	return state
}

// Get returns the value for key, treating a missing select as "all".
func (s FilterState) Get(key string) string {
	return s[key]
}

// Selected reports whether key holds a constraining value.
func (s FilterState) Selected(key string) bool {
	v := s[key]
	return v != "" && v != All
}

// Clone copies the state.
func (s FilterState) Clone() FilterState {
	out := make(FilterState, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Query encodes the constraining values, suitable for links and exports.
func (s FilterState) Query() url.Values {
	q := url.Values{}
	for k, v := range s {
		if v == "" || v == All {
			continue
		}
		q.Set(k, v)
	}
	return q
}
