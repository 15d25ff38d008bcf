package shared

const (
	// StatusAll disables the active/inactive filter.
	StatusAll = "all"
	// StatusActive keeps active records only.
	StatusActive = "active"
	// StatusInactive keeps inactive records only.
	StatusInactive = "inactive"

	// SearchParam is the query parameter carrying the search term.
	SearchParam = "q"
	// StatusParam is the query parameter carrying the status filter.
	StatusParam = "status"
)
