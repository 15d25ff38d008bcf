package reports

// CourseRef is a course nested under a branch in the branch-courses payload.
type CourseRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BranchCourses is one branch together with the courses it offers.
type BranchCourses struct {
	BranchID   string      `json:"branch_id"`
	BranchName string      `json:"branch_name"`
	Courses    []CourseRef `json:"courses"`
}

// CourseOption is a selectable course tagged with the branch that offers it.
type CourseOption struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	BranchID string `json:"branch_id"`
}

// FlattenCourses lists every course of every branch in payload order. A course
// offered by two branches appears once per branch.
func FlattenCourses(branches []BranchCourses) []CourseOption {
	var out []CourseOption
	for _, b := range branches {
		for _, c := range b.Courses {
			out = append(out, CourseOption{ID: c.ID, Name: c.Name, BranchID: b.BranchID})
		}
	}
	return out
}

// BranchOptions returns the branch select choices.
func BranchOptions(branches []BranchCourses) []Option {
	opts := withAll("All branches")
	for _, b := range branches {
		opts = append(opts, Option{Value: b.BranchID, Label: b.BranchName})
	}
	return opts
}

// CoursesForBranch narrows all to the courses offered by branchID. An empty id
// or "all" returns the full list.
func CoursesForBranch(all []CourseOption, branchID string) []CourseOption {
	if branchID == "" || branchID == All {
		return all
	}
	out := make([]CourseOption, 0, len(all))
	for _, c := range all {
		if c.BranchID == branchID {
			out = append(out, c)
		}
	}
	return out
}

// CourseSelectOptions converts course options into select choices.
func CourseSelectOptions(courses []CourseOption) []Option {
	opts := withAll("All courses")
	seen := make(map[string]struct{}, len(courses))
	for _, c := range courses {
		if _, dup := seen[c.ID]; dup {
			continue
		}
		seen[c.ID] = struct{}{}
		opts = append(opts, Option{Value: c.ID, Label: c.Name})
	}
	return opts
}

// ApplyBranchSelection narrows the course choices to the selected branch and
// resets the course filter to "all" when the selected course is not offered
// there. The returned state is a copy; reset reports whether the course changed.
func ApplyBranchSelection(state FilterState, all []CourseOption) (FilterState, []CourseOption, bool) {
	next := state.Clone()
	narrowed := CoursesForBranch(all, next[KeyBranch])
	course := next[KeyCourse]
	if course == "" || course == All {
		return next, narrowed, false
	}
	for _, c := range narrowed {
		if c.ID == course {
			return next, narrowed, false
		}
	}
	next[KeyCourse] = All
	return next, narrowed, true
}
