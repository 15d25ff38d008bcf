// Package reports implements the category report browser: per-category filter
// forms, the branch to course cascade, date range translation and the search
// panels backed by live or fixture sources.
package reports

import "strings"

// Category selects a report family.
type Category string

const (
	CategoryStudent   Category = "student"
	CategoryMaster    Category = "master"
	CategoryCourse    Category = "course"
	CategoryCoach     Category = "coach"
	CategoryBranch    Category = "branch"
	CategoryFinancial Category = "financial"
)

// Categories lists every category in menu order.
var Categories = []Category{
	CategoryStudent,
	CategoryMaster,
	CategoryCourse,
	CategoryCoach,
	CategoryBranch,
	CategoryFinancial,
}

// ParseCategory resolves a path segment to a Category.
func ParseCategory(raw string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range Categories {
		if c == known {
			return c, true
		}
	}
	return "", false
}

// Label is the human name of the category.
func (c Category) Label() string {
	switch c {
	case CategoryStudent:
		return "Student"
	case CategoryMaster:
		return "Master"
	case CategoryCourse:
		return "Course"
	case CategoryCoach:
		return "Coach"
	case CategoryBranch:
		return "Branch"
	case CategoryFinancial:
		return "Financial"
	}
	return string(c)
}

// Description is shown on the report index.
func (c Category) Description() string {
	switch c {
	case CategoryStudent:
		return "Enrolled students by branch, course and status."
	case CategoryMaster:
		return "Every enrollment with fees paid and outstanding."
	case CategoryCourse:
		return "Course occupancy and pricing per branch."
	case CategoryCoach:
		return "Coach assignments and student load."
	case CategoryBranch:
		return "Branch headcount and revenue."
	case CategoryFinancial:
		return "Fee transactions by method and status."
	}
	return ""
}
