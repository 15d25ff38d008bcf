package reports

import (
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/kaizen-academy/kaizen-admin/internal/backend"
)

// SourceConfig chooses live or fixture data per category.
type SourceConfig struct {
	// Default applies to categories not listed in FixtureCategories.
	Default           string
	FixtureCategories []Category
}

// SourceFor returns the source name used by category.
func (c SourceConfig) SourceFor(category Category) string {
	if c.Default == SourceFixture || slices.Contains(c.FixtureCategories, category) {
		return SourceFixture
	}
	return SourceLive
}

// ParseCategories converts configured names, skipping unknown ones.
func ParseCategories(names []string) []Category {
	out := make([]Category, 0, len(names))
	for _, n := range names {
		if c, ok := ParseCategory(n); ok {
			out = append(out, c)
		}
	}
	return out
}

// Panels holds one searcher per category.
type Panels map[Category]Searcher

// NewPanels builds the six report panels with sources picked by cfg.
func NewPanels(api backend.API, cfg SourceConfig, now func() time.Time) Panels {
	return Panels{
		CategoryStudent:   NewPanel(CategoryStudent, studentFields(), studentColumns(), pick(api, cfg, CategoryStudent, fixtureStudentRows, now), matchRow[StudentRow]),
		CategoryMaster:    NewPanel(CategoryMaster, masterFields(), masterColumns(), pick(api, cfg, CategoryMaster, fixtureMasterRows, now), matchRow[MasterRow]),
		CategoryCourse:    NewPanel(CategoryCourse, courseFields(), courseColumns(), pick(api, cfg, CategoryCourse, fixtureCourseRows, now), matchRow[CourseRow]),
		CategoryCoach:     NewPanel(CategoryCoach, coachFields(), coachColumns(), pick(api, cfg, CategoryCoach, fixtureCoachRows, now), matchRow[CoachRow]),
		CategoryBranch:    NewPanel(CategoryBranch, branchFields(), branchColumns(), pick(api, cfg, CategoryBranch, fixtureBranchRows, now), matchRow[BranchRow]),
		CategoryFinancial: NewPanel(CategoryFinancial, financialFields(), financialColumns(), pick(api, cfg, CategoryFinancial, fixtureFinancialRows, now), matchRow[FinancialRow]),
	}
}

func pick[T any](api backend.API, cfg SourceConfig, category Category, fixture func(time.Time) []T, now func() time.Time) Source[T] {
	if cfg.SourceFor(category) == SourceFixture {
		return NewFixtureSource(fixture, now)
	}
	return NewLiveSource[T](api, category)
}

func studentFields() []Field {
	return append([]Field{
		queryField("Name, email, phone or id"),
		branchField(),
		courseField(),
		statusField("active", "inactive"),
	}, dateFields()...)
}

func masterFields() []Field {
	fields := append([]Field{
		queryField("Student, course or branch"),
		branchField(),
		courseField(),
		statusField("active", "inactive", "completed"),
	}, dateFields()...)
	return append(fields, amountFields("fees paid")...)
}

func courseFields() []Field {
	fields := append([]Field{
		queryField("Course name or id"),
		branchField(),
		{Key: KeyDifficulty, Label: "Difficulty", Kind: KindSelect, Options: withAll("All levels",
			Option{Value: "beginner", Label: "Beginner"},
			Option{Value: "intermediate", Label: "Intermediate"},
			Option{Value: "advanced", Label: "Advanced"},
		)},
		statusField("active", "inactive"),
	}, dateFields()...)
	return append(fields, amountFields("fee")...)
}

func coachFields() []Field {
	experience := withAll("Any experience")
	for _, e := range []string{"0-1 years", "1-3 years", "3-5 years", "5-10 years", "10+ years"} {
		experience = append(experience, Option{Value: e, Label: e})
	}
	return append([]Field{
		queryField("Name, email or id"),
		branchField(),
		courseField(),
		{Key: KeyExperience, Label: "Experience", Kind: KindSelect, Options: experience},
		statusField("active", "inactive"),
	}, dateFields()...)
}

func branchFields() []Field {
	fields := append([]Field{
		queryField("Branch, city or id"),
		branchField(),
		statusField("active", "inactive"),
	}, dateFields()...)
	return append(fields, amountFields("revenue")...)
}

func financialFields() []Field {
	methods := withAll("All methods")
	for _, m := range paymentMethods {
		methods = append(methods, Option{Value: m, Label: humanize(m)})
	}
	fields := append([]Field{
		queryField("Transaction, student or course"),
		branchField(),
		courseField(),
		{Key: KeyPaymentMethod, Label: "Payment method", Kind: KindSelect, Options: methods},
		statusField("paid", "pending", "failed", "refunded"),
	}, dateFields()...)
	return append(fields, amountFields("amount")...)
}

func studentColumns() []Column[StudentRow] {
	return []Column[StudentRow]{
		{"ID", func(r StudentRow) string { return r.StudentID }},
		{"Name", func(r StudentRow) string { return r.Name }},
		{"Email", func(r StudentRow) string { return r.Email }},
		{"Phone", func(r StudentRow) string { return r.Phone }},
		{"Branch", func(r StudentRow) string { return r.BranchName }},
		{"Course", func(r StudentRow) string { return r.CourseName }},
		{"Status", func(r StudentRow) string { return humanize(r.Status) }},
		{"Enrolled", func(r StudentRow) string { return r.EnrolledOn }},
	}
}

func masterColumns() []Column[MasterRow] {
	return []Column[MasterRow]{
		{"Student", func(r MasterRow) string { return r.StudentName }},
		{"Branch", func(r MasterRow) string { return r.BranchName }},
		{"Course", func(r MasterRow) string { return r.CourseName }},
		{"Fees paid", func(r MasterRow) string { return money(r.FeesPaid) }},
		{"Fees due", func(r MasterRow) string { return money(r.FeesDue) }},
		{"Status", func(r MasterRow) string { return humanize(r.Status) }},
		{"Enrolled", func(r MasterRow) string { return r.EnrolledOn }},
	}
}

func courseColumns() []Column[CourseRow] {
	return []Column[CourseRow]{
		{"Course", func(r CourseRow) string { return r.CourseName }},
		{"Difficulty", func(r CourseRow) string { return humanize(r.Difficulty) }},
		{"Branch", func(r CourseRow) string { return r.BranchName }},
		{"Occupancy", func(r CourseRow) string { return fmt.Sprintf("%d/%d", r.Enrolled, r.Capacity) }},
		{"Fee", func(r CourseRow) string { return money(r.Fee) }},
		{"Status", func(r CourseRow) string { return humanize(r.Status) }},
		{"Started", func(r CourseRow) string { return r.StartedOn }},
	}
}

func coachColumns() []Column[CoachRow] {
	return []Column[CoachRow]{
		{"ID", func(r CoachRow) string { return r.CoachID }},
		{"Coach", func(r CoachRow) string { return r.CoachName }},
		{"Experience", func(r CoachRow) string { return r.Experience }},
		{"Branch", func(r CoachRow) string { return r.BranchName }},
		{"Course", func(r CoachRow) string { return r.CourseName }},
		{"Students", func(r CoachRow) string { return strconv.Itoa(r.Students) }},
		{"Status", func(r CoachRow) string { return humanize(r.Status) }},
		{"Joined", func(r CoachRow) string { return r.JoinedOn }},
	}
}

func branchColumns() []Column[BranchRow] {
	return []Column[BranchRow]{
		{"Branch", func(r BranchRow) string { return r.BranchName }},
		{"City", func(r BranchRow) string { return r.City }},
		{"Students", func(r BranchRow) string { return strconv.Itoa(r.Students) }},
		{"Coaches", func(r BranchRow) string { return strconv.Itoa(r.Coaches) }},
		{"Revenue", func(r BranchRow) string { return money(r.Revenue) }},
		{"Status", func(r BranchRow) string { return humanize(r.Status) }},
		{"Opened", func(r BranchRow) string { return r.OpenedOn }},
	}
}

func financialColumns() []Column[FinancialRow] {
	return []Column[FinancialRow]{
		{"Transaction", func(r FinancialRow) string { return r.TransactionID }},
		{"Student", func(r FinancialRow) string { return r.StudentName }},
		{"Branch", func(r FinancialRow) string { return r.BranchName }},
		{"Course", func(r FinancialRow) string { return r.CourseName }},
		{"Amount", func(r FinancialRow) string { return money(r.Amount) }},
		{"Method", func(r FinancialRow) string { return humanize(r.PaymentMethod) }},
		{"Status", func(r FinancialRow) string { return humanize(r.Status) }},
		{"Date", func(r FinancialRow) string { return r.PaidOn }},
	}
}
