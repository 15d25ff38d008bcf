package reports

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FieldKind tells the filter form which input to render.
type FieldKind string

const (
	KindText   FieldKind = "text"
	KindSelect FieldKind = "select"
	KindDate   FieldKind = "date"
	KindNumber FieldKind = "number"
)

// Filter keys shared across categories.
const (
	KeyQuery         = "q"
	KeyBranch        = "branch_id"
	KeyCourse        = "course_id"
	KeyStatus        = "status"
	KeyDateRange     = "date_range"
	KeyStartDate     = "start_date"
	KeyEndDate       = "end_date"
	KeyMinAmount     = "min_amount"
	KeyMaxAmount     = "max_amount"
	KeyPaymentMethod = "payment_method"
	KeyDifficulty    = "difficulty"
	KeyExperience    = "experience"
)

// All is the select value that disables a filter.
const All = "all"

// Option is one choice of a select field.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Field describes one filter input.
type Field struct {
	Key         string
	Label       string
	Kind        FieldKind
	Options     []Option
	Placeholder string
	// Dynamic options are supplied per request (branches and courses).
	Dynamic bool
}

// Allows reports whether v is a valid value for a static select.
func (f Field) Allows(v string) bool {
	if f.Kind != KindSelect || f.Dynamic || v == All {
		return true
	}
	for _, o := range f.Options {
		if o.Value == v {
			return true
		}
	}
	return false
}

func withAll(label string, opts ...Option) []Option {
	return append([]Option{{Value: All, Label: label}}, opts...)
}

func queryField(placeholder string) Field {
	return Field{Key: KeyQuery, Label: "Search", Kind: KindText, Placeholder: placeholder}
}

func branchField() Field {
	return Field{Key: KeyBranch, Label: "Branch", Kind: KindSelect, Dynamic: true}
}

func courseField() Field {
	return Field{Key: KeyCourse, Label: "Course", Kind: KindSelect, Dynamic: true}
}

func statusField(values ...string) Field {
	opts := make([]Option, 0, len(values))
	for _, v := range values {
		opts = append(opts, Option{Value: v, Label: humanize(v)})
	}
	return Field{Key: KeyStatus, Label: "Status", Kind: KindSelect, Options: withAll("All statuses", opts...)}
}

func dateFields() []Field {
	return []Field{
		{Key: KeyDateRange, Label: "Date range", Kind: KindSelect, Options: DateRangeOptions()},
		{Key: KeyStartDate, Label: "From", Kind: KindDate},
		{Key: KeyEndDate, Label: "To", Kind: KindDate},
	}
}

func amountFields(label string) []Field {
	return []Field{
		{Key: KeyMinAmount, Label: "Min " + label, Kind: KindNumber, Placeholder: "0"},
		{Key: KeyMaxAmount, Label: "Max " + label, Kind: KindNumber},
	}
}

// humanize turns enum values such as bank_transfer into "Bank Transfer".
func humanize(s string) string {
	return cases.Title(language.English).String(strings.NewReplacer("-", " ", "_", " ").Replace(s))
}
