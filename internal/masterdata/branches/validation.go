package branches

import (
	"github.com/go-playground/validator/v10"

	"github.com/kaizen-academy/kaizen-admin/internal/masterdata/shared"
)

func newValidator() *validator.Validate {
	v := shared.NewValidator()
	v.RegisterStructValidation(validateTimings, BranchForm{})
	return v
}

// validateTimings requires every opening window to close after it opens.
// HH:MM strings compare correctly as text once the format check has passed.
func validateTimings(sl validator.StructLevel) {
	form := sl.Current().Interface().(BranchForm)
	for _, t := range form.Timings {
		if len(t.Open) == 5 && len(t.Close) == 5 && t.Close <= t.Open {
			sl.ReportError(form.Timings, "timings", "Timings", "timing_order", "")
			return
		}
	}
}

func (s *Service) validate(form BranchForm) error {
	err := shared.Validate(s.validator, form)
	if fields, ok := shared.AsFieldErrors(err); ok {
		if _, bad := fields["timings"]; bad {
			fields["timings"] = "Each timing must close after it opens."
		}
	}
	return err
}
