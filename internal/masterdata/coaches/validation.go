package coaches

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/kaizen-academy/kaizen-admin/internal/masterdata/shared"
)

const passwordSpecials = "@$!%*?&"

// ValidPassword reports whether s has at least 8 characters including an
// uppercase letter, a lowercase letter, a digit and one of @$!%*?&.
func ValidPassword(s string) bool {
	if utf8.RuneCountInString(s) < 8 {
		return false
	}
	var upper, lower, digit, special bool
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	return upper && lower && digit && special
}

func newValidator() *validator.Validate {
	v := shared.NewValidator()
	_ = v.RegisterValidation("coachpassword", func(fl validator.FieldLevel) bool {
		return ValidPassword(fl.Field().String())
	})
	_ = v.RegisterValidation("experience", func(fl validator.FieldLevel) bool {
		return slices.Contains(Experiences, fl.Field().String())
	})
	return v
}

func (s *Service) validate(form CoachForm, creating bool) error {
	err := shared.Validate(s.validator, form)
	fields, _ := shared.AsFieldErrors(err)
	if err != nil && fields == nil {
		return err
	}
	if creating && form.Password == "" {
		if fields == nil {
			fields = shared.FieldErrors{}
		}
		fields["password"] = "This field is required."
	}
	if msg, ok := fields["experience"]; ok && msg == "Invalid value." {
		fields["experience"] = "Choose an experience range."
	}
	if len(fields) > 0 {
		return &shared.ValidationError{Fields: fields}
	}
	return nil
}
