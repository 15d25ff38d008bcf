package shared

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NewValidator returns a validator that reports fields by their form name.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Validate runs v over form and converts failures into a ValidationError.
func Validate(v *validator.Validate, form any) error {
	err := v.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		// holidays[2] reports under holidays
		name, _, _ := strings.Cut(fe.Field(), "[")
		if _, seen := fields[name]; seen {
			continue
		}
		fields[name] = describe(fe)
	}
	return &ValidationError{Fields: fields}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if", "required_without":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "numeric":
		return "Use digits only."
	case "len":
		return fmt.Sprintf("Must be exactly %s characters.", fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be at least %s characters.", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s.", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be at most %s characters.", fe.Param())
		}
		return fmt.Sprintf("Must be at most %s.", fe.Param())
	case "gte":
		return fmt.Sprintf("Must be %s or more.", fe.Param())
	case "lte":
		return fmt.Sprintf("Must be %s or less.", fe.Param())
	case "gtefield":
		return "Must not be lower than the minimum."
	case "oneof":
		return "Choose one of: " + strings.ReplaceAll(fe.Param(), " ", ", ") + "."
	case "url":
		return "Enter a valid URL."
	case "datetime":
		return "Use the format " + fe.Param() + "."
	case "dive":
		return "Contains an invalid entry."
	case "coachpassword":
		return "Use at least 8 characters with an uppercase letter, a lowercase letter, a digit and one of @$!%*?&."
	}
	return "Invalid value."
}
