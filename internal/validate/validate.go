// Package validate checks request payloads against their `validate` struct tags
// and reports failures as field-level issues.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/msomdec/inkpost/internal/domain"
)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	val.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return val
}

// Struct validates s and returns a *domain.ValidationError listing every
// failing field, or nil.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}

	issues := make([]domain.Issue, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, domain.Issue{
			Code:    fe.Tag(),
			Path:    fieldPath(fe),
			Message: message(fe),
		})
	}
	return &domain.ValidationError{Issues: issues}
}

// fieldPath drops the top-level struct name from the namespace,
// e.g. "registerInput.email" -> ["email"].
func fieldPath(fe validator.FieldError) []string {
	parts := strings.Split(fe.Namespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	return parts
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Required"
	case "email":
		return "Invalid email"
	case "min":
		return fmt.Sprintf("Must contain at least %s character(s)", fe.Param())
	case "max":
		return fmt.Sprintf("Must contain at most %s character(s)", fe.Param())
	default:
		return fmt.Sprintf("Failed %q check", fe.Tag())
	}
}

// Trim trims surrounding whitespace in place. Nil pointers are left alone.
func Trim(fields ...*string) {
	for _, f := range fields {
		if f != nil {
			*f = strings.TrimSpace(*f)
		}
	}
}
