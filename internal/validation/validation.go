// Package validation holds the field checks shared by the record services.
// Every helper returns nil or an *apperr.ValidationError naming the field.
package validation

import (
	"math"
	"strings"
	"time"

	"github.com/founderdash/dashboard/internal/apperr"
	"github.com/go-playground/validator/v10"
)

// DateLayout is the calendar-date format used for expense dates and due dates.
const DateLayout = "2006-01-02"

var validate = validator.New()

// Required rejects empty or whitespace-only values.
func Required(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return apperr.Invalid(field, "is required")
	}
	return nil
}

// Email accepts an empty value (optional field) or a well-formed address.
func Email(field, v string) error {
	if v == "" {
		return nil
	}
	if err := validate.Var(v, "email"); err != nil {
		return apperr.Invalid(field, "must be a valid email address")
	}
	return nil
}

// OneOf rejects values outside the allowed set.
func OneOf[T ~string](field string, v T, allowed []T) error {
	for _, a := range allowed {
		if v == a {
			return nil
		}
	}
	opts := make([]string, len(allowed))
	for i, a := range allowed {
		opts[i] = string(a)
	}
	return apperr.Invalid(field, "must be one of: %s", strings.Join(opts, ", "))
}

// NonNegative rejects negative, NaN and infinite amounts.
func NonNegative(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return apperr.Invalid(field, "must be a number")
	}
	if v < 0 {
		return apperr.Invalid(field, "must be >= 0")
	}
	return nil
}

// Range rejects integers outside [min, max].
func Range(field string, v, min, max int) error {
	if v < min || v > max {
		return apperr.Invalid(field, "must be between %d and %d", min, max)
	}
	return nil
}

// Date parses a YYYY-MM-DD value.
func Date(field, v string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, apperr.Invalid(field, "must be a date (YYYY-MM-DD)")
	}
	return t, nil
}

// First returns the first non-nil error.
func First(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
