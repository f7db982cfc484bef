package handler

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// Global validator instance
var validate *Validator

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	// Register custom validation for player names
	_ = v.RegisterValidation("playername", validatePlayerName)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError formats validation errors into a user-friendly map
// This prevents leaking internal struct names and provides cleaner error messages
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := toSnakeCase(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "playername":
			errs[field] = "Must not contain control characters"
		case "max":
			if e.Kind().String() == "string" {
				errs[field] = fmt.Sprintf("Must be at most %s characters", e.Param())
			} else {
				errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
			}
		case "min":
			if e.Kind().String() == "string" {
				errs[field] = fmt.Sprintf("Must be at least %s characters", e.Param())
			} else {
				errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
			}
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

// toSnakeCase turns a Go field name like SlotID into slot_id
func toSnakeCase(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && unicode.IsLower(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1]) && i > 0 && unicode.IsUpper(runes[i-1])
			if prevLower || nextLower {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// validatePlayerName rejects blank names and control characters
func validatePlayerName(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	if strings.TrimSpace(name) == "" {
		return false
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}
