package service

import (
	"Fridgella/internal/forms"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// validateStruct прогоняет структуру через validator и собирает ValidationError
func validateStruct(v any) error {
	err := forms.Validator.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: messageFor(fe)})
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "person_name":
		return "must be 3-50 letters or spaces"
	case "strong_password":
		return "must be at least 8 characters and contain an upper-case letter, a digit and a symbol"
	case "item_status":
		return "must be one of fresh, expiring, expired"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "oneof":
		return "must be one of " + fe.Param()
	default:
		return fmt.Sprintf("is invalid (%s)", fe.Tag())
	}
}

// parseDate принимает YYYY-MM-DD или RFC3339, результат в UTC
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
