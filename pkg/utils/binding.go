package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// RespondBindingError converts a gin binding failure into the 422 validation
// envelope, one message list per offending field.
func RespondBindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		RespondValidationError(c, NewValidationError("body", "The request body is invalid."))
		return
	}

	fields := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		field := snakeCase(fe.Field())
		fields[field] = append(fields[field], bindingMessage(field, fe))
	}
	RespondValidationError(c, &ValidationError{Fields: fields})
}

func bindingMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", field)
	case "min":
		return fmt.Sprintf("The %s must be at least %s characters.", field, fe.Param())
	case "max":
		return fmt.Sprintf("The %s may not be greater than %s characters.", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", field)
	case "uuid":
		return fmt.Sprintf("The %s must be a valid UUID.", field)
	case "eqfield":
		return fmt.Sprintf("The %s confirmation does not match.", field)
	case "hexcolor":
		return fmt.Sprintf("The %s must be a valid hex color.", field)
	default:
		return fmt.Sprintf("The %s field is invalid.", field)
	}
}

func snakeCase(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && !(runes[i-1] >= 'A' && runes[i-1] <= 'Z') {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
