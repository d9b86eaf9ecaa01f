package helpers

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// FormatValidationError formats a single field error into a client-facing
// message.
func FormatValidationError(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required", field)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("The %s field must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("The %s field must be at least %s", field, fe.Param())
	case "max":
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("The %s field must not exceed %s characters", field, fe.Param())
		case reflect.Slice:
			return fmt.Sprintf("The %s field must not contain more than %s items", field, fe.Param())
		default:
			return fmt.Sprintf("The %s field must not exceed %s", field, fe.Param())
		}
	case "oneof":
		return fmt.Sprintf("The %s field must be one of: %s", field, fe.Param())
	case "url":
		return fmt.Sprintf("The %s field must be a valid URL", field)
	default:
		return fmt.Sprintf("The %s field is invalid", field)
	}
}

// ValidationMessages flattens a validation error into one message per
// failing field. A non-validation error yields a single generic message.
func ValidationMessages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{"Invalid request"}
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		messages = append(messages, FormatValidationError(fe))
	}
	return messages
}
