package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	// Read the same tags gin binding uses, so service-level validation of
	// payloads that arrive outside a request (import files, seeds) agrees
	// with the HTTP layer
	validate.SetTagName("binding")
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validate checks a struct against its binding tags
func Validate(data interface{}) []ValidationError {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var errors []ValidationError
	for _, err := range err.(validator.ValidationErrors) {
		errors = append(errors, ValidationError{
			Field:   err.Field(),
			Message: fmt.Sprintf("field must satisfy %s constraint", err.Tag()),
		})
	}
	return errors
}

// ValidateIntRange bounds-checks a plain value outside struct context
func ValidateIntRange(value, min, max int) error {
	if value < min || value > max {
		return fmt.Errorf("value must be between %d and %d", min, max)
	}
	return nil
}
