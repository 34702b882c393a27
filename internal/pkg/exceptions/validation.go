package exceptions

import (
	"clinicbook-service/internal/pkg/constvars"
	"strings"

	"github.com/go-playground/validator/v10"
)

func FormatFirstValidationError(err error) string {
	if err == nil {
		return constvars.ErrClientCannotProcessRequest
	}

	if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
		firstErr := validationErrors[0]
		return formatFieldError(firstErr)
	}
	return constvars.ErrClientCannotProcessRequest
}

// FormatValidationErrorMap converts validator output into a field-keyed
// error map, the shape the intake form reports to clients.
func FormatValidationErrorMap(err error) map[string]string {
	fieldErrors := make(map[string]string)
	if err == nil {
		return fieldErrors
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		fieldErrors["request"] = constvars.ErrClientCannotProcessRequest
		return fieldErrors
	}
	for _, fieldErr := range validationErrors {
		fieldName := strings.ToLower(fieldErr.Field())
		if _, exists := fieldErrors[fieldName]; !exists {
			fieldErrors[fieldName] = formatFieldError(fieldErr)
		}
	}
	return fieldErrors
}

func formatFieldError(fieldErr validator.FieldError) string {
	fieldName := strings.ToLower(fieldErr.Field())
	tag := fieldErr.Tag()
	customMessage, ok := constvars.CustomValidationErrorMessages[tag]
	if !ok {
		customMessage = "is invalid"
	}
	if constvars.TagsWithParams[tag] {
		if tag == "oneof" {
			customMessage = strings.Replace(customMessage, "%s", strings.Join(strings.Fields(fieldErr.Param()), ", "), 1)
		} else {
			customMessage = strings.Replace(customMessage, "%s", fieldErr.Param(), 1)
		}
	}
	return fieldName + " " + customMessage
}
