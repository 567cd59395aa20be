package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
	"venuebook/shared/failure"
)

var (
	messages = map[string]string{
		"required":    "{field} is required",
		"gte":         "{field} must be greater than or equal to {param}",
		"lte":         "{field} must be less than or equal to {param}",
		"oneof":       "{field} must be one of {param}",
		"max":         "{field} must be less than or equal to {param}",
		"min":         "{field} must be greater than or equal to {param}",
		"email":       "{field} must be a valid email address",
		"url":         "{field} must be a valid URL",
		"uuid":        "{field} must be a valid id",
		"isodate":     "{field} must be an ISO-8601 date (YYYY-MM-DD) or date-time",
		"mimetypes":   "{field} must be one of {param}",
		"maxfilesize": "{field} must not exceed {param} MB",
		"empty":       "{field} must be empty",
	}
)

func message(valErr val.FieldError) string {
	errStr := messages[valErr.Tag()]
	if errStr == "" {
		return valErr.Error()
	}

	errStr = strings.ReplaceAll(errStr, "{field}", valErr.Field())
	errStr = strings.ReplaceAll(errStr, "{param}", valErr.Param())

	return errStr
}

func fieldErrors(err error) []failure.FieldError {
	var valErrors val.ValidationErrors

	if !errors.As(err, &valErrors) {
		return []failure.FieldError{{Message: err.Error()}}
	}

	result := make([]failure.FieldError, 0, len(valErrors))
	for _, valErr := range valErrors {
		result = append(result, failure.FieldError{
			Field:   valErr.Field(),
			Message: message(valErr),
		})
	}

	return result
}
