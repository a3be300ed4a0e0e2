package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var messages = map[string]string{
	"required": "{field} is required",
	"gte":      "{field} must be greater than or equal to {param}",
	"lte":      "{field} must be less than or equal to {param}",
	"gt":       "{field} must be greater than {param}",
	"oneof":    "{field} must be one of {param}",
	"max":      "{field} must be at most {param}",
	"min":      "{field} must be at least {param}",
	"len":      "{field} must have length {param}",
	"email":    "{field} must be a valid email address",
	"rfc3339":  "{field} must be an RFC3339 timestamp",
	"gtfield":  "{field} must be after {param}",
	"url":      "{field} must be a valid URL",
	"numeric":  "{field} must contain digits only",
	"dive":     "{field} contains an invalid item",
}

// message renders every field error, in struct order, separated by "; ".
func message(err error) string {
	var fieldErrors val.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err.Error()
	}

	parts := make([]string, 0, len(fieldErrors))

	for _, fieldErr := range fieldErrors {
		tmpl, ok := messages[fieldErr.Tag()]
		if !ok {
			parts = append(parts, fieldErr.Field()+" is invalid")

			continue
		}

		parts = append(parts, strings.NewReplacer("{field}", fieldErr.Field(), "{param}", fieldErr.Param()).Replace(tmpl))
	}

	return strings.Join(parts, "; ")
}
