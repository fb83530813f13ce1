// Package validator
package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Validator interface {
	Validate(data any) map[string]string
}

type DefaultValidator struct {
	validate *validator.Validate
}

// NewValidator reports fields by their form (or json) tag name.
func NewValidator() Validator {
	v := validator.New()
	v.RegisterTagNameFunc(tagName)

	return &DefaultValidator{validate: v}
}

func (v *DefaultValidator) Validate(data any) map[string]string {
	err := v.validate.Struct(data)
	if err == nil {
		return map[string]string{}
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{
			"_error": "invalid payload",
		}
	}

	errors := make(map[string]string)

	for _, e := range validationErrors {
		errors[e.Field()] = v.messageFor(e)
	}

	return errors
}

func (v *DefaultValidator) messageFor(e validator.FieldError) string {
	messages := map[string]func(validator.FieldError) string{
		"required": func(e validator.FieldError) string {
			return fmt.Sprintf("missing required field: %s", e.Field())
		},
		"min": func(e validator.FieldError) string {
			return fmt.Sprintf("%s must be at least %s characters", e.Field(), e.Param())
		},
		"max": func(e validator.FieldError) string {
			return fmt.Sprintf("%s must be at most %s characters", e.Field(), e.Param())
		},
	}

	if msg, ok := messages[e.Tag()]; ok {
		return msg(e)
	}

	return fmt.Sprintf("%s is invalid", e.Field())
}

func tagName(f reflect.StructField) string {
	for _, key := range []string{"form", "json"} {
		tag := f.Tag.Get(key)
		if tag == "-" {
			return ""
		}
		if name := strings.Split(tag, ",")[0]; name != "" {
			return name
		}
	}
	return strings.ToLower(f.Name)
}
