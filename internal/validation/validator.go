// Package validation validates request payloads with go-playground/validator
// and converts binding failures into field-level API errors.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/pageza/pantrymatch/backend/internal/apperror"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// GetValidator returns the singleton validator instance.
// Field names in errors are taken from json tags.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// ValidateStruct validates s and returns an *apperror.Error listing every invalid field
func ValidateStruct(s interface{}) error {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}
	return FromError(err)
}

// FromError converts JSON decoding and validator errors into a validation
// error. Other errors are reported as a validation error without fields.
func FromError(err error) *apperror.Error {
	var (
		validationErrs validator.ValidationErrors
		typeErr        *json.UnmarshalTypeError
		syntaxErr      *json.SyntaxError
	)

	switch {
	case errors.As(err, &validationErrs):
		fields := make([]apperror.FieldError, len(validationErrs))
		for i, fe := range validationErrs {
			fields[i] = apperror.FieldError{Field: fieldPath(fe), Message: translateError(fe)}
		}
		return apperror.Validation("Request validation failed", fields...)
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return apperror.Validation("Request validation failed", apperror.FieldError{
			Field:   field,
			Message: fmt.Sprintf("%s must be of type %s", field, describeType(typeErr.Type)),
		})
	case errors.As(err, &syntaxErr):
		return apperror.Validation("Malformed JSON body", apperror.FieldError{
			Field:   "body",
			Message: fmt.Sprintf("invalid JSON at offset %d", syntaxErr.Offset),
		})
	default:
		return apperror.Validation(err.Error())
	}
}

// fieldPath strips the top-level struct name from the namespace, so
// "CreateRecipeRequest.ingredients[0].quantity" becomes "ingredients[0].quantity".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func describeType(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return "list"
	case reflect.Map, reflect.Struct:
		return "object"
	case reflect.Bool:
		return "boolean"
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	default:
		return t.String()
	}
}

var errorMessageTemplates = map[string]string{
	"required": "%s is required",
	"uuid":     "%s must be a valid UUID",
	"url":      "%s must be a valid URL",
}

var errorMessageWithParam = map[string]string{
	"oneof": "%s must be one of: %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
	"gt":    "%s must be greater than %s",
	"min":   "%s must be at least %s",
	"max":   "%s must be at most %s",
}

func translateError(fe validator.FieldError) string {
	field := fe.Field()
	if template, ok := errorMessageTemplates[fe.Tag()]; ok {
		return fmt.Sprintf(template, field)
	}
	if template, ok := errorMessageWithParam[fe.Tag()]; ok {
		return fmt.Sprintf(template, field, fe.Param())
	}
	if fe.Tag() == "required_without" {
		return fmt.Sprintf("%s is required when %s is not set", field, fe.Param())
	}
	return fmt.Sprintf("%s failed validation: %s", field, fe.Tag())
}
