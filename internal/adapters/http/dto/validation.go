package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var (
	// ErrValidation wraps request values that bound but broke a rule.
	ErrValidation = errors.New("validation failed")

	// ErrBinding wraps bodies or query strings that could not be decoded.
	ErrBinding = errors.New("binding failed")
)

var (
	sharedValidator *validator.Validate
	initValidator   sync.Once
)

// Validator returns the process-wide validator. Errors name fields by their
// json tag, or by their form tag for query parameters.
func Validator() *validator.Validate {
	initValidator.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(wireName)

		if err := v.RegisterValidation("notempty", notBlank); err != nil {
			panic(fmt.Sprintf("registering notempty: %v", err))
		}

		sharedValidator = v
	})

	return sharedValidator
}

func wireName(f reflect.StructField) string {
	for _, key := range []string{"json", "form"} {
		name, _, _ := strings.Cut(f.Tag.Get(key), ",")

		switch name {
		case "":
			continue
		case "-":
			return ""
		default:
			return name
		}
	}

	return f.Name
}

// notBlank fails strings holding only whitespace.
func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// Validate checks v against its validate tags.
func Validate(v any) error {
	if err := Validator().Struct(v); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return nil
}

// BindAndValidate decodes the JSON body into v and validates it.
func BindAndValidate(c *gin.Context, v any) error {
	return bindThenValidate(c.ShouldBindJSON, v)
}

// BindQueryAndValidate decodes the query string into v and validates it.
func BindQueryAndValidate(c *gin.Context, v any) error {
	return bindThenValidate(c.ShouldBindQuery, v)
}

func bindThenValidate(bind func(any) error, v any) error {
	if err := bind(v); err != nil {
		return fmt.Errorf("%w: %w", ErrBinding, err)
	}

	return Validate(v)
}

// IsValidationError reports whether err carries validator field errors.
func IsValidationError(err error) bool {
	var fieldErrs validator.ValidationErrors
	return errors.As(err, &fieldErrs)
}

// ValidationErrors flattens validator output into field name to message.
// Errors of any other kind yield an empty map.
func ValidationErrors(err error) map[string]string {
	out := map[string]string{}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return out
	}

	for _, fe := range fieldErrs {
		out[fe.Field()] = describe(fe)
	}

	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "notempty":
		return "must not be empty"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "url":
		return "must be a valid URL"
	case "min":
		return bound("at least", fe)
	case "max":
		return bound("at most", fe)
	default:
		return "failed validation: " + fe.Tag()
	}
}

// bound phrases min and max, counting characters for strings.
func bound(relation string, fe validator.FieldError) string {
	msg := "must be " + relation + " " + fe.Param()
	if fe.Kind() == reflect.String {
		msg += " characters"
	}

	return msg
}
