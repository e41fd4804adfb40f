package validation

import (
	"fmt"
	"reflect"
	"strings"

	internal_errors "github.com/aribt/hackathon-cms/shared/errors"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct validates struct payloads (or pointers to them) against their
// `validate` tags. Maps, slices and other values pass untouched.
func Struct(v any) error {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}

	err := validate.Struct(rv.Interface())
	if err == nil {
		return nil
	}
	if fieldErrs, ok := err.(validator.ValidationErrors); ok {
		return fmt.Errorf("%w: %s", internal_errors.ErrInvalidPayload, describe(fieldErrs))
	}
	return fmt.Errorf("%w: %v", internal_errors.ErrInvalidPayload, err)
}

func describe(errs validator.ValidationErrors) string {
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		parts = append(parts, fmt.Sprintf("%s is %s", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return strings.Join(parts, ", ")
}
