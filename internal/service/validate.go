package service

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

var messages = map[string]string{
	"required": "%s is required",
	"email":    "%s must be a valid email address",
	"min":      "%s must be at least %s characters long",
	"max":      "%s must be at most %s",
	"gt":       "%s must be greater than %s",
	"gte":      "%s must be greater than or equal to %s",
	"lte":      "%s must be less than or equal to %s",
}

func fieldName(t reflect.Type, structField string) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	f, ok := t.FieldByName(structField)
	if !ok {
		return structField
	}
	if tag := strings.Split(f.Tag.Get("json"), ",")[0]; tag != "" {
		return tag
	}
	return structField
}

// validateStruct wraps every failure in ErrValidation with a message
// naming the JSON fields at fault.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	t := reflect.TypeOf(s)
	out := make([]string, 0, len(verrs))
	for _, e := range verrs {
		name := fieldName(t, e.StructField())
		msg, ok := messages[e.Tag()]
		switch {
		case !ok:
			out = append(out, fmt.Sprintf("%s is invalid", name))
		case strings.Count(msg, "%s") == 2:
			out = append(out, fmt.Sprintf(msg, name, e.Param()))
		default:
			out = append(out, fmt.Sprintf(msg, name))
		}
	}
	sort.Strings(out)
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(out, "; "))
}
