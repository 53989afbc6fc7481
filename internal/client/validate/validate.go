// Package validate checks user input before it is sent to the backend.
//
// Rules live in `validate` struct tags on the models. Failures come back as
// *Errors, one readable message per offending field, named after the field's
// JSON name.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Errors lists every rule the input broke, in field order.
type Errors struct {
	Messages []string
}

func (e *Errors) Error() string {
	return strings.Join(e.Messages, "; ")
}

// First is the message a form shows when it can show only one.
func (e *Errors) First() string {
	if len(e.Messages) == 0 {
		return ""
	}
	return e.Messages[0]
}

var (
	once sync.Once
	v    *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return strings.ToLower(f.Name)
			}
			return name
		})
	})
	return v
}

// Struct validates s against its tags.
func Struct(s any) error {
	return convert(instance().Struct(s), "")
}

// Field validates a single value against tag, reporting it as name.
func Field(name string, value any, tag string) error {
	return convert(instance().Var(value, tag), name)
}

// URL reports whether raw is an absolute http(s) URL.
func URL(name, raw string) error {
	return Field(name, strings.TrimSpace(raw), "required,http_url")
}

func convert(err error, name string) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &Errors{Messages: make([]string, 0, len(verrs))}
	for _, fe := range verrs {
		field := fe.Field()
		if name != "" {
			field = name
		}
		out.Messages = append(out.Messages, message(field, fe))
	}
	return out
}

func message(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "url", "http_url":
		return fmt.Sprintf("%s must be a valid http(s) URL", field)
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
	}
}
