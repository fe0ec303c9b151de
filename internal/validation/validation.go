// Package validation checks record input and turns validator failures into
// user-facing field errors.
package validation

import (
	"errors"
	"fmt"
	"html"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"

	"github.com/nehemiah-317/ictlogbook/internal/apperrors"
)

var (
	once     sync.Once
	validate *validator.Validate
	strict   = bluemonday.StrictPolicy()
)

// Validator returns the shared validator with the custom rules registered.
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		if err := v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return IsPhone(fl.Field().String())
		}); err != nil {
			panic(fmt.Sprintf("register phone rule: %v", err))
		}
		validate = v
	})
	return validate
}

// IsPhone accepts digits optionally separated by '+', '-' or spaces.
func IsPhone(s string) bool {
	digits := strings.NewReplacer("+", "", "-", "", " ", "").Replace(s)
	if digits == "" {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// CleanText trims surrounding whitespace. The text itself is kept as typed;
// templates escape it on output.
func CleanText(s string) string {
	return strings.TrimSpace(s)
}

// HasMarkup reports whether s contains something the strict policy would
// remove. Plain text such as "x<y" or "Tom & Jerry" does not count.
func HasMarkup(s string) bool {
	return strict.Sanitize(s) != html.EscapeString(s)
}

// CleanStrings applies CleanText to every exported string field of the
// struct ptr points to.
func CleanStrings(ptr any) {
	eachString(ptr, func(_ reflect.StructField, f reflect.Value) {
		f.SetString(CleanText(f.String()))
	})
}

// MarkupFields returns the json names of the string fields that contain markup.
func MarkupFields(ptr any) []string {
	var names []string
	eachString(ptr, func(sf reflect.StructField, f reflect.Value) {
		if HasMarkup(f.String()) {
			name := strings.SplitN(sf.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				name = sf.Name
			}
			names = append(names, name)
		}
	})
	return names
}

func eachString(ptr any, fn func(reflect.StructField, reflect.Value)) {
	v := reflect.ValueOf(ptr)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return
	}
	v = v.Elem()
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		if f.Kind() == reflect.String && f.CanSet() {
			fn(t.Field(i), f)
		}
	}
}

// Struct validates s and returns a ValidationError listing every failing field.
func Struct(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.NewInternalError("validation failed", err.Error())
	}

	fields := make([]apperrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperrors.FieldError{
			Field:  fe.Field(),
			Reason: message(fe),
		})
	}
	return apperrors.NewValidationError(fields...)
}

func message(fe validator.FieldError) string {
	switch {
	case fe.Tag() == "phone":
		return "Please enter a valid phone number"
	case fe.Field() == "quantity" && (fe.Tag() == "min" || fe.Tag() == "required"):
		return "Quantity must be at least 1"
	case fe.Field() == "staff_id" && fe.Tag() == "min":
		return "Staff ID must be at least 3 characters"
	}

	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	case "min":
		return fmt.Sprintf("Ensure this value has at least %s characters.", fe.Param())
	case "oneof":
		return fmt.Sprintf("Select a valid choice. %v is not one of the available choices.", fe.Value())
	default:
		return fmt.Sprintf("Invalid value (%s).", fe.Tag())
	}
}
