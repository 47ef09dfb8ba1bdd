// Package validation registers the request validators used by the HTTP bindings.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/carbon-tracker/backend/internal/domain/entity"
	"github.com/carbon-tracker/backend/internal/domain/valueobject"
)

var once sync.Once

// Register installs the custom tags on gin's validator:
//
//	scope    integer field holding a GHG scope (1, 2 or 3)
//	isodate  string field holding a YYYY-MM-DD calendar date
//
// Field errors report the JSON name of the field. Safe to call more than once.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}

	var err error
	once.Do(func() {
		v.RegisterTagNameFunc(jsonName)
		if err = v.RegisterValidation("scope", validateScope); err != nil {
			return
		}
		err = v.RegisterValidation("isodate", validateISODate)
	})
	return err
}

func jsonName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

func validateScope(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return entity.Scope(fl.Field().Int()).IsValid()
	}
	return false
}

func validateISODate(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	_, err := time.Parse(valueobject.DateLayout, fl.Field().String())
	return err == nil
}

// FieldError is the first failing field of a binding error.
type FieldError struct {
	Field  string
	Reason string
}

// FirstFieldError extracts the first field failure from a validator error.
// ok is false when err is not a validation failure (malformed JSON, wrong types).
func FirstFieldError(err error) (FieldError, bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return FieldError{}, false
	}
	fe := verrs[0]
	return FieldError{Field: fe.Field(), Reason: reason(fe)}, true
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "scope":
		return "must be 1, 2 or 3"
	case "isodate":
		return "must be a date in YYYY-MM-DD format"
	case "uuid":
		return "must be a valid UUID"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	}
	return fmt.Sprintf("failed %q validation", fe.Tag())
}
