package validator

import (
	"errors"
	"reflect"
	"sort"
	"strings"
	"time"

	"clinic-services/pkg/slot"

	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()

	// Report JSON field names instead of Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	v.RegisterValidation("halfhour", validateHalfHour)
	v.RegisterValidation("role", validateRole)

	return &CustomValidator{
		validator: v,
	}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// validateHalfHour accepts time.Time values sitting exactly on :00 or :30.
func validateHalfHour(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return slot.Aligned(t)
}

var knownRoles = map[string]struct{}{
	"Admin":   {},
	"Manager": {},
	"Doctor":  {},
	"User":    {},
}

func validateRole(fl validator.FieldLevel) bool {
	_, ok := knownRoles[fl.Field().String()]
	return ok
}

func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			field := e.Field()
			switch e.Tag() {
			case "required":
				errs[field] = field + " is required"
			case "min":
				errs[field] = field + " must be at least " + e.Param() + " characters"
			case "max":
				errs[field] = field + " must be at most " + e.Param() + " characters"
			case "gte":
				errs[field] = field + " must be greater than or equal to " + e.Param()
			case "gt":
				errs[field] = field + " must be greater than " + e.Param()
			case "lte":
				errs[field] = field + " must be less than or equal to " + e.Param()
			case "halfhour":
				errs[field] = field + " must be on a :00 or :30 boundary"
			case "role":
				errs[field] = field + " is not a known role"
			default:
				errs[field] = field + " is invalid"
			}
		}
	}

	return errs
}

// Detail flattens validation errors into a single deterministic message.
func (cv *CustomValidator) Detail(err error) string {
	errs := cv.FormatValidationErrors(err)
	if len(errs) == 0 {
		return err.Error()
	}

	msgs := make([]string, 0, len(errs))
	for _, msg := range errs {
		msgs = append(msgs, msg)
	}
	sort.Strings(msgs)
	return strings.Join(msgs, "; ")
}
