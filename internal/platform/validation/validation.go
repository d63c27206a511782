package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/teamhub/internal/domain/storeerr"
	"github.com/riskibarqy/teamhub/internal/platform/joincode"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	_ = v.RegisterValidation("joincode", func(fl validator.FieldLevel) bool {
		return joincode.Valid(fl.Field().String())
	})
	return v
}

// Struct validates a record and reports the first violation in the storeerr
// taxonomy: missing values are RequiredField, anything else IntegrityOther.
func Struct(record any) error {
	err := validate.Struct(record)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return storeerr.Internal(err, "validate record")
	}

	fe := fieldErrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required", "required_without", "required_if":
		return storeerr.Required(field)
	case "oneof":
		return storeerr.Integrity(field, fmt.Sprintf("%s must be one of [%s]", field, fe.Param()))
	case "email":
		return storeerr.Integrity(field, fmt.Sprintf("%s must be a valid email address", field))
	case "gtefield":
		return storeerr.Integrity(field, fmt.Sprintf("%s must not be before %s", field, jsonName(fe)))
	case "gte", "min":
		return storeerr.Integrity(field, fmt.Sprintf("%s must be >= %s", field, fe.Param()))
	case "lte", "max":
		return storeerr.Integrity(field, fmt.Sprintf("%s must be <= %s", field, fe.Param()))
	case "joincode":
		return storeerr.Integrity(field, fmt.Sprintf("%s must be %d characters from the join code alphabet", field, joincode.Length))
	default:
		return storeerr.Integrity(field, fmt.Sprintf("%s is invalid", field))
	}
}

// jsonName resolves the compared field of a cross-field tag to its json name.
func jsonName(fe validator.FieldError) string {
	param := fe.Param()
	out := make([]byte, 0, len(param)+4)
	for i, r := range param {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				out = append(out, '_')
			}
			r += 'a' - 'A'
		}
		out = append(out, byte(r))
	}
	return string(out)
}
