package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/guardianlink/portal/internal/core/domain"
)

// Custom tags understood by the request validator.
const (
	tagRelation = "relation"
	tagTextSize = "textsize"
	tagPhone    = "phone"
)

type requestValidator struct {
	v *validator.Validate
}

// NewValidator returns the echo.Validator used by every handler. Messages name
// fields by their json key.
func NewValidator() *requestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)

	_ = v.RegisterValidation(tagRelation, func(fl validator.FieldLevel) bool {
		return domain.RelationType(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation(tagTextSize, func(fl validator.FieldLevel) bool {
		return domain.ValidTextSize(fl.Field().String())
	})
	_ = v.RegisterValidation(tagPhone, func(fl validator.FieldLevel) bool {
		return validPhone(fl.Field().String())
	})
	return &requestValidator{v: v}
}

func (rv *requestValidator) Validate(i any) error {
	err := rv.v.Struct(i)
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	msgs := make([]string, len(ve))
	for i, fe := range ve {
		msgs[i] = describe(fe)
	}
	return errors.New(strings.Join(msgs, "; "))
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

// validPhone accepts an optional leading + followed by 7 to 15 digits,
// allowing spaces and dashes between groups.
func validPhone(s string) bool {
	s = strings.TrimPrefix(strings.TrimSpace(s), "+")
	digits := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == ' ' || r == '-':
		default:
			return false
		}
	}
	return digits >= 7 && digits <= 15
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case tagPhone:
		return field + " must be a phone number of 7 to 15 digits"
	case tagRelation:
		return field + " must be one of: parent, child, spouse, sibling, friend, colleague, other"
	case tagTextSize:
		return field + " must be one of: small, medium, large"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "gte", "lte":
		return fmt.Sprintf("%s is out of range", field)
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
	}
}
