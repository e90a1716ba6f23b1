package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	FailedField string `json:"field"`
	Tag         string `json:"tag"`
	Value       string `json:"param,omitempty"`
}

func (e ErrorResponse) String() string {
	if e.Value == "" {
		return fmt.Sprintf("%s failed '%s'", e.FailedField, e.Tag)
	}
	return fmt.Sprintf("%s failed '%s=%s'", e.FailedField, e.Tag, e.Value)
}

var validate = validator.New()

func init() {
	validate.RegisterValidation("uuid_required", func(fl validator.FieldLevel) bool {
		if id, ok := fl.Field().Interface().(uuid.UUID); ok {
			return id != uuid.Nil
		}
		return false
	})

	// Decimals are validated as float64 so the numeric tags apply to them.
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	// dec_gte0 accepts a non-negative decimal. Nil pointers are left to
	// "required"/"omitempty".
	validate.RegisterValidation("dec_gte0", func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() != reflect.Float64 {
			return false
		}
		return field.Float() >= 0
	})

	// dec_cents accepts at most two decimal places. The type func hands over
	// a float64, so the decimal is read back from the parent struct.
	validate.RegisterValidation("dec_cents", func(fl validator.FieldLevel) bool {
		parent := fl.Parent()
		for parent.Kind() == reflect.Ptr {
			if parent.IsNil() {
				return false
			}
			parent = parent.Elem()
		}
		if parent.Kind() != reflect.Struct {
			return false
		}
		field := parent.FieldByName(fl.StructFieldName())
		if field.Kind() == reflect.Ptr {
			if field.IsNil() {
				return true
			}
			field = field.Elem()
		}
		d, ok := field.Interface().(decimal.Decimal)
		if !ok {
			return false
		}
		return d.Equal(d.Round(2))
	})
}

func ValidateStruct(data interface{}) []*ErrorResponse {
	var errors []*ErrorResponse
	err := validate.Struct(data)
	if err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return []*ErrorResponse{{FailedField: "body", Tag: "invalid"}}
		}
		for _, err := range verrs {
			var element ErrorResponse
			element.FailedField = err.StructNamespace()
			element.Tag = err.Tag()
			element.Value = err.Param()
			errors = append(errors, &element)
		}
	}
	return errors
}

// Summary joins validation failures into one message.
func Summary(errs []*ErrorResponse) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.String()
	}
	return strings.Join(parts, "; ")
}
