// Package validator wraps go-playground struct validation for the
// request types that carry `validate` tags.
package validator

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ErrorResponse describes one failed field check.
type ErrorResponse struct {
	FailedField string
	Tag         string
	Value       string
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// The stock "required" tag accepts the zero UUID, which is never a
	// usable reference id here.
	v.RegisterValidation("uuid_required", func(fl validator.FieldLevel) bool {
		id, ok := fl.Field().Interface().(uuid.UUID)
		return ok && id != uuid.Nil
	})
	return v
}

// ValidateStruct runs the tag checks on data and returns one entry per
// failed field, or nil when everything passes.
func ValidateStruct(data interface{}) []*ErrorResponse {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}
	var out []*ErrorResponse
	for _, fe := range err.(validator.ValidationErrors) {
		out = append(out, &ErrorResponse{
			FailedField: fe.StructNamespace(),
			Tag:         fe.Tag(),
			Value:       fe.Param(),
		})
	}
	return out
}
