package dto

import (
	"github.com/go-playground/validator/v10"

	apperrors "github.com/spec-kit/room-booking-service/pkg/util"
)

var validate = validator.New()

// Validate runs struct-tag validation and maps failures onto a
// VALIDATION_FAILED domain error listing the offending fields.
func Validate(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	fields := map[string]any{}
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, verr := range verrs {
			fields[verr.Field()] = verr.Tag()
		}
	}
	return apperrors.NewValidationError("invalid payload", fields)
}
