package settings

import (
	errors "github.com/bcits/ticketdesk/internal"
	"github.com/bcits/ticketdesk/internal/core/common/validation"
)

type ChangePasswordDTO struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (d ChangePasswordDTO) Validate() *errors.AppError {
	validator := validation.NewValidator()
	validator.Field("current_password", d.CurrentPassword).Required()
	validator.Field("new_password", d.NewPassword).Required()
	return validator.Validate()
}
