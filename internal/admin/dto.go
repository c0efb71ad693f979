package admin

import (
	errors "github.com/bcits/ticketdesk/internal"
	"github.com/bcits/ticketdesk/internal/core/common/validation"
)

type UpdateRoleDTO struct {
	Role string `json:"role"`
}

func (d UpdateRoleDTO) Validate() *errors.AppError {
	validator := validation.NewValidator()
	validator.Field("role", d.Role).Required().OneOf(LegacyRoles...)
	return validator.Validate()
}
