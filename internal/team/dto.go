package team

import (
	errors "github.com/bcits/ticketdesk/internal"
	"github.com/bcits/ticketdesk/internal/core/common/validation"
)

type CreateTeamDTO struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (d CreateTeamDTO) Validate() *errors.AppError {
	validator := validation.NewValidator()
	validator.Field("name", d.Name).Required().MaxLength(255)
	return validator.Validate()
}

type UpdateTeamDTO struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func (d UpdateTeamDTO) Validate() *errors.AppError {
	if d.Name != nil {
		validator := validation.NewValidator()
		validator.Field("name", *d.Name).Required().MaxLength(255)
		return validator.Validate()
	}
	return nil
}
