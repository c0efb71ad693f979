package account

import (
	errors "github.com/bcits/ticketdesk/internal"
	"github.com/bcits/ticketdesk/internal/core/common/validation"
)

type CreateAccountDTO struct {
	Name        string                 `json:"name"`
	DisplayName string                 `json:"display_name"`
	Settings    map[string]interface{} `json:"settings,omitempty"`
}

func (d CreateAccountDTO) Validate() *errors.AppError {
	if err := validation.ValidateAccountName(d.Name); err != nil {
		return err
	}
	validator := validation.NewValidator()
	validator.Field("display_name", d.DisplayName).Required().MaxLength(255)
	return validator.Validate()
}

// UpdateAccountDTO carries partial updates; nil fields are left untouched.
type UpdateAccountDTO struct {
	DisplayName *string                 `json:"display_name,omitempty"`
	IsActive    *bool                   `json:"is_active,omitempty"`
	Settings    *map[string]interface{} `json:"settings,omitempty"`
}

func (d UpdateAccountDTO) Validate() *errors.AppError {
	if d.DisplayName != nil {
		validator := validation.NewValidator()
		validator.Field("display_name", *d.DisplayName).Required().MaxLength(255)
		return validator.Validate()
	}
	return nil
}
