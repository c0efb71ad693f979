package bin

import (
	errors "github.com/bcits/ticketdesk/internal"
	"github.com/bcits/ticketdesk/internal/core/common/validation"
)

type CreateBinDTO struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
	ManagerID   *int64 `json:"manager_id,omitempty"`
}

func (d CreateBinDTO) Validate() *errors.AppError {
	validator := validation.NewValidator()
	validator.Field("name", d.Name).Required().MaxLength(255)
	if err := validator.Validate(); err != nil {
		return err
	}
	if d.Color != "" {
		return validation.ValidateHexColor(d.Color)
	}
	return nil
}

type UpdateBinDTO struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
	ManagerID   *int64  `json:"manager_id,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func (d UpdateBinDTO) Validate() *errors.AppError {
	if d.Name != nil {
		validator := validation.NewValidator()
		validator.Field("name", *d.Name).Required().MaxLength(255)
		if err := validator.Validate(); err != nil {
			return err
		}
	}
	if d.Color != nil {
		return validation.ValidateHexColor(*d.Color)
	}
	return nil
}
