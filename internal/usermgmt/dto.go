package usermgmt

import (
	errors "github.com/bcits/ticketdesk/internal"
	"github.com/bcits/ticketdesk/internal/core/common/validation"
)

type CreateUserDTO struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
}

func (d CreateUserDTO) Validate() *errors.AppError {
	if err := validation.ValidateEmail(d.Email); err != nil {
		return err
	}
	return validation.ValidatePasswordComplexity(d.Password, d.Email)
}

// UpdateUserDTO carries a partial update; nil fields are untouched.
type UpdateUserDTO struct {
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"firstname,omitempty"`
	LastName  *string `json:"lastname,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

func (d UpdateUserDTO) Validate() *errors.AppError {
	if d.Email != nil {
		return validation.ValidateEmail(*d.Email)
	}
	return nil
}

type ResetPasswordDTO struct {
	Password string `json:"password"`
}

// RoleAssignmentDTO is one (role, optional bin) pair in a full-replace
// request. A nil bin scopes the role account-wide.
type RoleAssignmentDTO struct {
	RoleID int64  `json:"roleId"`
	BinID  *int64 `json:"binId,omitempty"`
}

type ReplaceRolesDTO struct {
	RoleIDs []RoleAssignmentDTO `json:"roleIds"`
}

func (d ReplaceRolesDTO) Validate() *errors.AppError {
	for _, assignment := range d.RoleIDs {
		if assignment.RoleID <= 0 {
			return errors.NewValidationFieldError("roleId", "roleId is required", errors.ErrCodeValidationFailed)
		}
	}
	return nil
}
