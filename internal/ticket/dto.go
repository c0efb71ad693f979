package ticket

import (
	errors "github.com/bcits/ticketdesk/internal"
	"github.com/bcits/ticketdesk/internal/core/common/validation"
)

type CreateTicketDTO struct {
	Subject  string `json:"subject"`
	Content  string `json:"content"`
	Priority string `json:"priority,omitempty"`
	BinID    *int64 `json:"bin_id,omitempty"`
	TeamID   *int64 `json:"team_id,omitempty"`
}

func (d CreateTicketDTO) Validate() *errors.AppError {
	validator := validation.NewValidator()
	validator.Field("subject", d.Subject).Required().MinLength(5).MaxLength(255)
	validator.Field("content", d.Content).Required().MinLength(10)
	validator.Field("priority", d.Priority).OneOf(Priorities...)
	return validator.Validate()
}

// UpdateTicketDTO carries a partial update; nil fields are untouched.
type UpdateTicketDTO struct {
	Subject       *string `json:"subject,omitempty"`
	Content       *string `json:"content,omitempty"`
	Status        *string `json:"status,omitempty"`
	Priority      *string `json:"priority,omitempty"`
	AssigneeID    *int64  `json:"assignee_id,omitempty"`
	BinID         *int64  `json:"bin_id,omitempty"`
	TeamID        *int64  `json:"team_id,omitempty"`
	IsDuplicateOf *int64  `json:"is_duplicate_of,omitempty"`
}

func (d UpdateTicketDTO) Validate() *errors.AppError {
	validator := validation.NewValidator()
	if d.Subject != nil {
		validator.Field("subject", *d.Subject).Required().MinLength(5).MaxLength(255)
	}
	if d.Content != nil {
		validator.Field("content", *d.Content).Required().MinLength(10)
	}
	if d.Status != nil {
		validator.Field("status", *d.Status).Required().OneOf(Statuses...)
	}
	if d.Priority != nil {
		validator.Field("priority", *d.Priority).Required().OneOf(Priorities...)
	}
	return validator.Validate()
}

type TransferTicketDTO struct {
	BinID  int64   `json:"bin_id"`
	Reason *string `json:"reason,omitempty"`
}

func (d TransferTicketDTO) Validate() *errors.AppError {
	if d.BinID <= 0 {
		return errors.NewValidationFieldError("bin_id", "bin_id is required", errors.ErrCodeValidationFailed)
	}
	return nil
}
