package kb

import (
	errors "github.com/bcits/ticketdesk/internal"
	"github.com/bcits/ticketdesk/internal/core/common/validation"
)

type CreateItemDTO struct {
	Title          string `json:"title"`
	Content        string `json:"content"`
	Category       string `json:"category,omitempty"`
	SourceTicketID *int64 `json:"source_ticket_id,omitempty"`
}

func (d CreateItemDTO) Validate() *errors.AppError {
	validator := validation.NewValidator()
	validator.Field("title", d.Title).Required().MinLength(5).MaxLength(255)
	validator.Field("content", d.Content).Required().MinLength(10)
	return validator.Validate()
}
