package bin

import (
	"time"

	binDatamodel "github.com/bcits/ticketdesk/internal/core/datamodel/bin"
)

// DefaultColor is used when a bin is created without one.
const DefaultColor = "#6B7280"

type Bin struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color"`
	ManagerID   *int64    `json:"manager_id,omitempty"`
	AccountID   int64     `json:"account_id"`
	IsActive    bool      `json:"is_active"`
	CreatedTime time.Time `json:"created_time"`

	TicketCount int64 `json:"ticket_count"`
}

// Member is a user assigned to a bin through the permissions matrix.
type Member struct {
	UserID    int64  `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
}

func FromDataModel(b *binDatamodel.Bin) *Bin {
	return &Bin{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		Color:       b.Color,
		ManagerID:   b.ManagerID,
		AccountID:   b.AccountID,
		IsActive:    b.IsActive,
		CreatedTime: b.CreatedTime,
	}
}
