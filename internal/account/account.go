package account

import (
	"time"

	accountDatamodel "github.com/bcits/ticketdesk/internal/core/datamodel/account"
)

// ProtectedAccountID is the default tenant; it can never be deleted.
const ProtectedAccountID int64 = 1

type Account struct {
	ID          int64                  `json:"id"`
	Name        string                 `json:"name"`
	DisplayName string                 `json:"display_name"`
	IsActive    bool                   `json:"is_active"`
	Settings    map[string]interface{} `json:"settings,omitempty"`
	CreatedTime time.Time              `json:"created_time"`
	UpdatedTime time.Time              `json:"updated_time"`

	UserCount   int64 `json:"user_count"`
	TicketCount int64 `json:"ticket_count"`
	BinCount    int64 `json:"bin_count"`
}

func FromDataModel(a *accountDatamodel.Account) *Account {
	return &Account{
		ID:          a.ID,
		Name:        a.Name,
		DisplayName: a.DisplayName,
		IsActive:    a.IsActive,
		Settings:    a.Settings,
		CreatedTime: a.CreatedTime,
		UpdatedTime: a.UpdatedTime,
	}
}
