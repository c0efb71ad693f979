package team

import (
	"time"

	teamDatamodel "github.com/bcits/ticketdesk/internal/core/datamodel/team"
)

type Team struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	AccountID   int64     `json:"account_id"`
	IsActive    bool      `json:"is_active"`
	CreatedTime time.Time `json:"created_time"`

	MemberCount int64 `json:"member_count"`
}

func FromDataModel(t *teamDatamodel.Team) *Team {
	return &Team{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		AccountID:   t.AccountID,
		IsActive:    t.IsActive,
		CreatedTime: t.CreatedTime,
	}
}
