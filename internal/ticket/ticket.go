package ticket

import (
	"time"

	ticketDatamodel "github.com/bcits/ticketdesk/internal/core/datamodel/ticket"
)

// Ticket statuses.
const (
	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusClosed     = "closed"
	StatusArchived   = "archived"
)

// Ticket priorities.
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

var (
	Statuses   = []string{StatusOpen, StatusInProgress, StatusClosed, StatusArchived}
	Priorities = []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}
)

type Ticket struct {
	ID            int64      `json:"id"`
	Subject       string     `json:"subject"`
	Content       string     `json:"content"`
	Status        string     `json:"status"`
	Priority      string     `json:"priority"`
	RequesterID   int64      `json:"requester_id"`
	AssigneeID    *int64     `json:"assignee_id,omitempty"`
	BinID         *int64     `json:"bin_id,omitempty"`
	TeamID        *int64     `json:"team_id,omitempty"`
	IsDuplicateOf *int64     `json:"is_duplicate_of,omitempty"`
	AccountID     int64      `json:"account_id"`
	CreatedTime   time.Time  `json:"created_time"`
	UpdatedTime   time.Time  `json:"updated_time"`
	ArchivedTime  *time.Time `json:"archived_time,omitempty"`
}

func FromDataModel(t *ticketDatamodel.Ticket) *Ticket {
	return &Ticket{
		ID:            t.ID,
		Subject:       t.Subject,
		Content:       t.Content,
		Status:        t.Status,
		Priority:      t.Priority,
		RequesterID:   t.RequesterID,
		AssigneeID:    t.AssigneeID,
		BinID:         t.BinID,
		TeamID:        t.TeamID,
		IsDuplicateOf: t.IsDuplicateOf,
		AccountID:     t.AccountID,
		CreatedTime:   t.CreatedTime,
		UpdatedTime:   t.UpdatedTime,
		ArchivedTime:  t.ArchivedTime,
	}
}
