package admin

import (
	"time"

	activityDatamodel "github.com/bcits/ticketdesk/internal/core/datamodel/activity"
	userDatamodel "github.com/bcits/ticketdesk/internal/core/datamodel/user"
)

// Legacy coarse roles kept on the users table. The role assignment tables
// are the real authorization source; this column only drives the old admin
// screen.
const (
	RoleUser    = "user"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

var LegacyRoles = []string{RoleUser, RoleManager, RoleAdmin}

type UserSummary struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"firstname"`
	LastName    string    `json:"lastname"`
	Role        string    `json:"role"`
	IsActive    bool      `json:"is_active"`
	CreatedTime time.Time `json:"created_time"`
}

func userSummaryFromDataModel(row *userDatamodel.User) *UserSummary {
	return &UserSummary{
		ID:          row.ID,
		Email:       row.Email,
		FirstName:   row.FirstName,
		LastName:    row.LastName,
		Role:        row.Role,
		IsActive:    row.IsActive,
		CreatedTime: row.CreatedTime,
	}
}

type ActivityEntry struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

func activityEntryFromDataModel(row *activityDatamodel.ActivityLog) *ActivityEntry {
	return &ActivityEntry{
		ID:        row.ID,
		UserID:    row.UserID,
		Action:    row.Action,
		Details:   row.Details,
		Timestamp: row.Timestamp,
	}
}

// UserStats counts users per legacy role.
type UserStats struct {
	Total    int64            `json:"total"`
	ByRole   map[string]int64 `json:"by_role"`
	Active   int64            `json:"active"`
	Inactive int64            `json:"inactive"`
}
