package events

import (
	"time"

	"github.com/google/uuid"
)

// Event types emitted by privileged mutations. An activity recorder
// subscribes to these and appends audit rows.
const (
	EventTypeUserLoggedIn       = "user.logged_in"
	EventTypeUserCreated        = "user.created"
	EventTypeUserUpdated        = "user.updated"
	EventTypeUserDeleted        = "user.deleted"
	EventTypeUserRolesReplaced  = "user.roles_replaced"
	EventTypePasswordReset      = "user.password_reset"
	EventTypePermissionsUpdated = "permissions.bulk_updated"
	EventTypeBinCreated         = "bin.created"
	EventTypeBinUpdated         = "bin.updated"
	EventTypeBinDeleted         = "bin.deleted"
	EventTypeTicketTransferred  = "ticket.transferred"
	EventTypeAccountCreated     = "account.created"
	EventTypeAccountUpdated     = "account.updated"
	EventTypeAccountDeleted     = "account.deleted"
)

// NewActivityEvent builds an event carrying the acting user and a short
// human-readable detail string for the audit trail.
func NewActivityEvent(eventType string, actorID int64, details string) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"actor_id": actorID,
			"details":  details,
		},
	}
}
