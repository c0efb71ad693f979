package activity

import (
	"context"
	"log/slog"
	"time"

	"github.com/bcits/ticketdesk/internal"
	activityDatamodel "github.com/bcits/ticketdesk/internal/core/datamodel/activity"
	"github.com/bcits/ticketdesk/internal/core/events"
)

type RepositoryAPI interface {
	Create(entry *activityDatamodel.ActivityLog) error
	GetRecent(since time.Time, limit int) ([]*activityDatamodel.ActivityLog, error)
}

// Recorder subscribes to the event bus and appends one audit row per
// privileged mutation. Rows are never updated or deleted.
type Recorder struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewRecorder(repo RepositoryAPI, logger *slog.Logger) *Recorder {
	return &Recorder{
		repo:   repo,
		logger: logger,
	}
}

var recordedEventTypes = []string{
	events.EventTypeUserLoggedIn,
	events.EventTypeUserCreated,
	events.EventTypeUserUpdated,
	events.EventTypeUserDeleted,
	events.EventTypeUserRolesReplaced,
	events.EventTypePasswordReset,
	events.EventTypePermissionsUpdated,
	events.EventTypeBinCreated,
	events.EventTypeBinUpdated,
	events.EventTypeBinDeleted,
	events.EventTypeTicketTransferred,
	events.EventTypeAccountCreated,
	events.EventTypeAccountUpdated,
	events.EventTypeAccountDeleted,
}

// Register wires the recorder to every audited event type.
func (rec *Recorder) Register(bus *events.EventBus) {
	for _, eventType := range recordedEventTypes {
		bus.Subscribe(eventType, rec.Handle)
	}
}

func (rec *Recorder) Handle(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload().(map[string]interface{})
	if !ok {
		rec.logger.Warn("activity event with unexpected payload", "event_type", event.EventType())
		return nil
	}

	actorID, ok := payload["actor_id"].(int64)
	if !ok {
		rec.logger.Warn("activity event without actor",
			"event_type", event.EventType(),
			"ctx_user", internal.UserIDFromContext(ctx))
		return nil
	}
	details, _ := payload["details"].(string)

	entry := &activityDatamodel.ActivityLog{
		UserID:    actorID,
		Action:    event.EventType(),
		Details:   details,
		Timestamp: event.OccurredAt(),
	}
	if err := rec.repo.Create(entry); err != nil {
		rec.logger.Error("failed to record activity", "event_type", event.EventType(), "error", err)
		return err
	}
	return nil
}
