package admin

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	errors "github.com/bcits/ticketdesk/internal"
	activityDatamodel "github.com/bcits/ticketdesk/internal/core/datamodel/activity"
	userDatamodel "github.com/bcits/ticketdesk/internal/core/datamodel/user"
	"github.com/bcits/ticketdesk/internal/core/events"
)

const (
	activityWindow = 7 * 24 * time.Hour
	activityLimit  = 500
)

type RepositoryAPI interface {
	GetUsers(accountID int64) ([]*userDatamodel.User, error)
	GetUserByID(accountID, id int64) (*userDatamodel.User, error)
	UpdateUserRole(accountID, id int64, role string) error
	GetRecentActivity(since time.Time, limit int) ([]*activityDatamodel.ActivityLog, error)
	CountUsersByRole(accountID int64) (map[string]int64, error)
	CountUsersByActive(accountID int64) (active, inactive int64, err error)
}

type Service struct {
	repo     RepositoryAPI
	eventBus *events.EventBus
	logger   *slog.Logger
	now      func() time.Time
}

func NewService(repo RepositoryAPI, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *Service) GetUsers(accountID int64) ([]*UserSummary, error) {
	rows, err := s.repo.GetUsers(accountID)
	if err != nil {
		s.logger.Error("failed to list users", "account_id", accountID, "error", err)
		return nil, err
	}

	users := make([]*UserSummary, 0, len(rows))
	for _, row := range rows {
		users = append(users, userSummaryFromDataModel(row))
	}
	return users, nil
}

// UpdateUserRole changes the legacy role column and logs the change.
func (s *Service) UpdateUserRole(ctx context.Context, actorID, accountID, userID int64, dto UpdateRoleDTO) (*UserSummary, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row, err := s.repo.GetUserByID(accountID, userID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, errors.ErrUserNotFound
	}

	if err := s.repo.UpdateUserRole(accountID, userID, dto.Role); err != nil {
		s.logger.Error("failed to update user role", "user_id", userID, "error", err)
		return nil, err
	}
	row.Role = dto.Role

	if s.eventBus != nil {
		event := events.NewActivityEvent(events.EventTypeUserUpdated, actorID,
			fmt.Sprintf("changed role of user %d to %s", userID, dto.Role))
		if err := s.eventBus.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish role change event", "error", err)
		}
	}

	s.logger.Info("user role updated", "user_id", userID, "role", dto.Role, "actor_id", actorID)
	return userSummaryFromDataModel(row), nil
}

// GetActivityLogs returns the last seven days of audit rows, newest first,
// capped at 500 entries.
func (s *Service) GetActivityLogs() ([]*ActivityEntry, error) {
	since := s.now().Add(-activityWindow)
	rows, err := s.repo.GetRecentActivity(since, activityLimit)
	if err != nil {
		s.logger.Error("failed to load activity logs", "error", err)
		return nil, err
	}

	entries := make([]*ActivityEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, activityEntryFromDataModel(row))
	}
	return entries, nil
}

func (s *Service) GetUserStats(accountID int64) (*UserStats, error) {
	byRole, err := s.repo.CountUsersByRole(accountID)
	if err != nil {
		return nil, err
	}

	active, inactive, err := s.repo.CountUsersByActive(accountID)
	if err != nil {
		return nil, err
	}

	stats := &UserStats{
		ByRole:   byRole,
		Active:   active,
		Inactive: inactive,
	}
	for _, n := range byRole {
		stats.Total += n
	}
	return stats, nil
}
