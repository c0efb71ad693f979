package permission

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bcits/ticketdesk/internal/auth"
	permissionDatamodel "github.com/bcits/ticketdesk/internal/core/datamodel/permission"
	userDatamodel "github.com/bcits/ticketdesk/internal/core/datamodel/user"
	"github.com/bcits/ticketdesk/internal/core/events"
)

type RepositoryAPI interface {
	GetActiveDefinitions() ([]*permissionDatamodel.PermissionDefinition, error)
	GetAccountUsers(accountID int64) ([]*userDatamodel.User, error)
	GetUserPermissions(userID int64) ([]*permissionDatamodel.UserPermission, error)
	GetUserBins(userID int64) ([]int64, error)
	GetUserTeams(userID int64) ([]int64, error)
	UserBelongsToAccount(userID, accountID int64) (bool, error)
	UpsertPermission(up *permissionDatamodel.UserPermission) error
	ReplaceUserBins(userID int64, binIDs []int64) error
	ReplaceUserTeams(userID int64, teamIDs []int64) error
}

type Service struct {
	repo     RepositoryAPI
	eventBus *events.EventBus
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
	}
}

func (s *Service) GetDefinitions() ([]DefinitionResponse, error) {
	defs, err := s.repo.GetActiveDefinitions()
	if err != nil {
		s.logger.Error("failed to load permission definitions", "error", err)
		return nil, err
	}

	responses := make([]DefinitionResponse, 0, len(defs))
	for _, def := range defs {
		responses = append(responses, DefinitionResponse{
			PermissionKey: def.PermissionKey,
			DisplayName:   def.DisplayName,
			Description:   def.Description,
			ValueType:     string(def.ValueType),
			DisplayOrder:  def.DisplayOrder,
		})
	}
	return responses, nil
}

// GetMatrix assembles one row per user of the account, direct grants plus
// bin and team memberships, bundled with the definitions catalog.
func (s *Service) GetMatrix(accountID int64) (*MatrixResponse, error) {
	defs, err := s.GetDefinitions()
	if err != nil {
		return nil, err
	}

	users, err := s.repo.GetAccountUsers(accountID)
	if err != nil {
		s.logger.Error("failed to load account users for matrix", "account_id", accountID, "error", err)
		return nil, err
	}

	entries := make([]MatrixEntry, 0, len(users))
	for _, u := range users {
		grants, err := s.repo.GetUserPermissions(u.ID)
		if err != nil {
			return nil, err
		}
		perms := make(map[string]permissionDatamodel.Value, len(grants))
		for _, g := range grants {
			perms[g.PermissionKey] = g.Value
		}

		bins, err := s.repo.GetUserBins(u.ID)
		if err != nil {
			return nil, err
		}
		teams, err := s.repo.GetUserTeams(u.ID)
		if err != nil {
			return nil, err
		}

		entries = append(entries, MatrixEntry{
			UserID:      u.ID,
			Email:       u.Email,
			FirstName:   u.FirstName,
			LastName:    u.LastName,
			Permissions: perms,
			Bins:        bins,
			Teams:       teams,
		})
	}

	return &MatrixResponse{
		Definitions: defs,
		Users:       entries,
	}, nil
}

// BulkUpdate applies a batch of matrix records. Each record is handled
// independently: users outside the actor's account are skipped silently,
// grants are upserted in place, and a present bins or teams list replaces
// the user's memberships wholesale, clearing them when the list is empty.
// The batch is not atomic; a failing record does not roll back earlier ones.
func (s *Service) BulkUpdate(ctx context.Context, actor *auth.User, dto BulkUpdateDTO) (*BulkUpdateResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	result := &BulkUpdateResult{}

	for _, rec := range dto.Updates {
		belongs, err := s.repo.UserBelongsToAccount(rec.UserID, actor.AccountID)
		if err != nil {
			s.logger.Error("account membership check failed", "user_id", rec.UserID, "error", err)
			return nil, err
		}
		if !belongs {
			s.logger.Warn("skipping matrix record for user outside account",
				"user_id", rec.UserID,
				"account_id", actor.AccountID,
				"actor_id", actor.ID)
			result.SkippedUserIDs = append(result.SkippedUserIDs, rec.UserID)
			continue
		}

		for key, value := range rec.Permissions {
			if key == BinsAssignedKey {
				continue
			}
			grantedBy := actor.ID
			up := &permissionDatamodel.UserPermission{
				UserID:        rec.UserID,
				PermissionKey: key,
				Value:         value,
				GrantedBy:     &grantedBy,
			}
			if err := s.repo.UpsertPermission(up); err != nil {
				s.logger.Error("failed to upsert permission grant",
					"user_id", rec.UserID, "permission_key", key, "error", err)
				return nil, err
			}
		}

		if rec.Bins != nil {
			if err := s.repo.ReplaceUserBins(rec.UserID, *rec.Bins); err != nil {
				s.logger.Error("failed to replace bin memberships", "user_id", rec.UserID, "error", err)
				return nil, err
			}
		}

		if rec.Teams != nil {
			if err := s.repo.ReplaceUserTeams(rec.UserID, *rec.Teams); err != nil {
				s.logger.Error("failed to replace team memberships", "user_id", rec.UserID, "error", err)
				return nil, err
			}
		}

		result.UpdatedCount++
	}

	if s.eventBus != nil {
		event := events.NewActivityEvent(events.EventTypePermissionsUpdated, actor.ID,
			fmt.Sprintf("updated permissions for %d users", result.UpdatedCount))
		if err := s.eventBus.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish permissions update event", "error", err)
		}
	}

	s.logger.Info("permission matrix updated",
		"actor_id", actor.ID,
		"updated", result.UpdatedCount,
		"skipped", len(result.SkippedUserIDs))

	return result, nil
}
