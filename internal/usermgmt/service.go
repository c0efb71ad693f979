package usermgmt

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	errors "github.com/bcits/ticketdesk/internal"
	"github.com/bcits/ticketdesk/internal/core/common/validation"
	roleDatamodel "github.com/bcits/ticketdesk/internal/core/datamodel/role"
	userDatamodel "github.com/bcits/ticketdesk/internal/core/datamodel/user"
	"github.com/bcits/ticketdesk/internal/core/events"
)

type RepositoryAPI interface {
	GetAll(accountID int64) ([]*userDatamodel.User, error)
	GetByID(accountID, id int64) (*userDatamodel.User, error)
	GetByEmail(accountID int64, email string) (*userDatamodel.User, error)
	Create(user *userDatamodel.User) error
	Update(user *userDatamodel.User) error
	Delete(accountID, id int64) error
	UpdatePasswordHash(userID int64, hash string) error
	GetRoles() ([]*roleDatamodel.Role, error)
	RoleExists(roleID int64) (bool, error)
	// ReplaceUserRoles removes every assignment the user holds and inserts
	// the given set in one transaction. The set must not contain duplicate
	// (user, role, bin) triples; the service dedupes before calling.
	ReplaceUserRoles(userID int64, assignments []roleDatamodel.UserRole) error
}

type Service struct {
	repo       RepositoryAPI
	eventBus   *events.EventBus
	logger     *slog.Logger
	bcryptCost int
}

func NewService(repo RepositoryAPI, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		eventBus:   eventBus,
		logger:     logger,
		bcryptCost: bcrypt.DefaultCost,
	}
}

func (s *Service) GetAll(accountID int64) ([]*User, error) {
	rows, err := s.repo.GetAll(accountID)
	if err != nil {
		s.logger.Error("failed to list users", "account_id", accountID, "error", err)
		return nil, err
	}

	users := make([]*User, 0, len(rows))
	for _, row := range rows {
		users = append(users, FromDataModel(row))
	}
	return users, nil
}

func (s *Service) GetByID(accountID, id int64) (*User, error) {
	row, err := s.repo.GetByID(accountID, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, errors.ErrUserNotFound
	}
	return FromDataModel(row), nil
}

func (s *Service) Create(ctx context.Context, actorID, accountID int64, dto CreateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByEmail(accountID, dto.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.NewConflictError("a user with this email already exists", errors.ErrCodeDuplicateEmail)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	row := &userDatamodel.User{
		Email:        dto.Email,
		FirstName:    dto.FirstName,
		LastName:     dto.LastName,
		PasswordHash: string(hash),
		AccountID:    accountID,
		IsActive:     true,
	}
	if err := s.repo.Create(row); err != nil {
		s.logger.Error("failed to create user", "error", err)
		return nil, err
	}

	s.publish(ctx, events.EventTypeUserCreated, actorID, fmt.Sprintf("created user %s", dto.Email))
	s.logger.Info("user created", "user_id", row.ID, "account_id", accountID)
	return FromDataModel(row), nil
}

func (s *Service) Update(ctx context.Context, actorID, accountID, id int64, dto UpdateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row, err := s.repo.GetByID(accountID, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, errors.ErrUserNotFound
	}

	if dto.Email != nil && *dto.Email != row.Email {
		existing, err := s.repo.GetByEmail(accountID, *dto.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, errors.NewConflictError("a user with this email already exists", errors.ErrCodeDuplicateEmail)
		}
		row.Email = *dto.Email
	}
	if dto.FirstName != nil {
		row.FirstName = *dto.FirstName
	}
	if dto.LastName != nil {
		row.LastName = *dto.LastName
	}
	if dto.IsActive != nil {
		row.IsActive = *dto.IsActive
	}

	if err := s.repo.Update(row); err != nil {
		s.logger.Error("failed to update user", "user_id", id, "error", err)
		return nil, err
	}

	s.publish(ctx, events.EventTypeUserUpdated, actorID, fmt.Sprintf("updated user %d", id))
	return FromDataModel(row), nil
}

// Delete removes a user from the account. Actors cannot delete themselves.
func (s *Service) Delete(ctx context.Context, actorID, accountID, id int64) error {
	if id == actorID {
		return errors.ErrCannotDeleteSelf
	}

	row, err := s.repo.GetByID(accountID, id)
	if err != nil {
		return err
	}
	if row == nil {
		return errors.ErrUserNotFound
	}

	if err := s.repo.Delete(accountID, id); err != nil {
		s.logger.Error("failed to delete user", "user_id", id, "error", err)
		return err
	}

	s.publish(ctx, events.EventTypeUserDeleted, actorID, fmt.Sprintf("deleted user %s", row.Email))
	return nil
}

// ResetPassword sets a new password for another user, enforcing the same
// complexity policy as signup.
func (s *Service) ResetPassword(ctx context.Context, actorID, accountID, id int64, dto ResetPasswordDTO) error {
	row, err := s.repo.GetByID(accountID, id)
	if err != nil {
		return err
	}
	if row == nil {
		return errors.ErrUserNotFound
	}

	if err := validation.ValidatePasswordComplexity(dto.Password, row.Email); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePasswordHash(id, string(hash)); err != nil {
		s.logger.Error("failed to reset password", "user_id", id, "error", err)
		return err
	}

	s.publish(ctx, events.EventTypePasswordReset, actorID, fmt.Sprintf("reset password for user %d", id))
	s.logger.Info("password reset", "user_id", id, "actor_id", actorID)
	return nil
}

func (s *Service) GetRoles() ([]*Role, error) {
	rows, err := s.repo.GetRoles()
	if err != nil {
		return nil, err
	}

	roles := make([]*Role, 0, len(rows))
	for _, row := range rows {
		roles = append(roles, roleFromDataModel(row))
	}
	return roles, nil
}

// ReplaceRoles swaps the user's whole role assignment set for the submitted
// one. Duplicate (role, bin) pairs in the request collapse to one row.
func (s *Service) ReplaceRoles(ctx context.Context, actorID, accountID, id int64, dto ReplaceRolesDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	row, err := s.repo.GetByID(accountID, id)
	if err != nil {
		return err
	}
	if row == nil {
		return errors.ErrUserNotFound
	}

	type assignmentKey struct {
		RoleID int64
		BinID  int64 // 0 stands in for NULL
	}
	seen := make(map[assignmentKey]bool)
	assignments := make([]roleDatamodel.UserRole, 0, len(dto.RoleIDs))
	for _, a := range dto.RoleIDs {
		exists, err := s.repo.RoleExists(a.RoleID)
		if err != nil {
			return err
		}
		if !exists {
			return errors.NewNotFoundError(fmt.Sprintf("role %d not found", a.RoleID), errors.ErrCodeRoleNotFound)
		}

		key := assignmentKey{RoleID: a.RoleID}
		if a.BinID != nil {
			key.BinID = *a.BinID
		}
		if seen[key] {
			continue
		}
		seen[key] = true

		assignments = append(assignments, roleDatamodel.UserRole{
			UserID:    id,
			RoleID:    a.RoleID,
			BinID:     a.BinID,
			GrantedBy: &actorID,
		})
	}

	if err := s.repo.ReplaceUserRoles(id, assignments); err != nil {
		s.logger.Error("failed to replace user roles", "user_id", id, "error", err)
		return err
	}

	s.publish(ctx, events.EventTypeUserRolesReplaced, actorID,
		fmt.Sprintf("replaced roles of user %d with %d assignments", id, len(assignments)))
	return nil
}

func (s *Service) publish(ctx context.Context, eventType string, actorID int64, details string) {
	if s.eventBus == nil {
		return
	}
	event := events.NewActivityEvent(eventType, actorID, details)
	if err := s.eventBus.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish event", "event_type", eventType, "error", err)
	}
}
