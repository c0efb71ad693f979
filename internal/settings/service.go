package settings

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	errors "github.com/bcits/ticketdesk/internal"
	"github.com/bcits/ticketdesk/internal/core/common/validation"
	"github.com/bcits/ticketdesk/internal/core/events"
)

type RepositoryAPI interface {
	GetPasswordHash(userID int64) (string, error)
	UpdatePasswordHash(userID int64, hash string) error
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

// ChangePassword verifies the caller's current password before accepting a
// new one under the standard complexity policy.
func (s *Service) ChangePassword(ctx context.Context, userID int64, email string, dto ChangePasswordDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	currentHash, err := s.repo.GetPasswordHash(userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(currentHash), []byte(dto.CurrentPassword)) != nil {
		return errors.NewUnauthorizedError("current password is incorrect", errors.ErrCodeInvalidCredentials)
	}

	if err := validation.ValidatePasswordComplexity(dto.NewPassword, email); err != nil {
		return err
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(dto.NewPassword), s.bcryptCost)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePasswordHash(userID, string(newHash)); err != nil {
		s.logger.Error("failed to change password", "user_id", userID, "error", err)
		return err
	}

	if s.eventBus != nil {
		event := events.NewActivityEvent(events.EventTypePasswordReset, userID,
			fmt.Sprintf("user %d changed own password", userID))
		if err := s.eventBus.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish password change event", "error", err)
		}
	}

	s.logger.Info("password changed", "user_id", userID)
	return nil
}
