package account

import (
	"context"
	"fmt"
	"log/slog"

	errors "github.com/bcits/ticketdesk/internal"
	accountDatamodel "github.com/bcits/ticketdesk/internal/core/datamodel/account"
	"github.com/bcits/ticketdesk/internal/core/events"
)

type RepositoryAPI interface {
	GetAll() ([]*accountDatamodel.Account, error)
	GetByID(id int64) (*accountDatamodel.Account, error)
	GetByName(name string) (*accountDatamodel.Account, error)
	Create(account *accountDatamodel.Account) error
	Update(account *accountDatamodel.Account) error
	Delete(id int64) error
	Counts(accountID int64) (users, tickets, bins int64, err error)
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

func (s *Service) GetAll() ([]*Account, error) {
	rows, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list accounts", "error", err)
		return nil, err
	}

	accounts := make([]*Account, 0, len(rows))
	for _, row := range rows {
		acc := FromDataModel(row)
		if users, tickets, bins, err := s.repo.Counts(row.ID); err == nil {
			acc.UserCount, acc.TicketCount, acc.BinCount = users, tickets, bins
		}
		accounts = append(accounts, acc)
	}
	return accounts, nil
}

func (s *Service) GetByID(id int64) (*Account, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, errors.ErrAccountNotFound
	}

	acc := FromDataModel(row)
	if users, tickets, bins, err := s.repo.Counts(row.ID); err == nil {
		acc.UserCount, acc.TicketCount, acc.BinCount = users, tickets, bins
	}
	return acc, nil
}

func (s *Service) Create(ctx context.Context, actorID int64, dto CreateAccountDTO) (*Account, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByName(dto.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.NewConflictError(
			fmt.Sprintf("account %q already exists", dto.Name),
			errors.ErrCodeDuplicateAccountName)
	}

	row := &accountDatamodel.Account{
		Name:        dto.Name,
		DisplayName: dto.DisplayName,
		IsActive:    true,
		Settings:    dto.Settings,
		CreatedBy:   &actorID,
	}
	if err := s.repo.Create(row); err != nil {
		s.logger.Error("failed to create account", "name", dto.Name, "error", err)
		return nil, err
	}

	s.publish(ctx, events.EventTypeAccountCreated, actorID, fmt.Sprintf("created account %q", row.Name))
	s.logger.Info("account created", "account_id", row.ID, "name", row.Name)
	return FromDataModel(row), nil
}

func (s *Service) Update(ctx context.Context, actorID, id int64, dto UpdateAccountDTO) (*Account, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, errors.ErrAccountNotFound
	}

	if dto.DisplayName != nil {
		row.DisplayName = *dto.DisplayName
	}
	if dto.IsActive != nil {
		row.IsActive = *dto.IsActive
	}
	if dto.Settings != nil {
		row.Settings = *dto.Settings
	}

	if err := s.repo.Update(row); err != nil {
		s.logger.Error("failed to update account", "account_id", id, "error", err)
		return nil, err
	}

	s.publish(ctx, events.EventTypeAccountUpdated, actorID, fmt.Sprintf("updated account %q", row.Name))
	return FromDataModel(row), nil
}

// Delete removes a tenant. The default account is protected; everything
// under a deleted account cascades at the schema level.
func (s *Service) Delete(ctx context.Context, actorID, id int64) error {
	if id == ProtectedAccountID {
		return errors.ErrProtectedAccount
	}

	row, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if row == nil {
		return errors.ErrAccountNotFound
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete account", "account_id", id, "error", err)
		return err
	}

	s.publish(ctx, events.EventTypeAccountDeleted, actorID, fmt.Sprintf("deleted account %q", row.Name))
	s.logger.Info("account deleted", "account_id", id, "name", row.Name)
	return nil
}

func (s *Service) publish(ctx context.Context, eventType string, actorID int64, details string) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(ctx, events.NewActivityEvent(eventType, actorID, details)); err != nil {
		s.logger.Warn("failed to publish account event", "event_type", eventType, "error", err)
	}
}
