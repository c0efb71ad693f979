package bin

import (
	"context"
	"fmt"
	"log/slog"

	errors "github.com/bcits/ticketdesk/internal"
	binDatamodel "github.com/bcits/ticketdesk/internal/core/datamodel/bin"
	"github.com/bcits/ticketdesk/internal/core/events"
)

type RepositoryAPI interface {
	GetAll(accountID int64) ([]*binDatamodel.Bin, error)
	GetByID(accountID, id int64) (*binDatamodel.Bin, error)
	GetByName(accountID int64, name string) (*binDatamodel.Bin, error)
	Create(bin *binDatamodel.Bin) error
	Update(bin *binDatamodel.Bin) error
	SoftDelete(accountID, id int64) error
	TicketCount(binID int64) (int64, error)
	UnarchivedTicketCount(binID int64) (int64, error)
	GetMembers(binID int64) ([]*Member, error)
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

func (s *Service) GetAll(accountID int64) ([]*Bin, error) {
	rows, err := s.repo.GetAll(accountID)
	if err != nil {
		s.logger.Error("failed to list bins", "account_id", accountID, "error", err)
		return nil, err
	}

	bins := make([]*Bin, 0, len(rows))
	for _, row := range rows {
		b := FromDataModel(row)
		if count, err := s.repo.TicketCount(row.ID); err == nil {
			b.TicketCount = count
		}
		bins = append(bins, b)
	}
	return bins, nil
}

func (s *Service) GetByID(accountID, id int64) (*Bin, error) {
	row, err := s.repo.GetByID(accountID, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, errors.ErrBinNotFound
	}

	b := FromDataModel(row)
	if count, err := s.repo.TicketCount(row.ID); err == nil {
		b.TicketCount = count
	}
	return b, nil
}

func (s *Service) GetMembers(accountID, id int64) ([]*Member, error) {
	row, err := s.repo.GetByID(accountID, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, errors.ErrBinNotFound
	}
	return s.repo.GetMembers(id)
}

func (s *Service) Create(ctx context.Context, actorID, accountID int64, dto CreateBinDTO) (*Bin, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByName(accountID, dto.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.NewConflictError(
			fmt.Sprintf("bin %q already exists in this account", dto.Name),
			errors.ErrCodeDuplicateBinName)
	}

	color := dto.Color
	if color == "" {
		color = DefaultColor
	}

	row := &binDatamodel.Bin{
		Name:        dto.Name,
		Description: dto.Description,
		Color:       color,
		ManagerID:   dto.ManagerID,
		AccountID:   accountID,
		IsActive:    true,
		CreatedBy:   &actorID,
	}
	if err := s.repo.Create(row); err != nil {
		s.logger.Error("failed to create bin", "name", dto.Name, "error", err)
		return nil, err
	}

	s.publish(ctx, events.EventTypeBinCreated, actorID, fmt.Sprintf("created bin %q", row.Name))
	s.logger.Info("bin created", "bin_id", row.ID, "account_id", accountID)
	return FromDataModel(row), nil
}

func (s *Service) Update(ctx context.Context, actorID, accountID, id int64, dto UpdateBinDTO) (*Bin, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row, err := s.repo.GetByID(accountID, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, errors.ErrBinNotFound
	}

	if dto.Name != nil && *dto.Name != row.Name {
		existing, err := s.repo.GetByName(accountID, *dto.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, errors.NewConflictError(
				fmt.Sprintf("bin %q already exists in this account", *dto.Name),
				errors.ErrCodeDuplicateBinName)
		}
		row.Name = *dto.Name
	}
	if dto.Description != nil {
		row.Description = *dto.Description
	}
	if dto.Color != nil {
		row.Color = *dto.Color
	}
	if dto.ManagerID != nil {
		row.ManagerID = dto.ManagerID
	}
	if dto.IsActive != nil {
		row.IsActive = *dto.IsActive
	}

	if err := s.repo.Update(row); err != nil {
		s.logger.Error("failed to update bin", "bin_id", id, "error", err)
		return nil, err
	}

	s.publish(ctx, events.EventTypeBinUpdated, actorID, fmt.Sprintf("updated bin %q", row.Name))
	return FromDataModel(row), nil
}

// Delete deactivates a bin. A bin still holding un-archived tickets cannot
// be removed; tickets must be transferred or archived first.
func (s *Service) Delete(ctx context.Context, actorID, accountID, id int64) error {
	row, err := s.repo.GetByID(accountID, id)
	if err != nil {
		return err
	}
	if row == nil {
		return errors.ErrBinNotFound
	}

	active, err := s.repo.UnarchivedTicketCount(id)
	if err != nil {
		return err
	}
	if active > 0 {
		return errors.NewConflictError(
			fmt.Sprintf("bin %q still has %d active tickets", row.Name, active),
			errors.ErrCodeBinHasActiveTickets)
	}

	if err := s.repo.SoftDelete(accountID, id); err != nil {
		s.logger.Error("failed to delete bin", "bin_id", id, "error", err)
		return err
	}

	s.publish(ctx, events.EventTypeBinDeleted, actorID, fmt.Sprintf("deleted bin %q", row.Name))
	s.logger.Info("bin deleted", "bin_id", id, "account_id", accountID)
	return nil
}

func (s *Service) publish(ctx context.Context, eventType string, actorID int64, details string) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(ctx, events.NewActivityEvent(eventType, actorID, details)); err != nil {
		s.logger.Warn("failed to publish bin event", "event_type", eventType, "error", err)
	}
}
