package ticket

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	errors "github.com/bcits/ticketdesk/internal"
	ticketDatamodel "github.com/bcits/ticketdesk/internal/core/datamodel/ticket"
	"github.com/bcits/ticketdesk/internal/core/events"
)

type ListFilter struct {
	Status string
	BinID  *int64
}

type RepositoryAPI interface {
	GetAll(accountID int64, filter ListFilter) ([]*ticketDatamodel.Ticket, error)
	GetByID(accountID, id int64) (*ticketDatamodel.Ticket, error)
	Create(t *ticketDatamodel.Ticket) error
	Update(t *ticketDatamodel.Ticket) error
	Delete(accountID, id int64) error
	BinExists(accountID, binID int64) (bool, error)
	// Transfer moves the ticket to the target bin and records the transfer
	// log row in a single transaction.
	Transfer(ticketID int64, fromBinID *int64, toBinID, actorID int64, reason *string) error
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

func (s *Service) GetAll(accountID int64, filter ListFilter) ([]*Ticket, error) {
	rows, err := s.repo.GetAll(accountID, filter)
	if err != nil {
		s.logger.Error("failed to list tickets", "account_id", accountID, "error", err)
		return nil, err
	}

	tickets := make([]*Ticket, 0, len(rows))
	for _, row := range rows {
		tickets = append(tickets, FromDataModel(row))
	}
	return tickets, nil
}

func (s *Service) GetByID(accountID, id int64) (*Ticket, error) {
	row, err := s.repo.GetByID(accountID, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, errors.ErrTicketNotFound
	}
	return FromDataModel(row), nil
}

func (s *Service) Create(requesterID, accountID int64, dto CreateTicketDTO) (*Ticket, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if dto.BinID != nil {
		exists, err := s.repo.BinExists(accountID, *dto.BinID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, errors.ErrBinNotFound
		}
	}

	priority := dto.Priority
	if priority == "" {
		priority = PriorityMedium
	}

	row := &ticketDatamodel.Ticket{
		Subject:     dto.Subject,
		Content:     dto.Content,
		Status:      StatusOpen,
		Priority:    priority,
		RequesterID: requesterID,
		BinID:       dto.BinID,
		TeamID:      dto.TeamID,
		AccountID:   accountID,
	}
	if err := s.repo.Create(row); err != nil {
		s.logger.Error("failed to create ticket", "error", err)
		return nil, err
	}

	s.logger.Info("ticket created", "ticket_id", row.ID, "account_id", accountID)
	return FromDataModel(row), nil
}

func (s *Service) Update(accountID, id int64, dto UpdateTicketDTO) (*Ticket, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row, err := s.repo.GetByID(accountID, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, errors.ErrTicketNotFound
	}

	if dto.Subject != nil {
		row.Subject = *dto.Subject
	}
	if dto.Content != nil {
		row.Content = *dto.Content
	}
	if dto.Status != nil {
		row.Status = *dto.Status
		if *dto.Status == StatusArchived && row.ArchivedTime == nil {
			now := time.Now()
			row.ArchivedTime = &now
		}
	}
	if dto.Priority != nil {
		row.Priority = *dto.Priority
	}
	if dto.AssigneeID != nil {
		row.AssigneeID = dto.AssigneeID
	}
	if dto.BinID != nil {
		exists, err := s.repo.BinExists(accountID, *dto.BinID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, errors.ErrBinNotFound
		}
		row.BinID = dto.BinID
	}
	if dto.TeamID != nil {
		row.TeamID = dto.TeamID
	}
	if dto.IsDuplicateOf != nil {
		row.IsDuplicateOf = dto.IsDuplicateOf
	}

	if err := s.repo.Update(row); err != nil {
		s.logger.Error("failed to update ticket", "ticket_id", id, "error", err)
		return nil, err
	}
	return FromDataModel(row), nil
}

// Archive closes the ticket's lifecycle and stamps the archival time.
func (s *Service) Archive(accountID, id int64) (*Ticket, error) {
	row, err := s.repo.GetByID(accountID, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, errors.ErrTicketNotFound
	}

	if row.Status != StatusArchived {
		now := time.Now()
		row.Status = StatusArchived
		row.ArchivedTime = &now
		if err := s.repo.Update(row); err != nil {
			s.logger.Error("failed to archive ticket", "ticket_id", id, "error", err)
			return nil, err
		}
	}
	return FromDataModel(row), nil
}

func (s *Service) Delete(accountID, id int64) error {
	row, err := s.repo.GetByID(accountID, id)
	if err != nil {
		return err
	}
	if row == nil {
		return errors.ErrTicketNotFound
	}
	return s.repo.Delete(accountID, id)
}

// Transfer moves a ticket into another bin of the same account and records
// the move. The bin update and the transfer log row commit atomically.
func (s *Service) Transfer(ctx context.Context, actorID, accountID, id int64, dto TransferTicketDTO) (*Ticket, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row, err := s.repo.GetByID(accountID, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, errors.ErrTicketNotFound
	}

	exists, err := s.repo.BinExists(accountID, dto.BinID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errors.ErrBinNotFound
	}

	if err := s.repo.Transfer(row.ID, row.BinID, dto.BinID, actorID, dto.Reason); err != nil {
		s.logger.Error("ticket transfer failed", "ticket_id", id, "to_bin", dto.BinID, "error", err)
		return nil, err
	}

	if s.eventBus != nil {
		event := events.NewActivityEvent(events.EventTypeTicketTransferred, actorID,
			fmt.Sprintf("transferred ticket %d to bin %d", row.ID, dto.BinID))
		if err := s.eventBus.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish transfer event", "error", err)
		}
	}

	s.logger.Info("ticket transferred", "ticket_id", id, "to_bin", dto.BinID, "actor_id", actorID)
	return s.GetByID(accountID, id)
}
