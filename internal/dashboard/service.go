package dashboard

import (
	"log/slog"
	"time"
)

type RepositoryAPI interface {
	CountTickets(accountID int64) (int64, error)
	CountTicketsByStatus(accountID int64, status string) (int64, error)
	CountTicketsCreatedSince(accountID int64, since time.Time) (int64, error)
	CountTicketsOpenSince(accountID int64, since time.Time) (int64, error)
	CountTicketsArchivedSince(accountID int64, since time.Time) (int64, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// GetStats aggregates ticket counts for the account. "Today" is the local
// midnight boundary of the server clock.
func (s *Service) GetStats(accountID int64) (*Stats, error) {
	now := s.now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	stats := &Stats{}
	var err error

	if stats.TotalCreated, err = s.repo.CountTickets(accountID); err != nil {
		s.logger.Error("failed to count tickets", "account_id", accountID, "error", err)
		return nil, err
	}
	if stats.TotalArchived, err = s.repo.CountTicketsByStatus(accountID, "archived"); err != nil {
		return nil, err
	}
	if stats.Open, err = s.repo.CountTicketsByStatus(accountID, "open"); err != nil {
		return nil, err
	}
	if stats.CreatedToday, err = s.repo.CountTicketsCreatedSince(accountID, startOfDay); err != nil {
		return nil, err
	}
	if stats.OpenToday, err = s.repo.CountTicketsOpenSince(accountID, startOfDay); err != nil {
		return nil, err
	}
	if stats.ArchivedToday, err = s.repo.CountTicketsArchivedSince(accountID, startOfDay); err != nil {
		return nil, err
	}

	return stats, nil
}
