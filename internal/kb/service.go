package kb

import (
	"log/slog"

	errors "github.com/bcits/ticketdesk/internal"
	kbDatamodel "github.com/bcits/ticketdesk/internal/core/datamodel/kb"
)

type RepositoryAPI interface {
	GetAll(accountID int64) ([]*kbDatamodel.KBItem, error)
	GetByID(accountID, id int64) (*kbDatamodel.KBItem, error)
	Create(item *kbDatamodel.KBItem) error
	Delete(accountID, id int64) error
	TicketExists(accountID, ticketID int64) (bool, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetAll(accountID int64) ([]*Item, error) {
	rows, err := s.repo.GetAll(accountID)
	if err != nil {
		s.logger.Error("failed to list kb items", "account_id", accountID, "error", err)
		return nil, err
	}

	items := make([]*Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, FromDataModel(row))
	}
	return items, nil
}

func (s *Service) GetByID(accountID, id int64) (*Item, error) {
	row, err := s.repo.GetByID(accountID, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, errors.ErrKBItemNotFound
	}
	return FromDataModel(row), nil
}

func (s *Service) Create(authorID, accountID int64, dto CreateItemDTO) (*Item, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if dto.SourceTicketID != nil {
		exists, err := s.repo.TicketExists(accountID, *dto.SourceTicketID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, errors.ErrTicketNotFound
		}
	}

	category := dto.Category
	if category == "" {
		category = DefaultCategory
	}

	row := &kbDatamodel.KBItem{
		Title:          dto.Title,
		Content:        dto.Content,
		Category:       category,
		AuthorID:       authorID,
		SourceTicketID: dto.SourceTicketID,
		AccountID:      accountID,
	}
	if err := s.repo.Create(row); err != nil {
		s.logger.Error("failed to create kb item", "error", err)
		return nil, err
	}

	s.logger.Info("kb item created", "kb_item_id", row.ID, "account_id", accountID)
	return FromDataModel(row), nil
}

func (s *Service) Delete(accountID, id int64) error {
	row, err := s.repo.GetByID(accountID, id)
	if err != nil {
		return err
	}
	if row == nil {
		return errors.ErrKBItemNotFound
	}
	return s.repo.Delete(accountID, id)
}
