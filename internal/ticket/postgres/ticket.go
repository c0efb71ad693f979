package postgres

import (
	ticketDatamodel "github.com/bcits/ticketdesk/internal/core/datamodel/ticket"
	"github.com/bcits/ticketdesk/internal/ticket"
	"gorm.io/gorm"
)

type TicketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) ticket.RepositoryAPI {
	return &TicketRepository{db: db}
}

func (r *TicketRepository) GetAll(accountID int64, filter ticket.ListFilter) ([]*ticketDatamodel.Ticket, error) {
	query := r.db.Where("account_id = ?", accountID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.BinID != nil {
		query = query.Where("bin_id = ?", *filter.BinID)
	}

	var tickets []*ticketDatamodel.Ticket
	err := query.Order("created_time DESC").Find(&tickets).Error
	return tickets, err
}

func (r *TicketRepository) GetByID(accountID, id int64) (*ticketDatamodel.Ticket, error) {
	var t ticketDatamodel.Ticket
	err := r.db.Where("id = ? AND account_id = ?", id, accountID).First(&t).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *TicketRepository) Create(t *ticketDatamodel.Ticket) error {
	return r.db.Create(t).Error
}

func (r *TicketRepository) Update(t *ticketDatamodel.Ticket) error {
	return r.db.Save(t).Error
}

func (r *TicketRepository) Delete(accountID, id int64) error {
	return r.db.Exec("DELETE FROM tickets WHERE id = ? AND account_id = ?", id, accountID).Error
}

func (r *TicketRepository) BinExists(accountID, binID int64) (bool, error) {
	var count int64
	err := r.db.Table("bins").
		Where("id = ? AND account_id = ? AND is_active = ?", binID, accountID, true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Transfer updates the ticket's bin and appends the transfer log row inside
// one transaction so the move and its audit record never diverge.
func (r *TicketRepository) Transfer(ticketID int64, fromBinID *int64, toBinID, actorID int64, reason *string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&ticketDatamodel.Ticket{}).
			Where("id = ?", ticketID).
			Update("bin_id", toBinID).Error; err != nil {
			return err
		}

		transfer := &ticketDatamodel.TicketTransfer{
			TicketID:      ticketID,
			FromBinID:     fromBinID,
			ToBinID:       toBinID,
			TransferredBy: actorID,
			Reason:        reason,
		}
		return tx.Create(transfer).Error
	})
}
