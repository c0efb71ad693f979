package postgres

import (
	kbDatamodel "github.com/bcits/ticketdesk/internal/core/datamodel/kb"
	"github.com/bcits/ticketdesk/internal/kb"
	"gorm.io/gorm"
)

type KBRepository struct {
	db *gorm.DB
}

func NewKBRepository(db *gorm.DB) kb.RepositoryAPI {
	return &KBRepository{db: db}
}

func (r *KBRepository) GetAll(accountID int64) ([]*kbDatamodel.KBItem, error) {
	var items []*kbDatamodel.KBItem
	err := r.db.Where("account_id = ?", accountID).
		Order("created_time DESC").
		Find(&items).Error
	return items, err
}

func (r *KBRepository) GetByID(accountID, id int64) (*kbDatamodel.KBItem, error) {
	var item kbDatamodel.KBItem
	err := r.db.Where("id = ? AND account_id = ?", id, accountID).First(&item).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *KBRepository) Create(item *kbDatamodel.KBItem) error {
	return r.db.Create(item).Error
}

func (r *KBRepository) Delete(accountID, id int64) error {
	return r.db.Exec("DELETE FROM kb_items WHERE id = ? AND account_id = ?", id, accountID).Error
}

func (r *KBRepository) TicketExists(accountID, ticketID int64) (bool, error) {
	var count int64
	err := r.db.Table("tickets").
		Where("id = ? AND account_id = ?", ticketID, accountID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
