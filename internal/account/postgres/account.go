package postgres

import (
	"github.com/bcits/ticketdesk/internal/account"
	accountDatamodel "github.com/bcits/ticketdesk/internal/core/datamodel/account"
	"gorm.io/gorm"
)

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) account.RepositoryAPI {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) GetAll() ([]*accountDatamodel.Account, error) {
	var accounts []*accountDatamodel.Account
	err := r.db.Order("id ASC").Find(&accounts).Error
	return accounts, err
}

func (r *AccountRepository) GetByID(id int64) (*accountDatamodel.Account, error) {
	var acc accountDatamodel.Account
	err := r.db.Where("id = ?", id).First(&acc).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &acc, nil
}

func (r *AccountRepository) GetByName(name string) (*accountDatamodel.Account, error) {
	var acc accountDatamodel.Account
	err := r.db.Where("name = ?", name).First(&acc).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &acc, nil
}

func (r *AccountRepository) Create(acc *accountDatamodel.Account) error {
	return r.db.Create(acc).Error
}

func (r *AccountRepository) Update(acc *accountDatamodel.Account) error {
	return r.db.Save(acc).Error
}

func (r *AccountRepository) Delete(id int64) error {
	return r.db.Exec("DELETE FROM accounts WHERE id = ?", id).Error
}

func (r *AccountRepository) Counts(accountID int64) (int64, int64, int64, error) {
	var users, tickets, bins int64
	if err := r.db.Table("users").Where("account_id = ?", accountID).Count(&users).Error; err != nil {
		return 0, 0, 0, err
	}
	if err := r.db.Table("tickets").Where("account_id = ?", accountID).Count(&tickets).Error; err != nil {
		return 0, 0, 0, err
	}
	if err := r.db.Table("bins").Where("account_id = ?", accountID).Count(&bins).Error; err != nil {
		return 0, 0, 0, err
	}
	return users, tickets, bins, nil
}
