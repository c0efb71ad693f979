package postgres

import (
	"github.com/bcits/ticketdesk/internal/bin"
	binDatamodel "github.com/bcits/ticketdesk/internal/core/datamodel/bin"
	"gorm.io/gorm"
)

type BinRepository struct {
	db *gorm.DB
}

func NewBinRepository(db *gorm.DB) bin.RepositoryAPI {
	return &BinRepository{db: db}
}

func (r *BinRepository) GetAll(accountID int64) ([]*binDatamodel.Bin, error) {
	var bins []*binDatamodel.Bin
	err := r.db.Where("account_id = ? AND is_active = ?", accountID, true).
		Order("name ASC").Find(&bins).Error
	return bins, err
}

func (r *BinRepository) GetByID(accountID, id int64) (*binDatamodel.Bin, error) {
	var b binDatamodel.Bin
	err := r.db.Where("id = ? AND account_id = ?", id, accountID).First(&b).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *BinRepository) GetByName(accountID int64, name string) (*binDatamodel.Bin, error) {
	var b binDatamodel.Bin
	err := r.db.Where("account_id = ? AND name = ? AND is_active = ?", accountID, name, true).First(&b).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *BinRepository) Create(b *binDatamodel.Bin) error {
	return r.db.Create(b).Error
}

func (r *BinRepository) Update(b *binDatamodel.Bin) error {
	return r.db.Save(b).Error
}

func (r *BinRepository) SoftDelete(accountID, id int64) error {
	return r.db.Model(&binDatamodel.Bin{}).
		Where("id = ? AND account_id = ?", id, accountID).
		Update("is_active", false).Error
}

func (r *BinRepository) TicketCount(binID int64) (int64, error) {
	var count int64
	err := r.db.Table("tickets").Where("bin_id = ?", binID).Count(&count).Error
	return count, err
}

func (r *BinRepository) UnarchivedTicketCount(binID int64) (int64, error) {
	var count int64
	err := r.db.Table("tickets").
		Where("bin_id = ? AND status <> ?", binID, "archived").
		Count(&count).Error
	return count, err
}

func (r *BinRepository) GetMembers(binID int64) ([]*bin.Member, error) {
	var members []*bin.Member
	query := `SELECT u.id AS user_id, u.email, u.firstname AS first_name, u.lastname AS last_name
	         FROM users u
	         JOIN user_bins ub ON ub.user_id = u.id
	         WHERE ub.bin_id = ?
	         ORDER BY u.id ASC`

	rows, err := r.db.Raw(query, binID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var m bin.Member
		if err := rows.Scan(&m.UserID, &m.Email, &m.FirstName, &m.LastName); err != nil {
			return nil, err
		}
		members = append(members, &m)
	}
	return members, rows.Err()
}
