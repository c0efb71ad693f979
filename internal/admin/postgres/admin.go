package postgres

import (
	"time"

	"github.com/bcits/ticketdesk/internal/admin"
	activityDatamodel "github.com/bcits/ticketdesk/internal/core/datamodel/activity"
	userDatamodel "github.com/bcits/ticketdesk/internal/core/datamodel/user"
	"gorm.io/gorm"
)

type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) admin.RepositoryAPI {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) GetUsers(accountID int64) ([]*userDatamodel.User, error) {
	var users []*userDatamodel.User
	err := r.db.Where("account_id = ?", accountID).
		Order("email ASC").
		Find(&users).Error
	return users, err
}

func (r *AdminRepository) GetUserByID(accountID, id int64) (*userDatamodel.User, error) {
	var user userDatamodel.User
	err := r.db.Where("id = ? AND account_id = ?", id, accountID).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *AdminRepository) UpdateUserRole(accountID, id int64, role string) error {
	return r.db.Model(&userDatamodel.User{}).
		Where("id = ? AND account_id = ?", id, accountID).
		Update("role", role).Error
}

func (r *AdminRepository) GetRecentActivity(since time.Time, limit int) ([]*activityDatamodel.ActivityLog, error) {
	var entries []*activityDatamodel.ActivityLog
	err := r.db.Where("timestamp >= ?", since).
		Order("timestamp DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

func (r *AdminRepository) CountUsersByRole(accountID int64) (map[string]int64, error) {
	type roleCount struct {
		Role  string
		Count int64
	}
	var rows []roleCount
	err := r.db.Table("users").
		Select("role, COUNT(1) as count").
		Where("account_id = ?", accountID).
		Group("role").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Role] = row.Count
	}
	return counts, nil
}

func (r *AdminRepository) CountUsersByActive(accountID int64) (active, inactive int64, err error) {
	err = r.db.Table("users").
		Where("account_id = ? AND is_active = ?", accountID, true).
		Count(&active).Error
	if err != nil {
		return 0, 0, err
	}
	err = r.db.Table("users").
		Where("account_id = ? AND is_active = ?", accountID, false).
		Count(&inactive).Error
	return active, inactive, err
}
