package postgres

import (
	userDatamodel "github.com/bcits/ticketdesk/internal/core/datamodel/user"
	"github.com/bcits/ticketdesk/internal/settings"
	"gorm.io/gorm"
)

type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) settings.RepositoryAPI {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) GetPasswordHash(userID int64) (string, error) {
	var user userDatamodel.User
	err := r.db.Select("password_hash").Where("id = ?", userID).First(&user).Error
	if err != nil {
		return "", err
	}
	return user.PasswordHash, nil
}

func (r *SettingsRepository) UpdatePasswordHash(userID int64, hash string) error {
	return r.db.Model(&userDatamodel.User{}).
		Where("id = ?", userID).
		Update("password_hash", hash).Error
}
