package postgres

import (
	roleDatamodel "github.com/bcits/ticketdesk/internal/core/datamodel/role"
	userDatamodel "github.com/bcits/ticketdesk/internal/core/datamodel/user"
	"github.com/bcits/ticketdesk/internal/usermgmt"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) usermgmt.RepositoryAPI {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetAll(accountID int64) ([]*userDatamodel.User, error) {
	var users []*userDatamodel.User
	err := r.db.Where("account_id = ?", accountID).
		Order("email ASC").
		Find(&users).Error
	return users, err
}

func (r *UserRepository) GetByID(accountID, id int64) (*userDatamodel.User, error) {
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

func (r *UserRepository) GetByEmail(accountID int64, email string) (*userDatamodel.User, error) {
	var user userDatamodel.User
	err := r.db.Where("email = ? AND account_id = ?", email, accountID).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Create(user *userDatamodel.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) Update(user *userDatamodel.User) error {
	return r.db.Save(user).Error
}

func (r *UserRepository) Delete(accountID, id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM user_roles WHERE user_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Exec("DELETE FROM users WHERE id = ? AND account_id = ?", id, accountID).Error
	})
}

func (r *UserRepository) UpdatePasswordHash(userID int64, hash string) error {
	return r.db.Model(&userDatamodel.User{}).
		Where("id = ?", userID).
		Update("password_hash", hash).Error
}

func (r *UserRepository) GetRoles() ([]*roleDatamodel.Role, error) {
	var roles []*roleDatamodel.Role
	err := r.db.Order("name ASC").Find(&roles).Error
	return roles, err
}

func (r *UserRepository) RoleExists(roleID int64) (bool, error) {
	var count int64
	err := r.db.Table("roles").Where("id = ?", roleID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ReplaceUserRoles swaps the user's assignment set inside one transaction.
// The (user, role, bin) uniqueness lives in an expression index over
// COALESCE(bin_id, 0), which ON CONFLICT cannot target with a column list;
// callers dedupe the set before handing it over, so plain inserts after the
// delete are safe.
func (r *UserRepository) ReplaceUserRoles(userID int64, assignments []roleDatamodel.UserRole) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM user_roles WHERE user_id = ?", userID).Error; err != nil {
			return err
		}
		for i := range assignments {
			if err := tx.Create(&assignments[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
