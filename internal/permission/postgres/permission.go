package postgres

import (
	permissionDatamodel "github.com/bcits/ticketdesk/internal/core/datamodel/permission"
	userDatamodel "github.com/bcits/ticketdesk/internal/core/datamodel/user"
	"github.com/bcits/ticketdesk/internal/permission"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PermissionRepository struct {
	db *gorm.DB
}

func NewPermissionRepository(db *gorm.DB) permission.RepositoryAPI {
	return &PermissionRepository{db: db}
}

func (r *PermissionRepository) GetActiveDefinitions() ([]*permissionDatamodel.PermissionDefinition, error) {
	var defs []*permissionDatamodel.PermissionDefinition
	err := r.db.Where("is_active = ?", true).Order("display_order ASC").Find(&defs).Error
	return defs, err
}

func (r *PermissionRepository) GetAccountUsers(accountID int64) ([]*userDatamodel.User, error) {
	var users []*userDatamodel.User
	err := r.db.Where("account_id = ?", accountID).Order("id ASC").Find(&users).Error
	return users, err
}

func (r *PermissionRepository) GetUserPermissions(userID int64) ([]*permissionDatamodel.UserPermission, error) {
	var grants []*permissionDatamodel.UserPermission
	err := r.db.Where("user_id = ?", userID).Find(&grants).Error
	return grants, err
}

func (r *PermissionRepository) GetUserBins(userID int64) ([]int64, error) {
	var binIDs []int64
	err := r.db.Table("user_bins").Where("user_id = ?", userID).Order("bin_id ASC").Pluck("bin_id", &binIDs).Error
	return binIDs, err
}

func (r *PermissionRepository) GetUserTeams(userID int64) ([]int64, error) {
	var teamIDs []int64
	err := r.db.Table("user_teams").Where("user_id = ?", userID).Order("team_id ASC").Pluck("team_id", &teamIDs).Error
	return teamIDs, err
}

func (r *PermissionRepository) UserBelongsToAccount(userID, accountID int64) (bool, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).
		Where("id = ? AND account_id = ?", userID, accountID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpsertPermission overwrites the grant value in place; (user_id,
// permission_key) is unique so repeated updates are idempotent.
func (r *PermissionRepository) UpsertPermission(up *permissionDatamodel.UserPermission) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "permission_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"permission_value", "granted_by", "updated_time"}),
	}).Create(up).Error
}

// ReplaceUserBins swaps the user's bin memberships for the given set. An
// empty set clears every membership; a duplicated id in the payload
// collapses to one row.
func (r *PermissionRepository) ReplaceUserBins(userID int64, binIDs []int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM user_bins WHERE user_id = ?", userID).Error; err != nil {
			return err
		}
		for _, binID := range binIDs {
			err := tx.Exec("INSERT INTO user_bins (user_id, bin_id) VALUES (?, ?) ON CONFLICT (user_id, bin_id) DO NOTHING", userID, binID).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PermissionRepository) ReplaceUserTeams(userID int64, teamIDs []int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM user_teams WHERE user_id = ?", userID).Error; err != nil {
			return err
		}
		for _, teamID := range teamIDs {
			err := tx.Exec("INSERT INTO user_teams (user_id, team_id) VALUES (?, ?) ON CONFLICT (user_id, team_id) DO NOTHING", userID, teamID).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
