package postgres

import (
	teamDatamodel "github.com/bcits/ticketdesk/internal/core/datamodel/team"
	"github.com/bcits/ticketdesk/internal/team"
	"gorm.io/gorm"
)

type TeamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) team.RepositoryAPI {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) GetAll(accountID int64) ([]*teamDatamodel.Team, error) {
	var teams []*teamDatamodel.Team
	err := r.db.Where("account_id = ? AND is_active = ?", accountID, true).
		Order("name ASC").Find(&teams).Error
	return teams, err
}

func (r *TeamRepository) GetByID(accountID, id int64) (*teamDatamodel.Team, error) {
	var t teamDatamodel.Team
	err := r.db.Where("id = ? AND account_id = ?", id, accountID).First(&t).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *TeamRepository) GetByName(accountID int64, name string) (*teamDatamodel.Team, error) {
	var t teamDatamodel.Team
	err := r.db.Where("account_id = ? AND name = ? AND is_active = ?", accountID, name, true).First(&t).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *TeamRepository) Create(t *teamDatamodel.Team) error {
	return r.db.Create(t).Error
}

func (r *TeamRepository) Update(t *teamDatamodel.Team) error {
	return r.db.Save(t).Error
}

func (r *TeamRepository) SoftDelete(accountID, id int64) error {
	return r.db.Model(&teamDatamodel.Team{}).
		Where("id = ? AND account_id = ?", id, accountID).
		Update("is_active", false).Error
}

func (r *TeamRepository) MemberCount(teamID int64) (int64, error) {
	var count int64
	err := r.db.Table("user_teams").Where("team_id = ?", teamID).Count(&count).Error
	return count, err
}
