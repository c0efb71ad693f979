package postgres

import (
	"time"

	"github.com/bcits/ticketdesk/internal/dashboard"
	"gorm.io/gorm"
)

type DashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) dashboard.RepositoryAPI {
	return &DashboardRepository{db: db}
}

func (r *DashboardRepository) CountTickets(accountID int64) (int64, error) {
	var count int64
	err := r.db.Table("tickets").Where("account_id = ?", accountID).Count(&count).Error
	return count, err
}

func (r *DashboardRepository) CountTicketsByStatus(accountID int64, status string) (int64, error) {
	var count int64
	err := r.db.Table("tickets").
		Where("account_id = ? AND status = ?", accountID, status).
		Count(&count).Error
	return count, err
}

func (r *DashboardRepository) CountTicketsCreatedSince(accountID int64, since time.Time) (int64, error) {
	var count int64
	err := r.db.Table("tickets").
		Where("account_id = ? AND created_time >= ?", accountID, since).
		Count(&count).Error
	return count, err
}

func (r *DashboardRepository) CountTicketsOpenSince(accountID int64, since time.Time) (int64, error) {
	var count int64
	err := r.db.Table("tickets").
		Where("account_id = ? AND status = ? AND created_time >= ?", accountID, "open", since).
		Count(&count).Error
	return count, err
}

func (r *DashboardRepository) CountTicketsArchivedSince(accountID int64, since time.Time) (int64, error) {
	var count int64
	err := r.db.Table("tickets").
		Where("account_id = ? AND archived_time >= ?", accountID, since).
		Count(&count).Error
	return count, err
}
