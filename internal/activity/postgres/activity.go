package postgres

import (
	"time"

	"github.com/bcits/ticketdesk/internal/activity"
	activityDatamodel "github.com/bcits/ticketdesk/internal/core/datamodel/activity"
	"gorm.io/gorm"
)

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) activity.RepositoryAPI {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Create(entry *activityDatamodel.ActivityLog) error {
	return r.db.Create(entry).Error
}

func (r *ActivityRepository) GetRecent(since time.Time, limit int) ([]*activityDatamodel.ActivityLog, error) {
	var entries []*activityDatamodel.ActivityLog
	err := r.db.Where("timestamp >= ?", since).
		Order("timestamp DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
