package activity

import "time"

// ActivityLog is an append-only audit row. The application never updates or
// deletes entries.
type ActivityLog struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    int64     `gorm:"column:user_id;not null"`
	Action    string    `gorm:"column:action;not null"`
	Details   string    `gorm:"column:details"`
	Timestamp time.Time `gorm:"column:timestamp;autoCreateTime"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}
