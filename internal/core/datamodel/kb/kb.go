package kb

import "time"

type KBItem struct {
	ID             int64     `gorm:"primaryKey"`
	Title          string    `gorm:"column:title;not null"`
	Content        string    `gorm:"column:content;not null"`
	Category       string    `gorm:"column:category;default:General"`
	AuthorID       int64     `gorm:"column:author_id;not null"`
	SourceTicketID *int64    `gorm:"column:source_ticket_id"`
	AccountID      int64     `gorm:"column:account_id;not null"`
	CreatedTime    time.Time `gorm:"column:created_time;autoCreateTime"`
}

func (KBItem) TableName() string {
	return "kb_items"
}
