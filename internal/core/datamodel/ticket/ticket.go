package ticket

import "time"

type Ticket struct {
	ID            int64      `gorm:"primaryKey"`
	Subject       string     `gorm:"column:subject;not null"`
	Content       string     `gorm:"column:content;not null"`
	Status        string     `gorm:"column:status;default:open"`
	Priority      string     `gorm:"column:priority;default:medium"`
	RequesterID   int64      `gorm:"column:requester_id;not null"`
	AssigneeID    *int64     `gorm:"column:assignee_id"`
	BinID         *int64     `gorm:"column:bin_id"`
	TeamID        *int64     `gorm:"column:team_id"`
	IsDuplicateOf *int64     `gorm:"column:is_duplicate_of"`
	AccountID     int64      `gorm:"column:account_id;not null"`
	CreatedTime   time.Time  `gorm:"column:created_time;autoCreateTime"`
	UpdatedTime   time.Time  `gorm:"column:updated_time;autoUpdateTime"`
	ArchivedTime  *time.Time `gorm:"column:archived_time"`
}

func (Ticket) TableName() string {
	return "tickets"
}

// TicketTransfer records one bin-to-bin move.
type TicketTransfer struct {
	ID            int64     `gorm:"primaryKey"`
	TicketID      int64     `gorm:"column:ticket_id;not null"`
	FromBinID     *int64    `gorm:"column:from_bin_id"`
	ToBinID       int64     `gorm:"column:to_bin_id;not null"`
	TransferredBy int64     `gorm:"column:transferred_by;not null"`
	Reason        *string   `gorm:"column:reason"`
	CreatedTime   time.Time `gorm:"column:created_time;autoCreateTime"`
}

func (TicketTransfer) TableName() string {
	return "ticket_transfers"
}
