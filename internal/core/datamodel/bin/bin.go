package bin

import "time"

type Bin struct {
	ID          int64     `gorm:"primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	Description string    `gorm:"column:description"`
	Color       string    `gorm:"column:color;default:#6B7280"`
	ManagerID   *int64    `gorm:"column:manager_id"`
	AccountID   int64     `gorm:"column:account_id;not null"`
	IsActive    bool      `gorm:"column:is_active;default:true"`
	CreatedBy   *int64    `gorm:"column:created_by"`
	CreatedTime time.Time `gorm:"column:created_time;autoCreateTime"`
}

func (Bin) TableName() string {
	return "bins"
}

// UserBin is a direct bin assignment made from the permissions matrix.
type UserBin struct {
	ID          int64     `gorm:"primaryKey"`
	UserID      int64     `gorm:"column:user_id;not null"`
	BinID       int64     `gorm:"column:bin_id;not null"`
	AssignedBy  *int64    `gorm:"column:assigned_by"`
	CreatedTime time.Time `gorm:"column:created_time;autoCreateTime"`
}

func (UserBin) TableName() string {
	return "user_bins"
}
