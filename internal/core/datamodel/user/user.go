package user

import "time"

type User struct {
	ID           int64     `gorm:"primaryKey"`
	Email        string    `gorm:"column:email;not null"`
	FirstName    string    `gorm:"column:firstname"`
	LastName     string    `gorm:"column:lastname"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	Role         string    `gorm:"column:role;default:user"`
	AccountID    int64     `gorm:"column:account_id;not null"`
	IsActive     bool      `gorm:"column:is_active;default:true"`
	CreatedTime  time.Time `gorm:"column:created_time;autoCreateTime"`
	UpdatedTime  time.Time `gorm:"column:updated_time;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
