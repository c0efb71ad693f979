package team

import "time"

type Team struct {
	ID          int64     `gorm:"primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	Description string    `gorm:"column:description"`
	AccountID   int64     `gorm:"column:account_id;not null"`
	IsActive    bool      `gorm:"column:is_active;default:true"`
	CreatedBy   *int64    `gorm:"column:created_by"`
	CreatedTime time.Time `gorm:"column:created_time;autoCreateTime"`
}

func (Team) TableName() string {
	return "teams"
}

type UserTeam struct {
	ID          int64     `gorm:"primaryKey"`
	UserID      int64     `gorm:"column:user_id;not null"`
	TeamID      int64     `gorm:"column:team_id;not null"`
	AssignedBy  *int64    `gorm:"column:assigned_by"`
	CreatedTime time.Time `gorm:"column:created_time;autoCreateTime"`
}

func (UserTeam) TableName() string {
	return "user_teams"
}
