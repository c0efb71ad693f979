package usermgmt

import (
	"time"

	roleDatamodel "github.com/bcits/ticketdesk/internal/core/datamodel/role"
	userDatamodel "github.com/bcits/ticketdesk/internal/core/datamodel/user"
)

type User struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"firstname"`
	LastName    string    `json:"lastname"`
	IsActive    bool      `json:"is_active"`
	CreatedTime time.Time `json:"created_time"`
}

func FromDataModel(row *userDatamodel.User) *User {
	return &User{
		ID:          row.ID,
		Email:       row.Email,
		FirstName:   row.FirstName,
		LastName:    row.LastName,
		IsActive:    row.IsActive,
		CreatedTime: row.CreatedTime,
	}
}

type Role struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
}

func roleFromDataModel(row *roleDatamodel.Role) *Role {
	return &Role{
		ID:          row.ID,
		Name:        row.Name,
		DisplayName: row.DisplayName,
		Description: row.Description,
		Permissions: row.Permissions,
	}
}
