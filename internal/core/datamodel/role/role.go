package role

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// PermissionKeys is the set of permission keys a role carries, stored as a
// JSON array. Order is not significant.
type PermissionKeys []string

func (k PermissionKeys) Value() (driver.Value, error) {
	if k == nil {
		return "[]", nil
	}
	b, err := json.Marshal(k)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (k *PermissionKeys) Scan(src interface{}) error {
	if src == nil {
		*k = PermissionKeys{}
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, k)
	case string:
		return json.Unmarshal([]byte(v), k)
	default:
		return fmt.Errorf("unsupported permission keys type %T", src)
	}
}

func (k PermissionKeys) Contains(key string) bool {
	for _, p := range k {
		if p == key {
			return true
		}
	}
	return false
}

// Role is a global catalog entry; it is not account-scoped.
type Role struct {
	ID          int64          `gorm:"primaryKey"`
	Name        string         `gorm:"column:name;not null"`
	DisplayName string         `gorm:"column:display_name"`
	Description string         `gorm:"column:description"`
	Permissions PermissionKeys `gorm:"column:permissions;type:jsonb"`
	CreatedTime time.Time      `gorm:"column:created_time;autoCreateTime"`
}

func (Role) TableName() string {
	return "roles"
}

// UserRole is a role assignment, optionally scoped to one bin. A NULL bin
// denotes an account-wide grant of the role. (user, role, bin) is unique.
type UserRole struct {
	ID          int64     `gorm:"primaryKey"`
	UserID      int64     `gorm:"column:user_id;not null"`
	RoleID      int64     `gorm:"column:role_id;not null"`
	BinID       *int64    `gorm:"column:bin_id"`
	GrantedBy   *int64    `gorm:"column:granted_by"`
	CreatedTime time.Time `gorm:"column:created_time;autoCreateTime"`
}

func (UserRole) TableName() string {
	return "user_roles"
}
