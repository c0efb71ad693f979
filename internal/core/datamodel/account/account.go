package account

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// SettingsMap stores the free-form tenant settings blob as JSON.
type SettingsMap map[string]interface{}

func (m SettingsMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *SettingsMap) Scan(src interface{}) error {
	if src == nil {
		*m = SettingsMap{}
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("unsupported settings type %T", src)
	}
}

type Account struct {
	ID          int64       `gorm:"primaryKey"`
	Name        string      `gorm:"column:name;not null"`
	DisplayName string      `gorm:"column:display_name;not null"`
	IsActive    bool        `gorm:"column:is_active;default:true"`
	Settings    SettingsMap `gorm:"column:settings;type:jsonb"`
	CreatedBy   *int64      `gorm:"column:created_by"`
	CreatedTime time.Time   `gorm:"column:created_time;autoCreateTime"`
	UpdatedTime time.Time   `gorm:"column:updated_time;autoUpdateTime"`
}

func (Account) TableName() string {
	return "accounts"
}
