package permission

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ValueKind tags the shape of a direct permission grant value, matching the
// value_type column of the permission definitions catalog.
type ValueKind string

const (
	KindBool   ValueKind = "boolean"
	KindList   ValueKind = "array"
	KindObject ValueKind = "object"
)

// Value is the typed permission grant value. Exactly one of the payload
// fields is meaningful, selected by Kind. The JSON/JSONB conversion happens
// here and nowhere else; business logic only sees the tagged union.
type Value struct {
	Kind   ValueKind
	Bool   bool
	List   []interface{}
	Object map[string]interface{}
}

func BoolValue(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

func ListValue(items []interface{}) Value {
	return Value{Kind: KindList, List: items}
}

func ObjectValue(fields map[string]interface{}) Value {
	return Value{Kind: KindObject, Object: fields}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindBool:
		return json.Marshal(v.Bool)
	case KindList:
		if v.List == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.List)
	case KindObject:
		if v.Object == nil {
			return []byte("{}"), nil
		}
		return json.Marshal(v.Object)
	default:
		return nil, fmt.Errorf("unknown permission value kind %q", v.Kind)
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case bool:
		*v = BoolValue(t)
	case []interface{}:
		*v = ListValue(t)
	case map[string]interface{}:
		*v = ObjectValue(t)
	default:
		return fmt.Errorf("permission value must be boolean, array or object, got %T", raw)
	}
	return nil
}

func (v Value) Value() (driver.Value, error) {
	b, err := v.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (v *Value) Scan(src interface{}) error {
	switch s := src.(type) {
	case []byte:
		return v.UnmarshalJSON(s)
	case string:
		return v.UnmarshalJSON([]byte(s))
	default:
		return fmt.Errorf("unsupported permission value type %T", src)
	}
}

// UserPermission is a direct per-user grant, independent of role membership.
// (user_id, permission_key) is unique; updates overwrite in place.
type UserPermission struct {
	ID            int64     `gorm:"primaryKey"`
	UserID        int64     `gorm:"column:user_id;not null"`
	PermissionKey string    `gorm:"column:permission_key;not null"`
	Value         Value     `gorm:"column:permission_value;type:jsonb"`
	GrantedBy     *int64    `gorm:"column:granted_by"`
	CreatedTime   time.Time `gorm:"column:created_time;autoCreateTime"`
	UpdatedTime   time.Time `gorm:"column:updated_time;autoUpdateTime"`
}

func (UserPermission) TableName() string {
	return "user_permissions"
}

// PermissionDefinition drives matrix UI generation; it is not consulted
// during enforcement.
type PermissionDefinition struct {
	ID            int64     `gorm:"primaryKey"`
	PermissionKey string    `gorm:"column:permission_key;not null"`
	DisplayName   string    `gorm:"column:display_name"`
	Description   string    `gorm:"column:description"`
	ValueType     ValueKind `gorm:"column:value_type;default:boolean"`
	DisplayOrder  int       `gorm:"column:display_order"`
	IsActive      bool      `gorm:"column:is_active;default:true"`
	CreatedTime   time.Time `gorm:"column:created_time;autoCreateTime"`
}

func (PermissionDefinition) TableName() string {
	return "permission_definitions"
}
