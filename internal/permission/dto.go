package permission

import (
	permissionDatamodel "github.com/bcits/ticketdesk/internal/core/datamodel/permission"
)

// MatrixUpdateDTO is one record of a bulk matrix update. Bins and Teams use
// pointers so an absent list (leave memberships alone) is distinguishable
// from an empty list (clear all memberships).
type MatrixUpdateDTO struct {
	UserID      int64                                `json:"user_id"`
	Permissions map[string]permissionDatamodel.Value `json:"permissions"`
	Bins        *[]int64                             `json:"bins,omitempty"`
	Teams       *[]int64                             `json:"teams,omitempty"`
}

type BulkUpdateDTO struct {
	Updates []MatrixUpdateDTO `json:"updates"`
}

type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d BulkUpdateDTO) Validate() error {
	if len(d.Updates) == 0 {
		return ValidationError{Msg: "updates is required"}
	}
	for _, u := range d.Updates {
		if u.UserID <= 0 {
			return ValidationError{Msg: "user_id is required for every update record"}
		}
	}
	return nil
}

// DefinitionResponse is the catalog entry shape served to matrix UIs.
type DefinitionResponse struct {
	PermissionKey string `json:"permission_key"`
	DisplayName   string `json:"display_name"`
	Description   string `json:"description,omitempty"`
	ValueType     string `json:"value_type"`
	DisplayOrder  int    `json:"display_order"`
}
