package permission

import (
	permissionDatamodel "github.com/bcits/ticketdesk/internal/core/datamodel/permission"
)

// BinsAssignedKey is a pseudo-column the matrix UI sends alongside real
// permission grants. It mirrors bin membership and is never persisted as a
// grant; bin membership is written through the bins list instead.
const BinsAssignedKey = "bins_assigned"

// MatrixEntry is one row of the permission matrix: a user of the account
// together with their direct grants and bin/team memberships.
type MatrixEntry struct {
	UserID      int64                                 `json:"user_id"`
	Email       string                                `json:"email"`
	FirstName   string                                `json:"firstname"`
	LastName    string                                `json:"lastname"`
	Permissions map[string]permissionDatamodel.Value  `json:"permissions"`
	Bins        []int64                               `json:"bins"`
	Teams       []int64                               `json:"teams"`
}

// MatrixResponse bundles the matrix rows with the definitions catalog so a
// caller can render the grid from one response.
type MatrixResponse struct {
	Definitions []DefinitionResponse `json:"permission_definitions"`
	Users       []MatrixEntry        `json:"users"`
}

// BulkUpdateResult reports what a matrix update actually did. Records for
// users outside the caller's account are skipped, not failed; the skip list
// stays internal for logging and never reaches the response body.
type BulkUpdateResult struct {
	UpdatedCount   int     `json:"updated_count"`
	SkippedUserIDs []int64 `json:"-"`
}
