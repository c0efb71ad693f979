package auth

import (
	"database/sql"

	"github.com/bcits/ticketdesk/internal/auth"
	"github.com/bcits/ticketdesk/internal/core/datamodel/role"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetPasswordForEmail(email string) (string, string, error) {
	var passwordHash string
	var userID string
	query := `SELECT id, password_hash FROM users WHERE email = ? AND is_active = true`

	row := r.db.Raw(query, email).Row()
	if err := row.Scan(&userID, &passwordHash); err != nil {
		if err == sql.ErrNoRows {
			return "", "", auth.ErrUserNotFound
		}
		return "", "", err
	}
	return passwordHash, userID, nil
}

// GetUserWithPermissions loads the user row and flattens the permission
// arrays of every role assigned to the user. Bin scope on an assignment is
// deliberately ignored here: scope limits which bins an assignment covers,
// not which permissions it contributes.
func (r *Repository) GetUserWithPermissions(userID int64) (*auth.User, error) {
	var user auth.User

	query := `SELECT id, email, account_id FROM users WHERE id = ? AND is_active = true`

	row := r.db.Raw(query, userID).Row()
	if err := row.Scan(&user.ID, &user.Email, &user.AccountID); err != nil {
		if err == sql.ErrNoRows {
			return nil, auth.ErrUserNotFound
		}
		return nil, err
	}

	permQuery := `SELECT r.permissions
	             FROM roles r
	             JOIN user_roles ur ON r.id = ur.role_id
	             WHERE ur.user_id = ?`

	rows, err := r.db.Raw(permQuery, userID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seen := make(map[string]bool)
	permissions := make([]string, 0)
	for rows.Next() {
		var keys role.PermissionKeys
		if err := rows.Scan(&keys); err != nil {
			return nil, err
		}
		for _, key := range keys {
			if !seen[key] {
				seen[key] = true
				permissions = append(permissions, key)
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	user.Permissions = permissions
	return &user, nil
}

// CanAccessBin reports whether any of the user's role assignments covers the
// bin. An assignment with a NULL bin_id covers every bin, and a role
// carrying the "all" permission covers every bin regardless of scope.
func (r *Repository) CanAccessBin(userID int64, binID int64) (bool, error) {
	var count int64
	query := `SELECT COUNT(1)
	         FROM user_roles ur
	         JOIN roles r ON r.id = ur.role_id
	         WHERE ur.user_id = ?
	           AND (ur.bin_id = ? OR ur.bin_id IS NULL OR r.permissions @> '["all"]')`

	row := r.db.Raw(query, userID, binID).Row()
	if err := row.Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
