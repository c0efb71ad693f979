package auth

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
)

// BinAccessChecker answers whether a user's role assignments cover a bin.
type BinAccessChecker interface {
	CanAccessBin(userID int64, binID int64) (bool, error)
}

// RBACAuthorization builds route middleware that gates handlers on the
// permission set resolved into the request context.
type RBACAuthorization struct {
	binAccess BinAccessChecker
	logger    *slog.Logger
}

func NewRBACAuthorization(binAccess BinAccessChecker, logger *slog.Logger) *RBACAuthorization {
	return &RBACAuthorization{
		binAccess: binAccess,
		logger:    logger,
	}
}

// RequirePermission rejects requests whose resolved permission set does not
// contain the key. The "all" permission satisfies every check.
func (ra *RBACAuthorization) RequirePermission(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok || user == nil {
				ra.logger.Warn("authorization check failed: user not found in context")
				writeForbidden(w, http.StatusUnauthorized, "not authenticated")
				return
			}

			if !user.HasPermission(permission) {
				ra.logger.WarnContext(r.Context(), "access denied: insufficient permissions",
					"user_id", user.ID,
					"required_permission", permission,
					"user_permissions", user.Permissions)
				writeForbidden(w, http.StatusForbidden, fmt.Sprintf("missing required permission: %s", permission))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAnyPermission passes when the user holds at least one of the keys.
func (ra *RBACAuthorization) RequireAnyPermission(permissions ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok || user == nil {
				ra.logger.Warn("authorization check failed: user not found in context")
				writeForbidden(w, http.StatusUnauthorized, "not authenticated")
				return
			}

			if !user.HasAnyPermission(permissions) {
				ra.logger.WarnContext(r.Context(), "access denied: insufficient permissions",
					"user_id", user.ID,
					"required_permissions", permissions,
					"user_permissions", user.Permissions)
				writeForbidden(w, http.StatusForbidden, fmt.Sprintf("missing required permission: %s", permissions[0]))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireBinAccess checks the user's role assignments against the bin named
// in the route's id parameter. Superadmins and NULL-bin assignments pass;
// everyone else needs an assignment scoped to this bin.
func (ra *RBACAuthorization) RequireBinAccess() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok || user == nil {
				writeForbidden(w, http.StatusUnauthorized, "not authenticated")
				return
			}

			if user.IsSuperadmin() {
				next.ServeHTTP(w, r)
				return
			}

			binID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
			if err != nil {
				writeForbidden(w, http.StatusBadRequest, "invalid bin id")
				return
			}

			allowed, err := ra.binAccess.CanAccessBin(user.ID, binID)
			if err != nil {
				ra.logger.ErrorContext(r.Context(), "bin access check failed", "error", err, "user_id", user.ID, "bin_id", binID)
				writeForbidden(w, http.StatusInternalServerError, "internal server error")
				return
			}

			if !allowed {
				ra.logger.WarnContext(r.Context(), "access denied: bin not in scope", "user_id", user.ID, "bin_id", binID)
				writeForbidden(w, http.StatusForbidden, "no access to this bin")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeForbidden(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"code":    status,
		"message": message,
	})
}
