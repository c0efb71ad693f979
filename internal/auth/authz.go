package auth

import "net/http"

type routeKey struct {
	Method  string
	Pattern string
}

// routePolicies is the authorization table for the API surface: which
// permission keys guard which route. A route absent from the table needs
// authentication only. When several keys are listed, holding any one of
// them grants access, and "all" always passes.
var routePolicies = map[routeKey][]string{
	{http.MethodGet, "/bins"}:            {PermissionAllBins},
	{http.MethodPost, "/bins"}:           {PermissionAllBins},
	{http.MethodGet, "/bins/{id}"}:       {PermissionAllBins},
	{http.MethodPatch, "/bins/{id}"}:     {PermissionAllBins},
	{http.MethodDelete, "/bins/{id}"}:    {PermissionAllBins},
	{http.MethodGet, "/bins/{id}/users"}: {PermissionAllBins},

	{http.MethodPost, "/teams"}:          {PermissionAllBins},
	{http.MethodPatch, "/teams/{id}"}:    {PermissionAllBins},
	{http.MethodDelete, "/teams/{id}"}:   {PermissionAllBins},

	{http.MethodGet, "/users"}:                 {PermissionAllUsers},
	{http.MethodPost, "/users"}:                {PermissionAllUsers},
	{http.MethodGet, "/users/{id}"}:            {PermissionAllUsers},
	{http.MethodPatch, "/users/{id}"}:          {PermissionAllUsers},
	{http.MethodDelete, "/users/{id}"}:         {PermissionAllUsers},
	{http.MethodPost, "/users/{id}/password"}:  {PermissionAllUsers},
	{http.MethodGet, "/roles"}:                 {PermissionAllUsers},
	{http.MethodPut, "/users/{id}/roles"}:      {PermissionAllUsers},

	{http.MethodGet, "/accounts"}:         {PermissionAll},
	{http.MethodPost, "/accounts"}:        {PermissionAll},
	{http.MethodGet, "/accounts/{id}"}:    {PermissionAll},
	{http.MethodPatch, "/accounts/{id}"}:  {PermissionAll},
	{http.MethodDelete, "/accounts/{id}"}: {PermissionAll},

	{http.MethodGet, "/permissions/matrix"}:  {PermissionAllUsers},
	{http.MethodPost, "/permissions/matrix"}: {PermissionAllUsers},

	{http.MethodPost, "/tickets/{id}/transfer"}: {PermissionTransferTickets},

	{http.MethodGet, "/admin/users"}:           {PermissionAllUsers},
	{http.MethodPut, "/admin/users/{id}/role"}: {PermissionAllUsers},
	{http.MethodGet, "/admin/activity-logs"}:   {PermissionAllUsers},
	{http.MethodGet, "/admin/user-stats"}:      {PermissionAllUsers},
}

// RequiredPermissions looks up the keys guarding a route pattern. The
// boolean reports whether the route carries a policy beyond authentication.
func RequiredPermissions(method, pattern string) ([]string, bool) {
	perms, ok := routePolicies[routeKey{Method: method, Pattern: pattern}]
	return perms, ok
}

// Guard returns the middleware for a route pattern, or a no-op when the
// route only needs authentication.
func (ra *RBACAuthorization) Guard(method, pattern string) func(http.Handler) http.Handler {
	perms, ok := RequiredPermissions(method, pattern)
	if !ok || len(perms) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return ra.RequireAnyPermission(perms...)
}
