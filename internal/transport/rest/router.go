package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bcits/ticketdesk/internal/account"
	"github.com/bcits/ticketdesk/internal/admin"
	"github.com/bcits/ticketdesk/internal/auth"
	"github.com/bcits/ticketdesk/internal/bin"
	"github.com/bcits/ticketdesk/internal/dashboard"
	"github.com/bcits/ticketdesk/internal/kb"
	"github.com/bcits/ticketdesk/internal/permission"
	"github.com/bcits/ticketdesk/internal/settings"
	"github.com/bcits/ticketdesk/internal/team"
	"github.com/bcits/ticketdesk/internal/ticket"
	"github.com/bcits/ticketdesk/internal/transport/middleware"
	"github.com/bcits/ticketdesk/internal/transport/swagger"
	"github.com/bcits/ticketdesk/internal/usermgmt"
)

// Handlers bundles every domain handler the router mounts.
type Handlers struct {
	Auth       *auth.Handler
	Account    *account.Handler
	Bin        *bin.Handler
	Team       *team.Handler
	Ticket     *ticket.Handler
	KB         *kb.Handler
	Dashboard  *dashboard.Handler
	Admin      *admin.Handler
	Usermgmt   *usermgmt.Handler
	Permission *permission.Handler
	Settings   *settings.Handler
}

// RegisterAllRoutes wires the API surface. Auth and ping are public; every
// other /api route runs the permission resolver, then the gate from the
// route policy table, and bin detail routes additionally check bin scope.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, handlers Handlers, rbac *auth.RBACAuthorization, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.Metrics)

	router.Handle("/metrics", promhttp.Handler())
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", handlers.Auth.Login)
			sr.Post("/refresh", handlers.Auth.RefreshToken)
			sr.Post("/logout", handlers.Auth.Logout)
		})

		r.Group(func(pr chi.Router) {
			pr.Use(handlers.Auth.AuthMiddleware)

			guard := func(method, pattern string) func(http.Handler) http.Handler {
				return rbac.Guard(method, pattern)
			}

			pr.Get("/auth/me", handlers.Auth.Me)

			pr.Get("/dashboard/stats", handlers.Dashboard.GetStats)

			pr.Route("/tickets", func(tr chi.Router) {
				tr.Get("/", handlers.Ticket.List)
				tr.Post("/", handlers.Ticket.Create)
				tr.Get("/{id}", handlers.Ticket.Get)
				tr.Patch("/{id}", handlers.Ticket.Update)
				tr.Delete("/{id}", handlers.Ticket.Delete)
				tr.Post("/{id}/archive", handlers.Ticket.Archive)
				tr.With(guard(http.MethodPost, "/tickets/{id}/transfer")).
					Post("/{id}/transfer", handlers.Ticket.Transfer)
			})

			pr.Route("/bins", func(br chi.Router) {
				br.With(guard(http.MethodGet, "/bins")).Get("/", handlers.Bin.List)
				br.With(guard(http.MethodPost, "/bins")).Post("/", handlers.Bin.Create)

				br.Route("/{id}", func(dr chi.Router) {
					dr.Use(rbac.RequireBinAccess())
					dr.With(guard(http.MethodGet, "/bins/{id}")).Get("/", handlers.Bin.Get)
					dr.With(guard(http.MethodPatch, "/bins/{id}")).Patch("/", handlers.Bin.Update)
					dr.With(guard(http.MethodDelete, "/bins/{id}")).Delete("/", handlers.Bin.Delete)
					dr.With(guard(http.MethodGet, "/bins/{id}/users")).Get("/users", handlers.Bin.Members)
				})
			})

			pr.Route("/teams", func(tr chi.Router) {
				tr.Get("/", handlers.Team.List)
				tr.Get("/{id}", handlers.Team.Get)
				tr.With(guard(http.MethodPost, "/teams")).Post("/", handlers.Team.Create)
				tr.With(guard(http.MethodPatch, "/teams/{id}")).Patch("/{id}", handlers.Team.Update)
				tr.With(guard(http.MethodDelete, "/teams/{id}")).Delete("/{id}", handlers.Team.Delete)
			})

			pr.Route("/kb", func(kr chi.Router) {
				kr.Get("/", handlers.KB.List)
				kr.Post("/", handlers.KB.Create)
				kr.Get("/{id}", handlers.KB.Get)
				kr.Delete("/{id}", handlers.KB.Delete)
			})

			pr.Route("/user-management", func(ur chi.Router) {
				ur.With(guard(http.MethodGet, "/users")).Get("/users", handlers.Usermgmt.List)
				ur.With(guard(http.MethodPost, "/users")).Post("/users", handlers.Usermgmt.Create)
				ur.With(guard(http.MethodGet, "/users/{id}")).Get("/users/{id}", handlers.Usermgmt.Get)
				ur.With(guard(http.MethodPatch, "/users/{id}")).Patch("/users/{id}", handlers.Usermgmt.Update)
				ur.With(guard(http.MethodDelete, "/users/{id}")).Delete("/users/{id}", handlers.Usermgmt.Delete)
				ur.With(guard(http.MethodPost, "/users/{id}/password")).Post("/users/{id}/password", handlers.Usermgmt.ResetPassword)
				ur.With(guard(http.MethodGet, "/roles")).Get("/roles", handlers.Usermgmt.ListRoles)
				ur.With(guard(http.MethodPut, "/users/{id}/roles")).Put("/users/{id}/roles", handlers.Usermgmt.ReplaceRoles)
			})

			pr.Route("/permissions", func(pmr chi.Router) {
				pmr.Get("/definitions", handlers.Permission.GetDefinitions)
				pmr.With(guard(http.MethodGet, "/permissions/matrix")).Get("/matrix", handlers.Permission.GetMatrix)
				pmr.With(guard(http.MethodPost, "/permissions/matrix")).Post("/matrix", handlers.Permission.BulkUpdate)
			})

			pr.Route("/accounts", func(ar chi.Router) {
				ar.With(guard(http.MethodGet, "/accounts")).Get("/", handlers.Account.List)
				ar.With(guard(http.MethodPost, "/accounts")).Post("/", handlers.Account.Create)
				ar.With(guard(http.MethodGet, "/accounts/{id}")).Get("/{id}", handlers.Account.Get)
				ar.With(guard(http.MethodPatch, "/accounts/{id}")).Patch("/{id}", handlers.Account.Update)
				ar.With(guard(http.MethodDelete, "/accounts/{id}")).Delete("/{id}", handlers.Account.Delete)
			})

			pr.Route("/admin", func(ar chi.Router) {
				ar.With(guard(http.MethodGet, "/admin/users")).Get("/users", handlers.Admin.ListUsers)
				ar.With(guard(http.MethodPut, "/admin/users/{id}/role")).Put("/users/{id}/role", handlers.Admin.UpdateUserRole)
				ar.With(guard(http.MethodGet, "/admin/activity-logs")).Get("/activity-logs", handlers.Admin.ListActivityLogs)
				ar.With(guard(http.MethodGet, "/admin/user-stats")).Get("/user-stats", handlers.Admin.GetUserStats)
			})

			pr.Post("/settings/change-password", handlers.Settings.ChangePassword)
		})
	})
}
