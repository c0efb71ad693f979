package auth

import (
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

type stubBinAccess struct {
	allowed map[int64]bool
}

func (s *stubBinAccess) CanAccessBin(userID int64, binID int64) (bool, error) {
	return s.allowed[binID], nil
}

var _ = ginkgo.Describe("RBACAuthorization", func() {
	var (
		ra      *RBACAuthorization
		access  *stubBinAccess
		okCount int
		handler http.Handler
	)

	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		okCount++
		w.WriteHeader(http.StatusOK)
	})

	requestAs := func(user *User, target string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		if user != nil {
			req = req.WithContext(ContextWithUser(req.Context(), user))
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	ginkgo.BeforeEach(func() {
		access = &stubBinAccess{allowed: map[int64]bool{10: true}}
		ra = NewRBACAuthorization(access, slog.Default())
		okCount = 0
	})

	ginkgo.Describe("RequirePermission", func() {
		ginkgo.BeforeEach(func() {
			handler = ra.RequirePermission(PermissionAllBins)(okHandler)
		})

		ginkgo.It("should return 401 when no user is in context", func() {
			rec := requestAs(nil, "/bins")

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(okCount).To(gomega.Equal(0))
		})

		ginkgo.It("should return 403 naming the missing permission", func() {
			rec := requestAs(&User{ID: 1, Permissions: []string{"transfer_tickets"}}, "/bins")

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
			gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring(PermissionAllBins))
			gomega.Expect(okCount).To(gomega.Equal(0))
		})

		ginkgo.It("should pass a user holding the permission", func() {
			rec := requestAs(&User{ID: 1, Permissions: []string{PermissionAllBins}}, "/bins")

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(okCount).To(gomega.Equal(1))
		})

		ginkgo.It("should pass a superadmin regardless of the key", func() {
			rec := requestAs(&User{ID: 1, Permissions: []string{PermissionAll}}, "/bins")

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		})
	})

	ginkgo.Describe("RequireAnyPermission", func() {
		ginkgo.BeforeEach(func() {
			handler = ra.RequireAnyPermission(PermissionAllBins, PermissionAllUsers)(okHandler)
		})

		ginkgo.It("should pass when any listed key is held", func() {
			rec := requestAs(&User{ID: 1, Permissions: []string{PermissionAllUsers}}, "/users")

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		})

		ginkgo.It("should reject when none of the keys are held", func() {
			rec := requestAs(&User{ID: 1, Permissions: []string{"transfer_tickets"}}, "/users")

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
		})
	})

	ginkgo.Describe("RequireBinAccess", func() {
		ginkgo.BeforeEach(func() {
			r := chi.NewRouter()
			r.With(ra.RequireBinAccess()).Get("/bins/{id}", okHandler)
			handler = r
		})

		ginkgo.It("should pass a user whose assignments cover the bin", func() {
			rec := requestAs(&User{ID: 1, Permissions: []string{PermissionAllBins}}, "/bins/10")

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		})

		ginkgo.It("should reject a user scoped to other bins", func() {
			rec := requestAs(&User{ID: 1, Permissions: []string{PermissionAllBins}}, "/bins/11")

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
		})

		ginkgo.It("should bypass the check for superadmins", func() {
			rec := requestAs(&User{ID: 1, Permissions: []string{PermissionAll}}, "/bins/11")

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		})

		ginkgo.It("should reject a non-numeric bin id", func() {
			rec := requestAs(&User{ID: 1, Permissions: []string{PermissionAllBins}}, "/bins/abc")

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusBadRequest))
		})
	})

	ginkgo.Describe("route policy table", func() {
		ginkgo.It("should guard bin mutations with all_bins", func() {
			perms, ok := RequiredPermissions(http.MethodPost, "/bins")

			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(perms).To(gomega.ConsistOf(PermissionAllBins))
		})

		ginkgo.It("should guard account routes with all", func() {
			perms, ok := RequiredPermissions(http.MethodDelete, "/accounts/{id}")

			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(perms).To(gomega.ConsistOf(PermissionAll))
		})

		ginkgo.It("should guard ticket transfer with transfer_tickets", func() {
			perms, ok := RequiredPermissions(http.MethodPost, "/tickets/{id}/transfer")

			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(perms).To(gomega.ConsistOf(PermissionTransferTickets))
		})

		ginkgo.It("should leave unlisted routes at authentication only", func() {
			_, ok := RequiredPermissions(http.MethodGet, "/tickets")

			gomega.Expect(ok).To(gomega.BeFalse())
		})

		ginkgo.It("should produce a pass-through guard for unlisted routes", func() {
			handler = ra.Guard(http.MethodGet, "/tickets")(okHandler)

			rec := requestAs(&User{ID: 1}, "/tickets")

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		})
	})
})
