package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

func TestRestTransport(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "REST Transport Suite")
}

var _ = ginkgo.Describe("HealthHandler", func() {
	ginkgo.Describe("ping", func() {
		ginkgo.It("should report OK without touching the database", func() {
			handler := NewHealthHandler(nil)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
			handler.pingHandler(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))

			var body map[string]string
			gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(gomega.Succeed())
			gomega.Expect(body["status"]).To(gomega.Equal("OK"))
		})
	})

	ginkgo.Describe("health check", func() {
		ginkgo.It("should report healthy when the database answers a ping", func() {
			db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			defer db.Close()

			mock.ExpectPing()

			handler := NewHealthHandler(db)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
			handler.healthCheckHandler(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))

			var body HealthResponse
			gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(gomega.Succeed())
			gomega.Expect(body.Status).To(gomega.Equal(HealthHealthy))
			gomega.Expect(body.Components["postgres"].Status).To(gomega.Equal(HealthHealthy))
			gomega.Expect(mock.ExpectationsWereMet()).To(gomega.Succeed())
		})

		ginkgo.It("should report unhealthy when the ping fails", func() {
			db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			defer db.Close()

			mock.ExpectPing().WillReturnError(errors.New("connection refused"))

			handler := NewHealthHandler(db)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
			handler.healthCheckHandler(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusServiceUnavailable))

			var body HealthResponse
			gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(gomega.Succeed())
			gomega.Expect(body.Status).To(gomega.Equal(HealthUnhealthy))
			gomega.Expect(body.Components["postgres"].Message).To(gomega.ContainSubstring("connection refused"))
		})
	})
})
