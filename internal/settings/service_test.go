package settings

import (
	"context"
	"log/slog"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

func TestSettings(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Settings Module Suite")
}

type mockSettingsRepository struct {
	hashes map[int64]string
}

func (m *mockSettingsRepository) GetPasswordHash(userID int64) (string, error) {
	return m.hashes[userID], nil
}

func (m *mockSettingsRepository) UpdatePasswordHash(userID int64, hash string) error {
	m.hashes[userID] = hash
	return nil
}

var _ = ginkgo.Describe("SettingsService", func() {
	var (
		service  *Service
		mockRepo *mockSettingsRepository
		ctx      context.Context
	)

	ginkgo.BeforeEach(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte("Old!Secret1"), bcrypt.MinCost)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		mockRepo = &mockSettingsRepository{hashes: map[int64]string{1: string(hash)}}
		service = NewService(mockRepo, nil, slog.Default())
		service.bcryptCost = bcrypt.MinCost
		ctx = context.Background()
	})

	ginkgo.It("should change the password when the current one matches", func() {
		dto := ChangePasswordDTO{CurrentPassword: "Old!Secret1", NewPassword: "New!Secret2"}

		err := service.ChangePassword(ctx, 1, "agent@example.com", dto)

		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(bcrypt.CompareHashAndPassword([]byte(mockRepo.hashes[1]), []byte("New!Secret2"))).To(gomega.Succeed())
	})

	ginkgo.It("should reject a wrong current password", func() {
		dto := ChangePasswordDTO{CurrentPassword: "guess", NewPassword: "New!Secret2"}
		before := mockRepo.hashes[1]

		err := service.ChangePassword(ctx, 1, "agent@example.com", dto)

		gomega.Expect(err).To(gomega.HaveOccurred())
		gomega.Expect(mockRepo.hashes[1]).To(gomega.Equal(before))
	})

	ginkgo.It("should enforce the complexity policy on the new password", func() {
		dto := ChangePasswordDTO{CurrentPassword: "Old!Secret1", NewPassword: "weakpass"}

		err := service.ChangePassword(ctx, 1, "agent@example.com", dto)

		gomega.Expect(err).To(gomega.HaveOccurred())
	})

	ginkgo.It("should reject a new password containing the email prefix", func() {
		dto := ChangePasswordDTO{CurrentPassword: "Old!Secret1", NewPassword: "Agent!Secret2"}

		err := service.ChangePassword(ctx, 1, "agent@example.com", dto)

		gomega.Expect(err).To(gomega.HaveOccurred())
	})

	ginkgo.It("should require both fields", func() {
		err := service.ChangePassword(ctx, 1, "agent@example.com", ChangePasswordDTO{NewPassword: "New!Secret2"})

		gomega.Expect(err).To(gomega.HaveOccurred())
	})
})
