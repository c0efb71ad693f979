package bin

import (
	"context"
	"log/slog"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	errors "github.com/bcits/ticketdesk/internal"
	binDatamodel "github.com/bcits/ticketdesk/internal/core/datamodel/bin"
)

func TestBin(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Bin Module Suite")
}

type mockBinRepository struct {
	bins            map[int64]*binDatamodel.Bin
	unarchivedCount map[int64]int64
	nextID          int64
}

func newMockBinRepository() *mockBinRepository {
	return &mockBinRepository{
		bins: map[int64]*binDatamodel.Bin{
			10: {ID: 10, Name: "support", Color: DefaultColor, AccountID: 1, IsActive: true},
			11: {ID: 11, Name: "billing", Color: "#FF0000", AccountID: 1, IsActive: true},
			20: {ID: 20, Name: "other-tenant", Color: DefaultColor, AccountID: 2, IsActive: true},
		},
		unarchivedCount: map[int64]int64{10: 2},
		nextID:          30,
	}
}

func (m *mockBinRepository) GetAll(accountID int64) ([]*binDatamodel.Bin, error) {
	var out []*binDatamodel.Bin
	for _, b := range m.bins {
		if b.AccountID == accountID && b.IsActive {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *mockBinRepository) GetByID(accountID, id int64) (*binDatamodel.Bin, error) {
	b, ok := m.bins[id]
	if !ok || b.AccountID != accountID {
		return nil, nil
	}
	return b, nil
}

func (m *mockBinRepository) GetByName(accountID int64, name string) (*binDatamodel.Bin, error) {
	for _, b := range m.bins {
		if b.AccountID == accountID && b.Name == name && b.IsActive {
			return b, nil
		}
	}
	return nil, nil
}

func (m *mockBinRepository) Create(b *binDatamodel.Bin) error {
	b.ID = m.nextID
	m.nextID++
	m.bins[b.ID] = b
	return nil
}

func (m *mockBinRepository) Update(b *binDatamodel.Bin) error {
	m.bins[b.ID] = b
	return nil
}

func (m *mockBinRepository) SoftDelete(accountID, id int64) error {
	if b, ok := m.bins[id]; ok && b.AccountID == accountID {
		b.IsActive = false
	}
	return nil
}

func (m *mockBinRepository) TicketCount(binID int64) (int64, error) {
	return m.unarchivedCount[binID], nil
}

func (m *mockBinRepository) UnarchivedTicketCount(binID int64) (int64, error) {
	return m.unarchivedCount[binID], nil
}

func (m *mockBinRepository) GetMembers(binID int64) ([]*Member, error) {
	return []*Member{{UserID: 1, Email: "agent@example.com"}}, nil
}

var _ = ginkgo.Describe("BinService", func() {
	var (
		service  *Service
		mockRepo *mockBinRepository
		ctx      context.Context
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockBinRepository()
		service = NewService(mockRepo, nil, slog.Default())
		ctx = context.Background()
	})

	ginkgo.Describe("Create", func() {
		ginkgo.It("should default the color when none is given", func() {
			b, err := service.Create(ctx, 1, 1, CreateBinDTO{Name: "escalations"})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(b.Color).To(gomega.Equal(DefaultColor))
			gomega.Expect(b.AccountID).To(gomega.Equal(int64(1)))
		})

		ginkgo.It("should reject an invalid hex color", func() {
			_, err := service.Create(ctx, 1, 1, CreateBinDTO{Name: "escalations", Color: "red"})

			gomega.Expect(err).To(gomega.HaveOccurred())
		})

		ginkgo.It("should reject a duplicate name within the account", func() {
			_, err := service.Create(ctx, 1, 1, CreateBinDTO{Name: "support"})

			gomega.Expect(err).To(gomega.HaveOccurred())
			appErr, ok := errors.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Code).To(gomega.Equal(errors.ErrCodeDuplicateBinName))
		})

		ginkgo.It("should allow the same name in a different account", func() {
			b, err := service.Create(ctx, 1, 2, CreateBinDTO{Name: "support"})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(b.AccountID).To(gomega.Equal(int64(2)))
		})
	})

	ginkgo.Describe("GetByID", func() {
		ginkgo.It("should treat another account's bin as not found", func() {
			_, err := service.GetByID(1, 20)

			gomega.Expect(err).To(gomega.Equal(errors.ErrBinNotFound))
		})
	})

	ginkgo.Describe("Update", func() {
		ginkgo.It("should apply partial updates", func() {
			color := "#00FF00"
			b, err := service.Update(ctx, 1, 1, 11, UpdateBinDTO{Color: &color})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(b.Color).To(gomega.Equal("#00FF00"))
			gomega.Expect(b.Name).To(gomega.Equal("billing"))
		})

		ginkgo.It("should reject renaming onto an existing bin", func() {
			name := "support"
			_, err := service.Update(ctx, 1, 1, 11, UpdateBinDTO{Name: &name})

			gomega.Expect(err).To(gomega.HaveOccurred())
		})
	})

	ginkgo.Describe("Delete", func() {
		ginkgo.It("should refuse while un-archived tickets remain", func() {
			err := service.Delete(ctx, 1, 1, 10)

			gomega.Expect(err).To(gomega.HaveOccurred())
			appErr, ok := errors.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Code).To(gomega.Equal(errors.ErrCodeBinHasActiveTickets))
			gomega.Expect(mockRepo.bins[10].IsActive).To(gomega.BeTrue())
		})

		ginkgo.It("should soft-delete an empty bin", func() {
			err := service.Delete(ctx, 1, 1, 11)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(mockRepo.bins[11].IsActive).To(gomega.BeFalse())
		})

		ginkgo.It("should treat another account's bin as not found", func() {
			err := service.Delete(ctx, 1, 1, 20)

			gomega.Expect(err).To(gomega.Equal(errors.ErrBinNotFound))
		})
	})
})
