package kb

import (
	"log/slog"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	errors "github.com/bcits/ticketdesk/internal"
	kbDatamodel "github.com/bcits/ticketdesk/internal/core/datamodel/kb"
)

func TestKB(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "KB Module Suite")
}

type mockKBRepository struct {
	items   map[int64]*kbDatamodel.KBItem
	tickets map[int64]int64 // ticketID -> accountID
	nextID  int64
}

func newMockKBRepository() *mockKBRepository {
	return &mockKBRepository{
		items: map[int64]*kbDatamodel.KBItem{
			1: {ID: 1, Title: "Reset a password", Content: "Use the settings page to reset", Category: "Accounts", AuthorID: 1, AccountID: 1},
			2: {ID: 2, Title: "Other tenant doc", Content: "Belongs to another account", Category: "General", AuthorID: 9, AccountID: 2},
		},
		tickets: map[int64]int64{100: 1, 200: 2},
		nextID:  3,
	}
}

func (m *mockKBRepository) GetAll(accountID int64) ([]*kbDatamodel.KBItem, error) {
	var out []*kbDatamodel.KBItem
	for _, item := range m.items {
		if item.AccountID == accountID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *mockKBRepository) GetByID(accountID, id int64) (*kbDatamodel.KBItem, error) {
	item, ok := m.items[id]
	if !ok || item.AccountID != accountID {
		return nil, nil
	}
	return item, nil
}

func (m *mockKBRepository) Create(item *kbDatamodel.KBItem) error {
	item.ID = m.nextID
	m.nextID++
	m.items[item.ID] = item
	return nil
}

func (m *mockKBRepository) Delete(accountID, id int64) error {
	if item, ok := m.items[id]; ok && item.AccountID == accountID {
		delete(m.items, id)
	}
	return nil
}

func (m *mockKBRepository) TicketExists(accountID, ticketID int64) (bool, error) {
	return m.tickets[ticketID] == accountID, nil
}

var _ = ginkgo.Describe("KBService", func() {
	var (
		service  *Service
		mockRepo *mockKBRepository
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockKBRepository()
		service = NewService(mockRepo, slog.Default())
	})

	ginkgo.Describe("Create", func() {
		ginkgo.It("should default the category", func() {
			dto := CreateItemDTO{Title: "Printer jams", Content: "Open the rear tray and pull gently"}

			item, err := service.Create(1, 1, dto)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(item.Category).To(gomega.Equal(DefaultCategory))
			gomega.Expect(item.AuthorID).To(gomega.Equal(int64(1)))
		})

		ginkgo.It("should keep an explicit category", func() {
			dto := CreateItemDTO{Title: "VPN setup", Content: "Install the client and import the profile", Category: "Networking"}

			item, err := service.Create(1, 1, dto)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(item.Category).To(gomega.Equal("Networking"))
		})

		ginkgo.It("should reject a short title", func() {
			dto := CreateItemDTO{Title: "Hi", Content: "Long enough content goes here"}

			_, err := service.Create(1, 1, dto)

			gomega.Expect(err).To(gomega.HaveOccurred())
		})

		ginkgo.It("should reject short content", func() {
			dto := CreateItemDTO{Title: "Valid title", Content: "short"}

			_, err := service.Create(1, 1, dto)

			gomega.Expect(err).To(gomega.HaveOccurred())
		})

		ginkgo.It("should link a source ticket from the same account", func() {
			ticketID := int64(100)
			dto := CreateItemDTO{Title: "From a ticket", Content: "Distilled from a resolved ticket", SourceTicketID: &ticketID}

			item, err := service.Create(1, 1, dto)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(*item.SourceTicketID).To(gomega.Equal(int64(100)))
		})

		ginkgo.It("should refuse a source ticket from another account", func() {
			ticketID := int64(200)
			dto := CreateItemDTO{Title: "From a ticket", Content: "Distilled from a resolved ticket", SourceTicketID: &ticketID}

			_, err := service.Create(1, 1, dto)

			gomega.Expect(err).To(gomega.Equal(errors.ErrTicketNotFound))
		})
	})

	ginkgo.Describe("GetAll", func() {
		ginkgo.It("should only return the account's items", func() {
			items, err := service.GetAll(1)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(items).To(gomega.HaveLen(1))
			gomega.Expect(items[0].Title).To(gomega.Equal("Reset a password"))
		})
	})

	ginkgo.Describe("GetByID", func() {
		ginkgo.It("should treat another account's item as not found", func() {
			_, err := service.GetByID(1, 2)

			gomega.Expect(err).To(gomega.Equal(errors.ErrKBItemNotFound))
		})
	})

	ginkgo.Describe("Delete", func() {
		ginkgo.It("should delete within the account", func() {
			err := service.Delete(1, 1)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(mockRepo.items).ToNot(gomega.HaveKey(int64(1)))
		})

		ginkgo.It("should not delete across accounts", func() {
			err := service.Delete(1, 2)

			gomega.Expect(err).To(gomega.Equal(errors.ErrKBItemNotFound))
			gomega.Expect(mockRepo.items).To(gomega.HaveKey(int64(2)))
		})
	})
})
