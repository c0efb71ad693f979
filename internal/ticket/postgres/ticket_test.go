package postgres_test

import (
	"testing"
	"time"

	ticketDatamodel "github.com/bcits/ticketdesk/internal/core/datamodel/ticket"
	"github.com/bcits/ticketdesk/internal/ticket"
	ticketPostgres "github.com/bcits/ticketdesk/internal/ticket/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestTicketPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Ticket Postgres Suite")
}

// SQLite-compatible models for testing
type SQLiteTicket struct {
	ID            int64      `gorm:"primaryKey"`
	Subject       string     `gorm:"column:subject;not null"`
	Content       string     `gorm:"column:content;not null"`
	Status        string     `gorm:"column:status;default:open"`
	Priority      string     `gorm:"column:priority;default:medium"`
	RequesterID   int64      `gorm:"column:requester_id;not null"`
	AssigneeID    *int64     `gorm:"column:assignee_id"`
	BinID         *int64     `gorm:"column:bin_id"`
	TeamID        *int64     `gorm:"column:team_id"`
	IsDuplicateOf *int64     `gorm:"column:is_duplicate_of"`
	AccountID     int64      `gorm:"column:account_id;not null"`
	CreatedTime   time.Time  `gorm:"column:created_time;autoCreateTime"`
	UpdatedTime   time.Time  `gorm:"column:updated_time;autoUpdateTime"`
	ArchivedTime  *time.Time `gorm:"column:archived_time"`
}

func (SQLiteTicket) TableName() string {
	return "tickets"
}

type SQLiteTicketTransfer struct {
	ID            int64     `gorm:"primaryKey"`
	TicketID      int64     `gorm:"column:ticket_id;not null"`
	FromBinID     *int64    `gorm:"column:from_bin_id"`
	ToBinID       int64     `gorm:"column:to_bin_id;not null"`
	TransferredBy int64     `gorm:"column:transferred_by;not null"`
	Reason        *string   `gorm:"column:reason"`
	CreatedTime   time.Time `gorm:"column:created_time;autoCreateTime"`
}

func (SQLiteTicketTransfer) TableName() string {
	return "ticket_transfers"
}

type SQLiteBin struct {
	ID        int64  `gorm:"primaryKey"`
	Name      string `gorm:"column:name;not null"`
	AccountID int64  `gorm:"column:account_id;not null"`
	IsActive  bool   `gorm:"column:is_active;default:true"`
}

func (SQLiteBin) TableName() string {
	return "bins"
}

var _ = Describe("Ticket PostgreSQL Repository", func() {
	var (
		db   *gorm.DB
		repo ticket.RepositoryAPI
	)

	binID := func(id int64) *int64 { return &id }

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteTicket{}, &SQLiteTicketTransfer{}, &SQLiteBin{})
		Expect(err).NotTo(HaveOccurred())

		bins := []*SQLiteBin{
			{ID: 10, Name: "support", AccountID: 1, IsActive: true},
			{ID: 11, Name: "billing", AccountID: 1, IsActive: true},
			{ID: 12, Name: "retired", AccountID: 1, IsActive: false},
			{ID: 20, Name: "other", AccountID: 2, IsActive: true},
		}
		for _, b := range bins {
			Expect(db.Create(b).Error).NotTo(HaveOccurred())
		}

		repo = ticketPostgres.NewTicketRepository(db)
	})

	seedTicket := func(t *ticketDatamodel.Ticket) *ticketDatamodel.Ticket {
		err := repo.Create(t)
		Expect(err).NotTo(HaveOccurred())
		return t
	}

	Describe("Create and GetByID", func() {
		It("should persist a ticket and read it back", func() {
			created := seedTicket(&ticketDatamodel.Ticket{
				Subject:     "Printer broken",
				Content:     "The office printer is jammed again",
				Status:      ticket.StatusOpen,
				Priority:    ticket.PriorityMedium,
				RequesterID: 1,
				BinID:       binID(10),
				AccountID:   1,
			})
			Expect(created.ID).To(BeNumerically(">", 0))

			result, err := repo.GetByID(1, created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(result).NotTo(BeNil())
			Expect(result.Subject).To(Equal("Printer broken"))
			Expect(*result.BinID).To(Equal(int64(10)))
		})

		It("should return nil when the ticket belongs to another account", func() {
			created := seedTicket(&ticketDatamodel.Ticket{
				Subject:     "Other tenant",
				Content:     "Belongs to a different account",
				Status:      ticket.StatusOpen,
				Priority:    ticket.PriorityLow,
				RequesterID: 9,
				AccountID:   2,
			})

			result, err := repo.GetByID(1, created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(BeNil())
		})
	})

	Describe("GetAll", func() {
		BeforeEach(func() {
			seedTicket(&ticketDatamodel.Ticket{Subject: "Open in support", Content: "First open ticket here", Status: ticket.StatusOpen, Priority: ticket.PriorityMedium, RequesterID: 1, BinID: binID(10), AccountID: 1})
			seedTicket(&ticketDatamodel.Ticket{Subject: "Closed in billing", Content: "A closed billing ticket", Status: ticket.StatusClosed, Priority: ticket.PriorityLow, RequesterID: 1, BinID: binID(11), AccountID: 1})
			seedTicket(&ticketDatamodel.Ticket{Subject: "Other tenant", Content: "Must never show for account 1", Status: ticket.StatusOpen, Priority: ticket.PriorityHigh, RequesterID: 9, BinID: binID(20), AccountID: 2})
		})

		It("should only return the account's tickets", func() {
			tickets, err := repo.GetAll(1, ticket.ListFilter{})
			Expect(err).NotTo(HaveOccurred())
			Expect(tickets).To(HaveLen(2))
		})

		It("should filter by status", func() {
			tickets, err := repo.GetAll(1, ticket.ListFilter{Status: ticket.StatusClosed})
			Expect(err).NotTo(HaveOccurred())
			Expect(tickets).To(HaveLen(1))
			Expect(tickets[0].Subject).To(Equal("Closed in billing"))
		})

		It("should filter by bin", func() {
			tickets, err := repo.GetAll(1, ticket.ListFilter{BinID: binID(10)})
			Expect(err).NotTo(HaveOccurred())
			Expect(tickets).To(HaveLen(1))
			Expect(tickets[0].Subject).To(Equal("Open in support"))
		})
	})

	Describe("BinExists", func() {
		It("should find an active bin in the account", func() {
			exists, err := repo.BinExists(1, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeTrue())
		})

		It("should not find a bin from another account", func() {
			exists, err := repo.BinExists(1, 20)
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeFalse())
		})

		It("should not find an archived bin", func() {
			exists, err := repo.BinExists(1, 12)
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeFalse())
		})
	})

	Describe("Transfer", func() {
		var created *ticketDatamodel.Ticket

		BeforeEach(func() {
			created = seedTicket(&ticketDatamodel.Ticket{
				Subject:     "Needs a move",
				Content:     "This ticket belongs in billing",
				Status:      ticket.StatusOpen,
				Priority:    ticket.PriorityMedium,
				RequesterID: 1,
				BinID:       binID(10),
				AccountID:   1,
			})
		})

		It("should move the ticket and write the transfer row", func() {
			reason := "misfiled"
			err := repo.Transfer(created.ID, created.BinID, 11, 2, &reason)
			Expect(err).NotTo(HaveOccurred())

			result, err := repo.GetByID(1, created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(*result.BinID).To(Equal(int64(11)))

			var transfers []SQLiteTicketTransfer
			Expect(db.Find(&transfers).Error).NotTo(HaveOccurred())
			Expect(transfers).To(HaveLen(1))
			Expect(transfers[0].TicketID).To(Equal(created.ID))
			Expect(*transfers[0].FromBinID).To(Equal(int64(10)))
			Expect(transfers[0].ToBinID).To(Equal(int64(11)))
			Expect(transfers[0].TransferredBy).To(Equal(int64(2)))
			Expect(*transfers[0].Reason).To(Equal("misfiled"))
		})

		It("should record a null source bin for unbinned tickets", func() {
			unbinned := seedTicket(&ticketDatamodel.Ticket{
				Subject:     "No bin yet",
				Content:     "Created without a bin assignment",
				Status:      ticket.StatusOpen,
				Priority:    ticket.PriorityMedium,
				RequesterID: 1,
				AccountID:   1,
			})

			err := repo.Transfer(unbinned.ID, nil, 10, 2, nil)
			Expect(err).NotTo(HaveOccurred())

			var transfer SQLiteTicketTransfer
			Expect(db.Where("ticket_id = ?", unbinned.ID).First(&transfer).Error).NotTo(HaveOccurred())
			Expect(transfer.FromBinID).To(BeNil())
			Expect(transfer.ToBinID).To(Equal(int64(10)))
		})
	})

	Describe("Delete", func() {
		It("should remove the ticket for its own account only", func() {
			created := seedTicket(&ticketDatamodel.Ticket{
				Subject:     "To be removed",
				Content:     "This ticket gets hard deleted",
				Status:      ticket.StatusOpen,
				Priority:    ticket.PriorityMedium,
				RequesterID: 1,
				AccountID:   1,
			})

			Expect(repo.Delete(2, created.ID)).NotTo(HaveOccurred())
			result, err := repo.GetByID(1, created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(result).NotTo(BeNil())

			Expect(repo.Delete(1, created.ID)).NotTo(HaveOccurred())
			result, err = repo.GetByID(1, created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(BeNil())
		})
	})
})
