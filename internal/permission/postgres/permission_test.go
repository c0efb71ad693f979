package postgres_test

import (
	"testing"
	"time"

	permissionDatamodel "github.com/bcits/ticketdesk/internal/core/datamodel/permission"
	"github.com/bcits/ticketdesk/internal/permission"
	permissionPostgres "github.com/bcits/ticketdesk/internal/permission/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestPermissionPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Permission Postgres Suite")
}

// SQLite-compatible models for testing
type SQLiteUserBin struct {
	ID     int64 `gorm:"primaryKey"`
	UserID int64 `gorm:"column:user_id;not null;uniqueIndex:user_bins_user_bin"`
	BinID  int64 `gorm:"column:bin_id;not null;uniqueIndex:user_bins_user_bin"`
}

func (SQLiteUserBin) TableName() string {
	return "user_bins"
}

type SQLiteUserTeam struct {
	ID     int64 `gorm:"primaryKey"`
	UserID int64 `gorm:"column:user_id;not null;uniqueIndex:user_teams_user_team"`
	TeamID int64 `gorm:"column:team_id;not null;uniqueIndex:user_teams_user_team"`
}

func (SQLiteUserTeam) TableName() string {
	return "user_teams"
}

type SQLiteUserPermission struct {
	ID            int64     `gorm:"primaryKey"`
	UserID        int64     `gorm:"column:user_id;not null;uniqueIndex:user_permissions_user_key"`
	PermissionKey string    `gorm:"column:permission_key;not null;uniqueIndex:user_permissions_user_key"`
	Value         string    `gorm:"column:permission_value"`
	GrantedBy     *int64    `gorm:"column:granted_by"`
	CreatedTime   time.Time `gorm:"column:created_time;autoCreateTime"`
	UpdatedTime   time.Time `gorm:"column:updated_time;autoUpdateTime"`
}

func (SQLiteUserPermission) TableName() string {
	return "user_permissions"
}

var _ = Describe("Permission PostgreSQL Repository", func() {
	var (
		db   *gorm.DB
		repo permission.RepositoryAPI
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteUserBin{}, &SQLiteUserTeam{}, &SQLiteUserPermission{})
		Expect(err).NotTo(HaveOccurred())

		repo = permissionPostgres.NewPermissionRepository(db)
	})

	Describe("ReplaceUserBins", func() {
		It("should collapse a duplicated bin id to one membership", func() {
			err := repo.ReplaceUserBins(5, []int64{10, 20, 10})
			Expect(err).NotTo(HaveOccurred())

			bins, err := repo.GetUserBins(5)
			Expect(err).NotTo(HaveOccurred())
			Expect(bins).To(Equal([]int64{10, 20}))
		})

		It("should clear every membership for an empty set", func() {
			Expect(repo.ReplaceUserBins(5, []int64{10, 20})).NotTo(HaveOccurred())
			Expect(repo.ReplaceUserBins(5, nil)).NotTo(HaveOccurred())

			bins, err := repo.GetUserBins(5)
			Expect(err).NotTo(HaveOccurred())
			Expect(bins).To(BeEmpty())
		})

		It("should not touch another user's memberships", func() {
			Expect(repo.ReplaceUserBins(5, []int64{10})).NotTo(HaveOccurred())
			Expect(repo.ReplaceUserBins(6, []int64{20})).NotTo(HaveOccurred())

			bins, err := repo.GetUserBins(5)
			Expect(err).NotTo(HaveOccurred())
			Expect(bins).To(Equal([]int64{10}))
		})
	})

	Describe("ReplaceUserTeams", func() {
		It("should collapse a duplicated team id to one membership", func() {
			err := repo.ReplaceUserTeams(5, []int64{3, 3, 4})
			Expect(err).NotTo(HaveOccurred())

			teams, err := repo.GetUserTeams(5)
			Expect(err).NotTo(HaveOccurred())
			Expect(teams).To(Equal([]int64{3, 4}))
		})

		It("should swap the previous membership set wholesale", func() {
			Expect(repo.ReplaceUserTeams(5, []int64{3})).NotTo(HaveOccurred())
			Expect(repo.ReplaceUserTeams(5, []int64{4, 5})).NotTo(HaveOccurred())

			teams, err := repo.GetUserTeams(5)
			Expect(err).NotTo(HaveOccurred())
			Expect(teams).To(Equal([]int64{4, 5}))
		})
	})

	Describe("UpsertPermission", func() {
		It("should overwrite an existing grant in place", func() {
			actorID := int64(2)

			err := repo.UpsertPermission(&permissionDatamodel.UserPermission{
				UserID:        5,
				PermissionKey: "transfer_tickets",
				Value:         permissionDatamodel.BoolValue(false),
				GrantedBy:     &actorID,
			})
			Expect(err).NotTo(HaveOccurred())

			err = repo.UpsertPermission(&permissionDatamodel.UserPermission{
				UserID:        5,
				PermissionKey: "transfer_tickets",
				Value:         permissionDatamodel.BoolValue(true),
				GrantedBy:     &actorID,
			})
			Expect(err).NotTo(HaveOccurred())

			var rows []SQLiteUserPermission
			Expect(db.Where("user_id = ?", 5).Find(&rows).Error).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].Value).To(Equal("true"))
		})
	})
})
