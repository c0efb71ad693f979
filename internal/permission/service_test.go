package permission

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/bcits/ticketdesk/internal/auth"
	permissionDatamodel "github.com/bcits/ticketdesk/internal/core/datamodel/permission"
	userDatamodel "github.com/bcits/ticketdesk/internal/core/datamodel/user"
)

func TestPermission(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Permission Module Suite")
}

type grantKey struct {
	UserID int64
	Key    string
}

type mockPermissionRepository struct {
	definitions []*permissionDatamodel.PermissionDefinition
	users       map[int64]*userDatamodel.User
	grants      map[grantKey]permissionDatamodel.Value
	bins        map[int64][]int64
	teams       map[int64][]int64
	upserts     int
}

func newMockPermissionRepository() *mockPermissionRepository {
	return &mockPermissionRepository{
		definitions: []*permissionDatamodel.PermissionDefinition{
			{PermissionKey: "all_bins", DisplayName: "Manage bins", ValueType: permissionDatamodel.KindBool, DisplayOrder: 1, IsActive: true},
			{PermissionKey: "transfer_tickets", DisplayName: "Transfer tickets", ValueType: permissionDatamodel.KindBool, DisplayOrder: 2, IsActive: true},
		},
		users: map[int64]*userDatamodel.User{
			1: {ID: 1, Email: "agent@example.com", FirstName: "Ada", LastName: "Agent", AccountID: 1},
			2: {ID: 2, Email: "manager@example.com", FirstName: "Mia", LastName: "Manager", AccountID: 1},
			9: {ID: 9, Email: "other@example.com", FirstName: "Otto", LastName: "Other", AccountID: 2},
		},
		grants: map[grantKey]permissionDatamodel.Value{
			{UserID: 2, Key: "all_bins"}: permissionDatamodel.BoolValue(true),
		},
		bins: map[int64][]int64{
			1: {10, 11},
		},
		teams: map[int64][]int64{},
	}
}

func (m *mockPermissionRepository) GetActiveDefinitions() ([]*permissionDatamodel.PermissionDefinition, error) {
	return m.definitions, nil
}

func (m *mockPermissionRepository) GetAccountUsers(accountID int64) ([]*userDatamodel.User, error) {
	var users []*userDatamodel.User
	for id := int64(1); id <= 10; id++ {
		if u, ok := m.users[id]; ok && u.AccountID == accountID {
			users = append(users, u)
		}
	}
	return users, nil
}

func (m *mockPermissionRepository) GetUserPermissions(userID int64) ([]*permissionDatamodel.UserPermission, error) {
	var grants []*permissionDatamodel.UserPermission
	for k, v := range m.grants {
		if k.UserID == userID {
			grants = append(grants, &permissionDatamodel.UserPermission{
				UserID:        k.UserID,
				PermissionKey: k.Key,
				Value:         v,
			})
		}
	}
	return grants, nil
}

func (m *mockPermissionRepository) GetUserBins(userID int64) ([]int64, error) {
	return m.bins[userID], nil
}

func (m *mockPermissionRepository) GetUserTeams(userID int64) ([]int64, error) {
	return m.teams[userID], nil
}

func (m *mockPermissionRepository) UserBelongsToAccount(userID, accountID int64) (bool, error) {
	u, ok := m.users[userID]
	return ok && u.AccountID == accountID, nil
}

func (m *mockPermissionRepository) UpsertPermission(up *permissionDatamodel.UserPermission) error {
	m.upserts++
	m.grants[grantKey{UserID: up.UserID, Key: up.PermissionKey}] = up.Value
	return nil
}

func (m *mockPermissionRepository) ReplaceUserBins(userID int64, binIDs []int64) error {
	m.bins[userID] = append([]int64(nil), binIDs...)
	return nil
}

func (m *mockPermissionRepository) ReplaceUserTeams(userID int64, teamIDs []int64) error {
	m.teams[userID] = append([]int64(nil), teamIDs...)
	return nil
}

var _ = ginkgo.Describe("PermissionService", func() {
	var (
		service  *Service
		mockRepo *mockPermissionRepository
		actor    *auth.User
		ctx      context.Context
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockPermissionRepository()
		service = NewService(mockRepo, nil, slog.Default())
		actor = &auth.User{ID: 2, Email: "manager@example.com", AccountID: 1, Permissions: []string{"all_users"}}
		ctx = context.Background()
	})

	ginkgo.Describe("GetDefinitions", func() {
		ginkgo.It("should return the active catalog in display order", func() {
			defs, err := service.GetDefinitions()

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(defs).To(gomega.HaveLen(2))
			gomega.Expect(defs[0].PermissionKey).To(gomega.Equal("all_bins"))
			gomega.Expect(defs[0].ValueType).To(gomega.Equal("boolean"))
			gomega.Expect(defs[1].PermissionKey).To(gomega.Equal("transfer_tickets"))
		})
	})

	ginkgo.Describe("GetMatrix", func() {
		ginkgo.It("should return one entry per account user", func() {
			matrix, err := service.GetMatrix(1)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(matrix.Users).To(gomega.HaveLen(2))
			gomega.Expect(matrix.Users[0].UserID).To(gomega.Equal(int64(1)))
			gomega.Expect(matrix.Users[0].Bins).To(gomega.Equal([]int64{10, 11}))
			gomega.Expect(matrix.Users[1].Permissions).To(gomega.HaveKey("all_bins"))
		})

		ginkgo.It("should bundle the definitions catalog with the rows", func() {
			matrix, err := service.GetMatrix(1)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(matrix.Definitions).To(gomega.HaveLen(2))
			gomega.Expect(matrix.Definitions[0].PermissionKey).To(gomega.Equal("all_bins"))
			gomega.Expect(matrix.Definitions[1].PermissionKey).To(gomega.Equal("transfer_tickets"))
		})

		ginkgo.It("should not include users from other accounts", func() {
			matrix, err := service.GetMatrix(1)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			for _, e := range matrix.Users {
				gomega.Expect(e.UserID).ToNot(gomega.Equal(int64(9)))
			}
		})
	})

	ginkgo.Describe("BulkUpdate", func() {
		ginkgo.It("should upsert grants for users in the actor's account", func() {
			dto := BulkUpdateDTO{Updates: []MatrixUpdateDTO{
				{
					UserID: 1,
					Permissions: map[string]permissionDatamodel.Value{
						"transfer_tickets": permissionDatamodel.BoolValue(true),
					},
				},
			}}

			result, err := service.BulkUpdate(ctx, actor, dto)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(result.UpdatedCount).To(gomega.Equal(1))
			gomega.Expect(result.SkippedUserIDs).To(gomega.BeEmpty())
			gomega.Expect(mockRepo.grants).To(gomega.HaveKey(grantKey{UserID: 1, Key: "transfer_tickets"}))
		})

		ginkgo.It("should silently skip users outside the actor's account", func() {
			dto := BulkUpdateDTO{Updates: []MatrixUpdateDTO{
				{
					UserID: 9,
					Permissions: map[string]permissionDatamodel.Value{
						"all_bins": permissionDatamodel.BoolValue(true),
					},
				},
				{
					UserID: 1,
					Permissions: map[string]permissionDatamodel.Value{
						"all_bins": permissionDatamodel.BoolValue(true),
					},
				},
			}}

			result, err := service.BulkUpdate(ctx, actor, dto)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(result.UpdatedCount).To(gomega.Equal(1))
			gomega.Expect(result.SkippedUserIDs).To(gomega.Equal([]int64{9}))
			gomega.Expect(mockRepo.grants).ToNot(gomega.HaveKey(grantKey{UserID: 9, Key: "all_bins"}))
		})

		ginkgo.It("should not expose the skip list in the response body", func() {
			dto := BulkUpdateDTO{Updates: []MatrixUpdateDTO{
				{
					UserID: 9,
					Permissions: map[string]permissionDatamodel.Value{
						"all_bins": permissionDatamodel.BoolValue(true),
					},
				},
			}}

			result, err := service.BulkUpdate(ctx, actor, dto)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(result.SkippedUserIDs).To(gomega.Equal([]int64{9}))

			body, err := json.Marshal(result)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(string(body)).ToNot(gomega.ContainSubstring("skipped"))
		})

		ginkgo.It("should never persist the bins_assigned pseudo-column", func() {
			dto := BulkUpdateDTO{Updates: []MatrixUpdateDTO{
				{
					UserID: 1,
					Permissions: map[string]permissionDatamodel.Value{
						BinsAssignedKey:    permissionDatamodel.ListValue([]interface{}{float64(10)}),
						"transfer_tickets": permissionDatamodel.BoolValue(true),
					},
				},
			}}

			result, err := service.BulkUpdate(ctx, actor, dto)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(result.UpdatedCount).To(gomega.Equal(1))
			gomega.Expect(mockRepo.grants).ToNot(gomega.HaveKey(grantKey{UserID: 1, Key: BinsAssignedKey}))
			gomega.Expect(mockRepo.upserts).To(gomega.Equal(1))
		})

		ginkgo.It("should replace bin memberships when a list is present", func() {
			bins := []int64{20, 21}
			dto := BulkUpdateDTO{Updates: []MatrixUpdateDTO{
				{UserID: 1, Bins: &bins},
			}}

			_, err := service.BulkUpdate(ctx, actor, dto)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(mockRepo.bins[1]).To(gomega.Equal([]int64{20, 21}))
		})

		ginkgo.It("should clear bin memberships when the list is empty", func() {
			bins := []int64{}
			dto := BulkUpdateDTO{Updates: []MatrixUpdateDTO{
				{UserID: 1, Bins: &bins},
			}}

			_, err := service.BulkUpdate(ctx, actor, dto)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(mockRepo.bins[1]).To(gomega.BeEmpty())
		})

		ginkgo.It("should leave memberships untouched when no list is sent", func() {
			dto := BulkUpdateDTO{Updates: []MatrixUpdateDTO{
				{
					UserID: 1,
					Permissions: map[string]permissionDatamodel.Value{
						"transfer_tickets": permissionDatamodel.BoolValue(false),
					},
				},
			}}

			_, err := service.BulkUpdate(ctx, actor, dto)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(mockRepo.bins[1]).To(gomega.Equal([]int64{10, 11}))
		})

		ginkgo.It("should be idempotent when the same batch is applied twice", func() {
			bins := []int64{30}
			dto := BulkUpdateDTO{Updates: []MatrixUpdateDTO{
				{
					UserID: 1,
					Permissions: map[string]permissionDatamodel.Value{
						"all_bins": permissionDatamodel.BoolValue(true),
					},
					Bins: &bins,
				},
			}}

			first, err := service.BulkUpdate(ctx, actor, dto)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			second, err := service.BulkUpdate(ctx, actor, dto)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			gomega.Expect(first.UpdatedCount).To(gomega.Equal(second.UpdatedCount))
			gomega.Expect(mockRepo.bins[1]).To(gomega.Equal([]int64{30}))
			gomega.Expect(mockRepo.grants[grantKey{UserID: 1, Key: "all_bins"}]).To(gomega.Equal(permissionDatamodel.BoolValue(true)))
		})

		ginkgo.It("should reject an empty batch", func() {
			_, err := service.BulkUpdate(ctx, actor, BulkUpdateDTO{})

			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(err.Error()).To(gomega.ContainSubstring("updates is required"))
		})

		ginkgo.It("should reject records without a user id", func() {
			dto := BulkUpdateDTO{Updates: []MatrixUpdateDTO{{UserID: 0}}}

			_, err := service.BulkUpdate(ctx, actor, dto)

			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(err.Error()).To(gomega.ContainSubstring("user_id is required"))
		})
	})
})
