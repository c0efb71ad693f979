package team

import (
	"log/slog"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	errors "github.com/bcits/ticketdesk/internal"
	teamDatamodel "github.com/bcits/ticketdesk/internal/core/datamodel/team"
)

func TestTeam(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Team Module Suite")
}

type mockTeamRepository struct {
	teams  map[int64]*teamDatamodel.Team
	nextID int64
}

func newMockTeamRepository() *mockTeamRepository {
	return &mockTeamRepository{
		teams: map[int64]*teamDatamodel.Team{
			1: {ID: 1, Name: "frontline", AccountID: 1, IsActive: true},
			2: {ID: 2, Name: "escalation", AccountID: 2, IsActive: true},
		},
		nextID: 3,
	}
}

func (m *mockTeamRepository) GetAll(accountID int64) ([]*teamDatamodel.Team, error) {
	var out []*teamDatamodel.Team
	for _, t := range m.teams {
		if t.AccountID == accountID && t.IsActive {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *mockTeamRepository) GetByID(accountID, id int64) (*teamDatamodel.Team, error) {
	t, ok := m.teams[id]
	if !ok || t.AccountID != accountID {
		return nil, nil
	}
	return t, nil
}

func (m *mockTeamRepository) GetByName(accountID int64, name string) (*teamDatamodel.Team, error) {
	for _, t := range m.teams {
		if t.AccountID == accountID && t.Name == name && t.IsActive {
			return t, nil
		}
	}
	return nil, nil
}

func (m *mockTeamRepository) Create(t *teamDatamodel.Team) error {
	t.ID = m.nextID
	m.nextID++
	m.teams[t.ID] = t
	return nil
}

func (m *mockTeamRepository) Update(t *teamDatamodel.Team) error {
	m.teams[t.ID] = t
	return nil
}

func (m *mockTeamRepository) SoftDelete(accountID, id int64) error {
	if t, ok := m.teams[id]; ok && t.AccountID == accountID {
		t.IsActive = false
	}
	return nil
}

func (m *mockTeamRepository) MemberCount(teamID int64) (int64, error) {
	return 4, nil
}

var _ = ginkgo.Describe("TeamService", func() {
	var (
		service  *Service
		mockRepo *mockTeamRepository
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockTeamRepository()
		service = NewService(mockRepo, slog.Default())
	})

	ginkgo.Describe("Create", func() {
		ginkgo.It("should create a team scoped to the account", func() {
			team, err := service.Create(1, 1, CreateTeamDTO{Name: "night-shift"})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(team.AccountID).To(gomega.Equal(int64(1)))
			gomega.Expect(team.IsActive).To(gomega.BeTrue())
		})

		ginkgo.It("should reject a duplicate name within the account", func() {
			_, err := service.Create(1, 1, CreateTeamDTO{Name: "frontline"})

			appErr, ok := errors.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Code).To(gomega.Equal(errors.ErrCodeDuplicateTeamName))
		})

		ginkgo.It("should allow the same name in another account", func() {
			team, err := service.Create(1, 1, CreateTeamDTO{Name: "escalation"})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(team.AccountID).To(gomega.Equal(int64(1)))
		})

		ginkgo.It("should reject an empty name", func() {
			_, err := service.Create(1, 1, CreateTeamDTO{})

			gomega.Expect(err).To(gomega.HaveOccurred())
		})
	})

	ginkgo.Describe("GetAll", func() {
		ginkgo.It("should report member counts", func() {
			teams, err := service.GetAll(1)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(teams).To(gomega.HaveLen(1))
			gomega.Expect(teams[0].MemberCount).To(gomega.Equal(int64(4)))
		})
	})

	ginkgo.Describe("Delete", func() {
		ginkgo.It("should soft-delete a team", func() {
			err := service.Delete(1, 1)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(mockTeamIsActive(mockRepo, 1)).To(gomega.BeFalse())
		})

		ginkgo.It("should treat another account's team as not found", func() {
			err := service.Delete(1, 2)

			gomega.Expect(err).To(gomega.Equal(errors.ErrTeamNotFound))
		})
	})
})

func mockTeamIsActive(m *mockTeamRepository, id int64) bool {
	return m.teams[id].IsActive
}
