package activity

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	activityDatamodel "github.com/bcits/ticketdesk/internal/core/datamodel/activity"
	"github.com/bcits/ticketdesk/internal/core/events"
)

func TestActivity(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Activity Module Suite")
}

type mockActivityRepository struct {
	entries []*activityDatamodel.ActivityLog
}

func (m *mockActivityRepository) Create(entry *activityDatamodel.ActivityLog) error {
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockActivityRepository) GetRecent(since time.Time, limit int) ([]*activityDatamodel.ActivityLog, error) {
	var out []*activityDatamodel.ActivityLog
	for _, entry := range m.entries {
		if !entry.Timestamp.Before(since) {
			out = append(out, entry)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

var _ = ginkgo.Describe("ActivityRecorder", func() {
	var (
		recorder *Recorder
		mockRepo *mockActivityRepository
		ctx      context.Context
	)

	ginkgo.BeforeEach(func() {
		mockRepo = &mockActivityRepository{}
		recorder = NewRecorder(mockRepo, slog.Default())
		ctx = context.Background()
	})

	ginkgo.It("should append a row for an activity event", func() {
		event := events.NewActivityEvent(events.EventTypeTicketTransferred, 7, "transferred ticket 3 to bin 11")

		err := recorder.Handle(ctx, event)

		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(mockRepo.entries).To(gomega.HaveLen(1))
		gomega.Expect(mockRepo.entries[0].UserID).To(gomega.Equal(int64(7)))
		gomega.Expect(mockRepo.entries[0].Action).To(gomega.Equal(events.EventTypeTicketTransferred))
		gomega.Expect(mockRepo.entries[0].Details).To(gomega.Equal("transferred ticket 3 to bin 11"))
	})

	ginkgo.It("should ignore events without an actor", func() {
		event := events.BaseEvent{
			ID:        "x",
			Type:      events.EventTypeBinCreated,
			Timestamp: time.Now(),
			Data:      map[string]interface{}{"details": "no actor"},
		}

		err := recorder.Handle(ctx, event)

		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(mockRepo.entries).To(gomega.BeEmpty())
	})

	ginkgo.It("should receive events through the bus", func() {
		bus := events.NewEventBus(slog.Default())
		recorder.Register(bus)

		event := events.NewActivityEvent(events.EventTypePermissionsUpdated, 2, "updated permissions for 3 users")
		err := bus.PublishSync(ctx, event)

		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(mockRepo.entries).To(gomega.HaveLen(1))
	})
})
