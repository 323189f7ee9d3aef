package consumer

import (
	"context"
	"encoding/json"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chiendz11/Badminton-manager-microservices-sub001/internal/domain"
	"github.com/chiendz11/Badminton-manager-microservices-sub001/internal/events"
	"github.com/chiendz11/Badminton-manager-microservices-sub001/pkg/mq"
)

type fakeAck struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (f *fakeAck) Ack(tag uint64, multiple bool) error { f.acked = true; return nil }
func (f *fakeAck) Nack(tag uint64, multiple, requeue bool) error {
	f.nacked, f.requeue = true, requeue
	return nil
}
func (f *fakeAck) Reject(tag uint64, requeue bool) error { return nil }

type MockUserUpserter struct{ mock.Mock }

func (m *MockUserUpserter) Upsert(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}

type MockCenterUpserter struct{ mock.Mock }

func (m *MockCenterUpserter) Upsert(ctx context.Context, c *domain.Center) error {
	return m.Called(ctx, c).Error(0)
}

func delivery(t *testing.T, key string, payload any) (amqp.Delivery, *fakeAck) {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	body, err := json.Marshal(mq.Envelope{Event: key, ID: "e1", Data: data})
	require.NoError(t, err)
	ack := &fakeAck{}
	return amqp.Delivery{Acknowledger: ack, RoutingKey: key, Body: body}, ack
}

func TestProfileConsumer_UpsertsAndAcks(t *testing.T) {
	users := new(MockUserUpserter)
	users.On("Upsert", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.ID == "u1" && u.Name == "Minh" && u.Points == 2500
	})).Return(nil).Once()

	d, ack := delivery(t, events.RKUserProfileUpdated,
		events.UserProfile{UserID: "u1", Name: "Minh", Points: 2500})
	NewProfileConsumer(users, nil).handle(context.Background(), d)

	users.AssertExpectations(t)
	assert.True(t, ack.acked)
	assert.False(t, ack.nacked)
}

func TestProfileConsumer_UpsertFailureRequeues(t *testing.T) {
	users := new(MockUserUpserter)
	users.On("Upsert", mock.Anything, mock.Anything).Return(assert.AnError)

	d, ack := delivery(t, events.RKUserProfileUpdated, events.UserProfile{UserID: "u1"})
	NewProfileConsumer(users, nil).handle(context.Background(), d)

	assert.True(t, ack.nacked)
	assert.True(t, ack.requeue, "a transient store failure goes back on the queue")
}

func TestProfileConsumer_MalformedBodyDropsWithoutRequeue(t *testing.T) {
	users := new(MockUserUpserter)
	ack := &fakeAck{}
	d := amqp.Delivery{Acknowledger: ack, RoutingKey: events.RKUserProfileUpdated, Body: []byte("{not json")}

	NewProfileConsumer(users, nil).handle(context.Background(), d)

	users.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	assert.True(t, ack.nacked)
	assert.False(t, ack.requeue, "a producer bug must not loop forever")
}

func TestProfileConsumer_ForeignKeyIsAcked(t *testing.T) {
	users := new(MockUserUpserter)
	d, ack := delivery(t, "user.some.other", events.UserProfile{UserID: "u1"})

	NewProfileConsumer(users, nil).handle(context.Background(), d)

	users.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	assert.True(t, ack.acked)
}

func TestCenterConsumer_ReplicatesProjection(t *testing.T) {
	centers := new(MockCenterUpserter)
	centers.On("Upsert", mock.Anything, mock.MatchedBy(func(c *domain.Center) bool {
		return c.ID == "C1" && c.Name == "Nha thi dau Cau Giay" &&
			len(c.Courts) == 2 && c.OpenHour == 6 && c.CloseHour == 22
	})).Return(nil).Once()

	d, ack := delivery(t, events.RKCenterUpdated, events.CenterInfo{
		CenterID:  "C1",
		Name:      "Nha thi dau Cau Giay",
		Courts:    []string{"CT1", "CT2"},
		OpenHour:  6,
		CloseHour: 22,
		Pricing: domain.Pricing{
			Weekday: []domain.PriceSlot{{StartTime: "06:00", EndTime: "22:00", Price: 100000}},
		},
	})
	NewCenterConsumer(centers, nil).handle(context.Background(), d)

	centers.AssertExpectations(t)
	assert.True(t, ack.acked)
}

func TestCenterConsumer_MissingIDIsAckedNotUpserted(t *testing.T) {
	centers := new(MockCenterUpserter)
	d, ack := delivery(t, events.RKCenterUpdated, events.CenterInfo{Name: "no id"})

	NewCenterConsumer(centers, nil).handle(context.Background(), d)

	centers.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	assert.True(t, ack.acked)
}
