package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/chiendz11/Badminton-manager-microservices-sub001/internal/domain"
)

type MockBookingStore struct{ mock.Mock }

func (m *MockBookingStore) CreateNoConflict(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if b != nil && b.ID == "" {
		b.ID = "65a1b2c3d4e5f6a7b8c9d0e1" // simulate insert
	}
	return args.Error(0)
}

func (m *MockBookingStore) ByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingStore) ByIDs(ctx context.Context, ids []string) ([]domain.Booking, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingStore) ByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingStore) List(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingStore) ActiveForDay(ctx context.Context, centerID string, date time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, centerID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingStore) UpdateStatus(ctx context.Context, id string, to domain.BookingStatus) (*domain.Booking, error) {
	args := m.Called(ctx, id, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingStore) Confirm(ctx context.Context, id string, points int64) (*domain.Booking, error) {
	args := m.Called(ctx, id, points)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingStore) SoftDelete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCenterStore struct{ mock.Mock }

func (m *MockCenterStore) ByID(ctx context.Context, id string) (*domain.Center, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Center), args.Error(1)
}

type MockUserStore struct{ mock.Mock }

func (m *MockUserStore) ByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockPenaltyGate struct{ mock.Mock }

func (m *MockPenaltyGate) IsPenalized(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

type MockScheduler struct{ mock.Mock }

func (m *MockScheduler) ScheduleExpiration(ctx context.Context, bookingID, userID string, delay time.Duration) error {
	args := m.Called(ctx, bookingID, userID, delay)
	return args.Error(0)
}

type MockBus struct{ mock.Mock }

func (m *MockBus) Publish(ctx context.Context, key string, v any) error {
	args := m.Called(ctx, key, v)
	return args.Error(0)
}

type MockPassStore struct{ mock.Mock }

func (m *MockPassStore) Create(ctx context.Context, p *domain.PassPost) error {
	args := m.Called(ctx, p)
	if p != nil && p.ID == "" {
		p.ID = "65a1b2c3d4e5f6a7b8c9d0f2"
	}
	return args.Error(0)
}

func (m *MockPassStore) ByID(ctx context.Context, id string) (*domain.PassPost, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PassPost), args.Error(1)
}

func (m *MockPassStore) LiveByBookingID(ctx context.Context, bookingID string) (*domain.PassPost, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PassPost), args.Error(1)
}

func (m *MockPassStore) ListActive(ctx context.Context, now time.Time) ([]domain.PassPost, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PassPost), args.Error(1)
}

func (m *MockPassStore) BySeller(ctx context.Context, sellerID string) ([]domain.PassPost, error) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PassPost), args.Error(1)
}

func (m *MockPassStore) AddInterest(ctx context.Context, userID, postID string) error {
	args := m.Called(ctx, userID, postID)
	return args.Error(0)
}

func (m *MockPassStore) RemoveInterest(ctx context.Context, userID, postID string) (bool, error) {
	args := m.Called(ctx, userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPassStore) HasInterest(ctx context.Context, userID, postID string) (bool, error) {
	args := m.Called(ctx, userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPassStore) CountInterest(ctx context.Context, postID string) (int64, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPassStore) InterestedUsers(ctx context.Context, postID string) ([]domain.InterestedUser, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InterestedUser), args.Error(1)
}

type MockDirectory struct{ mock.Mock }

func (m *MockDirectory) DisplayNames(ctx context.Context, centerID string) (string, map[string]string, error) {
	args := m.Called(ctx, centerID)
	var courts map[string]string
	if args.Get(1) != nil {
		courts = args.Get(1).(map[string]string)
	}
	return args.String(0), courts, args.Error(2)
}
