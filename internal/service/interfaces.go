package service

import (
	"context"
	"time"

	"github.com/chiendz11/Badminton-manager-microservices-sub001/internal/domain"
)

type BookingStore interface {
	CreateNoConflict(ctx context.Context, b *domain.Booking) error
	ByID(ctx context.Context, id string) (*domain.Booking, error)
	ByIDs(ctx context.Context, ids []string) ([]domain.Booking, error)
	ByUser(ctx context.Context, userID string) ([]domain.Booking, error)
	List(ctx context.Context) ([]domain.Booking, error)
	ActiveForDay(ctx context.Context, centerID string, date time.Time) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, to domain.BookingStatus) (*domain.Booking, error)
	Confirm(ctx context.Context, id string, points int64) (*domain.Booking, error)
	SoftDelete(ctx context.Context, id string) error
}

type CenterStore interface {
	ByID(ctx context.Context, id string) (*domain.Center, error)
}

type UserStore interface {
	ByID(ctx context.Context, id string) (*domain.User, error)
}

type PassStore interface {
	Create(ctx context.Context, p *domain.PassPost) error
	ByID(ctx context.Context, id string) (*domain.PassPost, error)
	LiveByBookingID(ctx context.Context, bookingID string) (*domain.PassPost, error)
	ListActive(ctx context.Context, now time.Time) ([]domain.PassPost, error)
	BySeller(ctx context.Context, sellerID string) ([]domain.PassPost, error)
	AddInterest(ctx context.Context, userID, postID string) error
	RemoveInterest(ctx context.Context, userID, postID string) (bool, error)
	HasInterest(ctx context.Context, userID, postID string) (bool, error)
	CountInterest(ctx context.Context, postID string) (int64, error)
	InterestedUsers(ctx context.Context, postID string) ([]domain.InterestedUser, error)
}

// PenaltyGate answers "is this user in the hoarding cool-down".
type PenaltyGate interface {
	IsPenalized(ctx context.Context, userID string) (bool, error)
}

// ExpiryScheduler arms the delayed cancel-if-unpaid task for a booking.
type ExpiryScheduler interface {
	ScheduleExpiration(ctx context.Context, bookingID, userID string, delay time.Duration) error
}

// EventBus is the fire-and-forget publish side of the message bus.
// Delivery is at-least-once with no ordering across event types.
type EventBus interface {
	Publish(ctx context.Context, key string, v any) error
}

// CenterDirectory resolves display names from the center service. Lookups may
// fail; marketplace enrichment degrades to raw ids instead of erroring.
type CenterDirectory interface {
	DisplayNames(ctx context.Context, centerID string) (centerName string, courtNames map[string]string, err error)
}
