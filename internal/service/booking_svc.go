package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/chiendz11/Badminton-manager-microservices-sub001/internal/domain"
	"github.com/chiendz11/Badminton-manager-microservices-sub001/internal/events"
	"github.com/chiendz11/Badminton-manager-microservices-sub001/internal/pricing"
	"github.com/chiendz11/Badminton-manager-microservices-sub001/internal/repository"
)

// ExpireAfter is the payment window: a booking still pending when it elapses
// is cancelled by the expiration worker.
const ExpireAfter = 5 * time.Minute

// Slot statuses rendered by the mapping endpoint; wire values kept from the
// original platform, the front-end matches on them.
const (
	SlotFree       = "trống"
	SlotPending    = "pending"
	SlotProcessing = "chờ xử lý"
	SlotBooked     = "đã đặt"
)

type BookingSvc struct {
	bookings  BookingStore
	centers   CenterStore
	users     UserStore
	penalties PenaltyGate
	scheduler ExpiryScheduler
	bus       EventBus
}

func NewBookingSvc(b BookingStore, c CenterStore, u UserStore, p PenaltyGate, s ExpiryScheduler, bus EventBus) *BookingSvc {
	return &BookingSvc{bookings: b, centers: c, users: u, penalties: p, scheduler: s, bus: bus}
}

type CreateBookingInput struct {
	CenterID string
	UserID   string
	UserName string
	BookDate time.Time
	Details  domain.CourtDetails
	Type     domain.BookingType
}

func (in *CreateBookingInput) validate() error {
	if in.CenterID == "" || in.UserID == "" {
		return fmt.Errorf("%w: centerId and userId are required", ErrBadRequest)
	}
	if len(in.Details) == 0 {
		return fmt.Errorf("%w: no court details", ErrBadRequest)
	}
	for _, d := range in.Details {
		if d.CourtID == "" || len(d.Timeslots) == 0 {
			return fmt.Errorf("%w: each court needs an id and at least one timeslot", ErrBadRequest)
		}
		for _, ts := range d.Timeslots {
			if ts < 0 || ts > 23 {
				return fmt.Errorf("%w: timeslot %d out of range", ErrBadRequest, ts)
			}
		}
	}
	return nil
}

// Create runs the whole creation pipeline: penalty gate, conflict check,
// pricing, persist as pending, arm the expiration task.
func (s *BookingSvc) Create(ctx context.Context, in CreateBookingInput) (*domain.Booking, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	locked, err := s.penalties.IsPenalized(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("penalty lookup: %w", err)
	}
	if locked {
		return nil, fmt.Errorf("%w: too many abandoned bookings, try again later", ErrBookingLocked)
	}

	center, err := s.centers.ByID(ctx, in.CenterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: center %s", ErrNotFound, in.CenterID)
		}
		return nil, err
	}
	user, err := s.users.ByID(ctx, in.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, in.UserID)
		}
		return nil, err
	}

	day := dateOnly(in.BookDate)
	btype := in.Type
	if btype == "" {
		btype = domain.TypeDaily
	}

	b := &domain.Booking{
		UserID:              in.UserID,
		UserName:            in.UserName,
		CenterID:            in.CenterID,
		CourtBookingDetails: in.Details,
		BookDate:            day,
		Status:              domain.StatusPending,
		Type:                btype,
		Price:               pricing.Quote(center, day, in.Details, user.Points),
	}
	if err := s.bookings.CreateNoConflict(ctx, b); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, ErrConflict
		}
		return nil, err
	}

	if err := s.scheduler.ScheduleExpiration(ctx, b.ID, b.UserID, ExpireAfter); err != nil {
		// booking is already persisted; an unarmed timer means it could sit
		// pending forever, so surface the failure
		return nil, fmt.Errorf("schedule expiration for %s: %w", b.ID, err)
	}
	return b, nil
}

func (s *BookingSvc) Get(ctx context.Context, id string) (*domain.Booking, error) {
	if !domain.ValidID(id) {
		return nil, fmt.Errorf("%w: malformed booking id", ErrBadRequest)
	}
	b, err := s.bookings.ByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return b, err
}

func (s *BookingSvc) ListAll(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.List(ctx)
}

func (s *BookingSvc) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	return s.bookings.ByUser(ctx, userID)
}

// SlotInfo is one cell of the mapping grid.
type SlotInfo struct {
	Status   string `json:"status"`
	UserName string `json:"userName,omitempty"`
}

// Mapping renders the per-court per-hour occupancy grid for a center and day.
func (s *BookingSvc) Mapping(ctx context.Context, centerID string, date time.Time) (map[string]map[int]SlotInfo, error) {
	center, err := s.centers.ByID(ctx, centerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: center %s", ErrNotFound, centerID)
		}
		return nil, err
	}
	bookings, err := s.bookings.ActiveForDay(ctx, centerID, dateOnly(date))
	if err != nil {
		return nil, err
	}

	grid := make(map[string]map[int]SlotInfo, len(center.Courts))
	for _, court := range center.Courts {
		row := make(map[int]SlotInfo)
		for h := center.OpenHour; h < center.CloseHour; h++ {
			row[h] = SlotInfo{Status: SlotFree}
		}
		grid[court] = row
	}
	for i := range bookings {
		b := &bookings[i]
		status := SlotPending
		switch b.Status {
		case domain.StatusProcessing:
			status = SlotProcessing
		case domain.StatusConfirmed:
			status = SlotBooked
		}
		for _, d := range b.CourtBookingDetails {
			row, ok := grid[d.CourtID]
			if !ok {
				// booking references a court the projection no longer lists
				row = make(map[int]SlotInfo)
				grid[d.CourtID] = row
			}
			for _, ts := range d.Timeslots {
				row[ts] = SlotInfo{Status: status, UserName: b.UserName}
			}
		}
	}
	return grid, nil
}

// MarkProcessing is the only status transition the PATCH endpoint permits.
func (s *BookingSvc) MarkProcessing(ctx context.Context, id string, to domain.BookingStatus) (*domain.Booking, error) {
	if !domain.ValidID(id) {
		return nil, fmt.Errorf("%w: malformed booking id", ErrBadRequest)
	}
	if to != domain.StatusProcessing {
		return nil, fmt.Errorf("%w: only transition to %q is permitted", ErrBadRequest, domain.StatusProcessing)
	}
	b, err := s.bookings.UpdateStatus(ctx, id, domain.StatusProcessing)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return b, err
}

func (s *BookingSvc) Delete(ctx context.Context, id string) error {
	if !domain.ValidID(id) {
		return fmt.Errorf("%w: malformed booking id", ErrBadRequest)
	}
	err := s.bookings.SoftDelete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// ConfirmPayment settles a booking from the payment webhook: status to
// confirmed, points awarded as price/1000.
func (s *BookingSvc) ConfirmPayment(ctx context.Context, id string) (*domain.Booking, error) {
	b, err := s.bookings.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	b, err = s.bookings.Confirm(ctx, b.ID, b.Price/1000)
	if err != nil {
		return nil, err
	}
	if err := s.bus.Publish(ctx, events.RKBookingConfirmed, events.BookingConfirmed{
		BookingID:    b.ID,
		UserID:       b.UserID,
		PointsEarned: b.PointsEarned,
	}); err != nil {
		log.Printf("[booking] publish %s: %v", events.RKBookingConfirmed, err)
	}
	return b, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
