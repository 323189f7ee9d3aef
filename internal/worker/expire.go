package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"github.com/chiendz11/Badminton-manager-microservices-sub001/internal/domain"
	"github.com/chiendz11/Badminton-manager-microservices-sub001/internal/events"
)

const TaskBookingExpire = "booking:expire"

type ExpirePayload struct {
	BookingID string `json:"bookingId"`
	UserID    string `json:"userId"`
}

// Scheduler enqueues the delayed cancel-if-unpaid task. The queue gives
// at-most-once-ish delivery; the handler is idempotent regardless.
type Scheduler struct {
	client *asynq.Client
}

func NewScheduler(client *asynq.Client) *Scheduler {
	return &Scheduler{client: client}
}

func (s *Scheduler) ScheduleExpiration(ctx context.Context, bookingID, userID string, delay time.Duration) error {
	payload, err := json.Marshal(ExpirePayload{BookingID: bookingID, UserID: userID})
	if err != nil {
		return err
	}
	task := asynq.NewTask(TaskBookingExpire, payload)
	_, err = s.client.EnqueueContext(ctx, task,
		asynq.ProcessIn(delay),
		asynq.TaskID("expire:"+bookingID), // one timer per booking
		asynq.MaxRetry(5),
	)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", TaskBookingExpire, err)
	}
	return nil
}

// CancelStore is the single write the handler needs. A missing booking comes
// back as (nil, false, nil).
type CancelStore interface {
	CancelIfPending(ctx context.Context, id string) (*domain.Booking, bool, error)
}

type AbandonmentTracker interface {
	RecordAbandonment(ctx context.Context, userID string) (tripped bool, streak int64, err error)
}

type EventBus interface {
	Publish(ctx context.Context, key string, v any) error
}

// ExpireHandler fires when a booking's payment window elapses. Only pending
// bookings move to cancelled; everything else is a no-op, which makes
// double-delivery and fire-after-confirmation safe.
type ExpireHandler struct {
	bookings CancelStore
	tracker  AbandonmentTracker
	bus      EventBus
}

func NewExpireHandler(bookings CancelStore, tracker AbandonmentTracker, bus EventBus) *ExpireHandler {
	return &ExpireHandler{bookings: bookings, tracker: tracker, bus: bus}
}

func (h *ExpireHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var p ExpirePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}

	b, cancelled, err := h.bookings.CancelIfPending(ctx, p.BookingID)
	if err != nil {
		return fmt.Errorf("cancel %s: %w", p.BookingID, err) // queue retries
	}
	if b == nil {
		return nil // booking deleted meanwhile
	}
	if !cancelled {
		return nil // already resolved by payment or another path
	}
	log.Printf("[worker] booking %s expired unpaid, cancelled", p.BookingID)

	// Past this point the cancel is durable; a retry would see !cancelled and
	// skip the tracker, so tracker errors are logged, not returned.
	tripped, streak, err := h.tracker.RecordAbandonment(ctx, p.UserID)
	if err != nil {
		log.Printf("[worker] hoarding streak for %s: %v", p.UserID, err)
		return nil
	}
	if !tripped {
		log.Printf("[worker] user %s hoarding streak now %d", p.UserID, streak)
		return nil
	}

	evt := events.SpamDetected{
		UserID:    p.UserID,
		Reason:    "repeated unpaid booking expirations",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if err := h.bus.Publish(ctx, events.RKUserSpamDetected, evt); err != nil {
		log.Printf("[worker] publish %s: %v", events.RKUserSpamDetected, err)
	}
	return nil
}
