package consumer

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/chiendz11/Badminton-manager-microservices-sub001/internal/domain"
	"github.com/chiendz11/Badminton-manager-microservices-sub001/internal/events"
	"github.com/chiendz11/Badminton-manager-microservices-sub001/pkg/mq"
)

// Source hands out the delivery stream of one queue subscription.
type Source interface {
	Deliveries(ctx context.Context) (<-chan amqp.Delivery, error)
}

var _ Source = (*mq.Consumer)(nil)

type UserUpserter interface {
	Upsert(ctx context.Context, u *domain.User) error
}

// ProfileConsumer keeps the local points projection in sync with
// user.update.profile events from the user service. At-least-once delivery;
// the upsert is naturally idempotent.
type ProfileConsumer struct {
	users UserUpserter
	src   Source
}

func NewProfileConsumer(users UserUpserter, src Source) *ProfileConsumer {
	return &ProfileConsumer{users: users, src: src}
}

func (pc *ProfileConsumer) Run(ctx context.Context) error {
	msgs, err := pc.src.Deliveries(ctx)
	if err != nil {
		return err
	}
	go func() {
		for d := range msgs {
			pc.handle(ctx, d)
		}
	}()
	return nil
}

func (pc *ProfileConsumer) handle(ctx context.Context, d amqp.Delivery) {
	switch d.RoutingKey {
	case events.RKUserProfileUpdated:
		var p events.UserProfile
		if !decodeEnvelope(d.Body, &p) {
			_ = d.Nack(false, false)
			return
		}
		if p.UserID == "" {
			log.Printf("[consumer] profile event without userId")
			_ = d.Ack(false)
			return
		}
		u := &domain.User{ID: p.UserID, Name: p.Name, Points: p.Points, UpdatedAt: time.Now().UTC()}
		if err := pc.users.Upsert(ctx, u); err != nil {
			log.Printf("[consumer] upsert user %s: %v", p.UserID, err)
			_ = d.Nack(false, true)
			return
		}
		_ = d.Ack(false)
	default:
		// not ours
		_ = d.Ack(false)
	}
}

// decodeEnvelope unwraps the publisher envelope and the inner payload.
// Malformed messages are a producer bug, not a transient fault.
func decodeEnvelope(body []byte, v any) bool {
	var env mq.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		log.Printf("[consumer] unmarshal envelope: %v", err)
		return false
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		log.Printf("[consumer] unmarshal payload for %s: %v", env.Event, err)
		return false
	}
	return true
}
