package consumer

import (
	"context"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/chiendz11/Badminton-manager-microservices-sub001/internal/domain"
	"github.com/chiendz11/Badminton-manager-microservices-sub001/internal/events"
)

type CenterUpserter interface {
	Upsert(ctx context.Context, c *domain.Center) error
}

// CenterConsumer replicates center.update.info events into the local pricing
// projection. Same delivery contract as ProfileConsumer: at-least-once,
// idempotent upsert.
type CenterConsumer struct {
	centers CenterUpserter
	src     Source
}

func NewCenterConsumer(centers CenterUpserter, src Source) *CenterConsumer {
	return &CenterConsumer{centers: centers, src: src}
}

func (cc *CenterConsumer) Run(ctx context.Context) error {
	msgs, err := cc.src.Deliveries(ctx)
	if err != nil {
		return err
	}
	go func() {
		for d := range msgs {
			cc.handle(ctx, d)
		}
	}()
	return nil
}

func (cc *CenterConsumer) handle(ctx context.Context, d amqp.Delivery) {
	switch d.RoutingKey {
	case events.RKCenterUpdated:
		var info events.CenterInfo
		if !decodeEnvelope(d.Body, &info) {
			_ = d.Nack(false, false)
			return
		}
		if info.CenterID == "" {
			log.Printf("[consumer] center event without centerId")
			_ = d.Ack(false)
			return
		}
		c := &domain.Center{
			ID:        info.CenterID,
			Name:      info.Name,
			Courts:    info.Courts,
			OpenHour:  info.OpenHour,
			CloseHour: info.CloseHour,
			Pricing:   info.Pricing,
			UpdatedAt: time.Now().UTC(),
		}
		if err := cc.centers.Upsert(ctx, c); err != nil {
			log.Printf("[consumer] upsert center %s: %v", info.CenterID, err)
			_ = d.Nack(false, true)
			return
		}
		_ = d.Ack(false)
	default:
		_ = d.Ack(false)
	}
}
