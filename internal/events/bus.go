// Package events carries booking and contact notices from the write path to
// the notifiers over an in-process watermill pub/sub.
package events

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"

	"github.com/prayag-camps/magh-mela-api/internal/metrics"
	"github.com/prayag-camps/magh-mela-api/internal/models"
	"github.com/prayag-camps/magh-mela-api/internal/notifier"
)

const (
	TopicBookingCreated   = "booking.created"
	TopicContactSubmitted = "contact.submitted"
)

// Bus publishes events after the write they describe has committed.
type Bus struct {
	pubsub *gochannel.GoChannel
}

func NewBus(logger watermill.LoggerAdapter) *Bus {
	return &Bus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: 64,
		}, logger),
	}
}

// Subscriber is the read side, handed to the consumer router.
func (b *Bus) Subscriber() message.Subscriber {
	return b.pubsub
}

func (b *Bus) BookingCreated(ctx context.Context, booking models.Booking, camp models.Camp) error {
	return b.publish(ctx, TopicBookingCreated, notifier.NewBookingNotice(booking, camp))
}

func (b *Bus) ContactSubmitted(ctx context.Context, notice notifier.ContactNotice) error {
	return b.publish(ctx, TopicContactSubmitted, notice)
}

func (b *Bus) publish(ctx context.Context, topic string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		metrics.EventsPublished.WithLabelValues(topic, "error").Inc()
		return fmt.Errorf("failed to marshal %s event: %w", topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), raw)
	msg.Metadata.Set("topic", topic)
	if reqID := chimw.GetReqID(ctx); reqID != "" {
		msg.Metadata.Set("request_id", reqID)
	}

	if err := b.pubsub.Publish(topic, msg); err != nil {
		metrics.EventsPublished.WithLabelValues(topic, "error").Inc()
		return fmt.Errorf("failed to publish %s event: %w", topic, err)
	}
	metrics.EventsPublished.WithLabelValues(topic, "published").Inc()
	return nil
}

func (b *Bus) Close() error {
	return b.pubsub.Close()
}
