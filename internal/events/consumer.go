package events

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/goccy/go-json"

	"github.com/prayag-camps/magh-mela-api/internal/notifier"
)

// Consumer routes bus messages to a notifier. Handlers always ack: a failed
// notification is logged and dropped, never redelivered.
type Consumer struct {
	subscriber message.Subscriber
	notifier   notifier.Notifier
	logger     watermill.LoggerAdapter

	startOnce sync.Once
	started   chan struct{}
}

func NewConsumer(subscriber message.Subscriber, n notifier.Notifier, logger watermill.LoggerAdapter) *Consumer {
	return &Consumer{
		subscriber: subscriber,
		notifier:   n,
		logger:     logger,
		started:    make(chan struct{}),
	}
}

// Started is closed once the first router is subscribed and running.
func (c *Consumer) Started() <-chan struct{} {
	return c.started
}

func (c *Consumer) String() string {
	return "event-consumer"
}

// Serve runs a router until ctx is done. Each call builds a fresh router so
// a supervisor can restart it.
func (c *Consumer) Serve(ctx context.Context) error {
	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: 10 * time.Second}, c.logger)
	if err != nil {
		return fmt.Errorf("create watermill router: %w", err)
	}
	router.AddMiddleware(middleware.Recoverer)

	router.AddNoPublisherHandler("notify-booking", TopicBookingCreated, c.subscriber, c.handleBooking)
	router.AddNoPublisherHandler("notify-contact", TopicContactSubmitted, c.subscriber, c.handleContact)

	go func() {
		select {
		case <-router.Running():
			c.startOnce.Do(func() { close(c.started) })
		case <-ctx.Done():
		}
	}()

	return router.Run(ctx)
}

func (c *Consumer) handleBooking(msg *message.Message) error {
	var notice notifier.BookingNotice
	if err := json.Unmarshal(msg.Payload, &notice); err != nil {
		c.logger.Error("Dropping malformed booking event", err, watermill.LogFields{"message_uuid": msg.UUID})
		return nil
	}
	if err := c.notifier.NotifyBooking(msg.Context(), notice); err != nil {
		c.logger.Error("Booking notification failed", err, watermill.LogFields{"booking_id": notice.BookingID})
		return nil
	}
	c.logger.Debug("Booking notification sent", watermill.LogFields{"booking_id": notice.BookingID})
	return nil
}

func (c *Consumer) handleContact(msg *message.Message) error {
	var notice notifier.ContactNotice
	if err := json.Unmarshal(msg.Payload, &notice); err != nil {
		c.logger.Error("Dropping malformed contact event", err, watermill.LogFields{"message_uuid": msg.UUID})
		return nil
	}
	if err := c.notifier.NotifyContact(msg.Context(), notice); err != nil {
		c.logger.Error("Contact notification failed", err, watermill.LogFields{"name": notice.Name})
		return nil
	}
	return nil
}
