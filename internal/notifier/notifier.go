// Package notifier delivers booking and contact notices to the people who
// run the camp. Every channel is best effort.
package notifier

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prayag-camps/magh-mela-api/internal/domain"
	"github.com/prayag-camps/magh-mela-api/internal/logging"
	"github.com/prayag-camps/magh-mela-api/internal/metrics"
	"github.com/prayag-camps/magh-mela-api/internal/models"
)

type Notifier interface {
	NotifyBooking(ctx context.Context, notice BookingNotice) error
	NotifyContact(ctx context.Context, notice ContactNotice) error
}

// BookingNotice is what a channel needs to announce a new booking.
type BookingNotice struct {
	BookingID     uint      `json:"bookingId"`
	CampName      string    `json:"campName"`
	GuestName     string    `json:"guestName"`
	Mobile        string    `json:"mobile"`
	CheckIn       string    `json:"checkIn"`
	CheckOut      string    `json:"checkOut"`
	GuestCount    int       `json:"guestCount"`
	TotalAmount   int       `json:"totalAmount"`
	AdvanceAmount int       `json:"advanceAmount"`
	BookingType   string    `json:"bookingType"`
	Status        string    `json:"status"`
	SpecialNeeds  string    `json:"specialNeeds,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

func NewBookingNotice(b models.Booking, camp models.Camp) BookingNotice {
	return BookingNotice{
		BookingID:     b.ID,
		CampName:      camp.NameEn,
		GuestName:     b.GuestName,
		Mobile:        b.Mobile,
		CheckIn:       b.CheckIn.Format("2006-01-02"),
		CheckOut:      b.CheckOut.Format("2006-01-02"),
		GuestCount:    b.GuestCount,
		TotalAmount:   b.TotalAmount,
		AdvanceAmount: b.AdvanceAmount,
		BookingType:   string(b.BookingType),
		Status:        string(b.Status),
		SpecialNeeds:  b.SpecialNeeds,
		CreatedAt:     b.CreatedAt,
	}
}

// ContactNotice is a general inquiry from the contact form.
type ContactNotice struct {
	Name        string    `json:"name"`
	Mobile      string    `json:"mobile"`
	Message     string    `json:"message,omitempty"`
	UserID      uint      `json:"userId,omitempty"`
	SubmittedAt time.Time `json:"submittedAt"`
}

func (n BookingNotice) Subject() string {
	return fmt.Sprintf("New booking #%d from %s", n.BookingID, n.GuestName)
}

func (n BookingNotice) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Booking #%d (%s, %s)\n", n.BookingID, n.BookingType, n.Status)
	fmt.Fprintf(&b, "Camp: %s\n", n.CampName)
	fmt.Fprintf(&b, "Guest: %s\nMobile: %s\n", n.GuestName, n.Mobile)
	fmt.Fprintf(&b, "Dates: %s - %s\nGuests: %d\n", n.CheckIn, n.CheckOut, n.GuestCount)
	fmt.Fprintf(&b, "Total: ₹%d\nAdvance: ₹%d\n", n.TotalAmount, n.AdvanceAmount)
	if n.SpecialNeeds != "" {
		fmt.Fprintf(&b, "Special needs: %s\n", n.SpecialNeeds)
	}
	return b.String()
}

func (n ContactNotice) Subject() string {
	return fmt.Sprintf("New Inquiry from %s", n.Name)
}

func (n ContactNotice) Text() string {
	return fmt.Sprintf("Name: %s\nMobile: %s\nMessage: %s\n", n.Name, n.Mobile, n.Message)
}

// Channel is one named delivery target.
type Channel interface {
	Notifier
	Name() string
}

// Multi fans a notice out to every channel. A failing channel does not stop
// the others; failures come back joined as UpstreamErrors.
type Multi struct {
	channels []Channel
}

func NewMulti(channels ...Channel) *Multi {
	return &Multi{channels: channels}
}

func (m *Multi) Len() int {
	return len(m.channels)
}

func (m *Multi) NotifyBooking(ctx context.Context, notice BookingNotice) error {
	return m.each(func(c Channel) error { return c.NotifyBooking(ctx, notice) })
}

func (m *Multi) NotifyContact(ctx context.Context, notice ContactNotice) error {
	return m.each(func(c Channel) error { return c.NotifyContact(ctx, notice) })
}

func (m *Multi) each(send func(Channel) error) error {
	var errs []error
	for _, c := range m.channels {
		if err := send(c); err != nil {
			metrics.Notifications.WithLabelValues(c.Name(), "error").Inc()
			logging.Warn().Err(err).Str("channel", c.Name()).Msg("Notification failed")
			errs = append(errs, domain.UpstreamError{Channel: c.Name(), Err: err})
			continue
		}
		metrics.Notifications.WithLabelValues(c.Name(), "sent").Inc()
	}
	return errors.Join(errs...)
}
