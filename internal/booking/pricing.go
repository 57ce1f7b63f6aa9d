// Package booking holds the booking rules: pricing, the status lifecycle and
// the read-side projections, plus the service that persists them.
package booking

import (
	"fmt"
	"math"
	"time"

	"github.com/prayag-camps/magh-mela-api/internal/domain"
	"github.com/prayag-camps/magh-mela-api/internal/models"
)

// AdvancePercent of the total is collected upfront for online-token bookings.
const AdvancePercent = 10

const (
	// MaxGuestCount is the largest party one booking may cover.
	MaxGuestCount = 500

	// maxTotal keeps total*AdvancePercent inside int.
	maxTotal = math.MaxInt / 100
)

// Quote is the money side of a booking request.
type Quote struct {
	Nights  int
	Total   int
	Advance int
}

// Nights counts whole days from checkIn to checkOut, rounding partial days
// up. A same-day or inverted range is a one-night stay.
func Nights(checkIn, checkOut time.Time) int {
	days := math.Ceil(checkOut.Sub(checkIn).Hours() / 24)
	if days < 1 {
		return 1
	}
	return int(days)
}

// Advance returns round(total * 10%) for online-token bookings and 0 otherwise.
func Advance(total int, t models.BookingType) int {
	if t != models.TypeOnlineToken || total <= 0 {
		return 0
	}
	// Integer half-up rounding of total/10.
	return (total*AdvancePercent + 50) / 100
}

// Price computes the quote for a stay. It never looks anything up; the caller
// resolves the camp first.
func Price(price, guestCount int, checkIn, checkOut time.Time, t models.BookingType) (Quote, error) {
	if price <= 0 {
		return Quote{}, domain.ValidationError{Field: "price", Msg: "camp has no valid price", Value: price}
	}
	if guestCount < 1 {
		return Quote{}, domain.ValidationError{Field: "guestCount", Msg: "must be at least 1", Value: guestCount}
	}
	if guestCount > MaxGuestCount {
		return Quote{}, domain.ValidationError{Field: "guestCount", Msg: fmt.Sprintf("must be at most %d", MaxGuestCount), Value: guestCount}
	}

	nights := Nights(checkIn, checkOut)
	if guestCount > maxTotal/nights || price > maxTotal/(guestCount*nights) {
		return Quote{}, domain.ValidationError{Field: "checkOut", Msg: "stay is too long to price", Value: nights}
	}
	total := price * guestCount * nights
	return Quote{
		Nights:  nights,
		Total:   total,
		Advance: Advance(total, t),
	}, nil
}
