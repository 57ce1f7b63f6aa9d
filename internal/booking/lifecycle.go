package booking

import (
	"github.com/prayag-camps/magh-mela-api/internal/domain"
	"github.com/prayag-camps/magh-mela-api/internal/models"
)

type Action string

const (
	ActionConfirm Action = "confirm" // admin
	ActionReject  Action = "reject"  // admin
	ActionCancel  Action = "cancel"  // owner
)

// Change is the field update a permitted transition applies.
type Change struct {
	From          models.BookingStatus
	To            models.BookingStatus
	PaymentStatus models.PaymentStatus // empty leaves payment status untouched
}

// InitialState is the status pair a new booking of type t starts in.
// Online-token bookings count as paid upfront; there is no gateway.
func InitialState(t models.BookingType) (models.BookingStatus, models.PaymentStatus) {
	if t == models.TypeOnlineToken {
		return models.StatusConfirmed, models.PaymentPartial
	}
	return models.StatusPending, models.PaymentUnpaid
}

// Transition decides whether p may apply action to b. Role and ownership are
// checked before state so callers learn about permissions first.
func Transition(b models.Booking, action Action, p domain.Principal) (Change, error) {
	if p.Anonymous() {
		return Change{}, domain.AuthenticationError{}
	}

	switch action {
	case ActionConfirm, ActionReject:
		if !p.Admin {
			return Change{}, domain.AuthorizationError{Msg: "admin access required"}
		}
	case ActionCancel:
		if !b.OwnedBy(p.UserID) {
			return Change{}, domain.AuthorizationError{Msg: "you can only cancel your own bookings"}
		}
	default:
		return Change{}, domain.ValidationError{Field: "action", Msg: "unknown booking action", Value: action}
	}

	if b.Status == models.StatusCancelled {
		return Change{}, domain.PolicyError{Msg: "booking is already cancelled"}
	}

	switch action {
	case ActionConfirm:
		if b.Status != models.StatusPending {
			return Change{}, domain.PolicyError{Msg: "only pending bookings can be confirmed"}
		}
		return Change{From: b.Status, To: models.StatusConfirmed, PaymentStatus: models.PaymentPaid}, nil
	case ActionReject:
		return Change{From: b.Status, To: models.StatusCancelled}, nil
	default:
		if b.Status == models.StatusConfirmed {
			return Change{}, domain.PolicyError{Msg: "Confirmed bookings cannot be cancelled directly. Please contact support."}
		}
		return Change{From: b.Status, To: models.StatusCancelled}, nil
	}
}

// Apply copies c onto b.
func (c Change) Apply(b *models.Booking) {
	b.Status = c.To
	if c.PaymentStatus != "" {
		b.PaymentStatus = c.PaymentStatus
	}
}
