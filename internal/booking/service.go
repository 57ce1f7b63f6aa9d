package booking

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/prayag-camps/magh-mela-api/internal/domain"
	"github.com/prayag-camps/magh-mela-api/internal/logging"
	"github.com/prayag-camps/magh-mela-api/internal/metrics"
	"github.com/prayag-camps/magh-mela-api/internal/models"
)

// Publisher announces committed bookings. Delivery is best effort.
type Publisher interface {
	BookingCreated(ctx context.Context, b models.Booking, camp models.Camp) error
}

// Request is a validated, normalized booking submission.
type Request struct {
	CampID       uint
	GuestName    string
	Mobile       string
	CheckIn      time.Time
	CheckOut     time.Time
	GuestCount   int
	BookingType  models.BookingType
	SpecialNeeds string
}

type Service struct {
	db     *gorm.DB
	events Publisher
}

func NewService(db *gorm.DB, events Publisher) *Service {
	return &Service{db: db, events: events}
}

// Create books a stay for the calling user.
func (s *Service) Create(ctx context.Context, p domain.Principal, req Request) (*models.Booking, error) {
	if p.Anonymous() {
		return nil, domain.AuthenticationError{Msg: "Please login to book"}
	}
	if req.BookingType == "" {
		req.BookingType = models.TypeInquiryCall
	}
	owner := p.UserID
	return s.create(ctx, &owner, req)
}

// CreateManual records a booking an admin took over the phone or at the
// counter. It has no owning account.
func (s *Service) CreateManual(ctx context.Context, p domain.Principal, req Request) (*models.Booking, error) {
	if p.Anonymous() {
		return nil, domain.AuthenticationError{}
	}
	if !p.Admin {
		return nil, domain.AuthorizationError{Msg: "admin access required"}
	}
	req.BookingType = models.TypeAdminManual
	return s.create(ctx, nil, req)
}

func (s *Service) create(ctx context.Context, owner *uint, req Request) (*models.Booking, error) {
	if !req.BookingType.Valid() {
		return nil, domain.ValidationError{Field: "bookingType", Msg: "unknown booking type", Value: req.BookingType}
	}

	var camp models.Camp
	if err := s.db.WithContext(ctx).First(&camp, req.CampID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFoundError{Resource: "camp", Err: err}
		}
		return nil, err
	}

	quote, err := Price(camp.Price, req.GuestCount, req.CheckIn, req.CheckOut, req.BookingType)
	if err != nil {
		return nil, err
	}
	status, payment := InitialState(req.BookingType)

	b := models.Booking{
		UserID:        owner,
		CampID:        camp.ID,
		GuestName:     req.GuestName,
		Mobile:        req.Mobile,
		CheckIn:       req.CheckIn,
		CheckOut:      req.CheckOut,
		GuestCount:    req.GuestCount,
		TotalAmount:   quote.Total,
		AdvanceAmount: quote.Advance,
		Status:        status,
		PaymentStatus: payment,
		BookingType:   req.BookingType,
		SpecialNeeds:  req.SpecialNeeds,
	}
	if err := s.db.WithContext(ctx).Create(&b).Error; err != nil {
		return nil, err
	}

	metrics.BookingsCreated.WithLabelValues(string(b.BookingType)).Inc()
	metrics.BookingAmount.Observe(float64(b.TotalAmount))
	logging.Info().
		Uint("booking_id", b.ID).
		Uint("camp_id", b.CampID).
		Str("type", string(b.BookingType)).
		Int("nights", quote.Nights).
		Int("total", b.TotalAmount).
		Msg("booking created")

	// The row is the source of truth; a failed announcement only gets logged.
	if s.events != nil {
		if err := s.events.BookingCreated(ctx, b, camp); err != nil {
			logging.Warn().Err(err).Uint("booking_id", b.ID).Msg("failed to publish booking event")
		}
	}

	return &b, nil
}

// Cancel is the owner's withdrawal of a pending booking.
func (s *Service) Cancel(ctx context.Context, p domain.Principal, id uint) (*models.Booking, error) {
	return s.transition(ctx, p, id, ActionCancel)
}

func (s *Service) Confirm(ctx context.Context, p domain.Principal, id uint) (*models.Booking, error) {
	return s.transition(ctx, p, id, ActionConfirm)
}

func (s *Service) Reject(ctx context.Context, p domain.Principal, id uint) (*models.Booking, error) {
	return s.transition(ctx, p, id, ActionReject)
}

func (s *Service) transition(ctx context.Context, p domain.Principal, id uint, action Action) (*models.Booking, error) {
	var b models.Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&b, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NotFoundError{Resource: "booking", Err: err}
			}
			return err
		}

		change, err := Transition(b, action, p)
		if err != nil {
			return err
		}

		updates := map[string]any{"status": change.To}
		if change.PaymentStatus != "" {
			updates["payment_status"] = change.PaymentStatus
		}
		res := tx.Model(&models.Booking{}).
			Where("id = ? AND status = ?", b.ID, change.From).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.PolicyError{Msg: "booking was changed by someone else, reload and try again"}
		}

		change.Apply(&b)
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.BookingTransitions.WithLabelValues(string(action), string(b.Status)).Inc()
	logging.Info().
		Uint("booking_id", b.ID).
		Uint("actor", p.UserID).
		Str("action", string(action)).
		Str("status", string(b.Status)).
		Msg("booking transition")

	return &b, nil
}

// ListMine returns the caller's bookings, newest first.
func (s *Service) ListMine(ctx context.Context, p domain.Principal) ([]models.Booking, error) {
	if p.Anonymous() {
		return nil, domain.AuthenticationError{}
	}
	bookings := []models.Booking{}
	err := s.db.WithContext(ctx).
		Scopes(ownedBy(p.UserID), newestFirst(true)).
		Find(&bookings).Error
	return bookings, err
}

// ListAll is the admin console view over every booking.
func (s *Service) ListAll(ctx context.Context, p domain.Principal, view View, desc bool) ([]models.Booking, error) {
	if p.Anonymous() {
		return nil, domain.AuthenticationError{}
	}
	if !p.Admin {
		return nil, domain.AuthorizationError{Msg: "admin access required"}
	}
	switch view {
	case "", ViewAll, ViewOnline, ViewInquiry:
	default:
		return nil, domain.ValidationError{Field: "view", Msg: "must be one of all, online, inquiry", Value: view}
	}

	bookings := []models.Booking{}
	err := s.db.WithContext(ctx).
		Scopes(inView(view), newestFirst(desc)).
		Find(&bookings).Error
	return bookings, err
}
