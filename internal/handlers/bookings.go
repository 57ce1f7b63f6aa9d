package handlers

import (
	"context"

	"github.com/prayag-camps/magh-mela-api/internal/auth"
	"github.com/prayag-camps/magh-mela-api/internal/booking"
	"github.com/prayag-camps/magh-mela-api/internal/httperr"
	"github.com/prayag-camps/magh-mela-api/internal/models"
	"github.com/prayag-camps/magh-mela-api/internal/validation"
)

type BookingHandler struct {
	bookings *booking.Service
}

func NewBookingHandler(bookings *booking.Service) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

type CreateBookingRequest struct {
	Body validation.BookingForm
}

type BookingResponse struct {
	Body models.Booking
}

type BookingListResponse struct {
	Body []models.Booking
}

type BookingIDRequest struct {
	ID uint `path:"id" doc:"Booking ID"`
}

type AdminBookingListRequest struct {
	View  string `query:"view" doc:"all, online or inquiry" default:"all"`
	Order string `query:"order" doc:"desc (newest first) or asc" default:"desc"`
}

func (h *BookingHandler) HandleCreate(ctx context.Context, input *CreateBookingRequest) (*BookingResponse, error) {
	p := auth.PrincipalFrom(ctx)
	if p.Anonymous() {
		return nil, httperr.From(loginRequired(ctx, "booking.login_required"))
	}

	req, err := input.Body.Request()
	if err != nil {
		return nil, httperr.From(err)
	}

	b, err := h.bookings.Create(ctx, p, req)
	if err != nil {
		return nil, httperr.From(err)
	}
	return &BookingResponse{Body: *b}, nil
}

func (h *BookingHandler) HandleListMine(ctx context.Context, input *struct{}) (*BookingListResponse, error) {
	bookings, err := h.bookings.ListMine(ctx, auth.PrincipalFrom(ctx))
	if err != nil {
		return nil, httperr.From(err)
	}
	return &BookingListResponse{Body: bookings}, nil
}

func (h *BookingHandler) HandleCancel(ctx context.Context, input *BookingIDRequest) (*BookingResponse, error) {
	b, err := h.bookings.Cancel(ctx, auth.PrincipalFrom(ctx), input.ID)
	if err != nil {
		return nil, httperr.From(err)
	}
	return &BookingResponse{Body: *b}, nil
}

func (h *BookingHandler) HandleAdminList(ctx context.Context, input *AdminBookingListRequest) (*BookingListResponse, error) {
	desc := true
	switch input.Order {
	case "", "desc":
	case "asc":
		desc = false
	default:
		return nil, httperr.From(invalidQuery("order", "must be desc or asc", input.Order))
	}

	bookings, err := h.bookings.ListAll(ctx, auth.PrincipalFrom(ctx), booking.View(input.View), desc)
	if err != nil {
		return nil, httperr.From(err)
	}
	return &BookingListResponse{Body: bookings}, nil
}

func (h *BookingHandler) HandleAdminCreate(ctx context.Context, input *CreateBookingRequest) (*BookingResponse, error) {
	input.Body.BookingType = string(models.TypeAdminManual)
	req, err := input.Body.Request()
	if err != nil {
		return nil, httperr.From(err)
	}

	b, err := h.bookings.CreateManual(ctx, auth.PrincipalFrom(ctx), req)
	if err != nil {
		return nil, httperr.From(err)
	}
	return &BookingResponse{Body: *b}, nil
}

func (h *BookingHandler) HandleConfirm(ctx context.Context, input *BookingIDRequest) (*BookingResponse, error) {
	b, err := h.bookings.Confirm(ctx, auth.PrincipalFrom(ctx), input.ID)
	if err != nil {
		return nil, httperr.From(err)
	}
	return &BookingResponse{Body: *b}, nil
}

func (h *BookingHandler) HandleReject(ctx context.Context, input *BookingIDRequest) (*BookingResponse, error) {
	b, err := h.bookings.Reject(ctx, auth.PrincipalFrom(ctx), input.ID)
	if err != nil {
		return nil, httperr.From(err)
	}
	return &BookingResponse{Body: *b}, nil
}
