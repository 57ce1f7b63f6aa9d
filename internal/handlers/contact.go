package handlers

import (
	"context"
	"time"

	"github.com/prayag-camps/magh-mela-api/internal/auth"
	"github.com/prayag-camps/magh-mela-api/internal/httperr"
	"github.com/prayag-camps/magh-mela-api/internal/i18n"
	"github.com/prayag-camps/magh-mela-api/internal/logging"
	"github.com/prayag-camps/magh-mela-api/internal/notifier"
	"github.com/prayag-camps/magh-mela-api/internal/validation"
)

// ContactPublisher hands an inquiry to the notification side channel.
type ContactPublisher interface {
	ContactSubmitted(ctx context.Context, notice notifier.ContactNotice) error
}

type ContactHandler struct {
	events      ContactPublisher
	requireAuth bool
}

func NewContactHandler(events ContactPublisher, requireAuth bool) *ContactHandler {
	return &ContactHandler{events: events, requireAuth: requireAuth}
}

type ContactRequest struct {
	Body validation.ContactForm
}

// HandleContact forwards a general inquiry. It never creates a booking, and
// the caller sees success even when the notification cannot be queued.
func (h *ContactHandler) HandleContact(ctx context.Context, input *ContactRequest) (*MessageResponse, error) {
	p := auth.PrincipalFrom(ctx)
	if h.requireAuth && p.Anonymous() {
		return nil, httperr.From(loginRequired(ctx, "contact.login_required"))
	}

	form := input.Body
	if err := form.Normalize(); err != nil {
		return nil, httperr.From(err)
	}

	notice := notifier.ContactNotice{
		Name:        form.Name,
		Mobile:      form.Mobile,
		Message:     form.Message,
		UserID:      p.UserID,
		SubmittedAt: time.Now(),
	}
	if err := h.events.ContactSubmitted(ctx, notice); err != nil {
		logging.Warn().Err(err).Msg("Failed to queue contact notification")
	}

	return message(i18n.Translate("contact.received", localeFrom(ctx))), nil
}
