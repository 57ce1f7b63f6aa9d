package handlers

import (
	"context"

	"gorm.io/gorm"

	"github.com/prayag-camps/magh-mela-api/internal/auth"
	"github.com/prayag-camps/magh-mela-api/internal/domain"
	"github.com/prayag-camps/magh-mela-api/internal/httperr"
	"github.com/prayag-camps/magh-mela-api/internal/models"
	"github.com/prayag-camps/magh-mela-api/internal/validation"
)

type ProfileHandler struct {
	db *gorm.DB
}

func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{db: db}
}

type UpdateProfileRequest struct {
	Body validation.ProfileForm
}

type ProfileResponse struct {
	Body models.User
}

// HandleUpdate edits the caller's own profile. Username, role and password
// are not editable here.
func (h *ProfileHandler) HandleUpdate(ctx context.Context, input *UpdateProfileRequest) (*ProfileResponse, error) {
	p := auth.PrincipalFrom(ctx)
	if p.Anonymous() {
		return nil, httperr.From(domain.AuthenticationError{Msg: "Not logged in"})
	}

	var user models.User
	if err := h.db.WithContext(ctx).First(&user, p.UserID).Error; err != nil {
		return nil, httperr.From(notFound("user", err))
	}
	if err := input.Body.Apply(&user); err != nil {
		return nil, httperr.From(err)
	}
	if err := h.db.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, httperr.From(err)
	}
	return &ProfileResponse{Body: user}, nil
}
