package auth

import (
	"context"
	"net/http"

	"github.com/prayag-camps/magh-mela-api/internal/httperr"
	"github.com/prayag-camps/magh-mela-api/internal/models"
	"github.com/prayag-camps/magh-mela-api/internal/validation"
)

type RegisterInput struct {
	Body validation.RegisterForm
}

type LoginInput struct {
	Body validation.LoginForm
}

type SessionOutput struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
	Body      models.User
}

type LogoutInput struct {
	Token string `cookie:"auth_token"`
}

type LogoutOutput struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
	Body      struct {
		Message string `json:"message"`
	}
}

type MeOutput struct {
	Body models.User
}

func (h *AuthHandler) HandleRegister(ctx context.Context, input *RegisterInput) (*SessionOutput, error) {
	form := input.Body
	if err := form.Normalize(); err != nil {
		return nil, httperr.From(err)
	}

	user, err := h.Register(ctx, form.Username, form.Password, form.Name, form.Mobile)
	if err != nil {
		return nil, httperr.From(err)
	}

	cookie, err := h.StartSession(ctx, *user)
	if err != nil {
		return nil, httperr.From(err)
	}

	return &SessionOutput{SetCookie: *cookie, Body: *user}, nil
}

func (h *AuthHandler) HandleLogin(ctx context.Context, input *LoginInput) (*SessionOutput, error) {
	form := input.Body
	if err := form.Normalize(); err != nil {
		return nil, httperr.From(err)
	}

	user, err := h.Login(ctx, form.Username, form.Password)
	if err != nil {
		return nil, httperr.From(err)
	}

	cookie, err := h.StartSession(ctx, *user)
	if err != nil {
		return nil, httperr.From(err)
	}

	return &SessionOutput{SetCookie: *cookie, Body: *user}, nil
}

func (h *AuthHandler) HandleLogout(ctx context.Context, input *LogoutInput) (*LogoutOutput, error) {
	if input.Token != "" {
		if err := h.EndSession(ctx, input.Token); err != nil {
			return nil, httperr.From(err)
		}
	}
	resp := &LogoutOutput{SetCookie: *h.clearCookie()}
	resp.Body.Message = "Logged out"
	return resp, nil
}

func (h *AuthHandler) HandleMe(ctx context.Context, input *struct{}) (*MeOutput, error) {
	user, err := h.CurrentUser(ctx, PrincipalFrom(ctx))
	if err != nil {
		return nil, httperr.From(err)
	}
	return &MeOutput{Body: *user}, nil
}
