package handlers

import (
	"context"

	"github.com/prayag-camps/magh-mela-api/internal/domain"
	"github.com/prayag-camps/magh-mela-api/internal/i18n"
)

type localeKey struct{}

// withLocale stores the caller's language for messages built deeper in.
func withLocale(ctx context.Context, l i18n.Locale) context.Context {
	return context.WithValue(ctx, localeKey{}, l)
}

func localeFrom(ctx context.Context) i18n.Locale {
	l, ok := ctx.Value(localeKey{}).(i18n.Locale)
	if !ok {
		return i18n.English
	}
	return l
}

func loginRequired(ctx context.Context, key string) error {
	return domain.AuthenticationError{Msg: i18n.Translate(key, localeFrom(ctx))}
}

func invalidQuery(field, msg string, value any) error {
	return domain.ValidationError{Field: field, Msg: msg, Value: value}
}

type MessageResponse struct {
	Body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
}

func message(text string) *MessageResponse {
	resp := &MessageResponse{}
	resp.Body.Success = true
	resp.Body.Message = text
	return resp
}
