package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prayag-camps/magh-mela-api/internal/domain"
	"github.com/prayag-camps/magh-mela-api/internal/models"
)

const (
	CookieName = "auth_token"

	DefaultSessionTTL = 30 * 24 * time.Hour
)

var errInvalidSession = errors.New("invalid session")

type sessionClaims struct {
	SessionID string `json:"sid"`
	UserID    uint   `json:"user_id"`
	jwt.RegisteredClaims
}

func (h *AuthHandler) ttl() time.Duration {
	if h.cfg.SessionTTL > 0 {
		return h.cfg.SessionTTL
	}
	return DefaultSessionTTL
}

// StartSession stores a new session row for user and returns the cookie
// that names it.
func (h *AuthHandler) StartSession(ctx context.Context, user models.User) (*http.Cookie, error) {
	session := models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(h.ttl()),
	}
	if err := h.db.WithContext(ctx).Create(&session).Error; err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	token, err := h.GenerateToken(session)
	if err != nil {
		return nil, err
	}
	return h.sessionCookie(token, session.ExpiresAt), nil
}

func (h *AuthHandler) GenerateToken(s models.Session) (string, error) {
	claims := sessionClaims{
		SessionID: s.ID,
		UserID:    s.UserID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.SessionSecret))
}

func (h *AuthHandler) parseToken(tokenString string) (*sessionClaims, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(h.cfg.SessionSecret), nil
	})
	if err != nil || !token.Valid || claims.SessionID == "" {
		return nil, errInvalidSession
	}
	return claims, nil
}

// resolved is a validated session plus the caller it belongs to.
type resolved struct {
	session   models.Session
	principal domain.Principal
	refreshed *http.Cookie
}

// resolve checks the token, the session row and the user. When more than
// half of the session lifetime has passed the row is extended and a fresh
// cookie is returned in refreshed.
func (h *AuthHandler) resolve(ctx context.Context, tokenString string) (*resolved, error) {
	claims, err := h.parseToken(tokenString)
	if err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	var session models.Session
	if err := db.First(&session, "id = ?", claims.SessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errInvalidSession
		}
		return nil, err
	}
	now := time.Now()
	if session.Expired(now) || session.UserID != claims.UserID {
		return nil, errInvalidSession
	}

	var user models.User
	if err := db.First(&user, session.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errInvalidSession
		}
		return nil, err
	}

	out := &resolved{
		session:   session,
		principal: domain.Principal{UserID: user.ID, Admin: user.IsAdmin()},
	}

	// Sliding session
	if session.ExpiresAt.Sub(now) < h.ttl()/2 {
		session.ExpiresAt = now.Add(h.ttl())
		if err := db.Model(&session).Update("expires_at", session.ExpiresAt).Error; err == nil {
			if token, err := h.GenerateToken(session); err == nil {
				out.refreshed = h.sessionCookie(token, session.ExpiresAt)
				out.session = session
			}
		}
	}

	return out, nil
}

// EndSession deletes the session named by the token. Unknown or malformed
// tokens are ignored.
func (h *AuthHandler) EndSession(ctx context.Context, tokenString string) error {
	claims, err := h.parseToken(tokenString)
	if err != nil {
		return nil
	}
	return h.db.WithContext(ctx).Delete(&models.Session{}, "id = ?", claims.SessionID).Error
}

// PurgeExpired removes dead session rows.
func (h *AuthHandler) PurgeExpired(ctx context.Context) (int64, error) {
	res := h.db.WithContext(ctx).Where("expires_at <= ?", time.Now()).Delete(&models.Session{})
	return res.RowsAffected, res.Error
}

func (h *AuthHandler) sessionCookie(token string, expires time.Time) *http.Cookie {
	c := &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Expires:  expires,
		HttpOnly: true,
		Path:     "/",
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	// The frontend is served from another site in production.
	if h.cfg.CookieSecure {
		c.SameSite = http.SameSiteNoneMode
	}
	return c
}

func (h *AuthHandler) clearCookie() *http.Cookie {
	c := h.sessionCookie("", time.Unix(0, 0))
	c.MaxAge = -1
	return c
}
