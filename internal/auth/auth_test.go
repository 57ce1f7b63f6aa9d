package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/prayag-camps/magh-mela-api/internal/config"
	"github.com/prayag-camps/magh-mela-api/internal/database"
	"github.com/prayag-camps/magh-mela-api/internal/domain"
	"github.com/prayag-camps/magh-mela-api/internal/models"
)

func setupAuth(t *testing.T) (*AuthHandler, *gorm.DB) {
	t.Helper()
	db, err := database.Open("sqlite", ":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{SessionSecret: "test-secret", SessionTTL: 24 * time.Hour, FrontendURL: "https://maghmela.example"}
	return NewAuthHandler(cfg, db), db
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var se huma.StatusError
	require.ErrorAs(t, err, &se)
	return se.GetStatus()
}

func TestHandleRegisterAndLogin(t *testing.T) {
	handler, _ := setupAuth(t)
	ctx := context.Background()

	reg := &RegisterInput{}
	reg.Body.Username = " Pilgrim@Example.com "
	reg.Body.Password = "secret1"
	reg.Body.Name = "Pilgrim"
	resp, err := handler.HandleRegister(ctx, reg)
	require.NoError(t, err)
	assert.Equal(t, "pilgrim@example.com", resp.Body.Username)
	assert.Equal(t, models.RoleUser, resp.Body.Role)
	assert.Equal(t, CookieName, resp.SetCookie.Name)
	assert.True(t, resp.SetCookie.HttpOnly)

	t.Run("Duplicate", func(t *testing.T) {
		_, err := handler.HandleRegister(ctx, reg)
		assert.Equal(t, http.StatusConflict, statusOf(t, err))
	})

	t.Run("ShortPassword", func(t *testing.T) {
		in := &RegisterInput{}
		in.Body.Username = "other@example.com"
		in.Body.Password = "123"
		in.Body.Name = "Other"
		_, err := handler.HandleRegister(ctx, in)
		assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
	})

	t.Run("Login", func(t *testing.T) {
		in := &LoginInput{}
		in.Body.Username = "pilgrim@example.com"
		in.Body.Password = "secret1"
		out, err := handler.HandleLogin(ctx, in)
		require.NoError(t, err)
		assert.NotEmpty(t, out.SetCookie.Value)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		in := &LoginInput{}
		in.Body.Username = "pilgrim@example.com"
		in.Body.Password = "wrong"
		_, err := handler.HandleLogin(ctx, in)
		assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
	})
}

func TestLogin_GoogleOnlyAccount(t *testing.T) {
	handler, db := setupAuth(t)
	gid := "g-1"
	require.NoError(t, db.Create(&models.User{Username: "g@example.com", Name: "G", Role: models.RoleUser, GoogleID: &gid}).Error)

	_, err := handler.Login(context.Background(), "g@example.com", "anything")
	require.Error(t, err)
	assert.True(t, domain.IsAuthentication(err))
}

func TestHandleMe(t *testing.T) {
	handler, db := setupAuth(t)
	user := models.User{Username: "me@example.com", Name: "Me", Role: models.RoleUser}
	require.NoError(t, db.Create(&user).Error)

	t.Run("Authenticated", func(t *testing.T) {
		ctx := WithPrincipal(context.Background(), domain.Principal{UserID: user.ID})
		resp, err := handler.HandleMe(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, user.Username, resp.Body.Username)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		_, err := handler.HandleMe(context.Background(), nil)
		assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
	})
}

func TestHandleLogout_EndsSession(t *testing.T) {
	handler, db := setupAuth(t)
	user := models.User{Username: "bye@example.com", Name: "Bye", Role: models.RoleUser}
	require.NoError(t, db.Create(&user).Error)

	cookie, err := handler.StartSession(context.Background(), user)
	require.NoError(t, err)

	out, err := handler.HandleLogout(context.Background(), &LogoutInput{Token: cookie.Value})
	require.NoError(t, err)
	assert.Equal(t, -1, out.SetCookie.MaxAge)

	var count int64
	db.Model(&models.Session{}).Count(&count)
	assert.Zero(t, count)

	_, err = handler.resolve(context.Background(), cookie.Value)
	assert.ErrorIs(t, err, errInvalidSession)
}

func TestLinkGoogleUser(t *testing.T) {
	handler, db := setupAuth(t)
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	existing := models.User{Username: "devotee@example.com", Name: "Devotee", Role: models.RoleUser, Password: &hash}
	require.NoError(t, db.Create(&existing).Error)

	t.Run("LinksByEmail", func(t *testing.T) {
		u, err := handler.linkGoogleUser(context.Background(), googleUser{ID: "g-42", Email: "Devotee@example.com", Name: "Devotee"})
		require.NoError(t, err)
		assert.Equal(t, existing.ID, u.ID)
		require.NotNil(t, u.GoogleID)
		assert.Equal(t, "g-42", *u.GoogleID)
	})

	t.Run("CreatesNew", func(t *testing.T) {
		u, err := handler.linkGoogleUser(context.Background(), googleUser{ID: "g-7", Email: "new@example.com", Name: "New"})
		require.NoError(t, err)
		assert.NotEqual(t, existing.ID, u.ID)
		assert.False(t, u.HasPassword())

		again, err := handler.linkGoogleUser(context.Background(), googleUser{ID: "g-7", Email: "new@example.com"})
		require.NoError(t, err)
		assert.Equal(t, u.ID, again.ID)
	})
}

func TestGoogleCallback_RejectsBadState(t *testing.T) {
	handler, _ := setupAuth(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?state=abc&code=x", nil)
	req.AddCookie(&http.Cookie{Name: stateCookieName, Value: "different"})
	rr := httptest.NewRecorder()

	handler.HandleGoogleCallback(rr, req)

	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "https://maghmela.example/auth?error=state", rr.Header().Get("Location"))
}

func TestHandleGoogleLogin_SetsState(t *testing.T) {
	handler, _ := setupAuth(t)
	rr := httptest.NewRecorder()
	handler.HandleGoogleLogin(rr, httptest.NewRequest(http.MethodGet, "/api/auth/google", nil))

	assert.Equal(t, http.StatusTemporaryRedirect, rr.Code)
	var state string
	for _, c := range rr.Result().Cookies() {
		if c.Name == stateCookieName {
			state = c.Value
		}
	}
	require.NotEmpty(t, state)
	assert.Contains(t, rr.Header().Get("Location"), "state="+state)
}
