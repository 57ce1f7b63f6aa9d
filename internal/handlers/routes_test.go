package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prayag-camps/magh-mela-api/internal/auth"
	"github.com/prayag-camps/magh-mela-api/internal/booking"
	"github.com/prayag-camps/magh-mela-api/internal/config"
	"github.com/prayag-camps/magh-mela-api/internal/models"
)

func newRouter(t *testing.T, f *fixture) *chi.Mux {
	t.Helper()
	cfg := &config.Config{
		SessionSecret:       "test-secret",
		SessionTTL:          24 * time.Hour,
		AllowedOrigins:      []string{"https://maghmela.example"},
		AllowedOriginSuffix: ".vercel.app",
		LoginRateLimit:      3,
		LoginRateWindow:     time.Minute,
	}
	policy, err := auth.NewPolicy()
	require.NoError(t, err)

	r := chi.NewRouter()
	RegisterRoutes(r, cfg, Handlers{
		Auth:     auth.NewAuthHandler(cfg, f.db),
		Policy:   policy,
		Bookings: NewBookingHandler(booking.NewService(f.db, f.events)),
		Catalog:  NewCatalogHandler(f.db),
		Contact:  NewContactHandler(f.events, true),
		Profile:  NewProfileHandler(f.db),
	})
	return r
}

func do(r http.Handler, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func authCookie(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	t.Fatal("no auth cookie set")
	return nil
}

func TestRoutes_BookingJourney(t *testing.T) {
	f := setup(t)
	r := newRouter(t, f)

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/camps?lang=hi", "").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/bathing-dates", "").Code)

	reg := do(r, http.MethodPost, "/api/register", `{"username":"yatri@example.com","password":"secret1","name":"Yatri"}`)
	require.Equal(t, http.StatusCreated, reg.Code, reg.Body.String())
	cookie := authCookie(t, reg)

	body := `{"campId":` + jsonNumber(f.camp.ID) + `,"guestName":"Yatri","countryCode":"+91","mobile":"98765 43210","checkIn":"2026-01-14","checkOut":"2026-01-16","guestCount":"3","bookingType":"online_token","advanceAmount":999}`
	created := do(r, http.MethodPost, "/api/bookings", body, cookie)
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())

	var b models.Booking
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &b))
	assert.Equal(t, 3, b.GuestCount)
	assert.Equal(t, 30000, b.TotalAmount)
	assert.Equal(t, 3000, b.AdvanceAmount)

	mine := do(r, http.MethodGet, "/api/my-bookings", "", cookie)
	require.Equal(t, http.StatusOK, mine.Code)
	var list []models.Booking
	require.NoError(t, json.Unmarshal(mine.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	cancel := do(r, http.MethodPatch, "/api/bookings/"+jsonNumber(b.ID)+"/cancel", "", cookie)
	assert.Equal(t, http.StatusConflict, cancel.Code)

	assert.Equal(t, http.StatusForbidden, do(r, http.MethodGet, "/api/admin/bookings", "", cookie).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/api/admin/bookings", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodPost, "/api/bookings", body).Code)

	bad := do(r, http.MethodPost, "/api/bookings", `{"campId":1,"guestName":"Y","mobile":"1","checkIn":"2026-01-14","checkOut":"2026-01-15","guestCount":1}`, cookie)
	assert.Equal(t, http.StatusBadRequest, bad.Code)

	// Bodies rejected by the request schema get the same status.
	for _, raw := range []string{
		`{"campId":1,"guestName":"Yatri","mobile":"9876543210","checkIn":"2026-01-14","checkOut":"2026-01-15","guestCount":"three"}`,
		`{"campId":1,"guestName":"Yatri","mobile":"9876543210","checkIn":"2026-01-14","checkOut":"2026-01-15","guestCount":2.5}`,
		`{"campId":1,"guestName":42,"mobile":"9876543210","checkIn":"2026-01-14","checkOut":"2026-01-15","guestCount":1}`,
	} {
		rr := do(r, http.MethodPost, "/api/bookings", raw, cookie)
		assert.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())
	}

	huge := do(r, http.MethodPost, "/api/bookings", `{"campId":`+jsonNumber(f.camp.ID)+`,"guestName":"Yatri","mobile":"9876543210","checkIn":"2026-01-14","checkOut":"2026-01-16","guestCount":"4611686018427387904","bookingType":"online_token"}`, cookie)
	assert.Equal(t, http.StatusBadRequest, huge.Code, huge.Body.String())

	logout := do(r, http.MethodPost, "/api/logout", "", cookie)
	assert.Equal(t, http.StatusOK, logout.Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/api/user", "", cookie).Code)
}

func TestRoutes_AdminConsole(t *testing.T) {
	f := setup(t)
	r := newRouter(t, f)

	hash, err := auth.HashPassword("admin-pass")
	require.NoError(t, err)
	require.NoError(t, f.db.Model(&f.admin).Update("password", hash).Error)

	login := do(r, http.MethodPost, "/api/login", `{"username":"admin@example.com","password":"admin-pass"}`)
	require.Equal(t, http.StatusOK, login.Code, login.Body.String())
	cookie := authCookie(t, login)

	list := do(r, http.MethodGet, "/api/admin/bookings?view=inquiry&order=asc", "", cookie)
	assert.Equal(t, http.StatusOK, list.Code)

	camp := do(r, http.MethodPost, "/api/admin/camps", `{"nameEn":"Dormitory","descriptionEn":"Shared hall","price":800,"capacity":"1 person","features":["Blanket"]}`, cookie)
	assert.Equal(t, http.StatusCreated, camp.Code, camp.Body.String())
}

func TestRoutes_CORS(t *testing.T) {
	f := setup(t)
	r := newRouter(t, f)

	preflight := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/api/bookings", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		return rr
	}

	rr := preflight("https://kumbh-preview.vercel.app")
	assert.Equal(t, "https://kumbh-preview.vercel.app", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))

	assert.Equal(t, "https://maghmela.example", preflight("https://maghmela.example").Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, preflight("https://evil.example").Header().Get("Access-Control-Allow-Origin"))
}

func TestRoutes_LoginRateLimit(t *testing.T) {
	f := setup(t)
	r := newRouter(t, f)

	for i := 0; i < 3; i++ {
		rr := do(r, http.MethodPost, "/api/login", `{"username":"nobody@example.com","password":"x"}`)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, do(r, http.MethodPost, "/api/login", `{"username":"nobody@example.com","password":"x"}`).Code)

	// Other endpoints are not throttled.
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/camps", "").Code)
}

func jsonNumber(id uint) string {
	b, _ := json.Marshal(id)
	return string(b)
}
