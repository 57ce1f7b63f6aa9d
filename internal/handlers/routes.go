package handlers

import (
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/prayag-camps/magh-mela-api/internal/auth"
	"github.com/prayag-camps/magh-mela-api/internal/config"
	"github.com/prayag-camps/magh-mela-api/internal/httperr"
	"github.com/prayag-camps/magh-mela-api/internal/i18n"
	"github.com/prayag-camps/magh-mela-api/internal/logging"
)

type Handlers struct {
	Auth     *auth.AuthHandler
	Policy   *auth.Policy
	Bookings *BookingHandler
	Catalog  *CatalogHandler
	Contact  *ContactHandler
	Profile  *ProfileHandler
}

var cookieSecurity = []map[string][]string{{"cookieAuth": {}}}

func RegisterRoutes(r *chi.Mux, cfg *config.Config, h Handlers) huma.API {
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware(cfg))
	r.Use(loginLimiter(cfg, "/api/login", "/api/register"))
	r.Use(localeMiddleware)
	r.Use(h.Auth.Middleware)

	httperr.Install()

	// Initialize Huma API
	humaConfig := huma.DefaultConfig("Magh Mela Camp Booking API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"cookieAuth": {
			Type: "apiKey",
			In:   "cookie",
			Name: auth.CookieName,
		},
	}
	api := humachi.New(r, humaConfig)

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	huma.Register(api, huma.Operation{
		OperationID: "list-camps",
		Method:      http.MethodGet,
		Path:        "/api/camps",
		Summary:     "List camp tiers",
		Tags:        []string{"Catalog"},
		Middlewares: huma.Middlewares{h.Policy.Require(api, "catalog", "read")},
	}, h.Catalog.HandleListCamps)
	huma.Register(api, huma.Operation{
		OperationID: "list-puja-services",
		Method:      http.MethodGet,
		Path:        "/api/puja-services",
		Summary:     "List puja services",
		Tags:        []string{"Catalog"},
		Middlewares: huma.Middlewares{h.Policy.Require(api, "catalog", "read")},
	}, h.Catalog.HandleListPujas)
	huma.Register(api, huma.Operation{
		OperationID: "list-bathing-dates",
		Method:      http.MethodGet,
		Path:        "/api/bathing-dates",
		Summary:     "Snan calendar for the season",
		Tags:        []string{"Catalog"},
		Middlewares: huma.Middlewares{h.Policy.Require(api, "calendar", "read")},
	}, h.Catalog.HandleBathingDates)

	// Auth routes
	huma.Register(api, huma.Operation{
		OperationID:   "register",
		Method:        http.MethodPost,
		Path:          "/api/register",
		Summary:       "Create a password account and log in",
		Tags:          []string{"Auth"},
		DefaultStatus: http.StatusCreated,
	}, h.Auth.HandleRegister)
	huma.Post(api, "/api/login", h.Auth.HandleLogin)
	huma.Post(api, "/api/logout", h.Auth.HandleLogout)
	huma.Get(api, "/api/user", h.Auth.HandleMe, func(o *huma.Operation) {
		o.Security = cookieSecurity
	})
	r.Get("/api/auth/google", h.Auth.HandleGoogleLogin)
	r.Get("/api/auth/google/callback", h.Auth.HandleGoogleCallback)

	// User routes
	huma.Register(api, huma.Operation{
		OperationID: "update-profile",
		Method:      http.MethodPatch,
		Path:        "/api/user",
		Summary:     "Edit the current user's profile",
		Tags:        []string{"Auth"},
		Security:    cookieSecurity,
		Middlewares: huma.Middlewares{h.Policy.Require(api, "profile", "write")},
	}, h.Profile.HandleUpdate)
	huma.Register(api, huma.Operation{
		OperationID:   "create-booking",
		Method:        http.MethodPost,
		Path:          "/api/bookings",
		Summary:       "Book a camp",
		Tags:          []string{"Bookings"},
		DefaultStatus: http.StatusCreated,
		Security:      cookieSecurity,
	}, h.Bookings.HandleCreate)
	huma.Register(api, huma.Operation{
		OperationID: "list-my-bookings",
		Method:      http.MethodGet,
		Path:        "/api/my-bookings",
		Summary:     "Bookings of the current user, newest first",
		Tags:        []string{"Bookings"},
		Security:    cookieSecurity,
		Middlewares: huma.Middlewares{h.Policy.Require(api, "bookings", "list")},
	}, h.Bookings.HandleListMine)
	huma.Register(api, huma.Operation{
		OperationID: "cancel-booking",
		Method:      http.MethodPatch,
		Path:        "/api/bookings/{id}/cancel",
		Summary:     "Cancel one of your pending bookings",
		Tags:        []string{"Bookings"},
		Security:    cookieSecurity,
		Middlewares: huma.Middlewares{h.Policy.Require(api, "bookings", "cancel")},
	}, h.Bookings.HandleCancel)
	huma.Register(api, huma.Operation{
		OperationID: "contact",
		Method:      http.MethodPost,
		Path:        "/api/contact",
		Summary:     "Send a general inquiry",
		Tags:        []string{"Contact"},
	}, h.Contact.HandleContact)

	// Admin routes
	admin := func(o huma.Operation, object, action string) huma.Operation {
		o.Tags = []string{"Admin"}
		o.Security = cookieSecurity
		o.Middlewares = huma.Middlewares{h.Policy.Require(api, object, action)}
		return o
	}

	huma.Register(api, admin(huma.Operation{
		OperationID: "admin-list-bookings",
		Method:      http.MethodGet,
		Path:        "/api/admin/bookings",
		Summary:     "All bookings, optionally one partition",
	}, "moderation", "list"), h.Bookings.HandleAdminList)
	huma.Register(api, admin(huma.Operation{
		OperationID:   "admin-create-booking",
		Method:        http.MethodPost,
		Path:          "/api/admin/bookings",
		Summary:       "Record a booking taken offline",
		DefaultStatus: http.StatusCreated,
	}, "moderation", "create"), h.Bookings.HandleAdminCreate)
	huma.Register(api, admin(huma.Operation{
		OperationID: "admin-confirm-booking",
		Method:      http.MethodPatch,
		Path:        "/api/admin/bookings/{id}/confirm",
		Summary:     "Confirm a pending booking",
	}, "moderation", "confirm"), h.Bookings.HandleConfirm)
	huma.Register(api, admin(huma.Operation{
		OperationID: "admin-reject-booking",
		Method:      http.MethodPatch,
		Path:        "/api/admin/bookings/{id}/reject",
		Summary:     "Reject a booking",
	}, "moderation", "reject"), h.Bookings.HandleReject)

	huma.Register(api, admin(huma.Operation{
		OperationID:   "admin-create-camp",
		Method:        http.MethodPost,
		Path:          "/api/admin/camps",
		Summary:       "Add a camp tier",
		DefaultStatus: http.StatusCreated,
	}, "catalog", "write"), h.Catalog.HandleCreateCamp)
	huma.Register(api, admin(huma.Operation{
		OperationID: "admin-update-camp",
		Method:      http.MethodPatch,
		Path:        "/api/admin/camps/{id}",
		Summary:     "Edit a camp tier",
	}, "catalog", "write"), h.Catalog.HandleUpdateCamp)
	huma.Register(api, admin(huma.Operation{
		OperationID: "admin-delete-camp",
		Method:      http.MethodDelete,
		Path:        "/api/admin/camps/{id}",
		Summary:     "Delete a camp tier",
	}, "catalog", "write"), h.Catalog.HandleDeleteCamp)
	huma.Register(api, admin(huma.Operation{
		OperationID:   "admin-create-puja",
		Method:        http.MethodPost,
		Path:          "/api/admin/puja-services",
		Summary:       "Add a puja service",
		DefaultStatus: http.StatusCreated,
	}, "catalog", "write"), h.Catalog.HandleCreatePuja)
	huma.Register(api, admin(huma.Operation{
		OperationID: "admin-update-puja",
		Method:      http.MethodPatch,
		Path:        "/api/admin/puja-services/{id}",
		Summary:     "Edit a puja service",
	}, "catalog", "write"), h.Catalog.HandleUpdatePuja)
	huma.Register(api, admin(huma.Operation{
		OperationID: "admin-delete-puja",
		Method:      http.MethodDelete,
		Path:        "/api/admin/puja-services/{id}",
		Summary:     "Delete a puja service",
	}, "catalog", "write"), h.Catalog.HandleDeletePuja)

	return api
}

// corsMiddleware allows the configured origins plus any origin under the
// preview-deploy suffix, with credentials so the auth cookie is sent.
func corsMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		allowed[strings.TrimRight(o, "/")] = true
	}
	if cfg.FrontendURL != "" {
		allowed[strings.TrimRight(cfg.FrontendURL, "/")] = true
	}
	suffix := cfg.AllowedOriginSuffix

	return cors.Handler(cors.Options{
		AllowOriginFunc: func(r *http.Request, origin string) bool {
			if allowed[origin] {
				return true
			}
			return suffix != "" && strings.HasPrefix(origin, "https://") && strings.HasSuffix(origin, suffix)
		},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Accept-Language", "Content-Type", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}

// loginLimiter throttles credential endpoints per client IP. Other paths
// pass straight through.
func loginLimiter(cfg *config.Config, paths ...string) func(http.Handler) http.Handler {
	if cfg.LoginRateLimit <= 0 || cfg.LoginRateWindow <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	limit := httprate.Limit(
		cfg.LoginRateLimit,
		cfg.LoginRateWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			logging.Warn().Str("path", r.URL.Path).Msg("Login rate limit hit")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"message":"Too many login attempts, please try again later"}`))
		}),
	)
	limited := make(map[string]bool, len(paths))
	for _, p := range paths {
		limited[p] = true
	}

	return func(next http.Handler) http.Handler {
		throttled := limit(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost && limited[r.URL.Path] {
				throttled.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// localeMiddleware picks the response language from ?lang, then
// Accept-Language.
func localeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := r.URL.Query().Get("lang")
		if lang == "" {
			lang = r.Header.Get("Accept-Language")
		}
		next.ServeHTTP(w, r.WithContext(withLocale(r.Context(), i18n.Parse(lang))))
	})
}
