package auth

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"gorm.io/gorm"

	"github.com/prayag-camps/magh-mela-api/internal/config"
	"github.com/prayag-camps/magh-mela-api/internal/database"
	"github.com/prayag-camps/magh-mela-api/internal/domain"
	"github.com/prayag-camps/magh-mela-api/internal/logging"
	"github.com/prayag-camps/magh-mela-api/internal/models"
)

const (
	GoogleAuthorizeEndpoint = "https://accounts.google.com/o/oauth2/auth"
	GoogleTokenEndpoint     = "https://oauth2.googleapis.com/token"
	GoogleUserAPI           = "https://www.googleapis.com/oauth2/v2/userinfo"

	stateCookieName = "oauth_state"
)

type AuthHandler struct {
	oauthConfig *oauth2.Config
	db          *gorm.DB
	cfg         *config.Config
	userInfoURL string
}

func NewAuthHandler(cfg *config.Config, db *gorm.DB) *AuthHandler {
	return &AuthHandler{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"profile", "email"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  GoogleAuthorizeEndpoint,
				TokenURL: GoogleTokenEndpoint,
			},
		},
		db:          db,
		cfg:         cfg,
		userInfoURL: GoogleUserAPI,
	}
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Register creates a password account.
func (h *AuthHandler) Register(ctx context.Context, username, password, name, mobile string) (*models.User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Username: username,
		Password: &hash,
		Role:     models.RoleUser,
		Name:     name,
		Mobile:   mobile,
	}
	if err := h.db.WithContext(ctx).Create(&user).Error; err != nil {
		if database.IsDuplicate(err) {
			return nil, domain.PolicyError{Msg: "User already exists", Err: err}
		}
		return nil, err
	}
	logging.Info().Uint("user_id", user.ID).Msg("User registered")
	return &user, nil
}

// Login checks a username and password.
func (h *AuthHandler) Login(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	if err := h.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.AuthenticationError{Msg: "Invalid username or password"}
		}
		return nil, err
	}
	if !user.HasPassword() {
		return nil, domain.AuthenticationError{Msg: "This account uses Google sign-in"}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(password)); err != nil {
		return nil, domain.AuthenticationError{Msg: "Invalid username or password"}
	}
	return &user, nil
}

// CurrentUser loads the account behind p.
func (h *AuthHandler) CurrentUser(ctx context.Context, p domain.Principal) (*models.User, error) {
	if p.Anonymous() {
		return nil, domain.AuthenticationError{Msg: "Not logged in"}
	}
	var user models.User
	if err := h.db.WithContext(ctx).First(&user, p.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.AuthenticationError{Msg: "Not logged in"}
		}
		return nil, err
	}
	return &user, nil
}

func (h *AuthHandler) HandleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Expires:  time.Now().Add(10 * time.Minute),
		HttpOnly: true,
		Path:     "/",
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	redirect := h.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOnline)
	http.Redirect(w, r, redirect, http.StatusTemporaryRedirect)
}

type googleUser struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func (h *AuthHandler) HandleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	state, err := r.Cookie(stateCookieName)
	if err != nil || state.Value == "" || state.Value != r.URL.Query().Get("state") {
		h.failLogin(w, r, "state")
		return
	}
	http.SetCookie(w, &http.Cookie{Name: stateCookieName, Path: "/", MaxAge: -1})

	code := r.URL.Query().Get("code")
	if code == "" {
		h.failLogin(w, r, "code")
		return
	}

	token, err := h.oauthConfig.Exchange(r.Context(), code)
	if err != nil {
		logging.Warn().Err(err).Msg("Google token exchange failed")
		h.failLogin(w, r, "exchange")
		return
	}

	client := h.oauthConfig.Client(r.Context(), token)
	resp, err := client.Get(h.userInfoURL)
	if err != nil {
		logging.Warn().Err(err).Msg("Google userinfo request failed")
		h.failLogin(w, r, "userinfo")
		return
	}
	defer resp.Body.Close()

	var gu googleUser
	if resp.StatusCode != http.StatusOK {
		h.failLogin(w, r, "userinfo")
		return
	}
	if err := json.NewDecoder(resp.Body).Decode(&gu); err != nil || gu.ID == "" || gu.Email == "" {
		h.failLogin(w, r, "userinfo")
		return
	}

	user, err := h.linkGoogleUser(r.Context(), gu)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to save Google user")
		h.failLogin(w, r, "account")
		return
	}

	cookie, err := h.StartSession(r.Context(), *user)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to start session")
		h.failLogin(w, r, "session")
		return
	}
	http.SetCookie(w, cookie)

	logging.Info().Uint("user_id", user.ID).Msg("Google login")
	target := h.cfg.FrontendURL
	if target == "" {
		target = "/"
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// linkGoogleUser finds the account by Google ID, then by email, and creates
// one when neither exists.
func (h *AuthHandler) linkGoogleUser(ctx context.Context, gu googleUser) (*models.User, error) {
	db := h.db.WithContext(ctx)
	email := strings.ToLower(gu.Email)

	var user models.User
	err := db.Where("google_id = ?", gu.ID).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	err = db.Where("username = ?", email).First(&user).Error
	switch {
	case err == nil:
		if user.GoogleID == nil {
			user.GoogleID = &gu.ID
			if user.ImageURL == "" {
				user.ImageURL = gu.Picture
			}
			if err := db.Save(&user).Error; err != nil {
				return nil, err
			}
		}
		return &user, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		name := gu.Name
		if name == "" {
			name = email
		}
		user = models.User{
			Username: email,
			Role:     models.RoleUser,
			Name:     name,
			ImageURL: gu.Picture,
			GoogleID: &gu.ID,
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, err
		}
		return &user, nil
	default:
		return nil, err
	}
}

func (h *AuthHandler) failLogin(w http.ResponseWriter, r *http.Request, reason string) {
	target := h.cfg.FrontendURL
	if target == "" {
		http.Error(w, "Google login failed", http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, strings.TrimRight(target, "/")+"/auth?error="+url.QueryEscape(reason), http.StatusFound)
}
