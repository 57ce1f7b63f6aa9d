package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/prayag-camps/magh-mela-api/internal/logging"
)

type Config struct {
	Port           string `mapstructure:"PORT"`
	DatabaseDriver string `mapstructure:"DATABASE_DRIVER"`
	DatabaseURL    string `mapstructure:"DATABASE_URL"`

	SessionSecret string        `mapstructure:"SESSION_SECRET"`
	SessionTTL    time.Duration `mapstructure:"SESSION_TTL"`
	CookieSecure  bool          `mapstructure:"COOKIE_SECURE"`

	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`

	FrontendURL         string   `mapstructure:"FRONTEND_URL"`
	AllowedOrigins      []string `mapstructure:"ALLOWED_ORIGINS"`
	AllowedOriginSuffix string   `mapstructure:"ALLOWED_ORIGIN_SUFFIX"`

	ContactRequireAuth bool          `mapstructure:"CONTACT_REQUIRE_AUTH"`
	LoginRateLimit     int           `mapstructure:"LOGIN_RATE_LIMIT"`
	LoginRateWindow    time.Duration `mapstructure:"LOGIN_RATE_WINDOW"`

	DiscordBotToken               string `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordNotificationsChannelID string `mapstructure:"DISCORD_NOTIFICATIONS_CHANNEL_ID"`

	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUsername string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	FromEmail    string `mapstructure:"FROM_EMAIL"`
	NotifyEmail  string `mapstructure:"NOTIFY_EMAIL"`

	Web3AccessKey string `mapstructure:"WEB3_ACCESS_KEY"`
	FormRelayURL  string `mapstructure:"FORM_RELAY_URL"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
	LogFile   string `mapstructure:"LOG_FILE"`

	AdminUsername string `mapstructure:"ADMIN_USERNAME"`
	AdminPassword string `mapstructure:"ADMIN_PASSWORD"`
	AdminName     string `mapstructure:"ADMIN_NAME"`
}

// LoadConfig is Load for process entry points; a bad config is fatal.
// Logging is not configured yet, so the error goes out with the default
// zerolog settings.
func LoadConfig() *Config {
	cfg, err := Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Unable to load configuration")
	}
	return cfg
}

func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	viper.SetDefault("PORT", "5000")
	viper.SetDefault("DATABASE_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_URL", "maghmela.db")
	viper.SetDefault("SESSION_SECRET", "CHANGE_ME_IN_PRODUCTION")
	viper.SetDefault("SESSION_TTL", 30*24*time.Hour)
	viper.SetDefault("COOKIE_SECURE", false)
	viper.SetDefault("GOOGLE_REDIRECT_URL", "http://localhost:5000/api/auth/google/callback")
	viper.SetDefault("FRONTEND_URL", "http://localhost:5173")
	viper.SetDefault("ALLOWED_ORIGINS", []string{"http://localhost:5173"})
	viper.SetDefault("ALLOWED_ORIGIN_SUFFIX", ".vercel.app")
	viper.SetDefault("CONTACT_REQUIRE_AUTH", true)
	viper.SetDefault("LOGIN_RATE_LIMIT", 10)
	viper.SetDefault("LOGIN_RATE_WINDOW", 15*time.Minute)
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("FORM_RELAY_URL", "https://api.web3forms.com/submit")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.SetDefault("ADMIN_NAME", "Administrator")

	for _, key := range []string{
		"DATABASE_URL",
		"SESSION_SECRET",
		"GOOGLE_CLIENT_ID",
		"GOOGLE_CLIENT_SECRET",
		"GOOGLE_REDIRECT_URL",
		"FRONTEND_URL",
		"ALLOWED_ORIGINS",
		"DISCORD_BOT_TOKEN",
		"DISCORD_NOTIFICATIONS_CHANNEL_ID",
		"SMTP_HOST",
		"SMTP_USERNAME",
		"SMTP_PASSWORD",
		"FROM_EMAIL",
		"NOTIFY_EMAIL",
		"WEB3_ACCESS_KEY",
		"LOG_FILE",
		"ADMIN_USERNAME",
		"ADMIN_PASSWORD",
	} {
		viper.BindEnv(key)
	}

	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	// ALLOWED_ORIGINS arrives as one comma separated string from the environment.
	config.AllowedOrigins = splitList(strings.Join(config.AllowedOrigins, ","))

	return &config, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
