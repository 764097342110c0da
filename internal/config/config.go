package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config carries everything the server needs from the environment. It is
// built once in main and injected; packages never read env vars themselves.
type Config struct {
	Port        string
	DatabaseURL string

	// Upstream is the base URL of the BarberApp backend that owns all
	// entity persistence.
	UpstreamURL     string
	UpstreamTimeout time.Duration

	// AuthRedirectURL is the external SSO surface users are sent to when
	// no valid token is available. ReturnURL is where that surface sends
	// them back (it appends access_token as a query parameter).
	AuthRedirectURL string
	ReturnURL       string

	// RedirectDelay is how long the UI is given to show a validation
	// error before the redirect is applied.
	RedirectDelay time.Duration

	JWTSecret      string
	SessionTTL     time.Duration
	AllowedOrigins []string

	// OverlapAwareSlots switches the availability engine from the
	// legacy exact-start-time match to interval-overlap exclusion.
	OverlapAwareSlots bool

	StripeSecretKey     string
	StripeWebhookSecret string
	DepositPercent      int

	SendgridAPIKey    string
	SendgridFromEmail string
	SendgridFromName  string
	TwilioAccountSID  string
	TwilioAuthToken   string
	TwilioFromNumber  string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		UpstreamURL:         os.Getenv("UPSTREAM_URL"),
		UpstreamTimeout:     getDuration("UPSTREAM_TIMEOUT", 10*time.Second),
		AuthRedirectURL:     os.Getenv("AUTH_REDIRECT_URL"),
		ReturnURL:           os.Getenv("RETURN_URL"),
		RedirectDelay:       getDuration("REDIRECT_DELAY", 3*time.Second),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		SessionTTL:          getDuration("SESSION_TTL", time.Hour),
		OverlapAwareSlots:   getBool("OVERLAP_AWARE_SLOTS", false),
		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		DepositPercent:      getInt("DEPOSIT_PERCENT", 0),
		SendgridAPIKey:      os.Getenv("SENDGRID_API_KEY"),
		SendgridFromEmail:   os.Getenv("SENDGRID_FROM_EMAIL"),
		SendgridFromName:    getEnv("SENDGRID_FROM_NAME", "Bigode Time"),
		TwilioAccountSID:    os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:     os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFromNumber:    os.Getenv("TWILIO_FROM_NUMBER"),
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = splitAndTrim(origins)
	} else {
		cfg.AllowedOrigins = []string{"*"}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL not set")
	}
	if cfg.UpstreamURL == "" {
		return nil, fmt.Errorf("UPSTREAM_URL not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET not set")
	}
	if cfg.DepositPercent < 0 || cfg.DepositPercent > 100 {
		return nil, fmt.Errorf("DEPOSIT_PERCENT must be between 0 and 100")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func splitAndTrim(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
