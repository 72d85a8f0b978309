package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// Database
	DatabaseURL  string
	SeedDevFAQs  bool // Insert sample FAQ rows on start if they are missing
	SeedAdmin    string
	SeedPassword string

	// Redis backs sessions, rate limiting and usage counters. Empty keeps them in memory.
	RedisURL string

	// TLS
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string
	TLSCAFile   string // Optional: require client certificates signed by this CA

	// OIDC (optional admin SSO)
	OIDCIssuer       string
	OIDCClientID     string
	OIDCClientSecret string
	OIDCRedirectURL  string

	// Session
	SessionSecret string // Used for signing cookies (min 32 chars)

	// CORS
	CORSOrigins string // Comma-separated allowed origins

	// AI providers
	GeminiAPIKey    string
	GroqAPIKey      string
	DeepSeekAPIKey  string
	DefaultProvider string

	// Background jobs
	ProviderProbeInterval time.Duration // 0 disables the provider prober

	// Rate limiting
	RateLimitPerMinute int

	// Site Branding
	SiteTitle   string // env: SITE_TITLE, default: "EduNex"
	SiteTagline string // env: SITE_TAGLINE
	SiteFooter  string // env: SITE_FOOTER
	SiteLogoURL string // env: SITE_LOGO_URL, default: "" (no logo, text only)
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:          getEnv("ENV", "development"),
		ServerAddr:   getEnv("SERVER_ADDR", ":3000"),
		BaseURL:      getEnv("BASE_URL", "http://localhost:3000"),
		DatabaseURL:  getEnv("DATABASE_URL", "postgres://localhost:5432/edunex?sslmode=disable"),
		SeedDevFAQs:  getEnv("SEED_DEV_FAQS", "") != "",
		SeedAdmin:    getEnv("SEED_ADMIN_EMAIL", ""),
		SeedPassword: getEnv("SEED_ADMIN_PASSWORD", ""),
		RedisURL:     getEnv("REDIS_URL", ""),
		TLSEnabled:   getEnv("TLS_ENABLED", "") != "",
		TLSCertFile:  getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:   getEnv("TLS_KEY_FILE", ""),
		TLSCAFile:    getEnv("TLS_CA_FILE", ""),

		OIDCIssuer:       getEnv("OIDC_ISSUER", ""),
		OIDCClientID:     getEnv("OIDC_CLIENT_ID", ""),
		OIDCClientSecret: getEnv("OIDC_CLIENT_SECRET", ""),
		OIDCRedirectURL:  getEnv("OIDC_REDIRECT_URL", "http://localhost:3000/auth/callback"),
		SessionSecret:    getEnv("SESSION_SECRET", "change-me-in-production-min-32-chars"),
		CORSOrigins:      getEnv("CORS_ORIGINS", ""),

		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		GroqAPIKey:      getEnv("GROQ_API_KEY", ""),
		DeepSeekAPIKey:  getEnv("DEEPSEEK_API_KEY", ""),
		DefaultProvider: getEnv("DEFAULT_PROVIDER", "groq"),

		ProviderProbeInterval: getDuration("PROVIDER_PROBE_INTERVAL", 10*time.Minute),
		RateLimitPerMinute:    getInt("RATE_LIMIT_PER_MINUTE", 100),

		SiteTitle:   getEnv("SITE_TITLE", "EduNex"),
		SiteTagline: getEnv("SITE_TAGLINE", "Ask anything about the college"),
		SiteFooter:  getEnv("SITE_FOOTER", "EduNex - college FAQ assistant"),
		SiteLogoURL: getEnv("SITE_LOGO_URL", ""),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	if raw == "0" {
		return 0
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// IsOIDCEnabled returns true if admin SSO is configured.
func (c *Config) IsOIDCEnabled() bool {
	return c.OIDCIssuer != "" && c.OIDCClientID != ""
}

// APIKey returns the configured API key for a provider name.
func (c *Config) APIKey(provider string) string {
	switch provider {
	case "gemini":
		return c.GeminiAPIKey
	case "groq":
		return c.GroqAPIKey
	case "deepseek":
		return c.DeepSeekAPIKey
	default:
		return ""
	}
}
