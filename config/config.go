package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Gateway   GatewayConfig
	Session   SessionConfig
	OIDC      OIDCConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

// AppConfig holds application-level configuration
type AppConfig struct {
	Name            string
	Port            string
	UseHTTPS        bool
	TrustProxy      bool
	MetricsEnabled  bool
	DefaultPageSize int
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL string
}

// GatewayConfig holds settings for the external enquiry API
type GatewayConfig struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// SessionConfig holds admin session settings
type SessionConfig struct {
	CookieName      string
	LifetimeSeconds int64
}

// OIDCConfig holds the optional single sign-on provider settings
type OIDCConfig struct {
	Domain       string
	ClientID     string
	ClientSecret string
	CallbackURL  string
	AdminEmails  []string
}

// CORSConfig holds CORS configuration for programmatic submitters
type CORSConfig struct {
	AllowedOrigins []string
}

// RateLimitConfig holds the public submission rate limits
type RateLimitConfig struct {
	RatePerSecond float64
	Burst         int
}

// Load loads configuration from the environment, reading .env when present
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:            getEnv("APP_NAME", "Enquiry Desk"),
			Port:            getEnv("PORT", "8080"),
			UseHTTPS:        getEnvAsBool("USE_HTTPS", false),
			TrustProxy:      getEnvAsBool("TRUSTED_PROXY", false),
			MetricsEnabled:  getEnvAsBool("METRICS_ENABLED", true),
			DefaultPageSize: getEnvAsInt("DEFAULT_PAGE_SIZE", 10),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", "sqlite:///enquiries.db"),
		},
		Gateway: GatewayConfig{
			BaseURL:   getEnv("EXTERNAL_API_BASE_URL", "https://www.gyaagl.app/goldvault_api/"),
			Timeout:   time.Duration(getEnvAsInt("EXTERNAL_API_TIMEOUT_SECONDS", 15)) * time.Second,
			UserAgent: getEnv("EXTERNAL_API_USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64)"),
		},
		Session: SessionConfig{
			CookieName:      getEnv("SESSION_COOKIE_NAME", "enquiry_session"),
			LifetimeSeconds: int64(getEnvAsInt("SESSION_LIFETIME_SECONDS", 3600)),
		},
		OIDC: OIDCConfig{
			Domain:       getEnv("OIDC_DOMAIN", ""),
			ClientID:     getEnv("OIDC_CLIENT_ID", ""),
			ClientSecret: getEnv("OIDC_CLIENT_SECRET", ""),
			CallbackURL:  getEnv("OIDC_CALLBACK_URL", ""),
			AdminEmails:  getEnvAsSlice("ADMIN_EMAILS", nil),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("ALLOWED_ORIGINS", []string{"*"}),
		},
		RateLimit: RateLimitConfig{
			RatePerSecond: getEnvAsFloat("SUBMIT_RATE_PER_SECOND", 1),
			Burst:         getEnvAsInt("SUBMIT_RATE_BURST", 5),
		},
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if cfg.App.Port == "" {
		return fmt.Errorf("PORT must be set")
	}
	if cfg.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL must be set")
	}
	if cfg.App.DefaultPageSize <= 0 {
		return fmt.Errorf("DEFAULT_PAGE_SIZE must be greater than 0")
	}
	u, err := url.Parse(cfg.Gateway.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("EXTERNAL_API_BASE_URL must be an absolute URL")
	}
	if !strings.HasSuffix(cfg.Gateway.BaseURL, "/") {
		cfg.Gateway.BaseURL += "/"
	}
	if cfg.Gateway.Timeout <= 0 {
		return fmt.Errorf("EXTERNAL_API_TIMEOUT_SECONDS must be greater than 0")
	}
	if cfg.Session.LifetimeSeconds <= 0 {
		return fmt.Errorf("SESSION_LIFETIME_SECONDS must be greater than 0")
	}
	if cfg.RateLimit.RatePerSecond <= 0 || cfg.RateLimit.Burst <= 0 {
		return fmt.Errorf("SUBMIT_RATE_PER_SECOND and SUBMIT_RATE_BURST must be greater than 0")
	}
	if cfg.OIDC.Enabled() && (cfg.OIDC.ClientID == "" || cfg.OIDC.ClientSecret == "" || cfg.OIDC.CallbackURL == "") {
		return fmt.Errorf("OIDC_CLIENT_ID, OIDC_CLIENT_SECRET and OIDC_CALLBACK_URL are required when OIDC_DOMAIN is set")
	}
	return nil
}

// Enabled reports whether single sign-on is configured
func (c *OIDCConfig) Enabled() bool {
	return c.Domain != ""
}

// IsAdminEmail reports whether an SSO email may use the admin pages.
// An empty allowlist admits every account of the provider.
func (c *OIDCConfig) IsAdminEmail(email string) bool {
	if len(c.AdminEmails) == 0 {
		return true
	}
	for _, allowed := range c.AdminEmails {
		if strings.EqualFold(strings.TrimSpace(allowed), email) {
			return true
		}
	}
	return false
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var values []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}

// IsPostgres checks if the database URL is for PostgreSQL
func (c *DatabaseConfig) IsPostgres() bool {
	return strings.HasPrefix(c.URL, "postgres://") || strings.HasPrefix(c.URL, "postgresql://")
}

// GetSQLitePath extracts the SQLite database path from the URL
func (c *DatabaseConfig) GetSQLitePath() string {
	return strings.TrimPrefix(c.URL, "sqlite:///")
}
