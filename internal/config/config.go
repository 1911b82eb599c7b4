package config

import (
	"log"
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

	// Storage
	DatabaseURL string // empty disables Postgres (scores and stored galleries)
	RedisURL    string // empty keeps receipts and caches in process memory

	// Memory backend budget in bytes, used when RedisURL is empty
	MemoryBudget int

	// TLS/mTLS
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string
	TLSCAFile   string // CA for verifying client certs (mTLS)

	// Upstreams
	UnsplashAccessKey  string
	UnsplashURL        string
	NominatimURL       string
	NominatimUserAgent string

	// Gallery cache
	CacheVersion string
	CacheTTL     time.Duration

	// Receipts
	ReceiptTimezone string // IANA zone deciding what "today" means

	// Pins
	PinCapacity int

	// Trending
	TrendingInterval time.Duration

	// Catalog
	CatalogFile string

	// OIDC (optional; signed-in visitors keep receipts across devices)
	OIDCIssuer       string
	OIDCClientID     string
	OIDCClientSecret string
	OIDCRedirectURL  string

	// Session
	SessionSecret string        // Used for signing cookies (min 32 chars)
	SessionTTL    time.Duration // idle timeout of a tab

	// CORS
	CORSOrigins string // Comma-separated allowed origins, e.g. "https://example.com,https://app.example.com"
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:                getEnv("ENV", "development"),
		ServerAddr:         getEnv("SERVER_ADDR", ":3000"),
		BaseURL:            getEnv("BASE_URL", "http://localhost:3000"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		RedisURL:           getEnv("REDIS_URL", ""),
		MemoryBudget:       getEnvInt("MEMORY_BUDGET_BYTES", 5<<20),
		TLSEnabled:         getEnv("TLS_ENABLED", "") != "",
		TLSCertFile:        getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:         getEnv("TLS_KEY_FILE", ""),
		TLSCAFile:          getEnv("TLS_CA_FILE", ""),
		UnsplashAccessKey:  getEnv("UNSPLASH_ACCESS_KEY", ""),
		UnsplashURL:        getEnv("UNSPLASH_URL", "https://api.unsplash.com"),
		NominatimURL:       getEnv("NOMINATIM_URL", "https://nominatim.openstreetmap.org"),
		NominatimUserAgent: getEnv("NOMINATIM_USER_AGENT", "Days/1.0 (contact: days.dev@example.com)"),
		CacheVersion:       getEnv("CACHE_VERSION", "v1.4"),
		CacheTTL:           getEnvDuration("CACHE_TTL", 24*time.Hour),
		ReceiptTimezone:    getEnv("RECEIPT_TIMEZONE", "Asia/Seoul"),
		PinCapacity:        getEnvInt("PIN_CAPACITY", 5),
		TrendingInterval:   getEnvDuration("TRENDING_INTERVAL", 5*time.Minute),
		CatalogFile:        getEnv("CATALOG_FILE", "catalog.yaml"),
		OIDCIssuer:         getEnv("OIDC_ISSUER", ""),
		OIDCClientID:       getEnv("OIDC_CLIENT_ID", ""),
		OIDCClientSecret:   getEnv("OIDC_CLIENT_SECRET", ""),
		OIDCRedirectURL:    getEnv("OIDC_REDIRECT_URL", "http://localhost:3000/auth/callback"),
		SessionSecret:      getEnv("SESSION_SECRET", "change-me-in-production-min-32-chars"),
		SessionTTL:         getEnvDuration("SESSION_TTL", 30*time.Minute),
		CORSOrigins:        getEnv("CORS_ORIGINS", ""),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid %s=%q, using %d", key, value, fallback)
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid %s=%q, using %s", key, value, fallback)
		return fallback
	}
	return d
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// IsMTLSEnabled returns true if mTLS is configured with a CA file.
func (c *Config) IsMTLSEnabled() bool {
	return c.TLSEnabled && c.TLSCAFile != ""
}

// IsOIDCEnabled returns true if sign-in is configured.
func (c *Config) IsOIDCEnabled() bool {
	return c.OIDCIssuer != "" && c.OIDCClientID != ""
}

// ReceiptLocation resolves ReceiptTimezone, falling back to UTC.
func (c *Config) ReceiptLocation() *time.Location {
	loc, err := time.LoadLocation(c.ReceiptTimezone)
	if err != nil {
		log.Printf("Unknown RECEIPT_TIMEZONE %q, using UTC", c.ReceiptTimezone)
		return time.UTC
	}
	return loc
}
