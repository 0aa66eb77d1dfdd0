package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Rate sources.
const (
	RateSourceHTTP     = "http"
	RateSourceDatabase = "database"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	JWTSecret      string
	JWTIssuer      string
	StorageDriver  string
	MigrationsPath string

	// Currency normalization
	RateSource     string
	RateAPIBaseURL string
	RateAPITimeout time.Duration
	RateCacheSize  int
	RateCacheTTL   time.Duration

	// Approval engine
	ApprovalMaxRetries int

	// HTTP surface
	RateLimit          string // ulule format, e.g. "60-M"
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", true)
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_ISSUER", "")
	v.SetDefault("STORAGE_DRIVER", StoragePostgres)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("RATE_SOURCE", RateSourceHTTP)
	v.SetDefault("RATE_API_BASE_URL", "https://api.exchangerate-api.com")
	v.SetDefault("RATE_API_TIMEOUT", "5s")
	v.SetDefault("RATE_CACHE_SIZE", 512)
	v.SetDefault("RATE_CACHE_TTL", "24h")
	v.SetDefault("APPROVAL_MAX_RETRIES", 5)
	v.SetDefault("RATE_LIMIT", "60-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:        v.GetString("PGSQL_URL"),
		Port:               v.GetString("PORT"),
		IsProduction:       v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:      v.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		JWTIssuer:          v.GetString("JWT_ISSUER"),
		StorageDriver:      strings.ToLower(v.GetString("STORAGE_DRIVER")),
		MigrationsPath:     v.GetString("MIGRATIONS_PATH"),
		RateSource:         strings.ToLower(v.GetString("RATE_SOURCE")),
		RateAPIBaseURL:     strings.TrimRight(v.GetString("RATE_API_BASE_URL"), "/"),
		RateAPITimeout:     v.GetDuration("RATE_API_TIMEOUT"),
		RateCacheSize:      v.GetInt("RATE_CACHE_SIZE"),
		RateCacheTTL:       v.GetDuration("RATE_CACHE_TTL"),
		ApprovalMaxRetries: v.GetInt("APPROVAL_MAX_RETRIES"),
		RateLimit:          v.GetString("RATE_LIMIT"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	if cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	switch cfg.StorageDriver {
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL is required when STORAGE_DRIVER=%s", StoragePostgres)
		}
	case StorageMemory:
		log.Println("Warning: STORAGE_DRIVER=memory, data is lost on restart.")
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	switch cfg.RateSource {
	case RateSourceHTTP:
	case RateSourceDatabase:
		if cfg.StorageDriver != StoragePostgres {
			return nil, fmt.Errorf("RATE_SOURCE=%s requires STORAGE_DRIVER=%s", RateSourceDatabase, StoragePostgres)
		}
	default:
		return nil, fmt.Errorf("unknown RATE_SOURCE %q", cfg.RateSource)
	}

	if cfg.ApprovalMaxRetries < 0 {
		log.Printf("Warning: APPROVAL_MAX_RETRIES (%d) is negative. Defaulting to 0.\n", cfg.ApprovalMaxRetries)
		cfg.ApprovalMaxRetries = 0
	}
	if cfg.RateCacheSize <= 0 {
		cfg.RateCacheSize = 512
	}

	return cfg, nil
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
