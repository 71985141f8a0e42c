package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Ledger store backends selectable with LEDGER_STORE_BACKEND.
const (
	BackendPostgres = "postgres"
	BackendHTTP     = "http"
	BackendMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool
	LogLevel     string

	// Ledger store
	StoreBackend       string
	DatabaseURL        string
	EnableDBCheck      bool
	MigrationsPath     string
	LedgerStoreURL     string
	LedgerStoreTimeout time.Duration

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	RateLimit          string // ulule/limiter formatted, e.g. "100-M"
	LoginRateLimit     string
	CORSAllowedOrigins []string

	// Optional collaborators; empty disables them.
	RedisURL        string
	LockExpiry      time.Duration
	AMQPURL         string
	AMQPExchange    string
	PosthogAPIKey   string
	PosthogEndpoint string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LEDGER_STORE_BACKEND", BackendPostgres)
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("LEDGER_STORE_URL", "")
	viper.SetDefault("LEDGER_STORE_TIMEOUT", "10s")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "retail-ledger")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("LOCK_EXPIRY", "8s")
	viper.SetDefault("AMQP_URL", "")
	viper.SetDefault("AMQP_EXCHANGE", "ledger.events")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "https://us.i.posthog.com")

	viper.AutomaticEnv()

	cfg := &Config{
		Port:            viper.GetString("PORT"),
		IsProduction:    viper.GetBool("IS_PRODUCTION"),
		LogLevel:        strings.ToLower(viper.GetString("LOG_LEVEL")),
		StoreBackend:    strings.ToLower(viper.GetString("LEDGER_STORE_BACKEND")),
		DatabaseURL:     viper.GetString("PGSQL_URL"),
		EnableDBCheck:   viper.GetBool("ENABLE_DB_CHECK"),
		MigrationsPath:  viper.GetString("MIGRATIONS_PATH"),
		LedgerStoreURL:  strings.TrimRight(viper.GetString("LEDGER_STORE_URL"), "/"),
		JWTSecret:       viper.GetString("JWT_SECRET"),
		JWTIssuer:       viper.GetString("JWT_ISSUER"),
		RateLimit:       viper.GetString("RATE_LIMIT"),
		LoginRateLimit:  viper.GetString("LOGIN_RATE_LIMIT"),
		RedisURL:        viper.GetString("REDIS_URL"),
		AMQPURL:         viper.GetString("AMQP_URL"),
		AMQPExchange:    viper.GetString("AMQP_EXCHANGE"),
		PosthogAPIKey:   viper.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint: viper.GetString("POSTHOG_ENDPOINT"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	switch cfg.StoreBackend {
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			log.Println("Warning: PGSQL_URL environment variable not set.")
		}
	case BackendHTTP:
		if cfg.LedgerStoreURL == "" {
			log.Println("Warning: LEDGER_STORE_URL environment variable not set.")
		}
	case BackendMemory:
		log.Println("Warning: using the in-memory ledger store; data is lost on restart.")
	default:
		log.Printf("Warning: unknown LEDGER_STORE_BACKEND ('%s'). Defaulting to %s.\n", cfg.StoreBackend, BackendPostgres)
		cfg.StoreBackend = BackendPostgres
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "retail-ledger"
	}

	cfg.JWTExpiryDuration = durationOrDefault("JWT_EXPIRY_DURATION", time.Hour)
	cfg.LedgerStoreTimeout = durationOrDefault("LEDGER_STORE_TIMEOUT", 10*time.Second)
	cfg.LockExpiry = durationOrDefault("LOCK_EXPIRY", 8*time.Second)

	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	return cfg, nil
}

// durationOrDefault parses a duration key such as "60m" or "1h", logging and
// falling back to def when the value is invalid.
func durationOrDefault(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}
