package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers accepted in STORAGE_DRIVER.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	StorageDriver  string
	MigrationsPath string
	DBMaxConns     int32

	JWTSecret         string
	JWTIssuer         string
	JWTExpiryDuration time.Duration

	DefaultCurrency          string
	IdempotencyTTL           time.Duration
	IdempotencySweepInterval time.Duration
	TxMaxRetries             int
	TxRetryBaseDelay         time.Duration
	BalanceCacheSize         int
	TrackingMaxAttempts      int

	RateLimit          string
	CORSAllowedOrigins []string
	ShutdownTimeout    time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", true)
	v.SetDefault("STORAGE_DRIVER", StoragePostgres)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	v.SetDefault("JWT_ISSUER", "ganges")
	v.SetDefault("JWT_EXPIRY_DURATION", "1h")
	v.SetDefault("DEFAULT_CURRENCY", "INR")
	v.SetDefault("IDEMPOTENCY_TTL", "24h")
	v.SetDefault("IDEMPOTENCY_SWEEP_INTERVAL", "10m")
	v.SetDefault("TX_MAX_RETRIES", 5)
	v.SetDefault("TX_RETRY_BASE_DELAY", "10ms")
	v.SetDefault("BALANCE_CACHE_SIZE", 1024)
	v.SetDefault("TRACKING_MAX_ATTEMPTS", 8)
	v.SetDefault("RATE_LIMIT", "120-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("SHUTDOWN_TIMEOUT", "15s")
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.StorageDriver = strings.ToLower(v.GetString("STORAGE_DRIVER"))
	if cfg.StorageDriver != StoragePostgres && cfg.StorageDriver != StorageMemory {
		log.Printf("Warning: Invalid value for STORAGE_DRIVER ('%s'). Defaulting to %s.\n", cfg.StorageDriver, StoragePostgres)
		cfg.StorageDriver = StoragePostgres
	}

	cfg.DatabaseURL = v.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" && cfg.StorageDriver == StoragePostgres {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = v.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = v.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTIssuer = v.GetString("JWT_ISSUER")

	cfg.IsProduction = v.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = v.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = v.GetString("MIGRATIONS_PATH")
	cfg.DBMaxConns = int32(positiveInt(v, "DB_MAX_CONNS", 10))

	cfg.DefaultCurrency = strings.ToUpper(strings.TrimSpace(v.GetString("DEFAULT_CURRENCY")))
	if len(cfg.DefaultCurrency) != 3 {
		log.Printf("Warning: Invalid value for DEFAULT_CURRENCY ('%s'). Defaulting to INR.\n", cfg.DefaultCurrency)
		cfg.DefaultCurrency = "INR"
	}

	cfg.JWTExpiryDuration = duration(v, "JWT_EXPIRY_DURATION", time.Hour)
	cfg.IdempotencyTTL = duration(v, "IDEMPOTENCY_TTL", 24*time.Hour)
	cfg.IdempotencySweepInterval = duration(v, "IDEMPOTENCY_SWEEP_INTERVAL", 10*time.Minute)
	cfg.TxRetryBaseDelay = duration(v, "TX_RETRY_BASE_DELAY", 10*time.Millisecond)
	cfg.ShutdownTimeout = duration(v, "SHUTDOWN_TIMEOUT", 15*time.Second)

	cfg.TxMaxRetries = positiveInt(v, "TX_MAX_RETRIES", 5)
	cfg.BalanceCacheSize = v.GetInt("BALANCE_CACHE_SIZE") // 0 disables the cache
	cfg.TrackingMaxAttempts = positiveInt(v, "TRACKING_MAX_ATTEMPTS", 8)

	cfg.RateLimit = v.GetString("RATE_LIMIT")

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	return cfg
}

// duration parses key, falling back to def with a warning when the value is
// missing, malformed or not positive.
func duration(v *viper.Viper, key string, def time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}

func positiveInt(v *viper.Viper, key string, def int) int {
	n := v.GetInt(key)
	if n <= 0 {
		log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %d.\n", key, v.GetString(key), def)
		return def
	}
	return n
}
