// Package config loads application configuration from the environment.
package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string

	HTTPAddr         string
	AuthCookieSecure bool
	SessionTTL       time.Duration

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	BidRateLimit BidRateLimitConfig
	Mirror       MirrorConfig
	SMTP         SMTPConfig

	OTLPEndpoint string

	BootstrapAdminEmail    string
	BootstrapAdminPassword string
}

// BidRateLimitConfig bounds how fast a single freelancer may submit bids.
type BidRateLimitConfig struct {
	Enabled bool
	Rate    float64
	Burst   int
}

// MirrorConfig controls the best-effort document mirror worker.
type MirrorConfig struct {
	Enabled      bool
	RunInterval  time.Duration
	BatchSize    int
	MaxAttempts  int
	RetryBackoff time.Duration
}

// SMTPConfig configures the outbound mail provider. Empty host disables email.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Load reads configuration from environment variables and an optional .env file.
func Load() Config {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_SERVICE", "gigbridge")
	v.SetDefault("APP_VERSION", "0.1.0")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("SESSION_TTL", "720h")
	v.SetDefault("DATABASE_TYPE", "postgres")
	v.SetDefault("DATABASE_HOST", "localhost")
	v.SetDefault("DATABASE_PORT", "5432")
	v.SetDefault("DATABASE_NAME", "gigbridge")
	v.SetDefault("DATABASE_USER", "postgres")
	v.SetDefault("DATABASE_PASSWORD", "postgres")
	v.SetDefault("DATABASE_SSLMODE", "disable")
	v.SetDefault("DATABASE_MAX_IDLE_CONN", 10)
	v.SetDefault("DATABASE_MAX_OPEN_CONN", 50)
	v.SetDefault("DATABASE_CONN_MAX_LIFETIME_MIN", 30)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("BID_RATE_LIMIT_ENABLED", false)
	v.SetDefault("BID_RATE_LIMIT_RATE", 0.2)
	v.SetDefault("BID_RATE_LIMIT_BURST", 5)
	v.SetDefault("MIRROR_ENABLED", false)
	v.SetDefault("MIRROR_RUN_INTERVAL", "1m")
	v.SetDefault("MIRROR_BATCH_SIZE", 100)
	v.SetDefault("MIRROR_MAX_ATTEMPTS", 5)
	v.SetDefault("MIRROR_RETRY_BACKOFF", "30s")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("OTLP_ENDPOINT", "localhost:4317")

	environment := strings.TrimSpace(v.GetString("ENVIRONMENT"))
	authCookieSecure := environment == "production"
	if !authCookieSecure {
		authCookieSecure = v.GetBool("AUTH_COOKIE_SECURE")
	}

	return Config{
		AppName:          v.GetString("APP_SERVICE"),
		AppVersion:       v.GetString("APP_VERSION"),
		Environment:      environment,
		HTTPAddr:         v.GetString("HTTP_ADDR"),
		AuthCookieSecure: authCookieSecure,
		SessionTTL:       v.GetDuration("SESSION_TTL"),

		DBType:            v.GetString("DATABASE_TYPE"),
		DBHost:            v.GetString("DATABASE_HOST"),
		DBPort:            v.GetString("DATABASE_PORT"),
		DBName:            v.GetString("DATABASE_NAME"),
		DBUser:            v.GetString("DATABASE_USER"),
		DBPassword:        v.GetString("DATABASE_PASSWORD"),
		DBSSLMode:         v.GetString("DATABASE_SSLMODE"),
		DBMaxIdleConn:     v.GetInt("DATABASE_MAX_IDLE_CONN"),
		DBMaxOpenConn:     v.GetInt("DATABASE_MAX_OPEN_CONN"),
		DBConnMaxLifetime: v.GetInt("DATABASE_CONN_MAX_LIFETIME_MIN"),

		RedisAddr:     strings.TrimSpace(v.GetString("REDIS_ADDR")),
		RedisPassword: strings.TrimSpace(v.GetString("REDIS_PASSWORD")),
		RedisDB:       v.GetInt("REDIS_DB"),

		BidRateLimit: BidRateLimitConfig{
			Enabled: v.GetBool("BID_RATE_LIMIT_ENABLED"),
			Rate:    v.GetFloat64("BID_RATE_LIMIT_RATE"),
			Burst:   v.GetInt("BID_RATE_LIMIT_BURST"),
		},
		Mirror: MirrorConfig{
			Enabled:      v.GetBool("MIRROR_ENABLED"),
			RunInterval:  v.GetDuration("MIRROR_RUN_INTERVAL"),
			BatchSize:    v.GetInt("MIRROR_BATCH_SIZE"),
			MaxAttempts:  v.GetInt("MIRROR_MAX_ATTEMPTS"),
			RetryBackoff: v.GetDuration("MIRROR_RETRY_BACKOFF"),
		},
		SMTP: SMTPConfig{
			Host:     strings.TrimSpace(v.GetString("SMTP_HOST")),
			Port:     v.GetInt("SMTP_PORT"),
			Username: v.GetString("SMTP_USERNAME"),
			Password: v.GetString("SMTP_PASSWORD"),
			From:     v.GetString("SMTP_FROM"),
		},

		OTLPEndpoint: v.GetString("OTLP_ENDPOINT"),

		BootstrapAdminEmail:    strings.TrimSpace(v.GetString("BOOTSTRAP_ADMIN_EMAIL")),
		BootstrapAdminPassword: v.GetString("BOOTSTRAP_ADMIN_PASSWORD"),
	}
}
