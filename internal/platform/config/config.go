package config

import (
	"os"
	"time"
)

// Server captures process-level configuration. Values come from the
// environment so main stays lean and deployments stay twelve-factor.
type Server struct {
	Addr          string
	JWTSigningKey string

	// RedisURL selects the redis-backed consent blob store when set.
	RedisURL string
	// PostgresDSN selects the postgres-backed consent blob store when set.
	// Takes precedence over RedisURL.
	PostgresDSN string

	// EvaluateTimeout bounds one full compliance evaluation including the
	// consent ledger lookup. A stalled check fails the evaluation instead of
	// hanging the caller.
	EvaluateTimeout time.Duration

	// ConsentTTL is how long a granted consent stays valid without explicit
	// revocation.
	ConsentTTL time.Duration
}

const (
	defaultAddr            = ":8080"
	defaultEvaluateTimeout = 10 * time.Second
	defaultConsentTTL      = 365 * 24 * time.Hour
)

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	cfg := Server{
		Addr:            envOr("MINTGATE_ADDR", defaultAddr),
		JWTSigningKey:   os.Getenv("MINTGATE_JWT_SIGNING_KEY"),
		RedisURL:        os.Getenv("MINTGATE_REDIS_URL"),
		PostgresDSN:     os.Getenv("MINTGATE_POSTGRES_DSN"),
		EvaluateTimeout: defaultEvaluateTimeout,
		ConsentTTL:      defaultConsentTTL,
	}

	if cfg.JWTSigningKey == "" {
		// Development default; must be overridden in production.
		cfg.JWTSigningKey = "dev-secret-key-change-in-production"
	}

	if v := os.Getenv("MINTGATE_EVALUATE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.EvaluateTimeout = d
		}
	}
	if v := os.Getenv("MINTGATE_CONSENT_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.ConsentTTL = d
		}
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
