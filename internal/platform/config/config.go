package config

import (
	"os"
	"time"
)

// Server captures process-level configuration. Values come from the
// environment so main stays lean.
type Server struct {
	Addr          string
	MetricsAddr   string
	DatabaseURL   string
	RedisURL      string
	JWTSigningKey string

	// BootstrapAdmin is a principal granted the admin role at startup so a
	// fresh deployment has at least one identity able to assign roles.
	BootstrapAdmin string

	RequestTimeout time.Duration
}

// RoleCacheTTL bounds how stale a cached role assignment may be.
var RoleCacheTTL = 30 * time.Second

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	addr := os.Getenv("GYMDESK_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	metricsAddr := os.Getenv("GYMDESK_METRICS_ADDR")
	if metricsAddr == "" {
		metricsAddr = ":9090"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Development default - must be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	requestTimeout := 30 * time.Second
	if raw := os.Getenv("GYMDESK_REQUEST_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			requestTimeout = d
		}
	}

	return Server{
		Addr:           addr,
		MetricsAddr:    metricsAddr,
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisURL:       os.Getenv("REDIS_URL"),
		JWTSigningKey:  jwtSigningKey,
		BootstrapAdmin: os.Getenv("GYMDESK_BOOTSTRAP_ADMIN"),
		RequestTimeout: requestTimeout,
	}
}
