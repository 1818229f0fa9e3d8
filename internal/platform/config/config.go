package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Server captures process-level configuration for the API server.
type Server struct {
	Addr          string
	Environment   string
	JWTSigningKey string
	TokenTTL      time.Duration
	DatabaseURL   string
	RedisAddr     string

	// Login endpoint throttling (token bucket).
	LoginRatePerSecond float64
	LoginRateBurst     int
}

const defaultTokenTTL = 15 * time.Minute

// FromEnv builds a Server config from environment variables so main stays lean.
// A .env file is honored when present (development convenience).
func FromEnv() Server {
	_ = godotenv.Load()

	addr := os.Getenv("ETERNA_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	env := os.Getenv("ETERNA_ENV")
	if env == "" {
		env = "development"
	}

	tokenTTL := defaultTokenTTL
	if s := os.Getenv("TOKEN_TTL"); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			tokenTTL = d
		}
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Development default - must be overridden in production.
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	return Server{
		Addr:               addr,
		Environment:        env,
		JWTSigningKey:      jwtSigningKey,
		TokenTTL:           tokenTTL,
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		LoginRatePerSecond: 5,
		LoginRateBurst:     10,
	}
}
