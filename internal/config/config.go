package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	LogLevel string

	GRPCPort string
	WebPort  string

	DatabaseURL string

	SessionBackend string
	SessionFile    string
	RedisAddr      string
	RedisPassword  string

	DemoEmail    string
	DemoPassword string
	TokenSecret  string

	LatencyScale float64

	LoginRPS   float64
	LoginBurst int

	// GatewayRPS caps each HTTP client on /rpc. Zero turns the cap off.
	GatewayRPS int

	ShutdownTimeout time.Duration
}

// Load reads .env when present, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	c := &Config{
		Env:             env("APP_ENV", "development"),
		LogLevel:        env("LOG_LEVEL", "info"),
		GRPCPort:        env("PORT", "50051"),
		WebPort:         env("WEB_PORT", "8080"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		SessionBackend:  env("SESSION_BACKEND", "memory"),
		SessionFile:     env("SESSION_FILE", "data/session.json"),
		RedisAddr:       env("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		DemoEmail:       env("DEMO_EMAIL", "admin@amsc.com"),
		DemoPassword:    env("DEMO_PASSWORD", "admin123"),
		TokenSecret:     os.Getenv("TOKEN_SECRET"),
		ShutdownTimeout: 10 * time.Second,
	}

	var err error
	if c.LatencyScale, err = envFloat("LATENCY_SCALE", 1); err != nil {
		return nil, err
	}
	if c.LoginRPS, err = envFloat("LOGIN_RPS", 5); err != nil {
		return nil, err
	}
	if c.LoginBurst, err = envInt("LOGIN_BURST", 10); err != nil {
		return nil, err
	}
	if c.GatewayRPS, err = envInt("GATEWAY_RPS", 50); err != nil {
		return nil, err
	}
	return c, c.validate()
}

func (c *Config) validate() error {
	switch c.SessionBackend {
	case "memory", "file", "redis":
	default:
		return fmt.Errorf("SESSION_BACKEND must be memory, file or redis, got %q", c.SessionBackend)
	}
	if c.LatencyScale < 0 {
		return fmt.Errorf("LATENCY_SCALE must not be negative")
	}
	if c.LoginRPS <= 0 || c.LoginBurst <= 0 {
		return fmt.Errorf("LOGIN_RPS and LOGIN_BURST must be positive")
	}
	if c.GatewayRPS < 0 {
		return fmt.Errorf("GATEWAY_RPS must not be negative")
	}
	return nil
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
