package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	DefaultPort                = "8080"
	DefaultDBDriver            = "postgres"
	DefaultAccessTokenExpiry   = 60
	DefaultPasswordHasher      = "bcrypt"
	DefaultGeoTimeoutSeconds   = 5
	DefaultGeoPublicIPURL      = "https://api.ipify.org?format=json"
	DefaultGeoCountryURL       = "http://ip-api.com/json/"
	DefaultGeoCacheTTLMinutes  = 1440
	DefaultShutdownTimeoutSecs = 10
)

type Config struct {
	Env            string `env:"ENV,default=development"`
	Port           string `env:"PORT,default=8080"`
	DBDriver       string `env:"DB_DRIVER,default=postgres"`
	DBURL          string `env:"DB_URL,required"`
	JWTSecret      string `env:"JWT_SECRET,required"`
	AccessExpiry   int    `env:"ACCESS_TOKEN_EXPIRY,default=60"`
	PasswordHasher string `env:"PASSWORD_HASHER,default=bcrypt"`

	RedisURL           string `env:"REDIS_URL"`
	GeoTimeoutSeconds  int    `env:"GEO_TIMEOUT_SECONDS,default=5"`
	GeoPublicIPURL     string `env:"GEO_PUBLIC_IP_URL,default=https://api.ipify.org?format=json"`
	GeoCountryURL      string `env:"GEO_COUNTRY_URL,default=http://ip-api.com/json/"`
	GeoCacheTTLMinutes int    `env:"GEO_CACHE_TTL,default=1440"`

	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	ShutdownTimeoutSecs int `env:"SHUTDOWN_TIMEOUT,default=10"`
}

// Load reads config/.env.dev or config/.env.prod (depending on ENV) into the
// process environment without overriding variables that are already set, then
// decodes the environment into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(envFile(getEnv("ENV", "development"))); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading env file: %w", err)
	}

	cfg := &Config{}
	if err := envconfig.Process(context.Background(), cfg); err != nil {
		return nil, fmt.Errorf("parsing env vars: %w", err)
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) AccessTokenLifetime() time.Duration {
	return time.Duration(c.AccessExpiry) * time.Minute
}

func (c *Config) GeoTimeout() time.Duration {
	return time.Duration(c.GeoTimeoutSeconds) * time.Second
}

func (c *Config) GeoCacheTTL() time.Duration {
	return time.Duration(c.GeoCacheTTLMinutes) * time.Minute
}

func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSecs) * time.Second
}

func envFile(env string) string {
	if env == "production" {
		return filepath.Join("config", ".env.prod")
	}
	return filepath.Join("config", ".env.dev")
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}
