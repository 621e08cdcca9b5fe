package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// Config holds all runtime settings, read from the environment (and .env when present).
type Config struct {
	ServiceName string
	LogLevel    string
	GinMode     string
	ServerPort  string

	DB DBConfig

	JWTSecret          string
	JWTExpirationHours int64

	UploadsDir         string
	CORSAllowedOrigins []string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CarCacheTTL   time.Duration
}

// DBConfig holds database connection parameters
type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// URL returns a postgres:// connection string usable by pgxpool.
func (c DBConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + c.Name,
		RawQuery: "sslmode=" + c.SSLMode,
	}
	return u.String()
}

// MigrateURL returns the same connection string with the scheme golang-migrate's pgx/v5 driver expects.
func (c DBConfig) MigrateURL() string {
	return "pgx5://" + strings.TrimPrefix(c.URL(), "postgres://")
}

// Load reads configuration from the environment. JWT_SECRET_KEY is mandatory.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{}

	cfg.ServiceName = cast.ToString(getOrReturnDefault("SERVICE_NAME", "car_rental"))
	cfg.LogLevel = cast.ToString(getOrReturnDefault("LOG_LEVEL", "info"))
	cfg.GinMode = cast.ToString(getOrReturnDefault("GIN_MODE", "debug"))
	cfg.ServerPort = cast.ToString(getOrReturnDefault("SERVER_PORT", "8080"))

	cfg.DB = DBConfig{
		Host:     cast.ToString(getOrReturnDefault("DB_HOST", "localhost")),
		Port:     cast.ToString(getOrReturnDefault("DB_PORT", "5432")),
		User:     cast.ToString(getOrReturnDefault("DB_USER", "postgres")),
		Password: cast.ToString(getOrReturnDefault("DB_PASSWORD", "")),
		Name:     cast.ToString(getOrReturnDefault("DB_NAME", "car_rental")),
		SSLMode:  cast.ToString(getOrReturnDefault("DB_SSLMODE", "disable")),
	}

	cfg.JWTSecret = cast.ToString(getOrReturnDefault("JWT_SECRET_KEY", ""))
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET_KEY not set in environment")
	}
	hours, err := cast.ToInt64E(getOrReturnDefault("JWT_EXPIRATION_HOURS", 168))
	if err != nil || hours <= 0 {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION_HOURS: %v", getOrReturnDefault("JWT_EXPIRATION_HOURS", 168))
	}
	cfg.JWTExpirationHours = hours

	cfg.UploadsDir = cast.ToString(getOrReturnDefault("UPLOADS_DIR", "uploads"))
	cfg.CORSAllowedOrigins = splitList(cast.ToString(getOrReturnDefault("CORS_ALLOWED_ORIGINS", "*")))

	cfg.RedisAddr = cast.ToString(getOrReturnDefault("REDIS_ADDR", ""))
	cfg.RedisPassword = cast.ToString(getOrReturnDefault("REDIS_PASSWORD", ""))
	cfg.RedisDB = cast.ToInt(getOrReturnDefault("REDIS_DB", 0))
	cfg.CarCacheTTL = time.Duration(cast.ToInt(getOrReturnDefault("CAR_CACHE_TTL_SECONDS", 300))) * time.Second

	return cfg, nil
}

func getOrReturnDefault(key string, defaultValue interface{}) interface{} {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
