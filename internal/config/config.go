package config

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultJWTSecret = "change-me"

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string
	AppEnv     string

	DBDriver   string
	MySQLDSN   string
	SQLitePath string
	ResetDB    bool

	RedisAddr string
	RedisDB   int
	RedisPass string

	JWTSecret      string
	SessionTTL     time.Duration
	SessionCookie  string
	CookieSecure   bool
	CookieSameSite http.SameSite
	BcryptCost     int

	FrontendOrigin string
	UploadDir      string
	MaxUploadBytes int64

	SwaggerHost string
}

// Load builds Config from environment with sensible defaults.
// A .env file in the working directory is read first when present; real
// environment variables always win over it.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "5000"),
		AppEnv:     getEnv("APP_ENV", "development"),

		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", "mysql")),
		MySQLDSN:   getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/blog?charset=utf8mb4&parseTime=True&loc=Local"),
		SQLitePath: getEnv("SQLITE_PATH", "blog.db"),
		ResetDB:    getEnvBool("RESET_DB", false),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:   getEnvInt("REDIS_DB", 0),
		RedisPass: os.Getenv("REDIS_PASSWORD"),

		JWTSecret:      getEnv("JWT_SECRET", defaultJWTSecret),
		SessionTTL:     getEnvDuration("SESSION_TTL", 7*24*time.Hour),
		SessionCookie:  getEnv("SESSION_COOKIE", "token"),
		CookieSecure:   getEnvBool("COOKIE_SECURE", false),
		CookieSameSite: parseSameSite(getEnv("COOKIE_SAMESITE", "lax")),
		BcryptCost:     getEnvInt("BCRYPT_COST", 10),

		FrontendOrigin: getEnv("FRONTEND_ORIGIN", "http://localhost:5173"),
		UploadDir:      getEnv("UPLOAD_DIR", "images"),
		MaxUploadBytes: getEnvInt64("MAX_UPLOAD_BYTES", 5<<20),

		SwaggerHost: os.Getenv("SWAGGER_HOST"),
	}
}

// Validate rejects configurations that are unsafe to run in production.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.SessionCookie == "" {
		return fmt.Errorf("SESSION_COOKIE must not be empty")
	}
	if c.AppEnv == "production" {
		if c.JWTSecret == defaultJWTSecret || len(c.JWTSecret) < 32 {
			return fmt.Errorf("JWT_SECRET must be set to at least 32 characters in production")
		}
		if c.CookieSameSite == http.SameSiteNoneMode && !c.CookieSecure {
			return fmt.Errorf("COOKIE_SAMESITE=none requires COOKIE_SECURE=true")
		}
	}
	return nil
}

// DatabaseDSN returns the connection string for the selected driver.
func (c *Config) DatabaseDSN() string {
	if c.DBDriver == "sqlite" {
		return c.SQLitePath
	}
	return c.MySQLDSN
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}

func parseSameSite(v string) http.SameSite {
	switch strings.ToLower(v) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
