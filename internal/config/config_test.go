package config

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("COOKIE_SAMESITE", "")

	cfg := Load()

	assert.Equal(t, defaultJWTSecret, cfg.JWTSecret)
	assert.Equal(t, 7*24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, http.SameSiteLaxMode, cfg.CookieSameSite)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("COOKIE_SAMESITE", "Strict")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("MAX_UPLOAD_BYTES", "1024")

	cfg := Load()

	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, http.SameSiteStrictMode, cfg.CookieSameSite)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, int64(1024), cfg.MaxUploadBytes)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "development accepts default secret",
			mutate: func(c *Config) {},
		},
		{
			name:    "production rejects default secret",
			mutate:  func(c *Config) { c.AppEnv = "production" },
			wantErr: true,
		},
		{
			name: "production accepts long secret",
			mutate: func(c *Config) {
				c.AppEnv = "production"
				c.JWTSecret = "0123456789abcdef0123456789abcdef"
			},
		},
		{
			name: "samesite none requires secure in production",
			mutate: func(c *Config) {
				c.AppEnv = "production"
				c.JWTSecret = "0123456789abcdef0123456789abcdef"
				c.CookieSameSite = http.SameSiteNoneMode
			},
			wantErr: true,
		},
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.DBDriver = "mongo" },
			wantErr: true,
		},
		{
			name:    "non-positive ttl",
			mutate:  func(c *Config) { c.SessionTTL = 0 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				AppEnv:         "development",
				DBDriver:       "sqlite",
				JWTSecret:      defaultJWTSecret,
				SessionTTL:     time.Hour,
				SessionCookie:  "token",
				CookieSameSite: http.SameSiteLaxMode,
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDatabaseDSN(t *testing.T) {
	cfg := &Config{DBDriver: "sqlite", SQLitePath: "blog.db", MySQLDSN: "user:pw@tcp(db:3306)/blog"}
	assert.Equal(t, "blog.db", cfg.DatabaseDSN())

	cfg.DBDriver = "mysql"
	assert.Equal(t, "user:pw@tcp(db:3306)/blog", cfg.DatabaseDSN())
}
