package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "chalkboard-api", cfg.App.Name)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 12*time.Hour, cfg.JWT.ExpiryHours)
	assert.Equal(t, 24*time.Hour, cfg.Idempotency.TTL)
	assert.Equal(t, "0 * * * *", cfg.Idempotency.PurgeSchedule)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "none", cfg.Printer.Type)
	assert.Equal(t, 32, cfg.Printer.Width)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("RATE_LIMIT_REQUESTS", "5")
	t.Setenv("ADMIN_EMAIL", "owner@chalkboard.id")

	cfg := Load()

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 5, cfg.RateLimit.Requests)
	assert.Equal(t, "owner@chalkboard.id", cfg.Admin.Email)
}

func TestDSN(t *testing.T) {
	c := DatabaseConfig{
		Host: "db", Port: "5432", Name: "chalkboard", User: "u",
		Password: "p", SSLMode: "disable", Timezone: "UTC",
	}
	assert.Equal(t, "host=db user=u password=p dbname=chalkboard port=5432 sslmode=disable TimeZone=UTC", c.DSN())
}
