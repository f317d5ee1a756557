package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":3000", cfg.Server.Addr)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, "fg_session", cfg.Session.CookieName)
	assert.Equal(t, 7*24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.True(t, cfg.DB.RunMigrations)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":8080")
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_SECRET", "super-secret")
	t.Setenv("SESSION_TTL", "24h")
	t.Setenv("RUN_MIGRATIONS", "false")
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("REDIS_PORT", "6380")

	cfg := Load()

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "production", cfg.Server.Env)
	assert.Equal(t, "super-secret", cfg.Session.Secret)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.False(t, cfg.DB.RunMigrations)
	assert.Equal(t, "cache.internal:6380", cfg.Redis.Addr)
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("SESSION_TTL", "soon")
	t.Setenv("RUN_MIGRATIONS", "yes please")

	cfg := Load()

	assert.Equal(t, 7*24*time.Hour, cfg.Session.TTL)
	assert.True(t, cfg.DB.RunMigrations)
}

func TestDBConfig_DSN(t *testing.T) {
	cfg := DBConfig{
		Host:     "db.internal",
		Port:     "5433",
		User:     "app",
		Password: "hunter2",
		Name:     "farmgrocery",
		SSLMode:  "require",
	}

	assert.Equal(t,
		"host=db.internal port=5433 user=app password=hunter2 dbname=farmgrocery sslmode=require",
		cfg.DSN())
}
