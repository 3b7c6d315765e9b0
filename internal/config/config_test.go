package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "SECRET", "DATABASE", "DATABASE_URL", "TEST_DATABASE",
		"RESET_DATABASE", "SEED_DATABASE", "REDIS_ADDR", "REDIS_PASSWORD",
		"API_URL", "SSR_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.SSRTimeout)
	assert.Equal(t, "http://localhost:8000/graphql", cfg.APIURL)
	assert.False(t, cfg.ResetDatabase)
	assert.False(t, cfg.SeedDatabase)
}

func TestLoadTestDatabaseIsDisposable(t *testing.T) {
	clearEnv(t)
	t.Setenv("TEST_DATABASE", "postgres://localhost/msgboard_test")

	cfg := Load()

	assert.Equal(t, "postgres://localhost/msgboard_test", cfg.DatabaseDSN)
	assert.True(t, cfg.ResetDatabase)
	assert.True(t, cfg.SeedDatabase)
}

func TestLoadDatabaseURLIsDisposable(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://prod/msgboard")

	cfg := Load()

	assert.Equal(t, "postgres://prod/msgboard", cfg.DatabaseDSN)
	assert.True(t, cfg.ResetDatabase)
	assert.True(t, cfg.SeedDatabase)
}

func TestLoadTestDatabaseWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://prod/msgboard")
	t.Setenv("TEST_DATABASE", "postgres://localhost/msgboard_test")

	cfg := Load()

	assert.Equal(t, "postgres://localhost/msgboard_test", cfg.DatabaseDSN)
}

// Reset and seeding are coupled by default but independently overridable.
func TestLoadResetAndSeedOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TEST_DATABASE", "postgres://localhost/msgboard_test")
	t.Setenv("RESET_DATABASE", "false")

	cfg := Load()

	assert.False(t, cfg.ResetDatabase)
	assert.True(t, cfg.SeedDatabase)
}

func TestLoadPortAndSSRTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9100")
	t.Setenv("SSR_TIMEOUT", "250ms")

	cfg := Load()

	assert.Equal(t, "9100", cfg.Port)
	assert.Equal(t, 250*time.Millisecond, cfg.SSRTimeout)
	assert.Equal(t, "http://localhost:9100/graphql", cfg.APIURL)
}
