package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PORT", "8080")
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("KV_BACKEND", "memory")
}

func TestLoad_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "dev", cfg.GoEnv)
	assert.Equal(t, "memory", cfg.KVBackend)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.False(t, cfg.EnforceStock)
}

func TestLoad_RequiredVars(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("PORT", "")

	_, err := Load()
	assert.Error(t, err)

	setBaseEnv(t)
	t.Setenv("SESSION_SECRET", "")

	_, err = Load()
	assert.Error(t, err)
}

func TestLoad_UnknownBackend(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("KV_BACKEND", "dynamo")

	_, err := Load()

	assert.Error(t, err)
}

func TestLoad_PostgresRequiresConnVars(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("KV_BACKEND", "postgres")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("POSTGRES_USER", "app")
	t.Setenv("POSTGRES_PASSWORD", "pass")
	t.Setenv("POSTGRES_DB", "shopapp")
	t.Setenv("POSTGRES_HOST", "localhost")
	t.Setenv("POSTGRES_PORT", "5432")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Contains(t, cfg.PostgresDSN(), "port=5432")
}

func TestLoad_EnforceStock(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("ENFORCE_STOCK", "true")

	cfg, err := Load()

	require.NoError(t, err)
	assert.True(t, cfg.EnforceStock)
}
