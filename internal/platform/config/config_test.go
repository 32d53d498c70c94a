package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(values map[string]any) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(newViper(map[string]any{"PGSQL_URL": "postgres://localhost/bank"}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StorageDriverPostgres, cfg.StorageDriver)
	assert.True(t, cfg.RunMigrations)
	assert.Equal(t, "file://migrations", cfg.MigrationsPath)
	assert.Equal(t, time.Hour, cfg.JWTExpiryDuration)
	assert.Equal(t, "banking-app", cfg.JWTIssuer)
	assert.Equal(t, "bank.operations", cfg.AMQPExchange)
	assert.Equal(t, "5-M", cfg.AuthRateLimit)
}

func TestFromViper_InvalidDurationFallsBack(t *testing.T) {
	cfg, err := fromViper(newViper(map[string]any{
		"PGSQL_URL":           "postgres://localhost/bank",
		"JWT_EXPIRY_DURATION": "soon",
	}))
	require.NoError(t, err)
	assert.Equal(t, time.Hour, cfg.JWTExpiryDuration)

	cfg, err = fromViper(newViper(map[string]any{
		"PGSQL_URL":           "postgres://localhost/bank",
		"JWT_EXPIRY_DURATION": "15m",
	}))
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, cfg.JWTExpiryDuration)
}

func TestFromViper_StorageDriver(t *testing.T) {
	_, err := fromViper(newViper(map[string]any{}))
	assert.ErrorContains(t, err, "PGSQL_URL")

	cfg, err := fromViper(newViper(map[string]any{"STORAGE_DRIVER": "Memory"}))
	require.NoError(t, err)
	assert.Equal(t, StorageDriverMemory, cfg.StorageDriver)

	_, err = fromViper(newViper(map[string]any{"STORAGE_DRIVER": "sqlite"}))
	assert.ErrorContains(t, err, "unknown STORAGE_DRIVER")
}

func TestFromViper_ProductionGuards(t *testing.T) {
	_, err := fromViper(newViper(map[string]any{
		"IS_PRODUCTION": true,
		"PGSQL_URL":     "postgres://localhost/bank",
	}))
	assert.ErrorContains(t, err, "JWT_SECRET")

	_, err = fromViper(newViper(map[string]any{
		"IS_PRODUCTION":    true,
		"JWT_SECRET":       "prod-secret",
		"STORAGE_DRIVER":   "memory",
		"IDENTITY_API_KEY": "key",
	}))
	assert.Error(t, err)

	_, err = fromViper(newViper(map[string]any{
		"IS_PRODUCTION": true,
		"JWT_SECRET":    "prod-secret",
		"PGSQL_URL":     "postgres://localhost/bank",
	}))
	assert.ErrorContains(t, err, "IDENTITY_API_KEY")

	cfg, err := fromViper(newViper(map[string]any{
		"IS_PRODUCTION":    true,
		"JWT_SECRET":       "prod-secret",
		"PGSQL_URL":        "postgres://localhost/bank",
		"IDENTITY_API_KEY": "key",
	}))
	require.NoError(t, err)
	assert.Equal(t, "prod-secret", cfg.JWTSecret)
}
