package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/concierge_test")
	t.Setenv("CONCIERGE_JWT_SECRET", "test-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 5, cfg.TransactionLimit)
	assert.Equal(t, 1000, cfg.MaxQueryLength)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.Equal(t, DefaultBlockConditions, cfg.BlockConditions)
	assert.Equal(t, 2, cfg.AuditWorkers)
	assert.Equal(t, 100, cfg.AuditBuffer)
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("CONCIERGE_JWT_SECRET", "test-secret")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/concierge_test")
	t.Setenv("CONCIERGE_JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsNonPositiveTransactionLimit(t *testing.T) {
	setRequired(t)
	t.Setenv("TRANSACTION_LIMIT", "0")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("TRANSACTION_LIMIT", "-3")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoadRejectsMalformedInt(t *testing.T) {
	setRequired(t)
	t.Setenv("TRANSACTION_LIMIT", "many")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("TRANSACTION_LIMIT", "10")
	t.Setenv("MAX_QUERY_LENGTH", "500")
	t.Setenv("TOKEN_TTL", "1h")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.TransactionLimit)
	assert.Equal(t, 500, cfg.MaxQueryLength)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
}
