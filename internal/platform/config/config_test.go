package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("LEDGER_STORE_BACKEND", "HTTP")
	t.Setenv("LEDGER_STORE_URL", "http://ledger.local/api/")
	t.Setenv("JWT_EXPIRY_DURATION", "30m")
	t.Setenv("LOCK_EXPIRY", "nonsense")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, ,http://b.test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, BackendHTTP, cfg.StoreBackend)
	assert.Equal(t, "http://ledger.local/api", cfg.LedgerStoreURL)
	assert.Equal(t, 30*time.Minute, cfg.JWTExpiryDuration)
	assert.Equal(t, 8*time.Second, cfg.LockExpiry)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfigFallsBackToPostgres(t *testing.T) {
	t.Setenv("LEDGER_STORE_BACKEND", "cassandra")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, BackendPostgres, cfg.StoreBackend)
	assert.Equal(t, 10*time.Second, cfg.LedgerStoreTimeout)
}
