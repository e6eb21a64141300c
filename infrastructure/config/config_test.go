package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "contactkeeper", cfg.DynamoDBTable)
	assert.Equal(t, "GSI1", cfg.IndexName)
	assert.Equal(t, 100*time.Hour, cfg.JWTExpiry)
	// Development mode falls back to a built-in secret
	assert.NotEmpty(t, cfg.JWTSecret)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_SECRET", "prod-secret")
	t.Setenv("TABLE_NAME", "contacts-prod")
	t.Setenv("JWT_EXPIRY_HOURS", "24")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "prod-secret", cfg.JWTSecret)
	assert.Equal(t, "contacts-prod", cfg.DynamoDBTable)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoadConfigProductionRequiresSecret(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestValidateRejectsBadPort(t *testing.T) {
	cfg := &Config{Port: 0, Environment: "development"}
	assert.Error(t, cfg.Validate())

	cfg.Port = 70000
	assert.Error(t, cfg.Validate())
}
