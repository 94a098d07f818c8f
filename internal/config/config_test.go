package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppConfig_IsDevelopment(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		expected    bool
	}{
		{"development", "development", true},
		{"production", "production", false},
		{"staging", "staging", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &AppConfig{Environment: tt.environment}
			assert.Equal(t, tt.expected, cfg.IsDevelopment())
		})
	}
}

func TestAppConfig_IsProduction(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		expected    bool
	}{
		{"production", "production", true},
		{"development", "development", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &AppConfig{Environment: tt.environment}
			assert.Equal(t, tt.expected, cfg.IsProduction())
		})
	}
}

func TestServerConfig_Address(t *testing.T) {
	cfg := &ServerConfig{Host: "localhost", Port: 8080}
	assert.Equal(t, "localhost:8080", cfg.Address())
}

func TestConfig_Validate_Development(t *testing.T) {
	cfg := Development()
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate_Production_DefaultJWTSecret(t *testing.T) {
	cfg := &Config{
		App:      AppConfig{Environment: "production"},
		Auth:     AuthConfig{JWTSecret: "change-me-in-production"},
		Database: DatabaseConfig{URL: "postgres://localhost/db"},
		Server:   ServerConfig{Port: 8080},
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "JWT secret must be changed")
}

func TestConfig_Validate_Production_MockAuthEnabled(t *testing.T) {
	cfg := &Config{
		App:      AppConfig{Environment: "production"},
		Auth:     AuthConfig{JWTSecret: "super-secure-secret", EnableMockAuth: true},
		Database: DatabaseConfig{URL: "postgres://localhost/db"},
		Server:   ServerConfig{Port: 8080},
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "mock auth must be disabled")
}

func TestConfig_Validate_EmptyDatabaseURL(t *testing.T) {
	cfg := &Config{
		App:      AppConfig{Environment: "development"},
		Database: DatabaseConfig{URL: ""},
		Server:   ServerConfig{Port: 8080},
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database url is required")
}

func TestConfig_Validate_InvalidPort(t *testing.T) {
	tests := []struct {
		name string
		port int
	}{
		{"zero", 0},
		{"negative", -1},
		{"too high", 70000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				App:      AppConfig{Environment: "development"},
				Database: DatabaseConfig{URL: "postgres://localhost/db"},
				Server:   ServerConfig{Port: tt.port},
			}

			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "invalid server port")
		})
	}
}

func TestConfig_Validate_Production_Valid(t *testing.T) {
	cfg := &Config{
		App:      AppConfig{Environment: "production"},
		Auth:     AuthConfig{JWTSecret: "my-super-secure-production-secret"},
		Database: DatabaseConfig{URL: "postgres://db.example.com/wallet"},
		Server:   ServerConfig{Port: 8080},
	}

	assert.NoError(t, cfg.Validate())
}

func TestDevelopment(t *testing.T) {
	cfg := Development()

	assert.Equal(t, "Wallet Service", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.True(t, cfg.App.Debug)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, cfg.Auth.EnableMockAuth)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 24*time.Hour, cfg.Idempotency.KeyTTL)
}

func TestTest(t *testing.T) {
	cfg := Test()

	assert.Equal(t, "test", cfg.App.Environment)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Contains(t, cfg.Database.URL, "wallet_service_test")
}

func TestLoadFromEnv(t *testing.T) {
	os.Setenv("WALLET_APP_ENVIRONMENT", "staging")
	os.Setenv("WALLET_SERVER_PORT", "9000")
	os.Setenv("DATABASE_URL", "postgres://u:p@db.staging.local:5432/wallet")
	defer func() {
		os.Unsetenv("WALLET_APP_ENVIRONMENT")
		os.Unsetenv("WALLET_SERVER_PORT")
		os.Unsetenv("DATABASE_URL")
	}()

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.App.Environment)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "postgres://u:p@db.staging.local:5432/wallet", cfg.Database.URL)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load("/nonexistent/path", "nonexistent")
	require.NoError(t, err)

	assert.Equal(t, "Wallet Service", cfg.App.Name)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoad_WithEnvOverride(t *testing.T) {
	os.Setenv("WALLET_SERVER_PORT", "3000")
	defer os.Unsetenv("WALLET_SERVER_PORT")

	cfg, err := Load("/nonexistent/path", "nonexistent")
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
}

func TestServerConfig_Timeouts(t *testing.T) {
	cfg := Development()

	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
}

func TestRateLimitConfig(t *testing.T) {
	cfg := Development()

	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 100, cfg.RateLimit.RequestsPerMinute)
	assert.Equal(t, 30, cfg.RateLimit.FinancialOpsPerMin)
}

func TestCORSConfig(t *testing.T) {
	cfg := Development()

	assert.Contains(t, cfg.CORS.AllowedOrigins, "*")
	assert.Contains(t, cfg.CORS.AllowedMethods, "GET")
	assert.Contains(t, cfg.CORS.AllowedMethods, "POST")
	assert.True(t, cfg.CORS.AllowCredentials)
}
