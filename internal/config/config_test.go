package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_MODE", "dev")
	t.Setenv("DEV_JWT_SECRET", "dev-secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, "dev-secret", cfg.JWT.Secret)
	assert.Equal(t, 60*24*time.Hour, cfg.TokenTTL())
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Empty(t, cfg.Storage.FeedbackBackend)
	assert.Equal(t, 100, cfg.RateLimit.Max)
	assert.Equal(t, 10, cfg.RateLimit.AuthMax)
	assert.Equal(t, "@hourly", cfg.Digest.Schedule)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "*", cfg.GetAllowedOrigins())
}

func TestLoadProdUsesProdPrefix(t *testing.T) {
	t.Setenv("APP_MODE", "prod")
	t.Setenv("DEV_JWT_SECRET", "dev-secret")
	t.Setenv("PROD_JWT_SECRET", "prod-secret")
	t.Setenv("STORAGE_DRIVER", "Postgres")
	t.Setenv("PROD_DB_HOST", "db.internal")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProd())
	assert.Equal(t, "prod-secret", cfg.JWT.Secret)
	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("APP_MODE", "prod")
	t.Setenv("PROD_JWT_SECRET", "")
	t.Setenv("DEV_JWT_SECRET", "dev-secret")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PROD_JWT_SECRET")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"app mode", map[string]string{"APP_MODE": "staging"}, "APP_MODE"},
		{"driver", map[string]string{"STORAGE_DRIVER": "sqlite"}, "STORAGE_DRIVER"},
		{"feedback backend", map[string]string{"FEEDBACK_BACKEND": "kafka"}, "FEEDBACK_BACKEND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("APP_MODE", "dev")
			t.Setenv("DEV_JWT_SECRET", "s")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDigestScheduleCanBeDisabled(t *testing.T) {
	t.Setenv("APP_MODE", "dev")
	t.Setenv("DEV_JWT_SECRET", "s")
	t.Setenv("FEEDBACK_DIGEST_SCHEDULE", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Digest.Schedule)
}

func TestBuildDSN(t *testing.T) {
	d := DatabaseConfig{Host: "h", Port: "1", User: "u", Password: "p", DBName: "n", SSLMode: "disable"}

	assert.Equal(t, "u:p@tcp(h:1)/n?charset=utf8mb4&parseTime=True&loc=UTC", BuildDSN(DriverMySQL, d))
	assert.Equal(t, "host=h user=u password=p dbname=n port=1 sslmode=disable TimeZone=UTC", BuildDSN(DriverPostgres, d))
}
