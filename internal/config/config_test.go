package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		validate func(t *testing.T, cfg *Config, err error)
	}{
		{
			name: "defaults to sqlite",
			validate: func(t *testing.T, cfg *Config, err error) {
				require.NoError(t, err)
				assert.Equal(t, DriverSQLite, cfg.Database.Driver)
				assert.Equal(t, "data/ratecard.db", cfg.Database.DSN)
				assert.Equal(t, "8000", cfg.Server.Port)
				assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.Server.AllowedOrigins)
				assert.Equal(t, "0 6 * * 1", cfg.PortfolioDigest.CronSchedule)
				assert.False(t, cfg.PortfolioDigest.Enabled)
				assert.Equal(t, 90, cfg.PortfolioDigest.Retention)
				assert.Equal(t, "gemini-3-pro-preview", cfg.Gemini.AuditModel)
			},
		},
		{
			name: "postgres dsn",
			env: map[string]string{
				"DATABASE_DRIVER":   "Postgres",
				"DATABASE_USER":     "agency",
				"DATABASE_PASSWORD": "secret",
				"DATABASE_URL":      "db:5432/ratecard",
			},
			validate: func(t *testing.T, cfg *Config, err error) {
				require.NoError(t, err)
				assert.Equal(t, DriverPostgres, cfg.Database.Driver)
				assert.Equal(t, "postgres://agency:secret@db:5432/ratecard", cfg.Database.DSN)
			},
		},
		{
			name: "overrides from environment",
			env: map[string]string{
				"DATABASE_DRIVER":            "memory",
				"CORS_ALLOWED_ORIGINS":       "*",
				"GEMINI_TIMEOUT":             "45s",
				"PORTFOLIO_DIGEST_ENABLED":   "true",
				"PORTFOLIO_DIGEST_RETENTION": "0",
			},
			validate: func(t *testing.T, cfg *Config, err error) {
				require.NoError(t, err)
				assert.Equal(t, DriverMemory, cfg.Database.Driver)
				assert.Empty(t, cfg.Database.DSN)
				assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
				assert.Equal(t, 45*time.Second, cfg.Gemini.Timeout)
				assert.True(t, cfg.PortfolioDigest.Enabled)
				assert.Equal(t, 90, cfg.PortfolioDigest.Retention)
			},
		},
		{
			name: "unknown driver",
			env:  map[string]string{"DATABASE_DRIVER": "mongo"},
			validate: func(t *testing.T, cfg *Config, err error) {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "mongo")
				assert.Nil(t, cfg)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			t.Cleanup(viper.Reset)
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			cfg, err := NewConfig()
			tt.validate(t, cfg, err)
		})
	}
}
