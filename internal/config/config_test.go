package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/toolshed/internal/domain"
)

func loadYAML(t *testing.T, content string) (*Config, error) {
	t.Helper()

	configFile := filepath.Join(t.TempDir(), "toolshed.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0o644))

	v := viper.New()
	v.SetConfigFile(configFile)
	require.NoError(t, v.ReadInConfig())
	return LoadFrom(v)
}

func TestConfig_Load_Defaults(t *testing.T) {
	cfg, err := LoadFrom(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 10.0, cfg.RateLimit.Rate)
	assert.Equal(t, 30, cfg.RateLimit.Burst)
	assert.Equal(t, 5, cfg.Cron.PreviewCount)
	assert.Equal(t, "new", cfg.Tax.Period)
}

func TestConfig_Load_File(t *testing.T) {
	cfg, err := loadYAML(t, `
server:
  host: 127.0.0.1
  port: 9000
  base_url: https://tools.example.com
  read_timeout: 5s
logging:
  level: debug
  format: json
ratelimit:
  enabled: false
cron:
  preview_count: 10
  timezone: Asia/Ho_Chi_Minh
tax:
  period: legacy
`)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr())
	assert.Equal(t, "https://tools.example.com", cfg.Server.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 10, cfg.Cron.PreviewCount)
	assert.Equal(t, "legacy", cfg.Tax.Period)

	loc, err := cfg.Cron.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Ho_Chi_Minh", loc.String())
}

func TestConfig_Load_EnvOverride(t *testing.T) {
	t.Setenv("TOOLSHED_SERVER_PORT", "9191")
	t.Setenv("TOOLSHED_LOGGING_LEVEL", "warn")

	v := viper.New()
	BindEnv(v)

	cfg, err := LoadFrom(v)
	require.NoError(t, err)
	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestConfig_Load_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"port too large", "server:\n  port: 70000\n", "server.port"},
		{"base url without scheme", "server:\n  base_url: example.com\n", "server.base_url"},
		{"unknown log format", "logging:\n  format: xml\n", "logging.format"},
		{"zero rate", "ratelimit:\n  rate: 0\n", "ratelimit.rate"},
		{"zero burst", "ratelimit:\n  burst: 0\n", "ratelimit.burst"},
		{"preview count too large", "cron:\n  preview_count: 51\n", "cron.preview_count"},
		{"unknown timezone", "cron:\n  timezone: Mars/Olympus\n", "cron.timezone"},
		{"unknown tax period", "tax:\n  period: someday\n", "tax.period"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := loadYAML(t, tt.content)
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.ErrorIs(t, err, domain.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}
