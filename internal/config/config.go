package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"

	"github.com/bnema/toolshed/internal/domain"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Cron      CronConfig      `mapstructure:"cron"`
	Tax       TaxConfig       `mapstructure:"tax"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	BaseURL         string        `mapstructure:"base_url"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type RateLimitConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	Rate      float64       `mapstructure:"rate"`
	Burst     int           `mapstructure:"burst"`
	ExpiresIn time.Duration `mapstructure:"expires_in"`
}

type CronConfig struct {
	PreviewCount int    `mapstructure:"preview_count"`
	Timezone     string `mapstructure:"timezone"`
}

// Location resolves the configured timezone.
func (c CronConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Timezone)
}

type TaxConfig struct {
	Period string `mapstructure:"period"`
}

// SetDefaults registers every key with its default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 15*time.Second)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.rate", 10.0)
	v.SetDefault("ratelimit.burst", 30)
	v.SetDefault("ratelimit.expires_in", 3*time.Minute)

	v.SetDefault("cron.preview_count", 5)
	v.SetDefault("cron.timezone", "UTC")

	v.SetDefault("tax.period", string(domain.TaxPeriodNew))
}

// EnvPrefix is prepended to every environment override, e.g. TOOLSHED_SERVER_PORT.
const EnvPrefix = "TOOLSHED"

// BindEnv makes every key overridable from the environment.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads the configuration from the global viper instance.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom reads and validates the configuration held by v.
func LoadFrom(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConfigLoadFailed, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port must be between 1 and 65535, got %d", domain.ErrInvalidConfig, c.Server.Port)
	}
	if c.Server.BaseURL != "" && !strings.HasPrefix(c.Server.BaseURL, "http://") && !strings.HasPrefix(c.Server.BaseURL, "https://") {
		return fmt.Errorf("%w: server.base_url must start with http:// or https://", domain.ErrInvalidConfig)
	}

	validFormats := []string{"text", "json", "logfmt"}
	isValid := false
	for _, f := range validFormats {
		if strings.EqualFold(c.Logging.Format, f) {
			isValid = true
			break
		}
	}
	if !isValid {
		return fmt.Errorf("%w: logging.format must be one of: %s", domain.ErrInvalidConfig, strings.Join(validFormats, ", "))
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.Rate <= 0 {
			return fmt.Errorf("%w: ratelimit.rate must be positive", domain.ErrInvalidConfig)
		}
		if c.RateLimit.Burst < 1 {
			return fmt.Errorf("%w: ratelimit.burst must be at least 1", domain.ErrInvalidConfig)
		}
	}

	if c.Cron.PreviewCount < 0 || c.Cron.PreviewCount > 50 {
		return fmt.Errorf("%w: cron.preview_count must be between 0 and 50, got %d", domain.ErrInvalidConfig, c.Cron.PreviewCount)
	}
	if _, err := c.Cron.Location(); err != nil {
		return fmt.Errorf("%w: cron.timezone: %v", domain.ErrInvalidConfig, err)
	}

	if _, err := domain.ParseTaxPeriod(c.Tax.Period); err != nil {
		return fmt.Errorf("%w: tax.period: %v", domain.ErrInvalidConfig, err)
	}
	return nil
}
