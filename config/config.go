package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

type Config struct {
	Env             string   `mapstructure:"ENV"`
	LogLevel        string   `mapstructure:"LOG_LEVEL"`
	Doctors         []string `mapstructure:"DOCTORS"`
	HistoryCapacity int      `mapstructure:"HISTORY_CAPACITY"`
	MetricsAddr     string   `mapstructure:"METRICS_ADDR"`
	PushURL         string   `mapstructure:"PUSH_URL"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DOCTORS", "Dr. Adams,Dr. Brown,Dr. Chen")
	v.SetDefault("HISTORY_CAPACITY", 50)
	v.SetDefault("METRICS_ADDR", "")
	v.SetDefault("PUSH_URL", "")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("ENV")
	v.BindEnv("LOG_LEVEL")
	v.BindEnv("DOCTORS")
	v.BindEnv("HISTORY_CAPACITY")
	v.BindEnv("METRICS_ADDR")
	v.BindEnv("PUSH_URL")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Doctors == nil {
		doctors := v.GetString("DOCTORS")
		if doctors != "" {
			cfg.Doctors = strings.Split(doctors, ",")
		}
	}
	for i, d := range cfg.Doctors {
		cfg.Doctors[i] = strings.TrimSpace(d)
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Validate checks that the configuration can actually drive a run: at
// least one doctor, a positive history capacity, and a log level that
// zerolog understands.
func (c *Config) Validate() error {
	if len(c.Doctors) == 0 {
		return fmt.Errorf("DOCTORS must name at least one resource")
	}
	for _, d := range c.Doctors {
		if d == "" {
			return fmt.Errorf("DOCTORS must not contain empty names")
		}
	}
	if c.HistoryCapacity < 1 {
		return fmt.Errorf("HISTORY_CAPACITY must be positive, got %d", c.HistoryCapacity)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL %q is not a valid level: %w", c.LogLevel, err)
	}
	return nil
}
