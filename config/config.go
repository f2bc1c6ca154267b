// Package config loads the mochizuki server configuration from YAML, TOML or
// JSON files, with environment variable overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v6"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the server configuration.
type Config struct {
	// Server settings
	Server struct {
		Name string `yaml:"name" toml:"name" json:"name" env:"MOCHIZUKI_SERVER_NAME" validate:"required"`
		Host string `yaml:"host" toml:"host" json:"host" env:"MOCHIZUKI_HOST" validate:"required"`
		Port int    `yaml:"port" toml:"port" json:"port" env:"MOCHIZUKI_PORT" validate:"gte=0,lte=65535"`
	} `yaml:"server" toml:"server" json:"server"`

	// Liveness timers, in seconds. The keepalive period must be strictly
	// greater than the keepalive timeout, or the next PING would be sent
	// before the previous timeout window elapses.
	Timeouts struct {
		Registration     int `yaml:"registration" toml:"registration" json:"registration" env:"MOCHIZUKI_REGISTRATION_TIMEOUT" validate:"gt=0"`
		KeepalivePeriod  int `yaml:"keepalive_period" toml:"keepalive_period" json:"keepalive_period" env:"MOCHIZUKI_KEEPALIVE_PERIOD" validate:"gt=0,gtfield=KeepaliveTimeout"`
		KeepaliveTimeout int `yaml:"keepalive_timeout" toml:"keepalive_timeout" json:"keepalive_timeout" env:"MOCHIZUKI_KEEPALIVE_TIMEOUT" validate:"gt=0"`
	} `yaml:"timeouts" toml:"timeouts" json:"timeouts"`

	// Admin HTTP surface settings
	Admin struct {
		Enabled bool   `yaml:"enabled" toml:"enabled" json:"enabled" env:"MOCHIZUKI_ADMIN_ENABLED"`
		Host    string `yaml:"host" toml:"host" json:"host" env:"MOCHIZUKI_ADMIN_HOST"`
		Port    int    `yaml:"port" toml:"port" json:"port" env:"MOCHIZUKI_ADMIN_PORT" validate:"gte=0,lte=65535"`
	} `yaml:"admin" toml:"admin" json:"admin"`

	Debug bool `yaml:"debug" toml:"debug" json:"debug" env:"MOCHIZUKI_DEBUG"`

	// Configuration source, retained for diagnostics
	Source string `yaml:"-" toml:"-" json:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.Server.Name = "mochizuki.local"
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 6667
	cfg.Timeouts.Registration = 60
	cfg.Timeouts.KeepalivePeriod = 180
	cfg.Timeouts.KeepaliveTimeout = 60
	cfg.Admin.Host = "127.0.0.1"
	cfg.Admin.Port = 8080
	return cfg
}

// Load builds a configuration from defaults, the given file (YAML, TOML or
// JSON, chosen by extension; empty source skips the file step) and MOCHIZUKI_*
// environment variables, then validates the result.
func Load(source string) (*Config, error) {
	cfg := Default()

	if source != "" {
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		switch {
		case strings.HasSuffix(source, ".toml"):
			err = toml.Unmarshal(data, cfg)
		case strings.HasSuffix(source, ".json"):
			err = json.Unmarshal(data, cfg)
		default:
			// YAML is the default format
			err = yaml.Unmarshal(data, cfg)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
		cfg.Source = source
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration, including the keepalive timer ordering.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// ListenAddress returns the formatted bind address for the IRC listener.
func (c *Config) ListenAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// AdminListenAddress returns the formatted bind address for the admin surface.
func (c *Config) AdminListenAddress() string {
	return fmt.Sprintf("%s:%d", c.Admin.Host, c.Admin.Port)
}
