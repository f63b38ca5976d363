// Package config loads service configuration from defaults, an optional YAML
// file and environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dreamware/tasktrack/internal/identity"
	"github.com/dreamware/tasktrack/internal/logging"
)

// Environment variables read by Load.
const (
	EnvConfigFile        = "TASKTRACK_CONFIG"
	EnvAddr              = "TASKTRACK_ADDR"
	EnvIdentityHeader    = "TASKTRACK_IDENTITY_HEADER"
	EnvLogLevel          = "TASKTRACK_LOG_LEVEL"
	EnvReadHeaderTimeout = "TASKTRACK_READ_HEADER_TIMEOUT"
	EnvShutdownTimeout   = "TASKTRACK_SHUTDOWN_TIMEOUT"
)

// Config holds all service configuration.
type Config struct {
	Addr              string        `yaml:"addr"`                // listen address
	IdentityHeader    string        `yaml:"identity_header"`     // header carrying the username
	LogLevel          string        `yaml:"log_level"`           // debug, info, warn or error
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"` // http.Server.ReadHeaderTimeout
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`    // grace period on SIGINT/SIGTERM
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:              ":8080",
		IdentityHeader:    identity.DefaultHeader,
		LogLevel:          "info",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
	}
}

// Load builds the configuration: defaults, then the YAML file named by
// TASKTRACK_CONFIG (if set), then individual environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := getenv(EnvConfigFile, ""); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.mergeEnv(); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// mergeFile overlays the non-zero fields of a YAML file onto c.
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if file.Addr != "" {
		c.Addr = file.Addr
	}
	if file.IdentityHeader != "" {
		c.IdentityHeader = file.IdentityHeader
	}
	if file.LogLevel != "" {
		c.LogLevel = file.LogLevel
	}
	if file.ReadHeaderTimeout != 0 {
		c.ReadHeaderTimeout = file.ReadHeaderTimeout
	}
	if file.ShutdownTimeout != 0 {
		c.ShutdownTimeout = file.ShutdownTimeout
	}
	return nil
}

func (c *Config) mergeEnv() error {
	c.Addr = getenv(EnvAddr, c.Addr)
	c.IdentityHeader = getenv(EnvIdentityHeader, c.IdentityHeader)
	c.LogLevel = getenv(EnvLogLevel, c.LogLevel)

	var err error
	if c.ReadHeaderTimeout, err = getenvDuration(EnvReadHeaderTimeout, c.ReadHeaderTimeout); err != nil {
		return err
	}
	if c.ShutdownTimeout, err = getenvDuration(EnvShutdownTimeout, c.ShutdownTimeout); err != nil {
		return err
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr must not be empty")
	}
	if c.IdentityHeader == "" {
		return errors.New("identity_header must not be empty")
	}
	if !logging.ValidLevel(c.LogLevel) {
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	if c.ReadHeaderTimeout <= 0 {
		return fmt.Errorf("read_header_timeout must be positive, got %s", c.ReadHeaderTimeout)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive, got %s", c.ShutdownTimeout)
	}
	return nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvDuration(k string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %w", k, err)
	}
	return d, nil
}
