package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by LoadConfig,
// e.g. DICTCTL_SERVER_PORT.
const EnvPrefix = "DICTCTL"

// Config holds all configuration for the application
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Eval   EvalConfig   `mapstructure:"eval"`
	Server ServerConfig `mapstructure:"server"`
}

// LogConfig holds logging related configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// EvalConfig holds script evaluation related configuration
type EvalConfig struct {
	Extension string `mapstructure:"extension"`
	Workers   int    `mapstructure:"workers"`
	Format    string `mapstructure:"format"`
	Verbose   bool   `mapstructure:"verbose"`
}

// ServerConfig holds HTTP server related configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr returns the host:port the server listens on
func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// LoadConfig loads configuration from file and environment variables.
// An empty configPath skips the file.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("eval.extension", ".txt")
	v.SetDefault("eval.workers", 4)
	v.SetDefault("eval.format", "table")
	v.SetDefault("eval.verbose", false)

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", "5s")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		return fmt.Errorf("invalid log format %q: must be console or json", c.Log.Format)
	}

	if c.Eval.Workers <= 0 {
		return fmt.Errorf("eval workers must be positive, got %d", c.Eval.Workers)
	}
	if !strings.HasPrefix(c.Eval.Extension, ".") {
		return fmt.Errorf("eval extension must start with a dot, got %q", c.Eval.Extension)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server shutdown timeout must be positive")
	}

	return nil
}
