// Package config loads server configuration from an optional gost.yaml,
// with GOST_* environment variables overriding the file and built-in
// defaults covering everything else.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

// Config is the full server configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Admin   AdminConfig   `mapstructure:"admin"`
	Log     LogConfig     `mapstructure:"log"`
}

// ServerConfig holds the HTTP listen address
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// StorageConfig selects and configures the storage backend
type StorageConfig struct {
	// Type is one of memory, redis, mysql
	Type  string      `mapstructure:"type"`
	Redis RedisConfig `mapstructure:"redis"`
	MySQL MySQLConfig `mapstructure:"mysql"`
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	URL string `mapstructure:"url"`
}

// MySQLConfig holds MySQL connection settings
type MySQLConfig struct {
	DSN string `mapstructure:"dsn"`
}

// AdminConfig guards the operator endpoints. TokenHash is a bcrypt hash
// of the admin token; leaving it empty disables the endpoints entirely.
type AdminConfig struct {
	TokenHash string `mapstructure:"token_hash"`
}

// LogConfig controls log output
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// SlogLevel maps the configured level name to a slog level. Unknown names
// fall back to info.
func (c LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Load reads configuration from the given file, or from gost.yaml in the
// working directory when path is empty. A missing gost.yaml is fine; an
// explicitly named file that does not exist is an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults register every key, so env overrides work without a file
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("storage.type", "memory")
	v.SetDefault("storage.redis.url", "")
	v.SetDefault("storage.mysql.dsn", "")
	v.SetDefault("admin.token_hash", "")
	v.SetDefault("log.level", "info")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("gost")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/gost")
	}

	v.SetEnvPrefix("GOST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}
