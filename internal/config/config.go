// Package config provides Viper-based hierarchical configuration management.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable read by the config.
const EnvPrefix = "INCOME"

// Config represents the complete application configuration.
type Config struct {
	Log    LogConfig    `mapstructure:"log" yaml:"log"`
	API    APIConfig    `mapstructure:"api" yaml:"api"`
	List   ListConfig   `mapstructure:"list" yaml:"list"`
	Output OutputConfig `mapstructure:"output" yaml:"output"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"required"`
	Format string `mapstructure:"format" yaml:"format" validate:"oneof=text json"`
}

type APIConfig struct {
	BaseURL           string `mapstructure:"base_url" yaml:"base_url" validate:"required,url"`
	Token             string `mapstructure:"token" yaml:"-"` // never serialized
	TimeoutSeconds    int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds" validate:"min=1,max=300"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute" yaml:"requests_per_minute" validate:"min=0,max=6000"`
}

// Timeout returns the per-request timeout.
func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

type ListConfig struct {
	Limit int `mapstructure:"limit" yaml:"limit" validate:"min=1,max=1000"`
}

type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format" validate:"oneof=table json yaml csv"`
}

// InitializeConfig loads configuration from defaults, an optional config
// file and INCOME_* environment variables, in increasing precedence. An
// empty configFile searches the standard locations and tolerates absence.
func InitializeConfig(configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.income-categories")
		v.AddConfigPath(".income-categories")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Log:    LogConfig{Level: "info", Format: "text"},
		API:    APIConfig{BaseURL: "http://localhost:8000", TimeoutSeconds: 30},
		List:   ListConfig{Limit: 10},
		Output: OutputConfig{Format: "table"},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)

	v.SetDefault("api.base_url", d.API.BaseURL)
	v.SetDefault("api.token", "")
	v.SetDefault("api.timeout_seconds", d.API.TimeoutSeconds)
	v.SetDefault("api.requests_per_minute", d.API.RequestsPerMinute)

	v.SetDefault("list.limit", d.List.Limit)
	v.SetDefault("output.format", d.Output.Format)
}

var validate = validator.New()

// Validate checks struct tags and the log level.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return err
	}
	if _, err := logrus.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", cfg.Log.Level)
	}
	return nil
}

// LoadEnv loads a .env file from the current or parent directory into the
// process environment, returning the file used or "" when none was found.
// Variables already set are left alone.
func LoadEnv() (string, error) {
	for _, candidate := range []string{".env", filepath.Join("..", ".env")} {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		if err := godotenv.Load(candidate); err != nil {
			return candidate, fmt.Errorf("error loading %s: %w", candidate, err)
		}
		return candidate, nil
	}
	return "", nil
}
