// Package config resolves ry's configuration from the environment and an
// optional config file. Precedence: environment, then file, then defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "ry"
	// EnvPrefix is the prefix for environment overrides (RY_ROOT, RY_DOWNLOADER).
	EnvPrefix = "RY"
)

// Config holds the resolved settings.
type Config struct {
	// Root is the store root directory holding versions/ and current.
	Root string `mapstructure:"root"`
	// Downloader forces the fetch transport ("curl" or "wget"); empty
	// selects the first available, preferring curl.
	Downloader string `mapstructure:"downloader"`
}

// DefaultRoot returns the store root used when nothing overrides it,
// ~/.ry under the user's home directory.
func DefaultRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, "."+AppName), nil
}

// Load resolves the configuration. A missing config file is not an error;
// a malformed one is.
func Load() (*Config, error) {
	defRoot, err := DefaultRoot()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetDefault("root", defRoot)
	v.SetDefault("downloader", "")

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	_ = v.BindEnv("root")
	_ = v.BindEnv("downloader")

	v.SetConfigName("config")
	v.SetConfigType("toml")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, AppName))
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
