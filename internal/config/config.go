// Package config resolves client settings from environment variables
// and an optional config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/ovalabs/ovaterm/internal/api"
)

// Config holds all client settings.
type Config struct {
	// API is the remote platform connection.
	API APIConfig `mapstructure:"api"`
	// DataDir is where the local session cache lives.
	DataDir string `mapstructure:"data_dir"`
}

// APIConfig configures the gateway client.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Load reads settings from OVATERM_* environment variables and, when
// present, a config file (ovaterm.yaml next to the data dir or the
// path in OVATERM_CONFIG). Env wins over file, file over defaults.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("api.base_url", api.DefaultBaseURL)
	v.SetDefault("api.timeout", 15*time.Second)

	dataDir, err := defaultDataDir()
	if err != nil {
		return Config{}, err
	}
	v.SetDefault("data_dir", dataDir)

	v.SetEnvPrefix("OVATERM")
	v.AutomaticEnv()

	if path := os.Getenv("OVATERM_CONFIG"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("ovaterm")
		v.SetConfigType("yaml")
		v.AddConfigPath(dataDir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// defaultDataDir resolves $XDG_DATA_HOME/ovaterm, falling back to
// ~/.local/share/ovaterm.
func defaultDataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "ovaterm"), nil
}
