package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Backend BackendConfig `mapstructure:"backend"`
	Review  ReviewConfig  `mapstructure:"review"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// BackendConfig holds review-backend connection settings
type BackendConfig struct {
	URL        string        `mapstructure:"url"`
	Timeout    time.Duration `mapstructure:"-"`
	TimeoutStr string        `mapstructure:"timeout"` // For parsing string duration
}

// ReviewConfig holds defaults for review sessions
type ReviewConfig struct {
	DatasetID  string `mapstructure:"dataset_id"`
	WorkflowID string `mapstructure:"workflow_id"`
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	LogFile string `mapstructure:"log_file"`
	Pretty  bool   `mapstructure:"pretty"`
}

// Global config instance
var cfg *Config

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		panic("config not initialized")
	}
	return cfg
}

// Load loads configuration from file and environment
func Load(cfgFile string) (*Config, error) {
	setDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}

		xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigHome == "" {
			xdgConfigHome = filepath.Join(home, ".config")
		}

		viper.AddConfigPath("./.chartlight")
		viper.AddConfigPath(filepath.Join(xdgConfigHome, "chartlight"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("settings")
	}

	viper.SetEnvPrefix("CHARTLIGHT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults and env cover it.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	loaded := &Config{}
	if err := viper.Unmarshal(loaded); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := resolveTimeouts(loaded); err != nil {
		return nil, err
	}

	cfg = loaded
	return cfg, nil
}

func resolveTimeouts(c *Config) error {
	if c.Backend.TimeoutStr == "" {
		c.Backend.Timeout = 60 * time.Second
		return nil
	}
	d, err := time.ParseDuration(c.Backend.TimeoutStr)
	if err != nil {
		return fmt.Errorf("failed to parse backend.timeout: %w", err)
	}
	c.Backend.Timeout = d
	return nil
}

func setDefaults() {
	viper.SetDefault("backend.url", "http://localhost:8000")
	viper.SetDefault("backend.timeout", "90s")

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.log_file", "")
	viper.SetDefault("logging.pretty", true)
}
