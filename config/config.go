package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// Config holds the configuration for the ReelRent server.
type Config struct {
	// Listen is the address the ReelRent server will listen on.
	Listen string `yaml:"listen" mapstructure:"listen"`
	// Database holds the embedded store configuration.
	Database *DatabaseConfig `yaml:"database" mapstructure:"database"`
	// Cache holds the catalog cache configuration.
	Cache *CacheConfig `yaml:"cache" mapstructure:"cache"`
	// Rentals holds the rental lifecycle configuration.
	Rentals *RentalsConfig `yaml:"rentals" mapstructure:"rentals"`
}

// DatabaseConfig holds the embedded store configuration.
type DatabaseConfig struct {
	// Path is the filesystem path of the SQLite database.
	Path string `yaml:"path" mapstructure:"path"`
}

// CacheConfig holds the catalog cache configuration.
type CacheConfig struct {
	// TTL is how long cached catalog reads stay fresh.
	TTL time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// RentalsConfig holds the rental lifecycle configuration.
type RentalsConfig struct {
	// SweepInterval is how often the rented flags are reconciled with the
	// rental ledgers.
	SweepInterval time.Duration `yaml:"sweep_interval" mapstructure:"sweep_interval"`
}

// Load reads the configuration from the specified path and returns a Config
// struct. If path is empty, it searches the common locations and falls back
// to defaults when no file is found.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetEnvPrefix("REELRENT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.reelrent")
		v.AddConfigPath("/etc/reelrent")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		log.Debug("Using config file", "file", v.ConfigFileUsed())
		log.Debug("Environment variables with REELRENT_ prefix will override config file values")
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

// setDefaults sets default values for the configuration.
func setDefaults(v *viper.Viper) {
	v.SetDefault("listen", "0.0.0.0:3002")
	v.SetDefault("database.path", "reelrent.db")
	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("rentals.sweep_interval", 15*time.Minute)
}

// validateConfig validates the configuration.
func validateConfig(c *Config) error {
	if c == nil {
		return fmt.Errorf("missing config")
	}
	if c.Listen == "" {
		return fmt.Errorf("listen address is required")
	}
	if c.Database == nil || c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}
	if c.Cache == nil || c.Cache.TTL <= 0 {
		return fmt.Errorf("cache ttl must be positive")
	}
	if c.Rentals == nil || c.Rentals.SweepInterval <= 0 {
		return fmt.Errorf("rental sweep interval must be positive")
	}
	return nil
}
