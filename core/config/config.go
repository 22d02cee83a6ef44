package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"smr-checker/core/database"
	"smr-checker/core/logger"
	"smr-checker/core/patch"
	"smr-checker/core/server"
	"smr-checker/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the snapshot bucket (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the optional run history database.
	Database database.Config `mapstructure:"database"`
	// Patch holds the accepted security patch window.
	Patch patch.Config `mapstructure:"patch"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	// 2. Reject values the services cannot run with
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// validate checks cross-package constraints that struct tags cannot express.
func (c *Config) validate() error {
	var errs []error

	switch strings.ToLower(c.Database.Driver) {
	case "", "mysql", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("database.driver must be mysql or sqlite, got %q", c.Database.Driver))
	}
	if c.Patch.AheadDays < 0 || c.Patch.BehindDays < 0 {
		errs = append(errs, fmt.Errorf("patch window must not be negative, got ahead %d behind %d",
			c.Patch.AheadDays, c.Patch.BehindDays))
	}
	if c.Server.CacheTTLSeconds < 0 {
		errs = append(errs, fmt.Errorf("server.cache_ttl_seconds must not be negative, got %d", c.Server.CacheTTLSeconds))
	}

	return errors.Join(errs...)
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
