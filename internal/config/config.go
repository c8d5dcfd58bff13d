package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Repository backends.
const (
	RepositoryMemory   = "memory"
	RepositoryDatabase = "database"
)

// Config holds the application configuration.
type Config struct {
	Port        string `mapstructure:"PORT"`
	Repository  string `mapstructure:"REPOSITORY"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	DataPath    string `mapstructure:"DATA_PATH"`
	JWTSecret   string `mapstructure:"JWT_SECRET"`
	PageSize    int    `mapstructure:"PAGE_SIZE"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`
	LogFormat   string `mapstructure:"LOG_FORMAT"`
	GinMode     string `mapstructure:"GIN_MODE"`
	SeedUsers   bool   `mapstructure:"SEED_USERS"`
}

var defaults = map[string]any{
	"PORT":         "8080",
	"REPOSITORY":   RepositoryMemory,
	"DATABASE_URL": "",
	"DATA_PATH":    "data",
	"JWT_SECRET":   "change-me",
	"PAGE_SIZE":    16,
	"LOG_LEVEL":    "info",
	"LOG_FORMAT":   "console",
	"GIN_MODE":     "debug",
	"SEED_USERS":   true,
}

// SetDefaults registers every key and its default on v so AutomaticEnv and
// Unmarshal see keys that appear in neither .env nor the environment.
func SetDefaults(v *viper.Viper) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
}

// LoadConfig loads the configuration from a .env file in the working
// directory and environment variables. A missing .env file is not an error.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.AddConfigPath(".")
	v.SetConfigName(".env")
	v.SetConfigType("env")
	return Load(v)
}

// Load reads configuration through an already prepared viper instance.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values viper cannot check on its own.
func (c *Config) Validate() error {
	c.Repository = strings.ToLower(strings.TrimSpace(c.Repository))
	switch c.Repository {
	case RepositoryMemory, RepositoryDatabase:
	default:
		return fmt.Errorf("REPOSITORY must be %q or %q, got %q", RepositoryMemory, RepositoryDatabase, c.Repository)
	}
	if c.PageSize < 1 {
		return fmt.Errorf("PAGE_SIZE must be positive, got %d", c.PageSize)
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}
