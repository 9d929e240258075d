package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the POS service
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	POS      POSConfig      `yaml:"pos"`
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_seconds"`
	WriteTimeoutSec int `yaml:"write_timeout_seconds"`
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTSecret   string `yaml:"jwt_secret"`
	TokenTTLMin int    `yaml:"token_ttl_minutes"`
	BcryptCost  int    `yaml:"bcrypt_cost"`
}

// POSConfig holds point-of-sale behavior configuration
type POSConfig struct {
	CommitTimeoutSec  int `yaml:"commit_timeout_seconds"`
	RecentOrdersLimit int `yaml:"recent_orders_limit"`
}

// Load reads configuration from a YAML file. A .env file, if present,
// is loaded first; environment variables override file values for
// secrets so they never have to live in the config file.
func Load(filename string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyEnvOverrides()
	config.applyDefaults()

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("LILYPAY_DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("LILYPAY_JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
}

func (c *Config) applyDefaults() {
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 3000
	}
	if c.HTTP.ReadTimeoutSec == 0 {
		c.HTTP.ReadTimeoutSec = 15
	}
	if c.HTTP.WriteTimeoutSec == 0 {
		c.HTTP.WriteTimeoutSec = 15
	}
	if c.Auth.TokenTTLMin == 0 {
		c.Auth.TokenTTLMin = 8 * 60
	}
	if c.Auth.BcryptCost == 0 {
		c.Auth.BcryptCost = 10
	}
	if c.POS.CommitTimeoutSec == 0 {
		c.POS.CommitTimeoutSec = 10
	}
	if c.POS.RecentOrdersLimit == 0 {
		c.POS.RecentOrdersLimit = 50
	}
}

func (c *Config) validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.Port == 0 {
		return fmt.Errorf("database.port is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database.database is required")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required (config file or LILYPAY_JWT_SECRET)")
	}
	return nil
}

// DatabaseURL returns a PostgreSQL connection URL
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.Database)
}

// TokenTTL returns the session token lifetime
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.TokenTTLMin) * time.Minute
}

// CommitTimeout returns the bound on a single order commit attempt
func (c *Config) CommitTimeout() time.Duration {
	return time.Duration(c.POS.CommitTimeoutSec) * time.Second
}
