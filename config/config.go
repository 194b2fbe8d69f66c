package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Backend    BackendConfig    `yaml:"backend"`
	Database   DatabaseConfig   `yaml:"database"`
	Push       PushConfig       `yaml:"push"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
	Log        LogConfig        `yaml:"log"`
}

// WorkerPoolConfig holds the configuration for the notification worker pool.
type WorkerPoolConfig struct {
	Size      int `yaml:"size"`
	QueueSize int `yaml:"queue_size"`
}

// PushConfig holds the VAPID keys for web push notifications.
type PushConfig struct {
	PublicKey  string `yaml:"vapid_public_key"`
	PrivateKey string `yaml:"vapid_private_key"`
	Subject    string `yaml:"subject"`
	TTL        int    `yaml:"ttl"`
}

// ServerConfig holds the console server configuration.
type ServerConfig struct {
	Port               int           `yaml:"port"`
	Environment        string        `yaml:"environment"`
	RequestIPHeader    string        `yaml:"request_ip_header"`
	RateLimitPerSec    float64       `yaml:"rate_limit_per_sec"`
	RateLimitBurst     int           `yaml:"rate_limit_burst"`
	ConfirmTTLSeconds  int           `yaml:"confirm_ttl_seconds"`
	ConfirmTTL         time.Duration `yaml:"-"`
	ShutdownTimeoutSec int           `yaml:"shutdown_timeout_seconds"`
}

// BackendConfig describes the remote booking REST API.
type BackendConfig struct {
	BaseURL        string            `yaml:"base_url"`
	Tenant         string            `yaml:"tenant"`
	HTTPProxy      string            `yaml:"http_proxy"`
	Headers        map[string]string `yaml:"headers"`
	TimeoutSeconds int               `yaml:"timeout_seconds"` // 0 means no client timeout
}

// DatabaseConfig holds the console's own database (audit log, push subscriptions).
// A DSN prefixed with "sqlite:" selects the sqlite driver, anything else is postgres.
type DatabaseConfig struct {
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
	LogQueries             bool   `yaml:"log_queries"`
}

// LogConfig controls the zerolog output.
type LogConfig struct {
	Level string `yaml:"level"`
}

// envOverrides are deploy-specific values that may be provided through the
// environment (or a .env file next to the config file).
type envOverrides struct {
	BackendURL      string `envconfig:"BACKEND_URL"`
	Tenant          string `envconfig:"TENANT"`
	DatabaseDSN     string `envconfig:"DATABASE_DSN"`
	VAPIDPublicKey  string `envconfig:"VAPID_PUBLIC_KEY"`
	VAPIDPrivateKey string `envconfig:"VAPID_PRIVATE_KEY"`
	Port            int    `envconfig:"PORT"`
	LogLevel        string `envconfig:"LOG_LEVEL"`
}

// EnvPrefix is the prefix of the environment variables read by Load.
const EnvPrefix = "CONSOLE"

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	envPath := filepath.Join(filepath.Dir(path), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyEnv() error {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("failed to process env config: %w", err)
	}
	if env.BackendURL != "" {
		c.Backend.BaseURL = env.BackendURL
	}
	if env.Tenant != "" {
		c.Backend.Tenant = env.Tenant
	}
	if env.DatabaseDSN != "" {
		c.Database.DSN = env.DatabaseDSN
	}
	if env.VAPIDPublicKey != "" {
		c.Push.PublicKey = env.VAPIDPublicKey
	}
	if env.VAPIDPrivateKey != "" {
		c.Push.PrivateKey = env.VAPIDPrivateKey
	}
	if env.Port != 0 {
		c.Server.Port = env.Port
	}
	if env.LogLevel != "" {
		c.Log.Level = env.LogLevel
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port <= 0 {
		c.Server.Port = 8080
	}
	if c.Server.Environment == "" {
		c.Server.Environment = "production"
	}
	if c.Server.RateLimitPerSec <= 0 {
		c.Server.RateLimitPerSec = 10
	}
	if c.Server.RateLimitBurst <= 0 {
		c.Server.RateLimitBurst = 5
	}
	if c.Server.ConfirmTTLSeconds <= 0 {
		c.Server.ConfirmTTLSeconds = 120
	}
	c.Server.ConfirmTTL = time.Duration(c.Server.ConfirmTTLSeconds) * time.Second
	if c.Server.ShutdownTimeoutSec <= 0 {
		c.Server.ShutdownTimeoutSec = 5
	}

	if c.Backend.Tenant == "" {
		c.Backend.Tenant = "admin1"
	}

	if c.Push.TTL <= 0 {
		c.Push.TTL = 3600
	}

	if c.WorkerPool.Size <= 0 {
		log.Warn().Msg("worker_pool.size is not set or invalid; defaulting to 1")
		c.WorkerPool.Size = 1
	}
	if c.WorkerPool.QueueSize <= 0 {
		c.WorkerPool.QueueSize = c.WorkerPool.Size * 16
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate reports configuration that the console cannot start with.
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url is required")
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}
	return nil
}
