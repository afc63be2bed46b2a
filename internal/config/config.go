// Package config provides configuration management using Viper.
package config

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Output     OutputConfig     `mapstructure:"output"`
	Directives DirectivesConfig `mapstructure:"directives"`
	Remote     RemoteConfig     `mapstructure:"remote"`
	Watch      WatchConfig      `mapstructure:"watch"`
	Rescan     RescanConfig     `mapstructure:"rescan"`
	Status     StatusConfig     `mapstructure:"status"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// OutputConfig holds the output directory configuration.
type OutputConfig struct {
	Dir string `mapstructure:"dir"`
}

// DirectivesConfig locates the plain-text directive files.
type DirectivesConfig struct {
	Dir string `mapstructure:"dir"`
}

// RemoteConfig holds remote source configuration.
type RemoteConfig struct {
	HTTP  HTTPConfig  `mapstructure:"http"`
	S3    S3Config    `mapstructure:"s3"`
	Azure AzureConfig `mapstructure:"azure"`
}

// HTTPConfig holds HTTP client configuration.
type HTTPConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// S3Config holds AWS S3 configuration.
type S3Config struct {
	Region          string `mapstructure:"region"`
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
}

// Configured returns true if any S3 setting is present.
func (c *S3Config) Configured() bool {
	return c.Region != "" || c.Endpoint != "" || c.AccessKeyID != ""
}

// AzureConfig holds Azure Blob Storage configuration.
type AzureConfig struct {
	AccountName      string `mapstructure:"account_name"`
	AccountKey       string `mapstructure:"account_key"`
	ConnectionString string `mapstructure:"connection_string"`
}

// Configured returns true if credentials are present.
func (c *AzureConfig) Configured() bool {
	return c.AccountName != "" || c.ConnectionString != ""
}

// WatchConfig holds directory watch configuration.
type WatchConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Debounce time.Duration `mapstructure:"debounce"`
}

// RescanConfig holds periodic rescan configuration.
type RescanConfig struct {
	Interval time.Duration `mapstructure:"interval"` // 0 disables
}

// Enabled returns true if a rescan interval is configured.
func (c *RescanConfig) Enabled() bool {
	return c.Interval > 0
}

// StatusConfig holds the status server configuration.
type StatusConfig struct {
	Addr            string        `mapstructure:"addr"` // empty disables
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	CORS            CORSConfig    `mapstructure:"cors"`
}

// Enabled returns true if a listen address is configured.
func (c *StatusConfig) Enabled() bool {
	return c.Addr != ""
}

// CORSConfig holds CORS configuration.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"` // e.g., ["https://example.com", "*.sub.domain.tld"]
}

// Enabled returns true if CORS is configured with at least one allowed origin.
func (c *CORSConfig) Enabled() bool {
	return len(c.AllowedOrigins) > 0
}

// MetricsConfig holds Prometheus metrics configuration.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json, text
}

// Defaults sets the default configuration values.
func Defaults() {
	// Output defaults
	viper.SetDefault("output.dir", "outputs")

	// Directive defaults
	viper.SetDefault("directives.dir", "config")

	// Remote defaults
	viper.SetDefault("remote.http.timeout", 5*time.Minute)
	viper.SetDefault("remote.http.user_agent", "")

	// Watch defaults
	viper.SetDefault("watch.enabled", false)
	viper.SetDefault("watch.debounce", 2*time.Second)

	// Rescan defaults
	viper.SetDefault("rescan.interval", time.Duration(0))

	// Status server defaults
	viper.SetDefault("status.addr", "")
	viper.SetDefault("status.read_timeout", 30*time.Second)
	viper.SetDefault("status.write_timeout", 30*time.Second)
	viper.SetDefault("status.shutdown_timeout", 10*time.Second)
	viper.SetDefault("status.cors.allowed_origins", []string{})

	// Metrics defaults
	viper.SetDefault("metrics.enabled", true)
	viper.SetDefault("metrics.path", "/metrics")

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")
}

// Load loads configuration from environment and config file.
func Load(configPath string) (*Config, error) {
	Defaults()

	// Environment variable binding
	viper.SetEnvPrefix("QUADRA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Config file
	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
		viper.AddConfigPath("/etc/quadra")
	}

	// Try to read config file (not required)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Output.Dir == "" {
		return fmt.Errorf("output directory is required")
	}

	if c.Directives.Dir == "" {
		return fmt.Errorf("directives directory is required")
	}

	if c.Status.Addr != "" {
		if _, _, err := net.SplitHostPort(c.Status.Addr); err != nil {
			return fmt.Errorf("invalid status address %q: %w", c.Status.Addr, err)
		}
	}

	if c.Rescan.Interval < 0 {
		return fmt.Errorf("rescan interval must not be negative")
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics path must start with /: %q", c.Metrics.Path)
	}

	if c.Watch.Enabled && c.Watch.Debounce <= 0 {
		return fmt.Errorf("watch debounce must be positive")
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level: %s", c.Logging.Level)
	}

	return nil
}
