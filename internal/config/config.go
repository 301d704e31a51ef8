// Package config handles configuration loading and validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/docker/docker/client"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/zorak1103/check-container/internal/check"
	apperrors "github.com/zorak1103/check-container/internal/errors"
)

// EnvPrefix is prepended to every environment variable override.
const EnvPrefix = "CHECK_CONTAINER"

// Default values.
const (
	DefaultTimeout   = 5 * time.Second
	DefaultCheckName = "CheckDockerContainerByQuery"
	DefaultMinStatus = "warning"
)

// Common errors
var (
	ErrQueryRequired = errors.New("a container name query is required (--query-name)")
)

// Config represents the check configuration. It is immutable once loaded.
type Config struct {
	Docker       DockerConfig       `mapstructure:"docker"`
	Check        CheckConfig        `mapstructure:"check"`
	Notification NotificationConfig `mapstructure:"notification"`

	// ConfigFilePath stores the path to the loaded config file (not marshaled from YAML)
	ConfigFilePath string `mapstructure:"-"`
}

// DockerConfig contains daemon connection settings
type DockerConfig struct {
	Host       string        `mapstructure:"host"`
	APIVersion string        `mapstructure:"api_version"`
	Timeout    time.Duration `mapstructure:"timeout"`
	TLSCACert  string        `mapstructure:"tls_ca_cert"`
	TLSCert    string        `mapstructure:"tls_cert"`
	TLSKey     string        `mapstructure:"tls_key"`
}

// CheckConfig contains the query being checked
type CheckConfig struct {
	Name        string `mapstructure:"name"`
	Query       string `mapstructure:"query"`
	AllowExited bool   `mapstructure:"allow_exited"` // accepted, currently has no effect
}

// NotificationConfig contains notification settings
type NotificationConfig struct {
	ShoutrrURL string `mapstructure:"shoutrrr_url"` // Shoutrrr URL format
	Enabled    bool   `mapstructure:"enabled"`
	MinStatus  string `mapstructure:"min_status"`
}

// flagBindings maps config keys to the command line flags that override them.
var flagBindings = map[string]string{
	"docker.host":        "docker-host",
	"docker.timeout":     "timeout",
	"check.name":         "check-name",
	"check.query":        "query-name",
	"check.allow_exited": "allow-exited",
}

// autoDetectDockerHost falls back to DOCKER_HOST and then to the daemon default.
func autoDetectDockerHost() string {
	if host := os.Getenv("DOCKER_HOST"); host != "" {
		return host
	}
	return client.DefaultDockerHost
}

// Load reads configuration from file, environment variables and flags, then validates it.
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	cfg, err := Read(configPath, flags)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Read merges defaults, config file, environment and flags without validating.
func Read(configPath string, flags *pflag.FlagSet) (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load() // nolint:errcheck // .env file is optional

	v := viper.New()

	// Set config file path
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/check-container")
		v.AddConfigPath("/etc/check-container")
	}

	setDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			configFile := v.ConfigFileUsed()
			if configFile == "" {
				configFile = configPath
			}
			return nil, &apperrors.ConfigurationError{
				ConfigPath: configFile,
				Err:        fmt.Errorf("error reading config file: %w", err),
			}
		}
		// Config file not found; using defaults, env vars and flags
	}

	// Environment variable support
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := bindFlags(v, flags); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &apperrors.ConfigurationError{
			ConfigPath: describeSource(v.ConfigFileUsed()),
			Err:        fmt.Errorf("error unmarshaling config: %w", err),
		}
	}

	// Store the config file path in the struct (DI approach, no global state)
	cfg.ConfigFilePath = v.ConfigFileUsed()

	if strings.TrimSpace(cfg.Docker.Host) == "" {
		cfg.Docker.Host = autoDetectDockerHost()
	}

	return &cfg, nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	if flags == nil {
		return nil
	}
	for key, name := range flagBindings {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag --%s to %s: %w", name, key, err)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	// Docker defaults
	v.SetDefault("docker.host", autoDetectDockerHost())
	v.SetDefault("docker.api_version", "")
	v.SetDefault("docker.timeout", DefaultTimeout)
	v.SetDefault("docker.tls_ca_cert", "")
	v.SetDefault("docker.tls_cert", "")
	v.SetDefault("docker.tls_key", "")

	// Check defaults (empty values are required for AutomaticEnv to work)
	v.SetDefault("check.name", DefaultCheckName)
	v.SetDefault("check.query", "")
	v.SetDefault("check.allow_exited", false)

	// Notification defaults
	v.SetDefault("notification.shoutrrr_url", "")
	v.SetDefault("notification.enabled", false)
	v.SetDefault("notification.min_status", DefaultMinStatus)
}

func describeSource(configFile string) string {
	if configFile == "" {
		return "(defaults/environment)"
	}
	return configFile
}

// Validate ensures all required fields are set and values are within valid ranges.
func (c *Config) Validate() error {
	source := describeSource(c.ConfigFilePath)

	if strings.TrimSpace(c.Check.Query) == "" {
		return &apperrors.ConfigurationError{ConfigPath: source, Key: "check.query", Err: ErrQueryRequired}
	}
	if _, err := regexp.Compile(c.Check.Query); err != nil {
		return &apperrors.ConfigurationError{
			ConfigPath: source,
			Key:        "check.query",
			Err:        fmt.Errorf("invalid query pattern '%s': %w", c.Check.Query, err),
		}
	}

	if c.Docker.Timeout <= 0 {
		return &apperrors.ConfigurationError{
			ConfigPath: source,
			Key:        "docker.timeout",
			Err:        fmt.Errorf("must be positive, got %s", c.Docker.Timeout),
		}
	}

	if (c.Docker.TLSCert == "") != (c.Docker.TLSKey == "") {
		return &apperrors.ConfigurationError{
			ConfigPath: source,
			Key:        "docker.tls_cert",
			Err:        errors.New("docker.tls_cert and docker.tls_key must be set together"),
		}
	}

	return c.validateNotification(source)
}

func (c *Config) validateNotification(source string) error {
	if _, err := check.ParseStatus(c.Notification.MinStatus); err != nil {
		return &apperrors.ConfigurationError{ConfigPath: source, Key: "notification.min_status", Err: err}
	}
	if c.Notification.Enabled && strings.TrimSpace(c.Notification.ShoutrrURL) == "" {
		return &apperrors.ConfigurationError{
			ConfigPath: source,
			Key:        "notification.shoutrrr_url",
			Err:        errors.New("notification enabled but shoutrrr_url not configured"),
		}
	}
	return nil
}
