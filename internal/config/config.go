// Package config loads rentledger settings from an optional yaml file and
// RENTLEDGER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"rentledger/internal/core"
	"rentledger/internal/infra/kv/s3"
	"rentledger/internal/kv"
)

// EnvPrefix namespaces environment overrides, e.g. RENTLEDGER_STORAGE_DRIVER.
const EnvPrefix = "RENTLEDGER"

// S3Config selects the bucket used by the s3 driver. Credentials come from the
// default AWS chain.
type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	PathStyle bool   `mapstructure:"path_style"`
	Prefix    string `mapstructure:"prefix"`
}

// StorageConfig picks the kv driver and the key namespace.
type StorageConfig struct {
	Driver      string   `mapstructure:"driver"`
	Namespace   string   `mapstructure:"namespace"`
	FSRoot      string   `mapstructure:"fs_root"`
	SQLitePath  string   `mapstructure:"sqlite_path"`
	PostgresDSN string   `mapstructure:"postgres_dsn"`
	S3          S3Config `mapstructure:"s3"`
}

// LogConfig controls the slog handler: level debug|info|warn|error, format text|json.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MetricsConfig selects the metrics backend. Textfile is only written by the
// prometheus backend.
type MetricsConfig struct {
	Backend  string `mapstructure:"backend"`
	Textfile string `mapstructure:"textfile"`
}

// ProfileConfig holds defaults for new profiles.
type ProfileConfig struct {
	Currency string `mapstructure:"currency"`
}

// Config is the full settings tree.
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Profile ProfileConfig `mapstructure:"profile"`
}

// Metrics backends.
const (
	MetricsNone       = "none"
	MetricsExpvar     = "expvar"
	MetricsPrometheus = "prometheus"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.driver", string(kv.DriverFilesystem))
	v.SetDefault("storage.namespace", core.DefaultNamespace)
	v.SetDefault("storage.fs_root", "./data")
	v.SetDefault("storage.sqlite_path", "rentledger.db")
	v.SetDefault("storage.postgres_dsn", "")
	v.SetDefault("storage.s3.bucket", "")
	v.SetDefault("storage.s3.region", "us-east-1")
	v.SetDefault("storage.s3.endpoint", "")
	v.SetDefault("storage.s3.path_style", false)
	v.SetDefault("storage.s3.prefix", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("metrics.backend", MetricsNone)
	v.SetDefault("metrics.textfile", "")
	v.SetDefault("profile.currency", core.DefaultCurrency)
}

// Load reads path when given, otherwise an optional rentledger.yaml in the
// working directory. Environment variables override both.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		v.SetConfigName("rentledger")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	} else {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate rejects unknown enumerated values.
func (c *Config) Validate() error {
	switch kv.Driver(c.Storage.Driver) {
	case kv.DriverMemory, kv.DriverFilesystem, kv.DriverSQLite, kv.DriverPostgres, kv.DriverS3:
	default:
		return fmt.Errorf("storage.driver: unknown driver %q", c.Storage.Driver)
	}
	switch c.Metrics.Backend {
	case MetricsNone, MetricsExpvar, MetricsPrometheus:
	default:
		return fmt.Errorf("metrics.backend: unknown backend %q", c.Metrics.Backend)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format: unknown format %q", c.Log.Format)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// KVOptions maps storage settings onto the kv factory.
func (c *Config) KVOptions() kv.Options {
	return kv.Options{
		Driver:      kv.Driver(c.Storage.Driver),
		FSRoot:      c.Storage.FSRoot,
		SQLitePath:  c.Storage.SQLitePath,
		PostgresDSN: c.Storage.PostgresDSN,
		S3: s3.Config{
			Bucket:    c.Storage.S3.Bucket,
			Region:    c.Storage.S3.Region,
			Endpoint:  c.Storage.S3.Endpoint,
			PathStyle: c.Storage.S3.PathStyle,
			Prefix:    c.Storage.S3.Prefix,
		},
	}
}

// LogLevel parses log.level.
func (c *Config) LogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return lvl, nil
}
