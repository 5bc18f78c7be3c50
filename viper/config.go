// Package viper loads the catalogo configuration from defaults, an optional
// config file and CATALOGO_* environment variables.
package viper

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/catalogo"
	"github.com/fwojciec/catalogo/catalog"
	"github.com/fwojciec/catalogo/csv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of the environment variables read by Load.
const EnvPrefix = "CATALOGO"

// Config keys. The environment variable of a key is EnvPrefix_KEY, e.g.
// CATALOGO_BATCH_SIZE.
const (
	KeyDB        = "db"
	KeyFeed      = "feed"
	KeyEncoding  = "encoding"
	KeyBatchSize = "batch_size"
	KeyDebounce  = "debounce"
	KeyLogLevel  = "log_level"
)

// Config holds the application settings.
type Config struct {
	DBPath    string
	FeedPath  string
	Encoding  string
	BatchSize int
	Debounce  time.Duration
	LogLevel  string
}

// Level returns the slog level named by LogLevel.
func (c *Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn
	}
	return level
}

// Load reads the configuration. An explicit path must exist; otherwise
// catalogo.{yaml,toml,json} is looked up in the working directory and in
// ~/.catalogo and skipped when absent. Environment variables win over the
// file.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, catalogo.Errorf(catalogo.EINVALID, "cannot read config %s: %v", path, err)
		}
	} else {
		v.SetConfigName("catalogo")
		v.AddConfigPath(".")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, catalogo.Errorf(catalogo.EINVALID, "cannot read config: %v", err)
			}
		}
	}

	cfg := &Config{
		DBPath:    v.GetString(KeyDB),
		FeedPath:  v.GetString(KeyFeed),
		Encoding:  strings.ToLower(v.GetString(KeyEncoding)),
		BatchSize: v.GetInt(KeyBatchSize),
		Debounce:  v.GetDuration(KeyDebounce),
		LogLevel:  strings.ToLower(v.GetString(KeyLogLevel)),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyDB, DefaultDBPath())
	v.SetDefault(KeyFeed, "")
	v.SetDefault(KeyEncoding, csv.EncodingUTF8)
	v.SetDefault(KeyBatchSize, csv.DefaultBatchSize)
	v.SetDefault(KeyDebounce, catalog.DefaultDebounce)
	v.SetDefault(KeyLogLevel, "warn")
}

func (c *Config) validate() error {
	if c.DBPath == "" {
		return catalogo.Errorf(catalogo.EINVALID, "database path required")
	}
	if c.BatchSize <= 0 {
		return catalogo.Errorf(catalogo.EINVALID, "batch size must be positive, got %d", c.BatchSize)
	}
	if c.Debounce < 0 {
		return catalogo.Errorf(catalogo.EINVALID, "debounce must not be negative, got %s", c.Debounce)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return catalogo.Errorf(catalogo.EINVALID, "unknown log level %q", c.LogLevel)
	}
	return nil
}

// DefaultDBPath returns ~/.catalogo/catalogo.db, or catalogo.db in the
// working directory when the home directory is unknown.
func DefaultDBPath() string {
	dir, err := configDir()
	if err != nil {
		return "catalogo.db"
	}
	return filepath.Join(dir, "catalogo.db")
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".catalogo"), nil
}
