// Package config loads service settings from an optional YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bryan-buckman/mvphub/internal/database"
)

// Environment variables read by Load.
const (
	ConfigPathEnv    = "MVPHUB_CONFIG"
	addrEnv          = "MVPHUB_ADDR"
	storageDriverEnv = "MVPHUB_STORAGE_DRIVER"
	storageDSNEnv    = "MVPHUB_STORAGE_DSN"
	logLevelEnv      = "MVPHUB_LOG_LEVEL"
	logFormatEnv     = "MVPHUB_LOG_FORMAT"
	defaultDBName    = "mvphub.db"
	defaultStateDir  = ".mvphub"
)

// Config holds every setting of the service.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Logging LoggingConfig `yaml:"logging"`
	Search  SearchConfig  `yaml:"search"`
	Notices NoticeConfig  `yaml:"notices"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// StorageConfig selects the key/value backend. DSN is a file path for sqlite
// and a connection string for postgres; memory ignores it.
type StorageConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

type SearchConfig struct {
	Delay time.Duration `yaml:"delay"`
}

type NoticeConfig struct {
	TTL time.Duration `yaml:"ttl"`
}

// Default returns the built-in configuration. The storage DSN is left empty;
// Load fills in the default SQLite path only when sqlite is the driver.
func Default() *Config {
	return &Config{
		Server:  ServerConfig{Addr: ":8080"},
		Storage: StorageConfig{Driver: database.DriverSQLite},
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Search:  SearchConfig{Delay: 1500 * time.Millisecond},
		Notices: NoticeConfig{TTL: 5 * time.Second},
	}
}

func defaultDSN() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultDBName
	}
	return filepath.Join(home, defaultStateDir, defaultDBName)
}

// Load reads path over the defaults and applies environment overrides. An
// empty path falls back to MVPHUB_CONFIG; a missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(ConfigPathEnv)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	cfg.applyEnvOverrides()
	if cfg.Storage.Driver == database.DriverSQLite && cfg.Storage.DSN == "" {
		cfg.Storage.DSN = defaultDSN()
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(addrEnv); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(storageDriverEnv); v != "" {
		c.Storage.Driver = v
	}
	if v := os.Getenv(storageDSNEnv); v != "" {
		c.Storage.DSN = v
	}
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(logFormatEnv); v != "" {
		c.Logging.Format = v
	}
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case database.DriverSQLite, database.DriverMemory:
	case database.DriverPostgres:
		if c.Storage.DSN == "" {
			return errors.New("config: storage.dsn is required for postgres")
		}
	default:
		return fmt.Errorf("config: unknown storage driver %q", c.Storage.Driver)
	}
	if c.Search.Delay < 0 || c.Notices.TTL < 0 {
		return errors.New("config: durations must not be negative")
	}
	return nil
}
