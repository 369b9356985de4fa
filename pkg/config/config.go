// Package config loads yuletree settings from a TOML file and the
// environment.
//
// Every key can be overridden by an environment variable named after it
// with a YULETREE_ prefix and dots replaced by underscores, for example
// YULETREE_SERVER_ADDR or YULETREE_CACHE_DRIVER. DATABASE_URL is honoured
// as the store DSN when YULETREE_STORE_DSN is unset.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/matzehuels/yuletree/pkg/errors"
	"github.com/matzehuels/yuletree/pkg/layout"
)

// AppName names the config and cache directories.
const AppName = "yuletree"

// Store drivers.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
	StoreMongo  = "mongo"
	StoreHTTP   = "http"
)

// Cache drivers.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheFile   = "file"
	CacheRedis  = "redis"
)

var (
	storeDrivers = []string{StoreMemory, StoreSQLite, StoreMongo, StoreHTTP}
	cacheDrivers = []string{CacheNone, CacheMemory, CacheFile, CacheRedis}
)

// Config holds application configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Store  StoreConfig  `mapstructure:"store"`
	Cache  CacheConfig  `mapstructure:"cache"`
	Tree   TreeConfig   `mapstructure:"tree"`
	Page   PageConfig   `mapstructure:"page"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	// Watch reloads the silhouette file when it changes.
	Watch bool `mapstructure:"watch"`
}

// StoreConfig selects the message source.
type StoreConfig struct {
	Driver string `mapstructure:"driver"`
	// DSN is the sqlite path, mongo URI or remote base URL.
	DSN      string `mapstructure:"dsn"`
	Database string `mapstructure:"database"`
	// Seed is the message set loaded into empty stores.
	Seed    string            `mapstructure:"seed"`
	Headers map[string]string `mapstructure:"headers"`
	Timeout time.Duration     `mapstructure:"timeout"`
}

// CacheConfig selects the artifact cache.
type CacheConfig struct {
	Driver     string        `mapstructure:"driver"`
	Dir        string        `mapstructure:"dir"`
	URL        string        `mapstructure:"url"`
	Prefix     string        `mapstructure:"prefix"`
	TTL        time.Duration `mapstructure:"ttl"`
	MaxEntries int           `mapstructure:"max_entries"`
}

// TreeConfig holds scene settings.
type TreeConfig struct {
	// Silhouette is a TOML silhouette file; empty selects the classic tree.
	Silhouette string `mapstructure:"silhouette"`
	Style      string `mapstructure:"style"`
	Seed       uint64 `mapstructure:"seed"`
	Lights     int    `mapstructure:"lights"`
	Snowflakes int    `mapstructure:"snowflakes"`
	Snow       bool   `mapstructure:"snow"`
	Static     bool   `mapstructure:"static"`
}

// PageConfig holds the greeting page texts.
type PageConfig struct {
	Title    string `mapstructure:"title"`
	Subtitle string `mapstructure:"subtitle"`
	Footer   string `mapstructure:"footer"`
	Lang     string `mapstructure:"lang"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.watch", false)

	v.SetDefault("store.driver", StoreMemory)
	v.SetDefault("store.dsn", "")
	v.SetDefault("store.database", AppName)
	v.SetDefault("store.seed", "en")
	v.SetDefault("store.headers", map[string]string{})
	v.SetDefault("store.timeout", 5*time.Second)

	v.SetDefault("cache.driver", CacheMemory)
	v.SetDefault("cache.dir", "")
	v.SetDefault("cache.url", "redis://localhost:6379/0")
	v.SetDefault("cache.prefix", AppName+":")
	v.SetDefault("cache.ttl", 24*time.Hour)
	v.SetDefault("cache.max_entries", 256)

	v.SetDefault("tree.silhouette", "")
	v.SetDefault("tree.style", "classic")
	v.SetDefault("tree.seed", layout.DefaultSeed)
	v.SetDefault("tree.lights", layout.DefaultLights)
	v.SetDefault("tree.snowflakes", layout.DefaultSnowflakes)
	v.SetDefault("tree.snow", true)
	v.SetDefault("tree.static", false)

	v.SetDefault("page.title", "My Christmas gift to you my Selsell")
	v.SetDefault("page.subtitle", "Click on an ornament to reveal a special Christmas message.")
	v.SetDefault("page.footer", "Made with ❤️ and Christmas spirit")
	v.SetDefault("page.lang", "en")
}

// DefaultPath returns ~/.config/yuletree/config.toml, honouring
// XDG_CONFIG_HOME.
func DefaultPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, AppName, "config.toml")
}

// Load reads configuration. path may be empty, in which case
// YULETREE_CONFIG or [DefaultPath] is used; a missing default file is not
// an error, a missing explicit file is.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("toml")

	explicit := path != ""
	if !explicit {
		path = os.Getenv("YULETREE_CONFIG")
		explicit = path != ""
	}
	if !explicit {
		path = DefaultPath()
	}
	v.SetConfigFile(path)

	v.SetEnvPrefix("YULETREE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if err := v.BindEnv("store.dsn", "YULETREE_STORE_DSN", "DATABASE_URL"); err != nil {
		return Config{}, fmt.Errorf("bind env: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(path); explicit || statErr == nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "unmarshal config")
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks driver names and numeric ranges.
func (c Config) Validate() error {
	if !slices.Contains(storeDrivers, c.Store.Driver) {
		return errors.New(errors.ErrCodeInvalidConfig, "store.driver %q (want %s)", c.Store.Driver, strings.Join(storeDrivers, ", "))
	}
	if c.Store.Driver != StoreMemory && c.Store.DSN == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "store.dsn is required for the %s driver", c.Store.Driver)
	}
	if !slices.Contains(cacheDrivers, c.Cache.Driver) {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.driver %q (want %s)", c.Cache.Driver, strings.Join(cacheDrivers, ", "))
	}
	if c.Cache.TTL < 0 || c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.ShutdownTimeout < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "durations must not be negative")
	}
	if c.Tree.Lights < 0 || c.Tree.Snowflakes < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "tree.lights and tree.snowflakes must not be negative")
	}
	return nil
}

// CacheDir returns the file cache directory: cache.dir when set, else
// $XDG_CACHE_HOME/yuletree or ~/.cache/yuletree.
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}
