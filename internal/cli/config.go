package cli

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Store backend names accepted in the config file.
const (
	StoreBackendFile  = "file"
	StoreBackendMongo = "mongo"
	StoreBackendNone  = "none"
)

// Config holds user preferences loaded from ~/.config/adjid/config.toml.
// Command-line flags override config values, which override the defaults.
type Config struct {
	// EdgeDirection is the default adjacency convention for matrix inputs:
	// "row-to-column" or "column-to-row".
	EdgeDirection string `toml:"edge_direction"`

	Cache CacheConfig `toml:"cache"`
	Store StoreConfig `toml:"store"`
}

// CacheConfig configures the distance result cache.
type CacheConfig struct {
	// Enabled toggles result caching. Defaults to true.
	Enabled bool `toml:"enabled"`

	// Dir overrides the XDG cache directory for the file backend.
	Dir string `toml:"dir"`

	// TTL bounds cache entry lifetime, e.g. "720h". Empty uses the
	// pipeline default.
	TTL string `toml:"ttl"`

	// RedisAddr switches to the redis backend when set (host:port).
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// StoreConfig configures run persistence.
type StoreConfig struct {
	// Backend selects the store: "file" (default), "mongo" or "none".
	Backend string `toml:"backend"`

	// Dir overrides the run directory for the file backend.
	Dir string `toml:"dir"`

	// Mongo connection settings for the mongo backend.
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		EdgeDirection: "row-to-column",
		Cache:         CacheConfig{Enabled: true},
		Store: StoreConfig{
			Backend:         StoreBackendFile,
			MongoDatabase:   appName,
			MongoCollection: "runs",
		},
	}
}

// ConfigPath returns the config file location (~/.config/adjid/config.toml),
// honoring XDG_CONFIG_HOME.
func ConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// LoadConfig reads and decodes the config file at path, layered over the
// defaults. A missing file is not an error and yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigOrDefault loads the user config, falling back to defaults on
// any error. Used at CLI construction where a broken config file should
// not prevent running commands like "version".
func LoadConfigOrDefault() *Config {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig()
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

// CacheTTL parses the configured TTL; zero means "use the default".
func (c *Config) CacheTTL() time.Duration {
	if c.Cache.TTL == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return 0
	}
	return d
}
