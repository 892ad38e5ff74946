// Package config loads the platform configuration from a TOML file.
//
// Configuration is optional everywhere: every field has a default so both
// the CLI and the server run without a config file. The file is looked up
// at the path given on the command line, then at $QUANTPANE_CONFIG.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/quantpane/quantpane/pkg/errors"
	"github.com/quantpane/quantpane/pkg/layout"
)

// EnvConfigPath is the environment variable naming the config file.
const EnvConfigPath = "QUANTPANE_CONFIG"

// Config is the root configuration document.
type Config struct {
	Server ServerConfig `toml:"server"`
	Mongo  MongoConfig  `toml:"mongo"`
	Redis  RedisConfig  `toml:"redis"`
	Cache  CacheConfig  `toml:"cache"`
	Solver SolverConfig `toml:"solver"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	// Addr is the listen address, host:port.
	Addr string `toml:"addr"`
}

// MongoConfig configures the persistence backend.
type MongoConfig struct {
	// URI is the MongoDB connection string. Empty means the in-memory store.
	URI string `toml:"uri"`

	// Database is the database name.
	Database string `toml:"database"`
}

// RedisConfig configures the shared cache backend.
type RedisConfig struct {
	// Addr is the Redis address, host:port. Empty means no Redis cache.
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// CacheConfig configures local caching.
type CacheConfig struct {
	// Dir is the file cache directory. Empty means the XDG default.
	Dir string `toml:"dir"`

	// Disabled turns off caching entirely.
	Disabled bool `toml:"disabled"`
}

// SolverConfig carries the layout tunables exposed to operators.
type SolverConfig struct {
	// BaseFontPx is the font size assumed for fit estimation.
	BaseFontPx float64 `toml:"base_font_px"`

	// MinFontPx is the readability floor; content may shrink to this size
	// before a fit violation is reported.
	MinFontPx float64 `toml:"min_font_px"`

	// MaxAllowedHeight caps resolved block heights in pixels.
	MaxAllowedHeight float64 `toml:"max_allowed_height"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080"},
		Mongo:  MongoConfig{Database: "quantpane"},
		Solver: SolverConfig{
			BaseFontPx:       layout.DefaultBaseFontPx,
			MinFontPx:        layout.DefaultMinFontPx,
			MaxAllowedHeight: layout.MaxBlockHeightPx,
		},
	}
}

// Load reads a config file and merges it over the defaults.
// If path is empty, $QUANTPANE_CONFIG is consulted; if that is also empty
// the defaults are returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the invariants a loaded config must satisfy.
func (c Config) Validate() error {
	if c.Solver.BaseFontPx <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "solver.base_font_px must be positive, got %v", c.Solver.BaseFontPx)
	}
	if c.Solver.MinFontPx <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "solver.min_font_px must be positive, got %v", c.Solver.MinFontPx)
	}
	if c.Solver.MinFontPx > c.Solver.BaseFontPx {
		return errors.New(errors.ErrCodeInvalidConfig, "solver.min_font_px (%v) cannot exceed solver.base_font_px (%v)",
			c.Solver.MinFontPx, c.Solver.BaseFontPx)
	}
	if c.Solver.MaxAllowedHeight < layout.MinBlockHeightPx {
		return errors.New(errors.ErrCodeInvalidConfig, "solver.max_allowed_height (%v) is below the minimum block height (%v)",
			c.Solver.MaxAllowedHeight, layout.MinBlockHeightPx)
	}
	return nil
}
