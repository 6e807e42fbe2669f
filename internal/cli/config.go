package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/schedgrid/pkg/pipeline"
)

// Store and cache backends selectable in the config file.
const (
	backendMemory = "memory"
	backendMongo  = "mongo"
	backendFile   = "file"
	backendRedis  = "redis"
	backendNone   = "none"
)

// Config is the on-disk configuration. Every field is optional; flags
// override file values and pipeline defaults fill the rest.
type Config struct {
	Grid   GridConfig   `toml:"grid"`
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
	Server ServerConfig `toml:"server"`
}

// GridConfig seeds pipeline.Options.
type GridConfig struct {
	QuantumMinutes int    `toml:"quantum_minutes"`
	DayStart       string `toml:"day_start"`
	DayEnd         string `toml:"day_end"`
	Timezone       string `toml:"timezone"`
	GeneralLabel   string `toml:"general_label"`
	FallbackColor  string `toml:"fallback_color"`
}

// CacheConfig selects the artifact cache.
type CacheConfig struct {
	Backend       string   `toml:"backend"` // file (default), redis, none
	Dir           string   `toml:"dir"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
	RedisPrefix   string   `toml:"redis_prefix"`
	FeedTTL       duration `toml:"feed_ttl"` // how long fetched schedule URLs are reused
}

// StoreConfig selects the event store.
type StoreConfig struct {
	Backend    string   `toml:"backend"` // memory (default), mongo
	MongoURI   string   `toml:"mongo_uri"`
	Database   string   `toml:"database"`
	Collection string   `toml:"collection"`
	Timeout    duration `toml:"timeout"`
}

// ServerConfig configures "serve".
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// duration decodes TOML strings like "5s".
type duration struct{ time.Duration }

func (d *duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d duration) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// loadConfig reads the config at path. When path is empty the default
// location is used, and a missing default file yields an empty config.
func loadConfig(path string) (Config, error) {
	var cfg Config
	explicit := path != ""
	if !explicit {
		p, err := defaultConfigPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch c.Store.Backend {
	case "", backendMemory:
	case backendMongo:
		if c.Store.MongoURI == "" {
			return fmt.Errorf("config: store.mongo_uri is required for the mongo backend")
		}
	default:
		return fmt.Errorf("config: unknown store backend %q (valid: memory, mongo)", c.Store.Backend)
	}
	switch c.Cache.Backend {
	case "", backendFile, backendRedis, backendNone:
	default:
		return fmt.Errorf("config: unknown cache backend %q (valid: file, redis, none)", c.Cache.Backend)
	}
	return nil
}

// apply copies grid settings into opts where opts leaves them unset.
func (g GridConfig) apply(opts *pipeline.Options) {
	if opts.QuantumMinutes == 0 {
		opts.QuantumMinutes = g.QuantumMinutes
	}
	if opts.DayStart == "" {
		opts.DayStart = g.DayStart
	}
	if opts.DayEnd == "" {
		opts.DayEnd = g.DayEnd
	}
	if opts.Timezone == "" {
		opts.Timezone = g.Timezone
	}
	if opts.GeneralLabel == "" {
		opts.GeneralLabel = g.GeneralLabel
	}
	if opts.FallbackColor == "" {
		opts.FallbackColor = g.FallbackColor
	}
}

// defaultConfigPath returns $XDG_CONFIG_HOME/schedgrid/config.toml.
func defaultConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// configCommand shows where the config lives and what it resolves to.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration file",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.configPath
			if path == "" {
				p, err := defaultConfigPath()
				if err != nil {
					return fmt.Errorf("get config path: %w", err)
				}
				path = p
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the loaded configuration as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			return toml.NewEncoder(cmd.OutOrStdout()).Encode(c.Config)
		},
	})
	return cmd
}
