// Package config loads deskgrid settings from a TOML file.
//
// The file lives at $XDG_CONFIG_HOME/deskgrid/config.toml (or
// ~/.config/deskgrid/config.toml). A missing file is not an error; every
// field has a default. Command-line flags override file values.
//
//	profile = "work"
//	backend = "redis"
//
//	[grid]
//	columns = 24
//	rows = 12
//
//	[redis]
//	addr = "localhost:6379"
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/deskgrid/pkg/cache"
	"github.com/matzehuels/deskgrid/pkg/errors"
	"github.com/matzehuels/deskgrid/pkg/grid"
	"github.com/matzehuels/deskgrid/pkg/persist"
)

// AppName names the config and data directories.
const AppName = "deskgrid"

// Storage backends.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Backends lists the accepted backend names.
var Backends = []string{BackendFile, BackendMemory, BackendRedis, BackendMongo}

// DefaultAddr is the default listen address of the HTTP API.
const DefaultAddr = "127.0.0.1:7420"

// Config is the parsed configuration file.
type Config struct {
	Profile   string              `toml:"profile"`
	Backend   string              `toml:"backend"`
	DataDir   string              `toml:"data_dir"`
	KeyPrefix string              `toml:"key_prefix"`
	Grid      grid.Config         `toml:"grid"`
	Server    ServerConfig        `toml:"server"`
	Redis     cache.RedisConfig   `toml:"redis"`
	Mongo     persist.MongoConfig `toml:"mongo"`
}

// ServerConfig configures `deskgrid serve`.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Profile: persist.DefaultProfile,
		Backend: BackendFile,
		DataDir: DataDir(),
		Grid:    grid.Default(),
		Server:  ServerConfig{Addr: DefaultAddr},
		Mongo: persist.MongoConfig{
			Database:   persist.DefaultMongoDatabase,
			Collection: persist.DefaultMongoCollection,
		},
	}
}

// Path returns the default config file location.
func Path() string {
	return filepath.Join(xdgDir("XDG_CONFIG_HOME", ".config"), AppName, "config.toml")
}

// DataDir returns the default directory of the file backend.
func DataDir() string {
	return filepath.Join(xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share")), AppName)
}

func xdgDir(env, fallback string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), fallback)
	}
	return filepath.Join(home, fallback)
}

// Load reads the file at path over the defaults. An empty path means
// Path(). A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = Path()
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, cfg.Validate()
}

// Validate checks field values.
func (c Config) Validate() error {
	if !c.Grid.Valid() {
		return errors.New(errors.ErrCodeInvalidConfig, "grid %s: columns and rows must be positive", c.Grid)
	}
	if err := errors.ValidateWidgetID(c.Profile); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "profile")
	}
	switch c.Backend {
	case BackendFile, BackendMemory:
	case BackendRedis:
		if c.Redis.Addr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "backend redis needs redis.addr")
		}
	case BackendMongo:
		if c.Mongo.URI == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "backend mongo needs mongo.uri")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown backend %q (want one of %s)", c.Backend, strings.Join(Backends, ", "))
	}
	return nil
}

// Write encodes c as TOML.
func (c Config) Write(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

// Save writes c to path, creating parent directories.
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := c.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
