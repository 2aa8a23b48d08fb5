// Package config loads canvasnap settings from a TOML file and the
// environment.
//
// Precedence, lowest first: Default, the config file, CANVASNAP_* environment
// variables, then command-line flags (applied by the CLI).
//
//	[snap]
//	tolerance = 8
//	grid_size = 20
//	show_grid = false
//	enabled = true
//	max_tracked = 1024
//
//	[server]
//	addr = ":8080"
//	session_store = "redis"
//	redis_addr = "localhost:6379"
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/canvasnap/pkg/align"
	"github.com/matzehuels/canvasnap/pkg/errors"
)

const appName = "canvasnap"

// Store backends.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreMongo  = "mongo"
)

// Config is the top-level canvasnap configuration.
type Config struct {
	Snap align.Settings `toml:"snap"`

	// DisableSnap turns snapping off for every engine regardless of its
	// own settings.
	DisableSnap bool `toml:"disable_snap"`

	Server ServerConfig `toml:"server"`
	Log    LogConfig    `toml:"log"`
}

// ServerConfig configures `canvasnap serve`.
type ServerConfig struct {
	Addr          string   `toml:"addr"`
	SessionTTL    Duration `toml:"session_ttl"`
	SessionStore  string   `toml:"session_store"` // memory | file | redis
	SessionDir    string   `toml:"session_dir"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	SceneStore    string   `toml:"scene_store"` // file | mongo
	SceneDir      string   `toml:"scene_dir"`
	MongoURI      string   `toml:"mongo_uri"`
	MongoDatabase string   `toml:"mongo_database"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `toml:"level"`
}

// Duration is a time.Duration written as "1h30m" in TOML.
type Duration struct{ time.Duration }

func (d Duration) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Snap: align.DefaultSettings(),
		Server: ServerConfig{
			Addr:          ":8080",
			SessionTTL:    Duration{24 * time.Hour},
			SessionStore:  StoreMemory,
			SceneStore:    StoreFile,
			SceneDir:      "scenes",
			MongoDatabase: appName,
		},
		Log: LogConfig{Level: "info"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/canvasnap/config.toml.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the config at path merged over Default, then applies the
// environment. An empty path loads DefaultPath, which may be missing.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "resolve config path")
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err) && !explicit:
	case os.IsNotExist(err):
		return nil, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
	case err != nil:
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// ApplyEnv overrides fields from CANVASNAP_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	floats := map[string]*float64{
		"CANVASNAP_TOLERANCE": &c.Snap.SnapTolerance,
		"CANVASNAP_GRID_SIZE": &c.Snap.GridSize,
	}
	for key, dst := range floats {
		if v, ok := lookup(key); ok {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", key)
			}
			*dst = f
		}
	}

	bools := map[string]*bool{
		"CANVASNAP_SHOW_GRID":    &c.Snap.ShowGrid,
		"CANVASNAP_DISABLE_SNAP": &c.DisableSnap,
	}
	for key, dst := range bools {
		if v, ok := lookup(key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", key)
			}
			*dst = b
		}
	}

	strs := map[string]*string{
		"CANVASNAP_ADDR":       &c.Server.Addr,
		"CANVASNAP_REDIS_ADDR": &c.Server.RedisAddr,
		"CANVASNAP_MONGO_URI":  &c.Server.MongoURI,
		"CANVASNAP_LOG_LEVEL":  &c.Log.Level,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}
	return nil
}

// Validate checks that values are usable.
func (c *Config) Validate() error {
	s := c.Snap
	if s.SnapTolerance <= 0 {
		return invalid("snap.tolerance must be > 0")
	}
	if s.GridSize < 0 {
		return invalid("snap.grid_size must be >= 0")
	}
	if s.MaxTracked < 0 {
		return invalid("snap.max_tracked must be >= 0")
	}

	srv := c.Server
	if srv.SessionTTL.Duration <= 0 {
		return invalid("server.session_ttl must be > 0")
	}
	switch srv.SessionStore {
	case StoreMemory, StoreFile:
	case StoreRedis:
		if srv.RedisAddr == "" {
			return invalid("server.redis_addr is required for the redis session store")
		}
	default:
		return invalid("server.session_store must be memory, file or redis, got %q", srv.SessionStore)
	}
	switch srv.SceneStore {
	case StoreFile:
		if srv.SceneDir == "" {
			return invalid("server.scene_dir is required for the file scene store")
		}
	case StoreMongo:
		if srv.MongoURI == "" {
			return invalid("server.mongo_uri is required for the mongo scene store")
		}
	default:
		return invalid("server.scene_store must be file or mongo, got %q", srv.SceneStore)
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return invalid("log.level: %v", err)
	}
	return nil
}

// LogLevel returns the parsed log level, falling back to info.
func (c *Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// KillSwitch returns the check handed to engines via align.WithKillSwitch.
func (c *Config) KillSwitch() func() bool {
	disabled := c.DisableSnap
	return func() bool { return disabled }
}

// Write encodes c as TOML to path, creating parent directories.
func (c *Config) Write(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "create config dir")
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "create config %s", path)
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(c)
}

func invalid(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidConfig, format, args...)
}
