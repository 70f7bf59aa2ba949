// Package config loads the optional combview TOML configuration file.
//
// A config file has three sections:
//
//	[render]
//	resolution = 0.1
//	format = "png"
//	show_cells = true
//	cell_exclude = [5, 7]
//
//	[store]
//	dir = "~/layouts"
//	mongo_uri = "mongodb://localhost:27017"
//
//	[cache]
//	redis_addr = "localhost:6379"
//	prefix = "combview:"
//
// Every key is optional. Command-line flags that are set explicitly take
// precedence over the file.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/combview/pkg/errors"
	"github.com/matzehuels/combview/pkg/pipeline"
)

// AppName names the per-user config and cache directories.
const AppName = "combview"

// Config is the decoded config file.
type Config struct {
	Render pipeline.Options `toml:"render"`
	Store  Store            `toml:"store"`
	Cache  Cache            `toml:"cache"`
	Server Server           `toml:"server"`
}

// Store selects where layouts are read from. Dir and Mongo may both be
// set; the directory is searched first.
type Store struct {
	Dir             string `toml:"dir"`
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// Cache selects the artifact cache backend. RedisAddr wins over Dir.
type Cache struct {
	Disabled      bool   `toml:"disabled"`
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	Prefix        string `toml:"prefix"`
}

// Server holds `combview serve` settings.
type Server struct {
	Addr string `toml:"addr"`
}

// DefaultServerAddr is the listen address when none is configured.
const DefaultServerAddr = ":8080"

// Load decodes the file at path. An empty path means [DefaultPath]; a
// missing default file yields an empty Config, while a missing explicit
// file is an INVALID_PATH error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return &Config{}, nil
		}
		path = p
	}

	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return &Config{}, nil
		}
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "config file %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}

	cfg.Store.Dir = expandHome(cfg.Store.Dir)
	cfg.Cache.Dir = expandHome(cfg.Cache.Dir)
	return &cfg, nil
}

// Write encodes cfg as TOML to path, creating parent directories.
func Write(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// DefaultPath returns $XDG_CONFIG_HOME/combview/config.toml, falling back
// to ~/.config.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// CacheDir returns the cache directory using XDG standard (~/.cache/combview/).
func CacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

// LayoutsDir returns the default layout directory,
// $XDG_DATA_HOME/combview/layouts or ~/.local/share/combview/layouts.
func LayoutsDir() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "layouts"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", AppName, "layouts"), nil
}
