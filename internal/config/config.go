package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the optional lovepack configuration file.
type Config struct {
	Defaults DefaultsConfig `toml:"defaults"`
	Filter   FilterConfig   `toml:"filter"`
}

// DefaultsConfig holds persistent flag defaults. Nil means unset.
type DefaultsConfig struct {
	Memory         *string `toml:"memory"` // size string, e.g. "64M"
	Compat         *bool   `toml:"compat"`
	Runtime        *string `toml:"runtime"`
	Precompress    *bool   `toml:"precompress"`
	History        *bool   `toml:"history"`
	FollowSymlinks *bool   `toml:"follow_symlinks"`
	Verify         *bool   `toml:"verify"`
}

// FilterConfig holds rules evaluated after the command-line and ignore file rules.
type FilterConfig struct {
	Exclude []string `toml:"exclude"`
	Include []string `toml:"include"`
}

// Path returns $XDG_CONFIG_HOME/lovepack/config.toml, or "" when no home
// directory can be found.
func Path() string {
	dir := xdgDir("XDG_CONFIG_HOME", ".config")
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "lovepack", "config.toml")
}

// StateDir returns $XDG_STATE_HOME/lovepack, where the build history lives.
func StateDir() string {
	dir := xdgDir("XDG_STATE_HOME", ".local", "state")
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "lovepack")
}

// RuntimeDir returns $XDG_DATA_HOME/lovepack/runtime, the default location
// of the release/ and compat/ love.js builds.
func RuntimeDir() string {
	dir := xdgDir("XDG_DATA_HOME", ".local", "share")
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "lovepack", "runtime")
}

// xdgDir returns $env, falling back to the home-relative default.
func xdgDir(env string, fallback ...string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(append([]string{home}, fallback...)...)
}

// Load reads the config file at Path. The file is optional: a missing
// file yields a zero Config.
func Load() (Config, error) {
	path := Path()
	if path == "" {
		return Config{}, nil
	}
	return LoadFile(path)
}

// LoadFile reads the config file at path. Unknown keys are logged and
// otherwise ignored.
func LoadFile(path string) (Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return Config{}, nil
	case err != nil:
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		slog.Warn("ignoring unknown config keys", "file", path, "keys", keys)
	}
	return cfg, nil
}
