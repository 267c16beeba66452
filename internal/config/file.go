package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"
)

// File is the optional touchmax configuration file.
type File struct {
	Defaults DefaultsConfig `toml:"defaults"`
}

// DefaultsConfig holds persistent flag defaults. A nil field leaves the
// built-in default in place.
type DefaultsConfig struct {
	Recurse     *bool `toml:"recurse"`
	SetFiles    *bool `toml:"set_files"`
	SetFolders  *bool `toml:"set_folders"`
	SetCreation *bool `toml:"set_creation"`
	SetModified *bool `toml:"set_modified"`
	IgnoreCase  *bool `toml:"ignore_case"`
	TUI         *bool `toml:"tui"`
	Verbose     *bool `toml:"verbose"`
}

// Path returns the standard location of the config file.
func Path(getenv func(string) string) string {
	dir := envOrEmpty(getenv, "XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "touchmax", "config.toml")
}

// loadFile reads path, or the standard location when path is empty. A
// missing file at the standard location yields an empty File; a missing
// file that was asked for explicitly is an error.
func loadFile(path string, getenv func(string) string) (File, error) {
	explicit := path != ""
	if !explicit {
		path = Path(getenv)
		if path == "" {
			return File{}, nil
		}
	}

	var file File
	if _, err := toml.DecodeFile(path, &file); err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return File{}, nil
		}
		return File{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	return file, nil
}

// applyDefaults copies file defaults into cfg for flags not set on the
// command line.
func applyDefaults(fs *pflag.FlagSet, defaults DefaultsConfig, cfg *Config) {
	for _, d := range []struct {
		flag  string
		value *bool
		dst   *bool
	}{
		{"recurse", defaults.Recurse, &cfg.Recurse},
		{"setfiles", defaults.SetFiles, &cfg.SetFiles},
		{"setfolders", defaults.SetFolders, &cfg.SetFolders},
		{"setcreation", defaults.SetCreation, &cfg.SetCreation},
		{"setmodified", defaults.SetModified, &cfg.SetModified},
		{"ignore-case", defaults.IgnoreCase, &cfg.IgnoreCase},
		{"tui", defaults.TUI, &cfg.TUI},
		{"verbose", defaults.Verbose, &cfg.Verbose},
	} {
		if d.value != nil && !fs.Changed(d.flag) {
			*d.dst = *d.value
		}
	}
}
