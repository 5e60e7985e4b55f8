package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath returns ~/.config/reqlog/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "reqlog", "config.yaml"), nil
}

// Load reads the configuration at path, merged over the defaults. An empty
// path means DefaultPath. A missing file yields the defaults; a file that
// exists but does not parse is an error. Paths in the result are expanded.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return expand(cfg), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return expand(cfg), nil
	case err != nil:
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return expand(cfg), nil
}

func expand(cfg Config) Config {
	cfg.DBPath = ExpandPath(cfg.DBPath)
	cfg.ThemeDir = ExpandPath(cfg.ThemeDir)
	return cfg
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
