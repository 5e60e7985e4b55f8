// Package config loads the reqlog configuration file.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"
)

// ErrUnknownService is returned when an alias matches no configured service.
var ErrUnknownService = errors.New("unknown service")

// Config holds the application configuration.
type Config struct {
	DBPath     string            `yaml:"db_path"`
	Theme      string            `yaml:"theme"`
	ThemeDir   string            `yaml:"theme_dir"`
	DateLayout string            `yaml:"date_layout"`
	Services   map[string]string `yaml:"services"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		DBPath:     "~/.local/share/reqlog/history.db",
		Theme:      "catppuccin-mocha",
		ThemeDir:   "~/.config/reqlog/themes",
		DateLayout: "2006-01-02",
	}
}

// ResolveService maps a user supplied alias to the stored service name.
// A configured service name resolves to itself. With no alias table every
// name is accepted as given.
func (c Config) ResolveService(alias string) (string, error) {
	if name, ok := c.Services[alias]; ok {
		return name, nil
	}
	if len(c.Services) == 0 {
		return alias, nil
	}
	for _, name := range c.Services {
		if name == alias {
			return name, nil
		}
	}

	msg := fmt.Sprintf("%q", alias)
	if s := c.suggest(alias); len(s) > 0 {
		msg += " (did you mean " + strings.Join(s, ", ") + "?)"
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownService, msg)
}

// Aliases returns the configured aliases in sorted order.
func (c Config) Aliases() []string {
	aliases := make([]string, 0, len(c.Services))
	for a := range c.Services {
		aliases = append(aliases, a)
	}
	slices.Sort(aliases)
	return aliases
}

const maxSuggestions = 3

func (c Config) suggest(alias string) []string {
	aliases := c.Aliases()
	matches := fuzzy.Find(alias, aliases)

	out := make([]string, 0, maxSuggestions)
	for _, m := range matches {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, m.Str)
	}
	return out
}
