package config

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

type unknownKeyError struct {
	key string
}

func (e unknownKeyError) Error() string {
	return fmt.Sprintf("unknown config key: %s (known: %s)", e.key, strings.Join(Keys(), ", "))
}

var setters = map[string]func(*Config, string) error{
	"server": func(c *Config, v string) error {
		c.Server = strings.TrimRight(v, "/")
		return nil
	},
	"library.id": func(c *Config, v string) error {
		c.Library.ID = v
		return nil
	},
	"library.path": func(c *Config, v string) error {
		c.Library.Path = v
		return nil
	},
	"timeout": func(c *Config, v string) error {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("timeout: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("timeout must be positive: %s", v)
		}
		c.Timeout = d.String()
		return nil
	},
	"log.file": func(c *Config, v string) error {
		c.Log.File = v
		return nil
	},
	"log.level": func(c *Config, v string) error {
		c.Log.Level = v
		return nil
	},
	"tui.theme": func(c *Config, v string) error {
		switch strings.ToLower(v) {
		case "light", "dark", "auto":
		default:
			return fmt.Errorf("tui.theme must be light|dark|auto, got %q", v)
		}
		if c.TUI == nil {
			c.TUI = &TUIConfig{}
		}
		c.TUI.Theme = strings.ToLower(v)
		return nil
	},
}

// Keys lists the dotted keys accepted by Set.
func Keys() []string {
	out := make([]string, 0, len(setters))
	for k := range setters {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Set assigns one dotted key (e.g. "library.id").
func Set(c *Config, key, value string) error {
	fn, ok := setters[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return unknownKeyError{key: key}
	}
	return fn(c, strings.TrimSpace(value))
}
