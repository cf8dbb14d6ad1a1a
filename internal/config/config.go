package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const (
	fileName       = "config.toml"
	defaultServer  = "http://127.0.0.1:8000"
	defaultPath    = "/"
	defaultTimeout = 30 * time.Second
)

type Config struct {
	// Server is the base URL of the library service (scheme + host, optional prefix).
	Server string `toml:"server,omitempty" json:"server,omitempty"`

	Library LibraryConfig `toml:"library" json:"library"`

	// Timeout bounds every API request (Go duration string, e.g. "30s").
	Timeout string `toml:"timeout,omitempty" json:"timeout,omitempty"`

	Log LogConfig `toml:"log" json:"log"`

	// TUI holds optional preferences for the interactive TUI.
	TUI *TUIConfig `toml:"tui,omitempty" json:"tui,omitempty"`
}

type LibraryConfig struct {
	ID   string `toml:"id,omitempty" json:"id,omitempty"`
	Path string `toml:"path,omitempty" json:"path,omitempty"`
}

type LogConfig struct {
	File  string `toml:"file,omitempty" json:"file,omitempty"`
	Level string `toml:"level,omitempty" json:"level,omitempty"`
}

type TUIConfig struct {
	// Theme is one of light|dark|auto.
	Theme string `toml:"theme,omitempty" json:"theme,omitempty"`
}

func Default() *Config {
	return &Config{
		Server:  defaultServer,
		Library: LibraryConfig{Path: defaultPath},
		Timeout: defaultTimeout.String(),
	}
}

// TimeoutDuration parses Timeout, falling back to the default for empty or invalid values.
func (c *Config) TimeoutDuration() time.Duration {
	if c == nil {
		return defaultTimeout
	}
	d, err := time.ParseDuration(strings.TrimSpace(c.Timeout))
	if err != nil || d <= 0 {
		return defaultTimeout
	}
	return d
}

func Dir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.filelib).
	if v := strings.TrimSpace(os.Getenv("FILELIB_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".filelib"), nil
}

func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// Load reads the default config file. A missing file yields Default().
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

func LoadFrom(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := toml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func SaveTo(path string, cfg *Config) error {
	if cfg == nil {
		return errors.New("nil config")
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	b, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	// Unique temp name + rename so a TUI and a CLI invocation never interleave writes.
	return atomicWriteFile(dir, fileName+".*.tmp", path, b, 0o600)
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}
