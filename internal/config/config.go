// Package config handles the XDG configuration directory, its files and the
// optional config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application directory name.
	AppName = "ezshop"

	// FileName is the optional YAML configuration file.
	FileName = "config.yaml"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"

	// LogFile receives log output while the TUI owns the terminal.
	LogFile = AppName + ".log"

	// BackendEnv overrides storage.backend.
	BackendEnv = "EZSHOP_BACKEND"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// File is the content of config.yaml, or defaults.
	File File

	// Log is set by the dispatcher once the level is known.
	Log *zap.Logger
}

// Logger returns Log, or a no-op logger when unset.
func (c *Config) Logger() *zap.Logger {
	if c.Log == nil {
		return zap.NewNop()
	}
	return c.Log
}

// File is the YAML configuration file.
type File struct {
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// StorageConfig selects where shopping data is kept.
type StorageConfig struct {
	Backend string `yaml:"backend"` // sqlite, file, memory
	Path    string `yaml:"path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// DefaultFile returns the configuration used when config.yaml is absent.
func DefaultFile() File {
	return File{
		Storage: StorageConfig{Backend: "sqlite"},
		Log:     LogConfig{Level: "warn"},
	}
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/ezshop or $HOME/.config/ezshop.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{Dir: dir, File: DefaultFile()}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// Load reads config.yaml from Dir over the defaults and applies environment
// overrides. A missing file is not an error.
func (c *Config) Load() error {
	f := DefaultFile()

	data, err := os.ReadFile(c.FilePath())
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("failed to parse %s: %w", FileName, err)
		}
	case !os.IsNotExist(err):
		return fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	if b := os.Getenv(BackendEnv); b != "" {
		f.Storage.Backend = b
	}
	f.Storage.Backend = strings.ToLower(strings.TrimSpace(f.Storage.Backend))
	if f.Storage.Backend == "" {
		f.Storage.Backend = "sqlite"
	}

	c.File = f
	return nil
}

// FilePath returns the path to config.yaml.
func (c *Config) FilePath() string {
	return filepath.Join(c.Dir, FileName)
}

// StoragePath returns the data file of the configured backend. Relative
// paths are resolved against Dir.
func (c *Config) StoragePath() string {
	p := c.File.Storage.Path
	if p == "" {
		if c.File.Storage.Backend == "file" {
			return filepath.Join(c.Dir, AppName+".json")
		}
		return filepath.Join(c.Dir, AppName+".db")
	}
	if !filepath.IsAbs(p) {
		return filepath.Join(c.Dir, p)
	}
	return p
}

// LogPath returns the path of the TUI log file.
func (c *Config) LogPath() string {
	return filepath.Join(c.Dir, LogFile)
}

// LogLevel returns the effective log level.
func (c *Config) LogLevel() string {
	if c.Debug {
		return "debug"
	}
	return c.File.Log.Level
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
