package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every environment override, e.g. MOCKCHAT_LOG_LEVEL.
const EnvPrefix = "MOCKCHAT"

// Config represents the global ~/.mockchat/config.toml.
type Config struct {
	DefaultSession string    `toml:"default_session" envconfig:"SESSION"`
	LogLevel       string    `toml:"log_level" envconfig:"LOG_LEVEL"`
	Recording      Recording `toml:"recording"`
	UI             UI        `toml:"ui"`
}

// Recording configures the capture commands. Empty commands fall back to
// the built-in ffmpeg invocations.
type Recording struct {
	AudioCommand []string      `toml:"audio_command" envconfig:"AUDIO_COMMAND"`
	VideoCommand []string      `toml:"video_command" envconfig:"VIDEO_COMMAND"`
	TickInterval time.Duration `toml:"tick_interval" envconfig:"TICK_INTERVAL"`
}

// UI holds presentation preferences.
type UI struct {
	// DefaultChat is a contact name opened on startup.
	DefaultChat string `toml:"default_chat" envconfig:"DEFAULT_CHAT"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		LogLevel:  "info",
		Recording: Recording{TickInterval: time.Second},
	}
}

// Load reads config from the given path on top of the defaults. Returns an
// error if the file is missing.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolve loads path if present, then applies environment overrides.
func Resolve(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg, err = Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with MOCKCHAT_* variables. Unset variables leave
// fields untouched.
func ApplyEnv(cfg *Config) error {
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return fmt.Errorf("environment overrides: %w", err)
	}
	return nil
}

// Save writes config to the given path, creating parent dirs as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	encErr := toml.NewEncoder(f).Encode(cfg)
	if closeErr := f.Close(); closeErr != nil && encErr == nil {
		return closeErr
	}
	return encErr
}
