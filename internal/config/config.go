package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds tasbih's runtime settings. User state (counter, theme,
// vibration, wakelock) lives in prefs, not here.
type Config struct {
	Storage          string   `toml:"storage" env:"TASBIH_STORAGE"`
	DataDir          string   `toml:"data_dir" env:"TASBIH_DATA_DIR"`
	Haptic           string   `toml:"haptic" env:"TASBIH_HAPTIC"`
	PulseMillis      int      `toml:"pulse_ms" env:"TASBIH_PULSE_MS"`
	KeepAwakeCommand []string `toml:"keep_awake_command" env:"TASBIH_KEEP_AWAKE_COMMAND" envSeparator:" "`
	LogFile          string   `toml:"log_file" env:"TASBIH_LOG_FILE"`
	LogLevel         string   `toml:"log_level" env:"TASBIH_LOG_LEVEL"`
}

const (
	defaultConfigPath = "~/.config/tasbih/config.toml"
	defaultStorage    = "toml"
	defaultDataDir    = "~/.local/share/tasbih"
	defaultHaptic     = "bell"
	defaultPulseMs    = 20
	defaultLogFile    = "~/.local/state/tasbih/tasbih.log"
	defaultLogLevel   = "info"
)

// DefaultKeepAwakeCommand holds an idle inhibitor for as long as it runs.
var DefaultKeepAwakeCommand = []string{
	"systemd-inhibit",
	"--what=idle",
	"--who=tasbih",
	"--why=Counting session",
	"--mode=block",
	"sleep", "infinity",
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Load reads the config file at path (or the default), applies TASBIH_*
// environment overrides, then fills defaults. A missing file is not an error;
// an unparsable one is.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config

	file, err := os.Open(resolved)
	switch {
	case err == nil:
		defer file.Close()
		bytes, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(bytes, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("open config: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.normalize()
	return cfg, nil
}

// Pulse returns the haptic pulse length.
func (c Config) Pulse() time.Duration {
	if c.PulseMillis <= 0 {
		return defaultPulseMs * time.Millisecond
	}
	return time.Duration(c.PulseMillis) * time.Millisecond
}

func (c *Config) normalize() {
	c.Storage = strings.ToLower(strings.TrimSpace(c.Storage))
	if c.Storage == "" {
		c.Storage = defaultStorage
	}

	c.DataDir = strings.TrimSpace(c.DataDir)
	if c.DataDir == "" {
		c.DataDir = defaultDataDir
	}
	c.DataDir = mustExpand(c.DataDir)

	c.Haptic = strings.ToLower(strings.TrimSpace(c.Haptic))
	if c.Haptic == "" {
		c.Haptic = defaultHaptic
	}

	if c.PulseMillis <= 0 {
		c.PulseMillis = defaultPulseMs
	}

	c.KeepAwakeCommand = filterEmpty(c.KeepAwakeCommand)
	if len(c.KeepAwakeCommand) == 0 {
		c.KeepAwakeCommand = append([]string(nil), DefaultKeepAwakeCommand...)
	}

	// "none" disables file logging; anything else is a path.
	c.LogFile = strings.TrimSpace(c.LogFile)
	switch strings.ToLower(c.LogFile) {
	case "":
		c.LogFile = mustExpand(defaultLogFile)
	case "none":
		c.LogFile = ""
	default:
		c.LogFile = mustExpand(c.LogFile)
	}

	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
}

func filterEmpty(values []string) []string {
	out := values[:0:0]
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
