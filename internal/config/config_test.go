package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Storage != defaultStorage {
		t.Fatalf("Storage = %q, want %q", cfg.Storage, defaultStorage)
	}
	wantDataDir, err := expandPath(defaultDataDir)
	if err != nil {
		t.Fatalf("expandPath(defaultDataDir) returned error: %v", err)
	}
	if cfg.DataDir != wantDataDir {
		t.Fatalf("DataDir = %q, want %q", cfg.DataDir, wantDataDir)
	}
	if cfg.Haptic != defaultHaptic {
		t.Fatalf("Haptic = %q, want %q", cfg.Haptic, defaultHaptic)
	}
	if cfg.Pulse() != 20*time.Millisecond {
		t.Fatalf("Pulse = %v, want 20ms", cfg.Pulse())
	}
	if !reflect.DeepEqual(cfg.KeepAwakeCommand, DefaultKeepAwakeCommand) {
		t.Fatalf("KeepAwakeCommand = %v, want %v", cfg.KeepAwakeCommand, DefaultKeepAwakeCommand)
	}
	if !strings.HasPrefix(cfg.LogFile, home) {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, home)
	}
	if cfg.LogLevel != defaultLogLevel {
		t.Fatalf("LogLevel = %q, want %q", cfg.LogLevel, defaultLogLevel)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
storage = "  SQLite "
data_dir = "  ~/counters  "
haptic = "none"
pulse_ms = 35
keep_awake_command = ["caffeinate", "-d", " "]
log_level = "DEBUG"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Storage != "sqlite" {
		t.Fatalf("Storage = %q, want sqlite", cfg.Storage)
	}
	if cfg.DataDir != filepath.Join(home, "counters") {
		t.Fatalf("DataDir = %q, want %q", cfg.DataDir, filepath.Join(home, "counters"))
	}
	if cfg.Haptic != "none" {
		t.Fatalf("Haptic = %q, want none", cfg.Haptic)
	}
	if cfg.Pulse() != 35*time.Millisecond {
		t.Fatalf("Pulse = %v, want 35ms", cfg.Pulse())
	}
	if want := []string{"caffeinate", "-d"}; !reflect.DeepEqual(cfg.KeepAwakeCommand, want) {
		t.Fatalf("KeepAwakeCommand = %v, want %v", cfg.KeepAwakeCommand, want)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dataDir := t.TempDir()

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("storage = \"toml\"\npulse_ms = 10\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv("TASBIH_STORAGE", "sqlite")
	t.Setenv("TASBIH_DATA_DIR", dataDir)
	t.Setenv("TASBIH_PULSE_MS", "50")
	t.Setenv("TASBIH_KEEP_AWAKE_COMMAND", "sleep 600")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Storage != "sqlite" {
		t.Fatalf("Storage = %q, want sqlite", cfg.Storage)
	}
	if cfg.DataDir != dataDir {
		t.Fatalf("DataDir = %q, want %q", cfg.DataDir, dataDir)
	}
	if cfg.PulseMillis != 50 {
		t.Fatalf("PulseMillis = %d, want 50", cfg.PulseMillis)
	}
	if want := []string{"sleep", "600"}; !reflect.DeepEqual(cfg.KeepAwakeCommand, want) {
		t.Fatalf("KeepAwakeCommand = %v, want %v", cfg.KeepAwakeCommand, want)
	}
}

func TestLoad_InvalidEnvFails(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TASBIH_PULSE_MS", "soon")

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("Load returned nil error for invalid TASBIH_PULSE_MS")
	}
}

func TestLoad_LogFileNoneDisablesLogging(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TASBIH_LOG_FILE", "none")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.LogFile != "" {
		t.Fatalf("LogFile = %q, want empty", cfg.LogFile)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`storage = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestPulse_NonPositiveUsesDefault(t *testing.T) {
	var cfg Config
	if cfg.Pulse() != 20*time.Millisecond {
		t.Fatalf("Pulse = %v, want 20ms", cfg.Pulse())
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
