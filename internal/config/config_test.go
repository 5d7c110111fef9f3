package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AdbAddr != defaultAdbAddr {
		t.Errorf("AdbAddr = %q, want default %q", cfg.AdbAddr, defaultAdbAddr)
	}
	if cfg.Serial != "" {
		t.Errorf("Serial = %q, want empty", cfg.Serial)
	}
	if cfg.TickInterval() != 50*time.Millisecond {
		t.Errorf("TickInterval = %v, want 50ms", cfg.TickInterval())
	}
}

func TestLoadParsesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := `
adb_addr = "192.168.1.20:5037"
serial = "emulator-5554"
tick_ms = 100
state_dir = "` + dir + `"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AdbAddr != "192.168.1.20:5037" {
		t.Errorf("AdbAddr = %q", cfg.AdbAddr)
	}
	if cfg.Serial != "emulator-5554" {
		t.Errorf("Serial = %q", cfg.Serial)
	}
	if cfg.TickInterval() != 100*time.Millisecond {
		t.Errorf("TickInterval = %v", cfg.TickInterval())
	}
	if cfg.LogPath() != filepath.Join(dir, "catlog.log") {
		t.Errorf("LogPath = %q", cfg.LogPath())
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("adb_addr = ["), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted malformed TOML")
	}
}

func TestLoadIgnoresBlankAndZeroValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := "adb_addr = \"  \"\ntick_ms = 0\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AdbAddr != defaultAdbAddr {
		t.Errorf("AdbAddr = %q, want default", cfg.AdbAddr)
	}
	if cfg.TickMS != defaultTickMS {
		t.Errorf("TickMS = %d, want default", cfg.TickMS)
	}
}
