package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the fields catlog reads from its config file. Everything
// has a sensible default; the file is optional.
type Config struct {
	AdbAddr  string
	Serial   string
	TickMS   int
	StateDir string
}

const (
	defaultConfigPath = "~/.config/catlog/config.toml"
	defaultStateDir   = "~/.local/state/catlog"
	defaultAdbAddr    = "127.0.0.1:5037"
	defaultTickMS     = 50
)

// Load locates and parses the catlog config, falling back to defaults when
// the file is missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AdbAddr:  defaultAdbAddr,
		TickMS:   defaultTickMS,
		StateDir: mustExpand(defaultStateDir),
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		AdbAddr  string `toml:"adb_addr"`
		Serial   string `toml:"serial"`
		TickMS   int    `toml:"tick_ms"`
		StateDir string `toml:"state_dir"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if addr := strings.TrimSpace(raw.AdbAddr); addr != "" {
		cfg.AdbAddr = addr
	}
	cfg.Serial = strings.TrimSpace(raw.Serial)
	if raw.TickMS > 0 {
		cfg.TickMS = raw.TickMS
	}
	if dir := strings.TrimSpace(raw.StateDir); dir != "" {
		cfg.StateDir = mustExpand(dir)
	}

	return cfg, nil
}

// TickInterval is the delay between buffer drains and redraws.
func (c Config) TickInterval() time.Duration {
	ms := c.TickMS
	if ms <= 0 {
		ms = defaultTickMS
	}
	return time.Duration(ms) * time.Millisecond
}

// LogPath returns the path of catlog's own diagnostic log file.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.StateDir) == "" {
		return mustExpand(defaultStateDir + "/catlog.log")
	}
	return filepath.Join(c.StateDir, "catlog.log")
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
