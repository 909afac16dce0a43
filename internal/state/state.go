// Package state remembers the last wallpaper configuration and device an
// interactive user picked. Both entries are optional and read tolerantly:
// anything missing or malformed falls back to defaults without an error.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/yearpaper/internal/config"
	"github.com/jmylchreest/yearpaper/internal/device"
)

// Entry names inside the state directory.
const (
	ConfigEntry = "wallpaper-config.json"
	DeviceEntry = "wallpaper-model"
)

// State is what Load returns.
type State struct {
	Config config.Wallpaper
	Device device.Profile
}

// Store reads and writes state entries in a directory.
type Store struct {
	dir    string
	logger hclog.Logger
}

// DefaultDir returns the default state directory path.
func DefaultDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory if config dir not available.
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine state directory: %w", err)
		}
		return filepath.Join(home, ".config", "yearpaper"), nil
	}
	return filepath.Join(configDir, "yearpaper"), nil
}

// NewStore creates a Store rooted at dir. A nil logger discards output.
func NewStore(dir string, logger hclog.Logger) *Store {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Store{dir: dir, logger: logger}
}

// Dir returns the directory the store reads from.
func (s *Store) Dir() string {
	return s.dir
}

// Load returns the remembered state, substituting defaults for anything
// missing or unreadable. It never fails.
func (s *Store) Load() State {
	st := State{Config: config.Default()}
	st.Device, _ = device.ByName(device.DefaultModel)

	if data, err := s.read(ConfigEntry); err == nil {
		cfg := config.Default()
		if err := json.Unmarshal(data, &cfg); err != nil {
			s.logger.Debug("discarding malformed saved config", "error", err)
		} else {
			st.Config = cfg.Normalise()
		}
	}

	if data, err := s.read(DeviceEntry); err == nil {
		name := strings.TrimSpace(string(data))
		if p, ok := device.ByName(name); ok {
			st.Device = p
		} else {
			s.logger.Debug("ignoring unknown saved device", "device", name)
		}
	}

	return st
}

func (s *Store) read(entry string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, entry))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("failed to read state entry", "entry", entry, "error", err)
		}
		return nil, err
	}
	return data, nil
}

// Save writes both entries.
func (s *Store) Save(cfg config.Wallpaper, deviceName string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil { // #nosec G301 - State directory needs standard permissions
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := writeFile(filepath.Join(s.dir, ConfigEntry), data); err != nil {
		return err
	}
	return writeFile(filepath.Join(s.dir, DeviceEntry), []byte(deviceName+"\n"))
}

// writeFile replaces path atomically so a crash never leaves half an entry.
func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-"+filepath.Base(path))
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
