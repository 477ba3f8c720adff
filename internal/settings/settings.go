// Package settings persists TUI preferences between sessions.
package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cristianoliveira/camtray/internal/config"
	"github.com/cristianoliveira/camtray/internal/search"
	"github.com/pelletier/go-toml/v2"
)

const fileName = "tui" + config.FileExtTOML

// Settings holds the TUI preferences stored in {config_dir}/tui.toml.
type Settings struct {
	// GalleryVisible opens the gallery panel on start.
	GalleryVisible bool `toml:"gallery_visible"`

	// Filter is the last gallery filter query.
	Filter string `toml:"filter"`

	// SearchMode is substring, regex or token. Empty means token.
	SearchMode string `toml:"search_mode"`
}

// Default returns settings with all default values.
func Default() *Settings {
	return &Settings{SearchMode: string(search.ModeToken)}
}

// Path returns the settings file location. tui_settings_path overrides it.
func Path() string {
	if override := config.Get("tui_settings_path", ""); override != "" {
		return override
	}
	configDir := config.Get("config_dir", "")
	if configDir == "" {
		home, _ := os.UserHomeDir()
		configDir = filepath.Join(home, ".config", "camtray")
	}
	return filepath.Join(configDir, fileName)
}

// Load reads the settings file. A missing file yields the defaults.
func Load() (*Settings, error) {
	path := Path()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	s := Default()
	if err := toml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}
	if err := Validate(s); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return s, nil
}

// Save writes s atomically, creating the directory if needed.
func Save(s *Settings) error {
	if err := Validate(s); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), config.FileModeDir); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tui-*.toml")
	if err != nil {
		return fmt.Errorf("failed to create temp settings file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), config.FileModeFile); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace settings file: %w", err)
	}
	return nil
}

// Validate checks that settings values are usable.
func Validate(s *Settings) error {
	if s == nil {
		return fmt.Errorf("settings cannot be nil")
	}
	if _, err := search.New(search.Mode(s.SearchMode)); err != nil {
		return err
	}
	return nil
}
