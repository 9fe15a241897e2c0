package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
)

// Settings are the CLI defaults read from glslsym.toml.
type Settings struct {
	Environment tomlEnvironment `toml:"environment"`
	Manifest    string          `toml:"manifest,omitempty"`
	LogLevel    string          `toml:"log-level,omitempty"`
}

type tomlEnvironment struct {
	Version int    `toml:"version"`
	Profile string `toml:"profile,omitempty"`
	Stage   string `toml:"stage,omitempty"`
}

// DefaultSettings returns the settings used when no file is present.
func DefaultSettings() *Settings {
	return &Settings{
		Environment: tomlEnvironment{Version: DefaultVersion, Stage: StageVertex},
		LogLevel:    "warn",
	}
}

// Env converts the settings environment table.
func (s *Settings) Env() Environment {
	return Environment{
		Version: s.Environment.Version,
		Profile: s.Environment.Profile,
		Stage:   s.Environment.Stage,
	}
}

// LoadSettings reads path; a missing file yields the defaults.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultSettings(), nil
		}
		return nil, fmt.Errorf("reading settings %s: %w", path, err)
	}
	return ParseSettings(data, path)
}

// ParseSettings decodes TOML settings on top of the defaults.
// The path argument is used only for error messages.
func ParseSettings(data []byte, path string) (*Settings, error) {
	var file Settings
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing settings %s: %w", path, err)
	}
	s := DefaultSettings()
	s.merge(&file)
	if err := s.Env().Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// merge copies every field set in other.
func (s *Settings) merge(other *Settings) {
	if other.Environment.Version != 0 {
		s.Environment.Version = other.Environment.Version
	}
	if other.Environment.Profile != "" {
		s.Environment.Profile = other.Environment.Profile
	}
	if other.Environment.Stage != "" {
		s.Environment.Stage = other.Environment.Stage
	}
	if other.Manifest != "" {
		s.Manifest = other.Manifest
	}
	if other.LogLevel != "" {
		s.LogLevel = other.LogLevel
	}
}
