package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/handiism/tapmusic-cli/internal/model"
	"github.com/handiism/tapmusic-cli/internal/tapmusic"
)

// Settings holds all configuration options.
type Settings struct {
	// Output settings
	DownloadsPath string `json:"downloads_path" yaml:"downloads_path"`

	// Collage defaults, "t" or "f"
	DefaultCaption   string `json:"default_caption" yaml:"default_caption"`
	DefaultPlaycount string `json:"default_playcount" yaml:"default_playcount"`

	// AllowOverall accepts "all" as a time period.
	AllowOverall bool `json:"allow_overall" yaml:"allow_overall"`

	// Service settings
	BaseURL   string `json:"base_url" yaml:"base_url"`
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		DownloadsPath:    ".",
		DefaultCaption:   "t",
		DefaultPlaycount: "f",
		AllowOverall:     true,
		BaseURL:          tapmusic.DefaultBaseURL,
		UserAgent:        "tapmusic-cli",
	}
}

// Load reads settings from a JSON or YAML file, picked by extension
// (.yaml and .yml are YAML, anything else is JSON). Fields missing from
// the file keep their defaults. A missing file yields the defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if isYAML(path) {
		err = yaml.Unmarshal(data, settings)
	} else {
		err = json.Unmarshal(data, settings)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return settings, nil
}

// Save writes settings to a JSON or YAML file, picked by extension.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(s)
	} else {
		data, err = json.MarshalIndent(s, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks that the collage defaults are legal flag values.
func (s *Settings) Validate() error {
	if _, err := model.ParseFlag("default_caption", s.DefaultCaption); err != nil {
		return err
	}
	if _, err := model.ParseFlag("default_playcount", s.DefaultPlaycount); err != nil {
		return err
	}
	return nil
}

// ToOptions converts settings to tapmusic request options.
func (s *Settings) ToOptions() tapmusic.Options {
	return tapmusic.Options{
		BaseURL:      s.BaseURL,
		AllowOverall: s.AllowOverall,
	}
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
