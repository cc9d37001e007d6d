package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is the API endpoint used when settings.yaml is absent or
// leaves base_url empty.
const DefaultBaseURL = "http://localhost:5000/api"

// DefaultRequestTimeout bounds a single API call.
const DefaultRequestTimeout = 5 * time.Second

// Settings holds client settings read from settings.yaml.
type Settings struct {
	// BaseURL is the API endpoint, without a trailing slash.
	BaseURL string `yaml:"base_url"`

	// RequestTimeout bounds a single API call (e.g. "5s").
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// UnmarshalYAML accepts request_timeout as a duration string such as "5s".
func (s *Settings) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		BaseURL        string `yaml:"base_url"`
		RequestTimeout string `yaml:"request_timeout"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	s.BaseURL = raw.BaseURL
	s.RequestTimeout = 0
	if raw.RequestTimeout != "" {
		d, err := time.ParseDuration(raw.RequestTimeout)
		if err != nil {
			return fmt.Errorf("request_timeout: %w", err)
		}
		s.RequestTimeout = d
	}
	return nil
}

// DefaultSettings returns settings with all defaults applied.
func DefaultSettings() Settings {
	return Settings{
		BaseURL:        DefaultBaseURL,
		RequestTimeout: DefaultRequestTimeout,
	}
}

// LoadSettings reads settings.yaml from the config directory. A missing file
// yields defaults; a malformed file is an error.
func (c *Config) LoadSettings() (Settings, error) {
	s := DefaultSettings()

	data, err := os.ReadFile(c.SettingsPath())
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return s, err
	}

	if err := yaml.Unmarshal(data, &s); err != nil {
		return DefaultSettings(), fmt.Errorf("invalid %s: %w", SettingsFile, err)
	}
	if s.BaseURL == "" {
		s.BaseURL = DefaultBaseURL
	}
	if s.RequestTimeout <= 0 {
		s.RequestTimeout = DefaultRequestTimeout
	}
	return s, nil
}
