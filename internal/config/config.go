// Package config persists the monitor target settings as cfg.json in the
// working directory.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// DefaultFile is the config file written next to the binary.
const DefaultFile = "cfg.json"

// DefaultMessage is the message template applied when none is configured.
const DefaultMessage = "Screenshot of {app_name} - {timestamp}"

// Config holds the monitor target settings.
type Config struct {
	WebhookURL      string `mapstructure:"webhook_url"       json:"webhook_url"       yaml:"webhook_url"`
	AppName         string `mapstructure:"app_name"          json:"app_name"          yaml:"app_name"`
	Interval        int    `mapstructure:"interval"          json:"interval"          yaml:"interval"`
	DeleteAfterSend bool   `mapstructure:"delete_after_send" json:"delete_after_send" yaml:"delete_after_send"`
	CustomMessage   string `mapstructure:"custom_message"    json:"custom_message"    yaml:"custom_message"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Interval:        60,
		DeleteAfterSend: true,
		CustomMessage:   DefaultMessage,
	}
}

// Validate checks field constraints.
func (c Config) Validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %d", c.Interval)
	}
	return nil
}

// Complete reports whether the fields the monitor needs are set.
func (c Config) Complete() bool {
	return c.WebhookURL != "" && c.AppName != ""
}

// Service manages configuration persistence for one file path.
type Service struct {
	path string
}

// NewService creates a config service for the given path; an empty path
// means DefaultFile.
func NewService(path string) *Service {
	if path == "" {
		path = DefaultFile
	}
	return &Service{path: path}
}

// Path returns the backing file path.
func (s *Service) Path() string { return s.path }

// Load reads the config file, filling absent fields with defaults. A
// missing file is not an error: the defaults are written out so the user
// has a file to edit, and found is false.
func (s *Service) Load() (cfg Config, found bool, err error) {
	if _, statErr := os.Stat(s.path); os.IsNotExist(statErr) {
		cfg = Default()
		if err := s.Save(cfg); err != nil {
			return cfg, false, fmt.Errorf("write default config: %w", err)
		}
		return cfg, false, nil
	}

	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("json")
	def := Default()
	v.SetDefault("interval", def.Interval)
	v.SetDefault("delete_after_send", def.DeleteAfterSend)
	v.SetDefault("custom_message", def.CustomMessage)

	if err := v.ReadInConfig(); err != nil {
		return Default(), false, fmt.Errorf("read %s: %w", s.path, err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return Default(), false, fmt.Errorf("decode %s: %w", s.path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), false, fmt.Errorf("%s: %w", s.path, err)
	}
	return cfg, true, nil
}

// Save writes the config as indented JSON.
func (s *Service) Save(cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}
