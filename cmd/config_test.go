package cmd

import (
	"testing"

	"github.com/shotwatch/shotwatch/internal/config"
)

func TestApplyConfigValue(t *testing.T) {
	tests := []struct {
		key, value string
		check      func(config.Config) bool
	}{
		{"webhook", "https://hooks.example.com/x", func(c config.Config) bool { return c.WebhookURL == "https://hooks.example.com/x" }},
		{"webhook_url", "https://h.example.com", func(c config.Config) bool { return c.WebhookURL == "https://h.example.com" }},
		{"app", "Notepad", func(c config.Config) bool { return c.AppName == "notepad" }},
		{"app_name", "  Firefox ", func(c config.Config) bool { return c.AppName == "firefox" }},
		{"interval", "30", func(c config.Config) bool { return c.Interval == 30 }},
		{"delete", "false", func(c config.Config) bool { return !c.DeleteAfterSend }},
		{"delete_after_send", "true", func(c config.Config) bool { return c.DeleteAfterSend }},
		{"message", "Shot of {app_name}", func(c config.Config) bool { return c.CustomMessage == "Shot of {app_name}" }},
		{"custom_message", "", func(c config.Config) bool { return c.CustomMessage == "" }},
	}
	for _, tt := range tests {
		cfg := config.Default()
		if err := applyConfigValue(&cfg, tt.key, tt.value); err != nil {
			t.Errorf("applyConfigValue(%q, %q): %v", tt.key, tt.value, err)
			continue
		}
		if !tt.check(cfg) {
			t.Errorf("applyConfigValue(%q, %q) left %+v", tt.key, tt.value, cfg)
		}
	}
}

func TestApplyConfigValue_Invalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"interval", "0"},
		{"interval", "-3"},
		{"interval", "soon"},
		{"delete", "maybe"},
		{"color", "red"},
	}
	for _, tt := range tests {
		cfg := config.Default()
		if err := applyConfigValue(&cfg, tt.key, tt.value); err == nil {
			t.Errorf("applyConfigValue(%q, %q) should fail", tt.key, tt.value)
		}
	}
}
