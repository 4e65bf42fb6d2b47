package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// clearEnv isolates a test from the address overrides of the host environment.
func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HOST", "")
	t.Setenv("PORT", "")
	t.Setenv(EnvConfigPath, "")
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	clearEnv(t)
	cfg, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if cfg.Server.Addr() != "localhost:5050" {
		t.Errorf("Addr = %q, want localhost:5050", cfg.Server.Addr())
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "*" {
		t.Errorf("AllowedOrigins = %v", cfg.Server.AllowedOrigins)
	}
	m := cfg.Model
	if m.ChatModel != "gpt-4" || m.CoachingModel != "gpt-4" || m.SampleModel != "gpt-4o" {
		t.Errorf("models = %q/%q/%q", m.ChatModel, m.CoachingModel, m.SampleModel)
	}
	if m.Temperature != 0.7 || m.ChatMaxTokens != 500 || m.CoachingMaxTokens != 200 || m.SampleMaxTokens != 180 {
		t.Errorf("model limits = %+v", m)
	}
	if m.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", m.Timeout)
	}
	if m.APIKeyEnv != "OPENAI_API_KEY" {
		t.Errorf("APIKeyEnv = %q", m.APIKeyEnv)
	}
	if cfg.Summary.MaxConcurrency != 8 || cfg.Summary.ConcurrentCoaching {
		t.Errorf("Summary = %+v", cfg.Summary)
	}
	if cfg.Notification.Type != "log" {
		t.Errorf("Notification.Type = %q, want log", cfg.Notification.Type)
	}
}

func TestLoad_ValidConfig(t *testing.T) {
	clearEnv(t)
	t.Setenv("TEST_OPENAI_KEY", "sk-from-env")
	path := writeConfig(t, `
server:
  host: 0.0.0.0
  port: 8080
  allowed_origins: ["https://example.com"]
model:
  api_key: ${TEST_OPENAI_KEY}
  sample_model: gpt-4o-mini
  temperature: 0
  timeout: 10s
summary:
  max_concurrency: 3
  concurrent_coaching: true
notification:
  type: none
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr() != "0.0.0.0:8080" {
		t.Errorf("Addr = %q", cfg.Server.Addr())
	}
	if cfg.Model.APIKey != "sk-from-env" {
		t.Errorf("APIKey = %q, want expanded env value", cfg.Model.APIKey)
	}
	if cfg.Model.SampleModel != "gpt-4o-mini" {
		t.Errorf("SampleModel = %q", cfg.Model.SampleModel)
	}
	if cfg.Model.ChatModel != "gpt-4" {
		t.Errorf("ChatModel = %q, want default kept", cfg.Model.ChatModel)
	}
	if cfg.Model.Temperature != 0 {
		t.Errorf("Temperature = %v, want explicit 0", cfg.Model.Temperature)
	}
	if cfg.Model.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v", cfg.Model.Timeout)
	}
	if cfg.Summary.MaxConcurrency != 3 || !cfg.Summary.ConcurrentCoaching {
		t.Errorf("Summary = %+v", cfg.Summary)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err == nil {
		t.Fatal("Load: expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "server: [broken")
	if _, err := Load(path); err == nil {
		t.Fatal("Load: expected error for invalid YAML")
	}
}

func TestLoad_InvalidTimeout(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "model:\n  timeout: soon\n")
	if _, err := Load(path); err == nil {
		t.Fatal("Load: expected error for unparseable timeout")
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"port too large", "server:\n  port: 70000\n", "Server.Port"},
		{"temperature too high", "model:\n  temperature: 2.5\n", "Model.Temperature"},
		{"zero token limit", "model:\n  sample_max_tokens: 0\n", "Model.SampleMaxTokens"},
		{"negative timeout", "model:\n  timeout: -1s\n", "Model.Timeout"},
		{"unknown notifier", "notification:\n  type: email\n", "Notification.Type"},
		{"slack without webhook", "notification:\n  type: slack\n", "Notification.WebhookURL"},
		{"slack wrong host", "notification:\n  type: slack\n  webhook_url: https://example.com/hook\n", "Notification.WebhookURL"},
		{"no credential source", "model:\n  api_key_env: \"\"\n", "Model.APIKeyEnv"},
		{"bad base url", "model:\n  base_url: \"://nope\"\n", "Model.BaseURL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected validation error")
			}
			fields := FieldErrors(err)
			if _, ok := fields[tt.field]; !ok {
				t.Errorf("errors = %v, want one for %s", fields, tt.field)
			}
		})
	}
}

func TestLoad_SlackWebhookAccepted(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "notification:\n  type: slack\n  webhook_url: https://hooks.slack.com/services/T/B/X\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Notification.WebhookURL != "https://hooks.slack.com/services/T/B/X" {
		t.Errorf("WebhookURL = %q", cfg.Notification.WebhookURL)
	}
}

func TestLoad_EnvOverridesAddress(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("PORT", "9999")

	cfg, err := Load(writeConfig(t, "server:\n  port: 8080\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr() != "127.0.0.1:9999" {
		t.Errorf("Addr = %q, want env override", cfg.Server.Addr())
	}
}

func TestLoad_InvalidPortEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "http")
	if _, err := Default(); err == nil {
		t.Fatal("expected error for non-numeric PORT")
	}
}

func TestResolve_Order(t *testing.T) {
	clearEnv(t)
	flagPath := writeConfig(t, "server:\n  port: 1111\n")
	envPath := writeConfig(t, "server:\n  port: 2222\n")
	t.Setenv(EnvConfigPath, envPath)

	cfg, used, err := Resolve(flagPath)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if used != flagPath || cfg.Server.Port != 1111 {
		t.Errorf("flag: used %q port %d", used, cfg.Server.Port)
	}

	cfg, used, err = Resolve("")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if used != envPath || cfg.Server.Port != 2222 {
		t.Errorf("env: used %q port %d", used, cfg.Server.Port)
	}
}

func TestResolve_FallsBackToDefaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, used, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if used != "" {
		t.Errorf("used = %q, want defaults", used)
	}
	if cfg.Server.Port != 5050 {
		t.Errorf("Port = %d, want 5050", cfg.Server.Port)
	}
}

func TestResolve_PicksUpLocalConfig(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, DefaultPath), []byte("server:\n  port: 3333\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, used, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if used != DefaultPath || cfg.Server.Port != 3333 {
		t.Errorf("used %q port %d", used, cfg.Server.Port)
	}
}
