package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"regexp"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable consulted when no --config flag is given.
const EnvConfigPath = "MOCKINTERVIEW_CONFIG"

// DefaultPath is loaded when it exists and nothing else names a config file.
const DefaultPath = "config.yaml"

// Config is the root configuration for the mock interview service.
type Config struct {
	Server       ServerConfig
	Model        ModelConfig
	Summary      SummaryConfig
	Notification NotificationConfig
}

// ServerConfig controls the web front-end.
type ServerConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string
	StaticDir      string // serve the web client from disk instead of the embedded copy
}

// Addr returns host:port for http.Server.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// ModelConfig controls the chat-completion calls.
type ModelConfig struct {
	BaseURL           string
	APIKey            string // expanded from env var by Load; takes precedence over APIKeyEnv
	APIKeyEnv         string // read at call time when APIKey is empty
	ChatModel         string
	CoachingModel     string
	SampleModel       string
	Temperature       float64
	ChatMaxTokens     int
	CoachingMaxTokens int
	SampleMaxTokens   int
	Timeout           time.Duration // per-call timeout
}

// SummaryConfig controls the end-of-interview fan-out.
type SummaryConfig struct {
	MaxConcurrency     int  // process-wide bound on in-flight model calls; <= 0 is unbounded
	ConcurrentCoaching bool // run the coaching call alongside the sample answers
}

// NotificationConfig controls which notifier receives finished summaries.
type NotificationConfig struct {
	Type       string `yaml:"type"`        // "log", "slack" or "none"
	WebhookURL string `yaml:"webhook_url"` // required if type is "slack"
}

// rawConfig is used for YAML unmarshaling (snake_case fields and duration as string).
type rawConfig struct {
	Server       rawServerConfig    `yaml:"server"`
	Model        rawModelConfig     `yaml:"model"`
	Summary      rawSummaryConfig   `yaml:"summary"`
	Notification NotificationConfig `yaml:"notification"`
}

type rawServerConfig struct {
	Host           string   `yaml:"host"`
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	StaticDir      string   `yaml:"static_dir"`
}

type rawModelConfig struct {
	BaseURL           string  `yaml:"base_url"`
	APIKey            string  `yaml:"api_key"`
	APIKeyEnv         string  `yaml:"api_key_env"`
	ChatModel         string  `yaml:"chat_model"`
	CoachingModel     string  `yaml:"coaching_model"`
	SampleModel       string  `yaml:"sample_model"`
	Temperature       float64 `yaml:"temperature"`
	ChatMaxTokens     int     `yaml:"chat_max_tokens"`
	CoachingMaxTokens int     `yaml:"coaching_max_tokens"`
	SampleMaxTokens   int     `yaml:"sample_max_tokens"`
	Timeout           string  `yaml:"timeout"`
}

type rawSummaryConfig struct {
	MaxConcurrency     int  `yaml:"max_concurrency"`
	ConcurrentCoaching bool `yaml:"concurrent_coaching"`
}

// defaultRaw holds every default. YAML is decoded on top of it, so keys
// absent from the file keep these values.
func defaultRaw() rawConfig {
	return rawConfig{
		Server: rawServerConfig{
			Host:           "localhost",
			Port:           5050,
			AllowedOrigins: []string{"*"},
		},
		Model: rawModelConfig{
			BaseURL:           "https://api.openai.com/v1",
			APIKeyEnv:         "OPENAI_API_KEY",
			ChatModel:         "gpt-4",
			CoachingModel:     "gpt-4",
			SampleModel:       "gpt-4o",
			Temperature:       0.7,
			ChatMaxTokens:     500,
			CoachingMaxTokens: 200,
			SampleMaxTokens:   180,
			Timeout:           "30s",
		},
		Summary: rawSummaryConfig{
			MaxConcurrency: 8,
		},
		Notification: NotificationConfig{Type: "log"},
	}
}

// Default returns the built-in configuration with HOST and PORT applied.
func Default() (*Config, error) {
	return finalize(defaultRaw())
}

// Load reads and parses the YAML config file at path, validates it, and returns Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	raw := defaultRaw()
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return finalize(raw)
}

// Resolve picks the config source: flagPath, then $MOCKINTERVIEW_CONFIG, then
// ./config.yaml if it exists, then the built-in defaults. It returns the path
// used, or "" for defaults.
func Resolve(flagPath string) (*Config, string, error) {
	path := flagPath
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		if _, err := os.Stat(DefaultPath); err == nil {
			path = DefaultPath
		}
	}
	if path == "" {
		cfg, err := Default()
		return cfg, "", err
	}
	cfg, err := Load(path)
	return cfg, path, err
}

func finalize(raw rawConfig) (*Config, error) {
	timeout, err := time.ParseDuration(raw.Model.Timeout)
	if err != nil {
		return nil, fmt.Errorf("parse model.timeout %q: %w", raw.Model.Timeout, err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:           raw.Server.Host,
			Port:           raw.Server.Port,
			AllowedOrigins: raw.Server.AllowedOrigins,
			StaticDir:      raw.Server.StaticDir,
		},
		Model: ModelConfig{
			BaseURL:           raw.Model.BaseURL,
			APIKey:            raw.Model.APIKey,
			APIKeyEnv:         raw.Model.APIKeyEnv,
			ChatModel:         raw.Model.ChatModel,
			CoachingModel:     raw.Model.CoachingModel,
			SampleModel:       raw.Model.SampleModel,
			Temperature:       raw.Model.Temperature,
			ChatMaxTokens:     raw.Model.ChatMaxTokens,
			CoachingMaxTokens: raw.Model.CoachingMaxTokens,
			SampleMaxTokens:   raw.Model.SampleMaxTokens,
			Timeout:           timeout,
		},
		Summary: SummaryConfig{
			MaxConcurrency:     raw.Summary.MaxConcurrency,
			ConcurrentCoaching: raw.Summary.ConcurrentCoaching,
		},
		Notification: raw.Notification,
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// applyEnv lets HOST and PORT override the listen address.
func applyEnv(cfg *Config) error {
	if host := os.Getenv("HOST"); host != "" {
		cfg.Server.Host = host
	}
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("parse PORT %q: %w", port, err)
		}
		cfg.Server.Port = p
	}
	return nil
}

var slackWebhook = regexp.MustCompile(`^https://hooks\.slack\.com/`)

// Validate checks every section.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Server),
		validation.Field(&c.Model),
		validation.Field(&c.Notification),
	)
}

func (s ServerConfig) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Host, validation.Required),
		validation.Field(&s.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&s.AllowedOrigins, validation.Required, validation.Each(validation.Required)),
	)
}

func (m ModelConfig) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.BaseURL, validation.Required, is.URL),
		validation.Field(&m.APIKeyEnv, validation.When(m.APIKey == "", validation.Required.Error("is required when api_key is empty"))),
		validation.Field(&m.ChatModel, validation.Required),
		validation.Field(&m.CoachingModel, validation.Required),
		validation.Field(&m.SampleModel, validation.Required),
		validation.Field(&m.Temperature, validation.Min(0.0), validation.Max(2.0)),
		validation.Field(&m.ChatMaxTokens, validation.Required, validation.Min(1)),
		validation.Field(&m.CoachingMaxTokens, validation.Required, validation.Min(1)),
		validation.Field(&m.SampleMaxTokens, validation.Required, validation.Min(1)),
		validation.Field(&m.Timeout, validation.Required, validation.Min(time.Millisecond)),
	)
}

func (n NotificationConfig) Validate() error {
	return validation.ValidateStruct(&n,
		validation.Field(&n.Type, validation.Required, validation.In("log", "slack", "none")),
		validation.Field(&n.WebhookURL, validation.When(n.Type == "slack",
			validation.Required.Error("is required when type is \"slack\""),
			validation.Match(slackWebhook).Error("must start with https://hooks.slack.com/"),
		)),
	)
}

// FieldErrors flattens a validation error into "section.field" keys, which
// is handy for reporting and tests. Non-validation errors yield nil.
func FieldErrors(err error) map[string]string {
	var top validation.Errors
	if !errors.As(err, &top) {
		return nil
	}
	out := make(map[string]string)
	for section, e := range top {
		var inner validation.Errors
		if errors.As(e, &inner) {
			for field, fe := range inner {
				out[section+"."+field] = fe.Error()
			}
			continue
		}
		out[section] = e.Error()
	}
	return out
}
