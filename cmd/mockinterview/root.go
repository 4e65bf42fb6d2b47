package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/trxu05/mock-interview-chatbot/internal/ai"
	"github.com/trxu05/mock-interview-chatbot/internal/config"
	"github.com/trxu05/mock-interview-chatbot/internal/fanout"
	"github.com/trxu05/mock-interview-chatbot/internal/interview"
	"github.com/trxu05/mock-interview-chatbot/internal/metrics"
	"github.com/trxu05/mock-interview-chatbot/internal/notifier"
	"github.com/trxu05/mock-interview-chatbot/internal/summary"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "mockinterview",
	Short: "Practice job interviews against an AI interviewer",
	Long: "mockinterview runs a technical, behavioral or general mock interview against a chat model " +
		"and ends with coaching tips and sample answers for each question.",
	// Default to `serve` so that `mockinterview` with no args starts the web app.
	RunE:          runServe,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: MOCKINTERVIEW_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: --config > MOCKINTERVIEW_CONFIG > ./config.yaml > built-in defaults.
func loadConfig(logger *slog.Logger) (*config.Config, error) {
	cfg, path, err := config.Resolve(cfgPath)
	if err != nil {
		for field, msg := range config.FieldErrors(err) {
			logger.Error("invalid config value", "field", field, "error", msg)
		}
		return nil, err
	}
	if path == "" {
		path = "(defaults)"
	}
	logger.Debug("config loaded", "path", path)
	return cfg, nil
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

// silentLogger is used by the terminal UI; log output under the alt screen
// corrupts the display.
func silentLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// setupModelClient builds the chat-completion client. An api_key in the
// config wins; otherwise the key is read from api_key_env on every call.
func setupModelClient(cfg *config.Config, m *metrics.Metrics, logger *slog.Logger) ai.ModelClient {
	var creds ai.CredentialSource = ai.EnvCredentials{Var: cfg.Model.APIKeyEnv}
	if cfg.Model.APIKey != "" {
		creds = ai.StaticCredentials{Key: cfg.Model.APIKey}
	}

	if _, err := creds.APIKey(); err != nil {
		logger.Warn("model credential missing, interview requests will fail until it is set", "error", err)
	}

	// Per-call timeouts come from the provider; the client itself has none.
	provider := ai.NewOpenAIProvider(cfg.Model.BaseURL, creds, cfg.Model.Timeout, &http.Client{})
	return metrics.NewInstrumentedClient(provider, m, logger)
}

func setupNotifier(cfg *config.Config, httpClient *http.Client, logger *slog.Logger) notifier.SummaryNotifier {
	switch cfg.Notification.Type {
	case "slack":
		logger.Info("using slack notifier")
		return notifier.NewSlackNotifier(cfg.Notification.WebhookURL, httpClient, logger)
	case "none":
		return notifier.NopNotifier{}
	default:
		return notifier.NewLogNotifier(logger)
	}
}

func chatSettings(cfg *config.Config) interview.ChatSettings {
	return interview.ChatSettings{
		Model:       cfg.Model.ChatModel,
		Temperature: cfg.Model.Temperature,
		MaxTokens:   cfg.Model.ChatMaxTokens,
	}
}

func setupAssembler(cfg *config.Config, client ai.ModelClient, logger *slog.Logger) *summary.Assembler {
	pool := fanout.NewPool(cfg.Summary.MaxConcurrency)
	return summary.NewAssembler(client, pool, summary.Settings{
		CoachingModel:      cfg.Model.CoachingModel,
		SampleModel:        cfg.Model.SampleModel,
		Temperature:        cfg.Model.Temperature,
		CoachingMaxTokens:  cfg.Model.CoachingMaxTokens,
		SampleMaxTokens:    cfg.Model.SampleMaxTokens,
		ConcurrentCoaching: cfg.Summary.ConcurrentCoaching,
	}, logger)
}

func fail(logger *slog.Logger, msg string, err error) error {
	logger.Error(msg, "error", err)
	return fmt.Errorf("%s: %w", msg, err)
}
