package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/trxu05/mock-interview-chatbot/internal/metrics"
	"github.com/trxu05/mock-interview-chatbot/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web interview server",
	Long:  "Serve the browser client and the WebSocket interview endpoint; blocks until SIGINT/SIGTERM.",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(logger)
	if err != nil {
		return fail(logger, "failed to load config", err)
	}

	logger.Info("config loaded",
		"addr", cfg.Server.Addr(),
		"chat_model", cfg.Model.ChatModel,
		"coaching_model", cfg.Model.CoachingModel,
		"sample_model", cfg.Model.SampleModel,
		"timeout", cfg.Model.Timeout.String(),
		"max_concurrency", cfg.Summary.MaxConcurrency,
		"notification", cfg.Notification.Type,
	)

	m := metrics.New()
	client := setupModelClient(cfg, m, logger)
	httpClient := &http.Client{Timeout: 30 * time.Second}

	srv, err := server.New(cfg.Server, server.Deps{
		Client:    client,
		Chat:      chatSettings(cfg),
		Assembler: setupAssembler(cfg, client, logger),
		Notifier:  setupNotifier(cfg, httpClient, logger),
		Metrics:   m,
		Logger:    logger,
	})
	if err != nil {
		return fail(logger, "failed to create server", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.ListenAndServe(ctx); err != nil {
		return fail(logger, "server error", err)
	}

	logger.Info("goodbye")
	return nil
}
