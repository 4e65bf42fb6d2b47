package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/trxu05/mock-interview-chatbot/internal/interview"
	"github.com/trxu05/mock-interview-chatbot/internal/metrics"
	"github.com/trxu05/mock-interview-chatbot/internal/model"
	"github.com/trxu05/mock-interview-chatbot/internal/notifier"
	"github.com/trxu05/mock-interview-chatbot/internal/tui"
)

var (
	chatType  string
	chatTitle string
	chatDesc  string
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Run an interview in the terminal (TUI)",
	Long: "Pick an interview type and job background, chat with the interviewer, and read the summary. " +
		"Type quit, exit or end (or press ctrl+e) to finish the interview.",
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVarP(&chatType, "type", "t", "", "interview type: technical, behavioral or general (default: ask)")
	chatCmd.Flags().StringVar(&chatTitle, "job-title", "", "job title to tailor the interview to")
	chatCmd.Flags().StringVar(&chatDesc, "job-desc", "", "job description to tailor the interview to")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(logger)
	if err != nil {
		return fail(logger, "failed to load config", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	quiet := silentLogger()
	client := setupModelClient(cfg, metrics.New(), quiet)

	t, ok, err := chooseType()
	if err != nil || !ok {
		return err
	}
	job, ok, err := chooseBackground(cmd)
	if err != nil || !ok {
		return err
	}

	session := interview.NewSession(client, chatSettings(cfg), t, job, quiet)
	greeting := session.Start()

	outcome, err := tui.RunChat(ctx, session, interviewTitle(t, job), greeting)
	if err != nil {
		return fail(logger, "chat error", err)
	}
	if outcome != tui.ChatEnded {
		return nil
	}

	assembler := setupAssembler(cfg, client, quiet)
	result, err := tui.RunSummaryLoader(ctx, func(ctx context.Context) (*model.InterviewSummary, error) {
		return assembler.Assemble(ctx, session.SummaryRequest())
	})
	if errors.Is(err, tui.ErrCancelled) {
		return nil
	}
	if err != nil {
		return fail(logger, "failed to build summary", err)
	}

	if err := tui.RunSummaryView(result); err != nil {
		return fail(logger, "summary view error", err)
	}

	n := setupNotifier(cfg, &http.Client{Timeout: 30 * time.Second}, logger)
	if err := n.Notify(ctx, notifier.Event{SessionID: session.ID, Type: session.Type, Job: job, Summary: result}); err != nil {
		logger.Warn("summary notification failed", "error", err)
	}
	return nil
}

func chooseType() (model.InterviewType, bool, error) {
	if chatType == "" {
		return tui.RunTypePicker()
	}
	t := model.InterviewType(strings.ToLower(strings.TrimSpace(chatType)))
	for _, known := range model.KnownTypes() {
		if t == known {
			return t, true, nil
		}
	}
	return "", false, fmt.Errorf("unknown interview type %q", chatType)
}

func chooseBackground(cmd *cobra.Command) (model.JobBackground, bool, error) {
	if cmd.Flags().Changed("job-title") || cmd.Flags().Changed("job-desc") {
		return model.JobBackground{Title: chatTitle, Description: chatDesc}, true, nil
	}
	return tui.RunBackgroundForm()
}

func interviewTitle(t model.InterviewType, job model.JobBackground) string {
	kind := strings.ToUpper(string(t[:1])) + string(t[1:])
	if title := strings.TrimSpace(job.Title); title != "" {
		return fmt.Sprintf("%s interview: %s", kind, title)
	}
	return kind + " interview"
}
