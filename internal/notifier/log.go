package notifier

import (
	"context"
	"log/slog"
)

var _ SummaryNotifier = (*LogNotifier)(nil)

// LogNotifier writes each finished interview to the logger as one structured line.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a notifier that logs each summary via slog.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs the session, persona, job title and summary size. Always returns nil.
func (n *LogNotifier) Notify(_ context.Context, ev Event) error {
	args := []any{"session", ev.SessionID, "type", ev.Type}
	if ev.Job.Title != "" {
		args = append(args, "job_title", ev.Job.Title)
	}
	if ev.Summary != nil {
		args = append(args,
			"turns", len(ev.Summary.Transcript),
			"comparisons", len(ev.Summary.Comparisons),
			"suggestions_chars", len(ev.Summary.Suggestions),
		)
	}
	n.logger.Info("interview summary", args...)
	return nil
}
