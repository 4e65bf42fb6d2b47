// Package notifier forwards finished interview summaries to an outside sink.
package notifier

import (
	"context"

	"github.com/trxu05/mock-interview-chatbot/internal/model"
)

// Event is one finished interview.
type Event struct {
	SessionID string
	Type      model.InterviewType
	Job       model.JobBackground
	Summary   *model.InterviewSummary
}

// SummaryNotifier delivers a finished interview. Callers log failures and
// never fail the summary because of them.
type SummaryNotifier interface {
	Notify(ctx context.Context, ev Event) error
}

// NopNotifier discards every event. Used when notification.type is "none".
type NopNotifier struct{}

// Notify does nothing.
func (NopNotifier) Notify(context.Context, Event) error { return nil }

// SendTestMessage sends a canned summary to verify the integration works.
func SendTestMessage(ctx context.Context, n SummaryNotifier) error {
	return n.Notify(ctx, Event{
		SessionID: "test-001",
		Type:      model.Technical,
		Job:       model.JobBackground{Title: "Integration Test Engineer"},
		Summary: &model.InterviewSummary{
			Transcript: model.Transcript{
				{Role: model.RoleAssistant, Content: "Could you please introduce yourself?"},
				{Role: model.RoleUser, Content: "I verify webhooks for a living."},
			},
			Suggestions: "1. Notifications are wired up correctly.",
			Comparisons: []model.Comparison{{
				Question:     "Could you please introduce yourself?",
				UserAnswer:   "I verify webhooks for a living.",
				SampleAnswer: "I am a test message confirming the integration works.",
			}},
		},
	})
}
