package notifier

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/trxu05/mock-interview-chatbot/internal/model"
)

func TestLogNotifier_NilSummary(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(slog.New(slog.NewTextHandler(&buf, nil)))

	if err := n.Notify(context.Background(), Event{SessionID: "s1", Type: model.General}); err != nil {
		t.Errorf("Notify() = %v, want nil", err)
	}
	if !strings.Contains(buf.String(), "session=s1") {
		t.Errorf("log line missing session: %q", buf.String())
	}
}

func TestLogNotifier_LogsSummaryShape(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(slog.New(slog.NewTextHandler(&buf, nil)))

	ev := Event{
		SessionID: "s2",
		Type:      model.Technical,
		Job:       model.JobBackground{Title: "SRE"},
		Summary:   sampleSummary(),
	}
	if err := n.Notify(context.Background(), ev); err != nil {
		t.Fatalf("Notify() = %v, want nil", err)
	}
	out := buf.String()
	for _, want := range []string{"interview summary", "type=technical", "job_title=SRE", "comparisons=2"} {
		if !strings.Contains(out, want) {
			t.Errorf("log line missing %q: %q", want, out)
		}
	}
}
