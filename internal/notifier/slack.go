package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
)

var _ SummaryNotifier = (*SlackNotifier)(nil)

// Slack caps section text at 3000 characters and messages at 50 blocks.
const (
	maxSectionText = 3000
	maxComparisons = 10
)

// SlackNotifier posts summaries to a Slack channel via Incoming Webhooks.
type SlackNotifier struct {
	webhookURL string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewSlackNotifier returns a notifier that posts each summary to Slack.
func NewSlackNotifier(webhookURL string, httpClient *http.Client, logger *slog.Logger) *SlackNotifier {
	return &SlackNotifier{
		webhookURL: webhookURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Notify sends the summary as a single Block Kit message. A nil summary is skipped.
func (s *SlackNotifier) Notify(ctx context.Context, ev Event) error {
	if ev.Summary == nil {
		return nil
	}

	body, err := json.Marshal(buildPayload(ev))
	if err != nil {
		return fmt.Errorf("marshal slack payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create slack request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post to slack: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("slack returned %d", resp.StatusCode)
	}
	s.logger.Info("slack message sent", "session", ev.SessionID, "comparisons", len(ev.Summary.Comparisons))
	return nil
}

// Block Kit payload types.

type slackPayload struct {
	Blocks []slackBlock `json:"blocks"`
}

type slackBlock struct {
	Type     string      `json:"type"`
	Text     *slackText  `json:"text,omitempty"`
	Fields   []slackText `json:"fields,omitempty"`
	Elements []slackText `json:"elements,omitempty"`
}

type slackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func buildPayload(ev Event) slackPayload {
	kind := capitalize(string(ev.Type.Normalize()))
	title := strings.TrimSpace(ev.Job.Title)
	if title == "" {
		title = "Mock interview"
	}

	answered := 0
	for _, c := range ev.Summary.Comparisons {
		if c.UserAnswer != "" {
			answered++
		}
	}

	blocks := []slackBlock{
		{
			Type: "header",
			Text: &slackText{Type: "plain_text", Text: "🎤 " + kind + " interview: " + title},
		},
		{
			Type: "section",
			Fields: []slackText{
				{Type: "mrkdwn", Text: "*Type:*\n" + kind},
				{Type: "mrkdwn", Text: fmt.Sprintf("*Questions answered:*\n%d", answered)},
			},
		},
		{
			Type: "section",
			Text: &slackText{Type: "mrkdwn", Text: truncate("*Coaching tips:*\n"+ev.Summary.Suggestions, maxSectionText)},
		},
	}

	for i, c := range ev.Summary.Comparisons {
		if i == maxComparisons {
			break
		}
		text := fmt.Sprintf("*Q%d:* %s\n*Your answer:* %s\n*Sample answer:* %s", i+1, c.Question, c.UserAnswer, c.SampleAnswer)
		blocks = append(blocks, slackBlock{
			Type: "section",
			Text: &slackText{Type: "mrkdwn", Text: truncate(text, maxSectionText)},
		})
	}

	blocks = append(blocks,
		slackBlock{
			Type:     "context",
			Elements: []slackText{{Type: "mrkdwn", Text: "Session `" + ev.SessionID + "`"}},
		},
		slackBlock{Type: "divider"},
	)

	return slackPayload{Blocks: blocks}
}
