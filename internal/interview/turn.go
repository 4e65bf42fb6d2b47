// Package interview runs the question-and-answer loop shared by the web and
// terminal front-ends.
package interview

import (
	"context"
	"strings"

	"github.com/trxu05/mock-interview-chatbot/internal/ai"
	"github.com/trxu05/mock-interview-chatbot/internal/model"
	"github.com/trxu05/mock-interview-chatbot/internal/prompt"
)

// ChatSettings controls the interviewer's model calls.
type ChatSettings struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// DefaultChatSettings returns the settings used when nothing is configured.
func DefaultChatSettings() ChatSettings {
	return ChatSettings{Model: "gpt-4", Temperature: 0.7, MaxTokens: 500}
}

// EnsureSystemPrompt normalizes transcript and leads it with the persona for
// t and job unless it already starts with a system turn.
func EnsureSystemPrompt(transcript model.Transcript, t model.InterviewType, job model.JobBackground) model.Transcript {
	return transcript.Normalize().WithSystemPrompt(prompt.BuildSystemPrompt(t, job))
}

// NextQuestion sends the full transcript and returns the interviewer's reply.
func NextQuestion(ctx context.Context, client ai.ModelClient, settings ChatSettings, transcript model.Transcript) (string, error) {
	return client.Complete(ctx, ai.ChatRequest{
		Purpose:     ai.PurposeInterview,
		Model:       settings.Model,
		Messages:    transcript,
		Temperature: settings.Temperature,
		MaxTokens:   settings.MaxTokens,
	})
}

var quitWords = map[string]bool{"quit": true, "exit": true, "end": true}

// IsQuitWord reports whether text asks to end the interview.
func IsQuitWord(text string) bool {
	return quitWords[strings.ToLower(strings.TrimSpace(text))]
}
