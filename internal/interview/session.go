package interview

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/trxu05/mock-interview-chatbot/internal/ai"
	"github.com/trxu05/mock-interview-chatbot/internal/model"
	"github.com/trxu05/mock-interview-chatbot/internal/prompt"
	"github.com/trxu05/mock-interview-chatbot/internal/summary"
)

// Session holds one in-memory interview. It is not safe for concurrent use.
type Session struct {
	ID   string
	Type model.InterviewType
	Job  model.JobBackground

	client     ai.ModelClient
	settings   ChatSettings
	logger     *slog.Logger
	transcript model.Transcript
	qa         QATracker
}

// NewSession creates a session for the given persona and job background.
func NewSession(client ai.ModelClient, settings ChatSettings, t model.InterviewType, job model.JobBackground, logger *slog.Logger) *Session {
	return &Session{
		ID:       uuid.NewString(),
		Type:     t.Normalize(),
		Job:      job,
		client:   client,
		settings: settings,
		logger:   logger,
	}
}

// Start seeds the transcript with the persona and the greeting, and returns the greeting.
func (s *Session) Start() string {
	s.transcript = model.Transcript{
		{Role: model.RoleSystem, Content: prompt.BuildSystemPrompt(s.Type, s.Job)},
		{Role: model.RoleAssistant, Content: prompt.Greeting},
	}
	s.qa = QATracker{}
	s.qa.Question(prompt.Greeting)
	s.logger.Debug("interview started", "session", s.ID, "type", s.Type)
	return prompt.Greeting
}

// Reply records the candidate's answer and returns the interviewer's next
// message. On error the answer stays in the transcript and no reply is added.
func (s *Session) Reply(ctx context.Context, text string) (string, error) {
	s.transcript = append(s.transcript, model.Turn{Role: model.RoleUser, Content: text})
	s.qa.Answer(text)

	msgs := EnsureSystemPrompt(s.transcript, s.Type, s.Job)
	reply, err := NextQuestion(ctx, s.client, s.settings, msgs)
	if err != nil {
		return "", fmt.Errorf("session %s: next question: %w", s.ID, err)
	}

	s.transcript = append(s.transcript, model.Turn{Role: model.RoleAssistant, Content: reply})
	s.qa.Question(reply)
	s.logger.Debug("interviewer replied", "session", s.ID, "turns", len(s.transcript))
	return reply, nil
}

// Transcript returns a copy of the conversation so far.
func (s *Session) Transcript() model.Transcript {
	out := make(model.Transcript, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// QAPairs returns the question/answer pairs recorded so far.
func (s *Session) QAPairs() []model.QAPair {
	return s.qa.Pairs()
}

// SummaryRequest builds the input for summary.Assembler from the session.
func (s *Session) SummaryRequest() summary.Request {
	return summary.Request{
		Transcript: s.Transcript(),
		Job:        s.Job,
		Type:       s.Type,
		QAPairs:    s.QAPairs(),
	}
}
