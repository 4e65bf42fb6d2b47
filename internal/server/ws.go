package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/trxu05/mock-interview-chatbot/internal/interview"
	"github.com/trxu05/mock-interview-chatbot/internal/model"
	"github.com/trxu05/mock-interview-chatbot/internal/notifier"
	"github.com/trxu05/mock-interview-chatbot/internal/prompt"
	"github.com/trxu05/mock-interview-chatbot/internal/summary"
)

const (
	maxFrameSize  = 1 << 20
	notifyTimeout = 15 * time.Second
)

// handleWS upgrades the request and dispatches each inbound frame on its own
// goroutine. Closing the socket cancels the model calls still in flight.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	client := newWSClient(uuid.NewString(), conn, s.logger)
	s.deps.Metrics.WSConnections.Inc()
	s.logger.Info("websocket connected", "conn", client.id, "remote", r.RemoteAddr)

	ctx, cancel := context.WithCancel(r.Context())
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })

	var wg sync.WaitGroup
	defer func() {
		cancel()
		wg.Wait()
		stop()
		_ = conn.Close()
		s.deps.Metrics.WSConnections.Dec()
		s.logger.Info("websocket disconnected", "conn", client.id)
	}()

	conn.SetReadLimit(maxFrameSize)
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("websocket read failed", "conn", client.id, "error", err)
			}
			return
		}

		var frame Frame
		if err := json.Unmarshal(msg, &frame); err != nil {
			client.send(EventError, messageData{Message: "Malformed message."})
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			s.dispatch(ctx, client, frame)
		}()
	}
}

func (s *Server) dispatch(ctx context.Context, client *wsClient, frame Frame) {
	switch frame.Type {
	case EventStartInterview:
		s.onStartInterview(client, frame.Data)
	case EventUserMessage:
		s.onUserMessage(ctx, client, frame.Data)
	case EventEndInterview:
		s.onEndInterview(ctx, client, frame.Data)
	default:
		client.send(EventError, messageData{Message: fmt.Sprintf("Unknown event %q.", frame.Type)})
	}
}

// decode treats an absent payload as the zero value.
func decode(raw json.RawMessage, v any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, v)
}

func (s *Server) onStartInterview(client *wsClient, raw json.RawMessage) {
	var data startInterviewData
	if err := decode(raw, &data); err != nil {
		client.send(EventError, messageData{Message: "Malformed start_interview payload."})
		return
	}
	s.logger.Info("interview started", "conn", client.id, "type", data.Type.Normalize())
	client.send(EventInterviewerMessage, messageData{Message: prompt.Greeting})
}

func (s *Server) onUserMessage(ctx context.Context, client *wsClient, raw json.RawMessage) {
	var data userMessageData
	if err := decode(raw, &data); err != nil {
		client.send(EventError, messageData{Message: "Malformed user_message payload."})
		return
	}

	transcript := interview.EnsureSystemPrompt(data.ConversationHistory, data.InterviewType, data.JobBackground)
	reply, err := interview.NextQuestion(ctx, s.deps.Client, s.deps.Chat, transcript)
	if err != nil {
		s.reportError(ctx, client, "next question", err)
		return
	}
	client.send(EventInterviewerMessage, messageData{Message: reply})
}

func (s *Server) onEndInterview(ctx context.Context, client *wsClient, raw json.RawMessage) {
	var data endInterviewData
	if err := decode(raw, &data); err != nil {
		client.send(EventError, messageData{Message: "Malformed end_interview payload."})
		return
	}

	start := time.Now()
	result, err := s.deps.Assembler.Assemble(ctx, summary.Request{
		Transcript: data.ConversationHistory,
		Job:        data.JobBackground,
		Type:       data.InterviewType,
		QAPairs:    data.QuestionsAndAnswers,
	})
	s.deps.Metrics.ObserveSummary(err, time.Since(start))
	if err != nil {
		s.reportError(ctx, client, "summary", err)
		return
	}
	client.send(EventInterviewSummary, result)

	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()
	ev := notifier.Event{SessionID: client.id, Type: data.InterviewType.Normalize(), Job: data.JobBackground, Summary: result}
	if err := s.deps.Notifier.Notify(notifyCtx, ev); err != nil {
		s.logger.Warn("summary notification failed", "conn", client.id, "error", err)
	}
}

// reportError logs err and sends the client a readable message. Nothing is
// sent once the connection is gone.
func (s *Server) reportError(ctx context.Context, client *wsClient, op string, err error) {
	if ctx.Err() != nil {
		s.logger.Debug("request abandoned", "conn", client.id, "op", op, "error", err)
		return
	}
	s.logger.Error("interview request failed", "conn", client.id, "op", op, "error", err)
	client.send(EventError, messageData{Message: userMessage(err)})
}

// userMessage turns an error into text fit for the candidate.
func userMessage(err error) string {
	var cfgErr *model.ConfigurationError
	if errors.As(err, &cfgErr) {
		return fmt.Sprintf("The interviewer is not configured: %s is not set on the server.", cfgErr.Setting)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "The interviewer took too long to respond. Please try again."
	}
	var extErr *model.ExternalServiceError
	if errors.As(err, &extErr) {
		return "The interviewer is unavailable right now. Please try again."
	}
	return "Something went wrong. Please try again."
}
